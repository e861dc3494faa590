package util

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script in dir.
func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(dir, "fake_exe.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"seq01.txt":             "seq01",
		"dir/seq01.tar.gz":      "seq01.tar",
		"noext":                 "noext",
		".profile":              ".profile",
		"/abs/path/run_log.txt": "run_log",
	}
	for in, want := range tests {
		assert.Equal(t, want, Stem(in), in)
	}
}

func TestSuffix(t *testing.T) {
	tests := map[string]string{
		"seq01_log.txt":    ".txt",
		"dir/seq01.tar.gz": ".gz",
		"noext":            "",
		".txt":             "",
		"logs/.txt":        "",
		".hidden_log.txt":  ".txt",
	}
	for in, want := range tests {
		assert.Equal(t, want, Suffix(in), in)
	}
}

func TestPairName(t *testing.T) {
	assert.Equal(t, "seq01", PairName("Performance/original/seq01_log.txt"))
	assert.Equal(t, "seq01", PairName("seq01.txt"))
	// only the first "_log" is removed
	assert.Equal(t, "run_log", PairName("run_log_log.txt"))
}

func TestLogPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "seq01_log.txt"), LogPath("out", filepath.Join("inputs", "seq01.yaml")))
}

func TestRunCodeCombinesOutput(t *testing.T) {
	script := writeScript(t, t.TempDir(), "echo out:$1\necho err:$2 1>&2\nexit 3\n")

	var buf bytes.Buffer
	code, err := RunCode(script, []string{"a", "b"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Contains(t, buf.String(), "out:a\n")
	assert.Contains(t, buf.String(), "err:b\n")
}

func TestRunCodeMissingExecutable(t *testing.T) {
	_, err := RunCode(filepath.Join(t.TempDir(), "does-not-exist"), nil, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestExecuteAndLog(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "echo \"$1 $2 $3\"\necho \"tracking takes : 1.5ms\" 1>&2\n")
	input := filepath.Join(dir, "seq01.txt")
	require.NoError(t, os.WriteFile(input, []byte("frames"), 0o644))
	outDir := filepath.Join(dir, "nested", "logs")

	var echo bytes.Buffer
	logPath, code, err := ExecuteAndLog(script, "cfg.yaml", "2", input, outDir, &echo)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, filepath.Join(outDir, "seq01_log.txt"), logPath)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "cfg.yaml 2 "+input+"\ntracking takes : 1.5ms\n", string(data))
	assert.Equal(t, string(data), echo.String())
}

func TestCopyFolder(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a_log.txt"), []byte("a"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "b_log.txt"), []byte("b"), 0o644))

	dst := filepath.Join(t.TempDir(), "Performance", "original")
	require.NoError(t, CopyFolder(src, dst))

	assert.True(t, IsRegularFile(filepath.Join(dst, "a_log.txt")))
	assert.True(t, IsRegularFile(filepath.Join(dst, "sub", "b_log.txt")))
	assert.False(t, IsRegularFile(filepath.Join(dst, "sub")))
	assert.True(t, Exists(filepath.Join(dst, "sub")))
}

func TestCopyFolderRejectsFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(src, nil, 0o644))
	assert.Error(t, CopyFolder(src, t.TempDir()))
}
