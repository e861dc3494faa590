package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUsage(t *testing.T) {
	out, err := execute(t, "run", "tests", "program")
	require.NoError(t, err)
	assert.Equal(t, runUsage+"\n", out)
}

func TestRunProcessesEveryFile(t *testing.T) {
	script := writeScript(t, `echo "config=$1 option=$2"
cat "$3"
`)
	testDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "logs")
	writeTestFile(t, filepath.Join(testDir, "b.dat"), "second\n")
	writeTestFile(t, filepath.Join(testDir, "a.dat"), "first\n")
	require.NoError(t, os.Mkdir(filepath.Join(testDir, "nested"), os.ModePerm))

	out, err := execute(t, "run", "--id", "test-run", testDir, script, "cfg.yaml", "mono", outputDir)
	require.NoError(t, err)

	assert.Equal(t,
		"Processed a.dat; log saved to "+filepath.Join(outputDir, "a_log.txt")+"\n"+
			"Processed b.dat; log saved to "+filepath.Join(outputDir, "b_log.txt")+"\n",
		out)

	content, err := os.ReadFile(filepath.Join(outputDir, "a_log.txt"))
	require.NoError(t, err)
	assert.Equal(t, "config=cfg.yaml option=mono\nfirst\n", string(content))
	assert.NoFileExists(t, filepath.Join(outputDir, "nested_log.txt"))
}

func TestRunContinuesAfterFailure(t *testing.T) {
	script := writeScript(t, `cat "$3"
case "$3" in *bad*) exit 2;; esac
`)
	testDir := t.TempDir()
	outputDir := t.TempDir()
	writeTestFile(t, filepath.Join(testDir, "bad.dat"), "broken\n")
	writeTestFile(t, filepath.Join(testDir, "good.dat"), "fine\n")

	out, err := execute(t, "run", testDir, script, "cfg", "opt", outputDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Processed bad.dat")
	assert.Contains(t, out, "Processed good.dat")
	assert.FileExists(t, filepath.Join(outputDir, "good_log.txt"))
}

func TestRunTee(t *testing.T) {
	script := writeScript(t, `echo hello`)
	testDir := t.TempDir()
	outputDir := t.TempDir()
	writeTestFile(t, filepath.Join(testDir, "x.dat"), "")

	out, err := execute(t, "run", "-t", testDir, script, "cfg", "opt", outputDir)
	require.NoError(t, err)
	assert.Equal(t, "hello\nProcessed x.dat; log saved to "+filepath.Join(outputDir, "x_log.txt")+"\n", out)
}

func TestRunMissingTestDir(t *testing.T) {
	script := writeScript(t, `true`)
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "nope"), script, "cfg", "opt", t.TempDir())
	require.Error(t, err)
}

func TestRunMissingExecutable(t *testing.T) {
	testDir := t.TempDir()
	writeTestFile(t, filepath.Join(testDir, "x.dat"), "")
	_, err := execute(t, "run", testDir, filepath.Join(t.TempDir(), "missing"), "cfg", "opt", t.TempDir())
	require.Error(t, err)
}
