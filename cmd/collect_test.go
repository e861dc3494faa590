package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectRejectsUnknownSide(t *testing.T) {
	_, err := execute(t, "collect", "--as", "baseline", t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `got "baseline"`)
}

func TestCollectCopiesLogs(t *testing.T) {
	logDir := t.TempDir()
	directory := t.TempDir()
	writeTestFile(t, filepath.Join(logDir, "a_log.txt"), "f takes : 1.0ms\n")

	out, err := execute(t, "collect", "-a", "optimized", logDir, directory)
	require.NoError(t, err)

	dst := filepath.Join(directory, "Performance", "optimized")
	assert.Equal(t, "Copied "+logDir+" to "+dst+"\n", out)
	content, err := os.ReadFile(filepath.Join(dst, "a_log.txt"))
	require.NoError(t, err)
	assert.Equal(t, "f takes : 1.0ms\n", string(content))
}

func TestCollectNeedsTwoArgs(t *testing.T) {
	_, err := execute(t, "collect", "-a", "original", t.TempDir())
	require.Error(t, err)
}
