package util

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
)

// LogSuffix is appended to an input's stem to name its log file
const LogSuffix = "_log"

// RunCode runs executable with args and sends its stdout and stderr to out.
// It blocks until the process exits; there is no timeout.
// A process that runs but exits non-zero is not an error, its exit code is
// returned instead. Failing to start the process is an error.
func RunCode(executable string, args []string, out io.Writer) (int, error) {
	cmd := exec.Command(executable, args...)
	// the same writer for both keeps stdout and stderr interleaved in one stream
	cmd.Stdout = out
	cmd.Stderr = out
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, pkgerrors.Wrapf(err, "failed to run %s", executable)
}

// LogPath is the log file an input file's output is written to.
func LogPath(outputDir, inputPath string) string {
	return filepath.Join(outputDir, Stem(inputPath)+LogSuffix+".txt")
}

// ExecuteAndLog runs "<executable> <configPath> <option> <inputPath>" and
// writes everything it prints to the input's log file in outputDir, creating
// the folder if needed. When echo is non-nil the output is copied there too.
func ExecuteAndLog(executable, configPath, option, inputPath, outputDir string, echo io.Writer) (string, int, error) {
	if err := EnsureFolder(outputDir); err != nil {
		return "", -1, err
	}
	logPath := LogPath(outputDir, inputPath)
	logFile, err := os.Create(logPath)
	if err != nil {
		return "", -1, pkgerrors.Wrapf(err, "failed to create log %s", logPath)
	}
	defer logFile.Close()

	var out io.Writer = logFile
	if echo != nil {
		out = io.MultiWriter(logFile, echo)
	}
	code, err := RunCode(executable, []string{configPath, option, inputPath}, out)
	return logPath, code, err
}
