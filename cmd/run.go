package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"perfcmp/cmd/util"
	"perfcmp/logger"
)

const runUsage = "Usage: perfcmp run <test_dir> <executable_path> <config_path> <option> <output_directory>"

var runCmd = &cobra.Command{
	Use:     "run <test_dir> <executable_path> <config_path> <option> <output_directory>",
	Short:   "Run an executable on every file of a directory and log its output",
	Aliases: []string{"r"},
	RunE:    run,
}

var runID string
var tee bool

func init() {
	runCmd.Flags().StringVarP(&runID, "id", "n", "", "The id of this run, a UUID is generated when empty")
	runCmd.Flags().BoolVarP(&tee, "tee", "t", false, "Also print the executable's output")
	RootCmd.AddCommand(runCmd)
}

func run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) < 5 {
		fmt.Fprintln(out, runUsage)
		return nil
	}
	id := runID
	if len(id) == 0 {
		id = uuid.New().String()
	}
	var echo io.Writer
	if tee {
		echo = out
	}
	return RunAll(out, id, args[0], args[1], args[2], args[3], args[4], echo)
}

// RunAll invokes executable once per regular file in testDir, in name order,
// waiting for each process before starting the next. Each file's output is
// stored in outputDir as "<stem>_log.txt".
func RunAll(out io.Writer, id, testDir, executable, configPath, option, outputDir string, echo io.Writer) error {
	log := logger.With("run_id", id)
	entries, err := os.ReadDir(testDir)
	if err != nil {
		return errors.Wrapf(err, "failed to read test directory %s", testDir)
	}
	log.Info("starting run", "test_dir", testDir, "executable", executable, "files", len(entries))

	for _, entry := range entries {
		inputPath := filepath.Join(testDir, entry.Name())
		if !util.IsRegularFile(inputPath) {
			continue
		}
		logPath, code, err := util.ExecuteAndLog(executable, configPath, option, inputPath, outputDir, echo)
		if err != nil {
			return err
		}
		if code != 0 {
			log.Warn("executable exited with non-zero status", "file", entry.Name(), "exit_code", code)
		}
		fmt.Fprintf(out, "Processed %s; log saved to %s\n", entry.Name(), logPath)
	}
	return nil
}
