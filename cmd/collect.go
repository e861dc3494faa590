package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"perfcmp/cmd/util"
	"perfcmp/logger"
)

var collectCmd = &cobra.Command{
	Use:     "collect <log_dir> <directory>",
	Short:   "Copy the logs of a run into the original or optimized slot of an analysis directory",
	Aliases: []string{"c"},
	Args:    cobra.ExactArgs(2),
	RunE:    collect,
}

var collectAs string

func init() {
	collectCmd.Flags().StringVarP(&collectAs, "as", "a", "", "Which side the logs belong to: original or optimized")
	RootCmd.AddCommand(collectCmd)
}

func collect(cmd *cobra.Command, args []string) error {
	if collectAs != originalDir && collectAs != optimizedDir {
		return errors.Errorf("--as must be %q or %q, got %q", originalDir, optimizedDir, collectAs)
	}
	dst := filepath.Join(args[1], performanceDir, collectAs)
	if err := util.CopyFolder(args[0], dst); err != nil {
		return err
	}
	logger.Info("logs collected", "from", args[0], "to", dst)
	fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to %s\n", args[0], dst)
	return nil
}
