package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"perfcmp/config"
	"perfcmp/logger"
)

// Names of the folders an analysis directory is laid out with
const (
	performanceDir = "Performance"
	originalDir    = "original"
	optimizedDir   = "optimized"
)

var settingsPath string

// settings is replaced by the loaded configuration before any subcommand runs
var settings = config.Default()

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "perfcmp",
	Short: "Run a program over test inputs and compare timing logs of original and optimized builds",
	Long: `perfcmp has two pipelines. "run" executes a program once per input file and
keeps its output as a log. "analyse" reads pairs of original/optimized logs,
aggregates the "<function> takes : <ms>ms" lines and compares them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// Execute adds all child commands to the root command and sets Flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		println("Failed to execute command: " + err.Error())
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&settingsPath, "settings", "s", "", "settings file (default is ./"+config.DefaultSettingsFile+" when present)")
}

func loadSettings(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	settings = cfg
	if !logger.SetLevel(cfg.LogLevel) {
		logger.Warn("unknown log level, keeping the default", "level", cfg.LogLevel)
	}
	return nil
}
