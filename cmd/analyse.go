package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"perfcmp/cmd/util"
	"perfcmp/export"
	"perfcmp/graph"
	"perfcmp/logger"
	"perfcmp/report"
	"perfcmp/timing"
)

const analyseUsage = "Usage: perfcmp analyse <directory>"

var analyseCmd = &cobra.Command{
	Use:     "analyse <directory>",
	Short:   "Compare the original and optimized timing logs under <directory>/Performance",
	Aliases: []string{"a", "analyze"},
	RunE:    analyse,
}

var writeSarif bool
var writePprof bool
var showASCII bool
var exclude []string

func init() {
	analyseCmd.Flags().BoolVar(&writeSarif, "sarif", false, "Write a SARIF report of slower and missing functions per pair")
	analyseCmd.Flags().BoolVar(&writePprof, "pprof", false, "Write a pprof profile of each log")
	analyseCmd.Flags().BoolVar(&showASCII, "ascii", false, "Print an ASCII chart of the averages")
	analyseCmd.Flags().StringSliceVarP(&exclude, "exclude", "e", nil, "Functions to leave out of charts, added to the configured ones")
	RootCmd.AddCommand(analyseCmd)
}

// AnalyseOptions controls what is produced for each log pair.
type AnalyseOptions struct {
	Exclude []string
	Chart   graph.Options
	Sarif   bool
	Pprof   bool
	ASCII   bool
}

func analyse(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(cmd.OutOrStdout(), analyseUsage)
		return nil
	}
	opts := AnalyseOptions{
		Exclude: append(append([]string(nil), settings.Exclude...), exclude...),
		Chart:   graph.SizeInches(settings.ChartWidth, settings.ChartHeight),
		Sarif:   writeSarif,
		Pprof:   writePprof,
		ASCII:   showASCII,
	}
	return Analyse(cmd.OutOrStdout(), args[0], opts)
}

// Analyse pairs every "<name>_log.txt" in <directory>/Performance/original
// with the log of the same name in .../optimized, prints their comparison
// and charts it. Problems with individual entries are reported to out and
// skipped; unreadable logs and unwritable outputs stop the run.
func Analyse(out io.Writer, directory string, opts AnalyseOptions) error {
	perfPath := filepath.Join(directory, performanceDir)
	originalPath := filepath.Join(perfPath, originalDir)
	optimizedPath := filepath.Join(perfPath, optimizedDir)

	if !util.Exists(originalPath) || !util.Exists(optimizedPath) {
		fmt.Fprintf(out, "Missing 'original' or 'optimized' directories in %s\n", directory)
		return nil
	}

	entries, err := os.ReadDir(originalPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read %s", originalPath)
	}
	for _, entry := range entries {
		originalLog := filepath.Join(originalPath, entry.Name())
		if !util.IsRegularFile(originalLog) || util.Suffix(entry.Name()) != ".txt" {
			fmt.Fprintf(out, "Skipping non-text file or directory: %s\n", originalLog)
			continue
		}
		name := util.PairName(originalLog)
		optimizedLog := filepath.Join(optimizedPath, name+util.LogSuffix+".txt")
		if !util.Exists(optimizedLog) {
			fmt.Fprintf(out, "Optimized log for '%s' does not exist.\n", name)
			continue
		}
		if err := analysePair(out, directory, name, originalLog, optimizedLog, opts); err != nil {
			return err
		}
	}
	return nil
}

func analysePair(out io.Writer, directory, name, originalLog, optimizedLog string, opts AnalyseOptions) error {
	original, err := timing.ParseFile(originalLog)
	if err != nil {
		return err
	}
	optimized, err := timing.ParseFile(optimizedLog)
	if err != nil {
		return err
	}
	logger.Debug("parsed log pair", "name", name, "original_functions", len(original), "optimized_functions", len(optimized))

	rows := report.Compare(original, optimized)
	if err := report.Print(out, name, rows); err != nil {
		return err
	}
	if opts.ASCII {
		if preview := report.Preview(rows, opts.Exclude, name+" average time (ms)"); preview != "" {
			fmt.Fprintln(out, preview)
		}
	}

	chartPath := graph.OutputPath(directory, name)
	err = graph.Render(graph.Rows(original, optimized, opts.Exclude), chartPath, opts.Chart)
	switch {
	case errors.Is(err, graph.ErrNoData):
		fmt.Fprintln(out, "No data available for plotting.")
	case err != nil:
		return err
	default:
		logger.Info("chart written", "path", chartPath)
	}

	perfPath := filepath.Join(directory, performanceDir)
	if opts.Sarif {
		path := filepath.Join(perfPath, name+".sarif")
		err := writeFile(path, func(w io.Writer) error {
			return export.WriteSarif(w, name, originalLog, optimizedLog, rows)
		})
		if err != nil {
			return err
		}
		logger.Info("SARIF report written", "path", path)
	}
	if opts.Pprof {
		sides := []struct {
			suffix string
			table  timing.Table
		}{
			{originalDir, original},
			{optimizedDir, optimized},
		}
		for _, side := range sides {
			path := filepath.Join(perfPath, name+"_"+side.suffix+".pb.gz")
			table := side.table
			if err := writeFile(path, func(w io.Writer) error { return export.WriteProfile(w, table) }); err != nil {
				return err
			}
			logger.Info("profile written", "path", path)
		}
	}
	return nil
}

// writeFile creates path and hands it to write, closing it on every path.
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = pkgerrors.Wrapf(closeErr, "failed to close %s", path)
		}
	}()
	return write(file)
}
