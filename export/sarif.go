// Package export writes timing comparisons in formats other tools understand.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/owenrumney/go-sarif/sarif"
	"github.com/pkg/errors"

	"perfcmp/report"
)

const (
	RuleSlowdown = "PERFCMP_SLOWDOWN"
	RuleMissing  = "PERFCMP_MISSING"
)

const toolURI = "https://github.com/perfcmp/perfcmp"

type slowdown struct {
	row   report.Row
	delta float64
}

// WriteSarif reports every function that got slower in the optimized log, and
// every function that disappeared from it, as a SARIF 2.1.0 document.
// Slowdowns come first, largest first.
func WriteSarif(w io.Writer, label, originalLog, optimizedLog string, rows []report.Row) error {
	run := sarif.NewRun("perfcmp", toolURI)

	var slower []slowdown
	var missing []report.Row
	for _, row := range rows {
		switch {
		case row.Original != nil && row.Optimized == nil:
			missing = append(missing, row)
		case row.Original != nil && row.Optimized != nil && row.Optimized.AverageTime > row.Original.AverageTime:
			slower = append(slower, slowdown{row: row, delta: row.Optimized.AverageTime - row.Original.AverageTime})
		}
	}
	sort.SliceStable(slower, func(i, j int) bool {
		return slower[i].delta > slower[j].delta
	})

	for _, s := range slower {
		orig, opt := s.row.Original, s.row.Optimized
		msg := fmt.Sprintf("%s: '%s' average went from %.6f ms to %.6f ms",
			label, s.row.Function, orig.AverageTime, opt.AverageTime)
		// no relative change from a zero baseline
		if orig.AverageTime > 0 {
			msg += fmt.Sprintf(" (+%.2f%%)", 100*s.delta/orig.AverageTime)
		}
		addRunResult(run, RuleSlowdown, msg, optimizedLog, opt.FirstLine)
	}
	for _, row := range missing {
		msg := fmt.Sprintf("%s: '%s' is timed in the original log but not in the optimized log", label, row.Function)
		addRunResult(run, RuleMissing, msg, originalLog, row.Original.FirstLine)
	}

	rep, err := sarif.New(sarif.Version210)
	if err != nil {
		return errors.Wrap(err, "failed to create SARIF report")
	}
	rep.AddRun(run)
	if err := rep.Write(w); err != nil {
		return errors.Wrap(err, "failed to write SARIF report")
	}
	return nil
}

func addRunResult(run *sarif.Run, ruleID, messageText, filePath string, line int) {
	if line < 1 {
		line = 1
	}
	run.AddResult(ruleID).
		WithLocation(sarif.NewLocationWithPhysicalLocation(sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().
				WithUri(filePath)).
			WithRegion(sarif.NewRegion().
				WithStartLine(line)))).
		WithMessage(sarif.NewMessage().WithText(messageText))
}
