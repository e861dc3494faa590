// Package report prints side-by-side comparisons of original and optimized timing tables.
package report

import (
	"fmt"
	"io"
	"sort"

	"perfcmp/timing"
)

// Row pairs one function with its record from each side. A nil side means
// the function never appeared in that log.
type Row struct {
	Function  string
	Original  *timing.Record
	Optimized *timing.Record
}

// OriginalOrZero returns the original record, or the zero Record when absent.
func (r Row) OriginalOrZero() timing.Record {
	return orZero(r.Original)
}

// OptimizedOrZero returns the optimized record, or the zero Record when absent.
func (r Row) OptimizedOrZero() timing.Record {
	return orZero(r.Optimized)
}

func orZero(r *timing.Record) timing.Record {
	if r == nil {
		return timing.Record{}
	}
	return *r
}

// Compare builds one row per function seen in either table, in lexicographic
// order so the output is stable across runs.
func Compare(original, optimized timing.Table) []Row {
	seen := make(map[string]bool, len(original)+len(optimized))
	for name := range original {
		seen[name] = true
	}
	for name := range optimized {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]Row, len(names))
	for i, name := range names {
		rows[i] = Row{Function: name}
		if rec, ok := original.Lookup(name); ok {
			rows[i].Original = &rec
		}
		if rec, ok := optimized.Lookup(name); ok {
			rows[i].Optimized = &rec
		}
	}
	return rows
}

// Print writes the comparison for label to w.
// Absent sides are printed as all zeros.
func Print(w io.Writer, label string, rows []Row) error {
	if _, err := fmt.Fprintf(w, "**************%s:******************\n", label); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s:\n", row.Function); err != nil {
			return err
		}
		if err := printSide(w, "Original", row.OriginalOrZero()); err != nil {
			return err
		}
		if err := printSide(w, "Optimized", row.OptimizedOrZero()); err != nil {
			return err
		}
	}
	return nil
}

func printSide(w io.Writer, side string, r timing.Record) error {
	_, err := fmt.Fprintf(w, "  %s - Average time: %.6f ms, Total time: %.6f ms, Count: %d, Min time: %.6f ms, Max time: %.6f ms\n",
		side, r.AverageTime, r.TotalTime, r.Count, r.MinTime, r.MaxTime)
	return err
}
