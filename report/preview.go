package report

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

const previewHeight = 10

// Preview draws the original (red) and optimized (blue) averages as an ASCII
// chart, one x position per function in row order. Functions named in exclude
// are left out. It returns "" when nothing is left to draw.
func Preview(rows []Row, exclude []string, caption string) string {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var original, optimized []float64
	var legend []string
	for _, row := range rows {
		if skip[row.Function] {
			continue
		}
		original = append(original, row.OriginalOrZero().AverageTime)
		optimized = append(optimized, row.OptimizedOrZero().AverageTime)
		legend = append(legend, fmt.Sprintf("%d=%s", len(legend), row.Function))
	}
	if len(original) == 0 {
		return ""
	}
	// a single point gives asciigraph nothing to connect
	if len(original) == 1 {
		original = append(original, original[0])
		optimized = append(optimized, optimized[0])
	}

	graph := asciigraph.PlotMany([][]float64{original, optimized},
		asciigraph.Height(previewHeight),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.Red,
			asciigraph.Blue,
		),
	)
	return graph + "\n" + strings.Join(legend, "  ")
}
