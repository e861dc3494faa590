// Package graph renders grouped bar charts comparing average function times
// between an original and an optimized run.
package graph

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"sort"

	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"perfcmp/timing"
)

// Series identifies which run a bar belongs to.
type Series string

const (
	Original  Series = "Original"
	Optimized Series = "Optimized"
)

// DefaultExclude holds the aggregate pseudo-function that dwarfs every other bar.
var DefaultExclude = []string{"slam process"}

// ErrNoData is returned by Render when there are no rows to plot.
var ErrNoData = errors.New("no data available for plotting")

// Row is one bar of the chart.
type Row struct {
	Function    string
	AverageTime float64
	Series      Series
}

// Options controls the size of the saved image.
type Options struct {
	Width    vg.Length
	Height   vg.Length
	BarWidth vg.Length
}

// DefaultOptions matches a 12 x 8 inch figure.
func DefaultOptions() Options {
	return Options{
		Width:    12 * vg.Inch,
		Height:   8 * vg.Inch,
		BarWidth: vg.Points(14),
	}
}

// SizeInches returns the default options resized to width x height inches.
func SizeInches(width, height float64) Options {
	opts := DefaultOptions()
	opts.Width = vg.Length(width) * vg.Inch
	opts.Height = vg.Length(height) * vg.Inch
	return opts
}

// OutputPath is where the chart for label is stored under directory.
func OutputPath(directory, label string) string {
	return filepath.Join(directory, "Performance", label+"_average_time_comparison.png")
}

// Rows flattens both tables into chart rows, original first, each side in
// name order. Functions named in exclude are dropped.
func Rows(original, optimized timing.Table, exclude []string) []Row {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	var rows []Row
	add := func(t timing.Table, s Series) {
		for _, name := range t.Names() {
			if skip[name] {
				continue
			}
			rows = append(rows, Row{Function: name, AverageTime: t[name].AverageTime, Series: s})
		}
	}
	add(original, Original)
	add(optimized, Optimized)
	return rows
}

// Render draws rows as a grouped bar chart, one group per function and one
// bar per series, and saves it to path. The image format follows the file
// extension. ErrNoData is returned, and nothing is written, for empty rows.
func Render(rows []Row, path string, opts Options) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.BarWidth <= 0 {
		opts.BarWidth = DefaultOptions().BarWidth
	}

	functions, values := group(rows)

	p := plot.New()
	p.Title.Text = "Average Execution Time Comparison"
	p.X.Label.Text = "function"
	p.Y.Label.Text = "average_time (ms)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	series := []Series{Original, Optimized}
	for i, s := range series {
		offset := opts.BarWidth * vg.Length(float64(i)-float64(len(series)-1)/2)

		bars, err := plotter.NewBarChart(values[s], opts.BarWidth)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to build %s bars", s)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = offset
		p.Add(bars)
		p.Legend.Add(string(s), bars)

		labels, err := annotations(values[s], offset)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to build %s labels", s)
		}
		if labels != nil {
			p.Add(labels)
		}
	}

	p.NominalX(functions...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return pkgerrors.Wrapf(err, "failed to save chart %s", path)
	}
	return nil
}

// group orders the functions by name and lays out one value per function
// for each series. A function missing from a series gets a zero-height bar.
func group(rows []Row) ([]string, map[Series]plotter.Values) {
	index := make(map[string]int)
	for _, row := range rows {
		index[row.Function] = 0
	}
	functions := make([]string, 0, len(index))
	for name := range index {
		functions = append(functions, name)
	}
	sort.Strings(functions)
	for i, name := range functions {
		index[name] = i
	}

	values := map[Series]plotter.Values{
		Original:  make(plotter.Values, len(functions)),
		Optimized: make(plotter.Values, len(functions)),
	}
	for _, row := range rows {
		vs, ok := values[row.Series]
		if !ok {
			continue
		}
		vs[index[row.Function]] = row.AverageTime
	}
	return functions, values
}

// annotations labels every bar with a positive height with its value.
func annotations(vs plotter.Values, offset vg.Length) (*plotter.Labels, error) {
	var xys plotter.XYs
	var texts []string
	for i, v := range vs {
		if v <= 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(i), Y: v})
		texts = append(texts, fmt.Sprintf("%.2fms", v))
	}
	if len(xys) == 0 {
		return nil, nil
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].Color = color.Black
	}
	labels.Offset = vg.Point{X: offset, Y: vg.Points(2)}
	return labels, nil
}
