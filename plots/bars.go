package plots

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
)

var plotterColor = color.RGBA{R: 68, G: 1, B: 84, A: 255}

// Bar3 renders a bins x steps matrix as an interactive 3-D bar chart: one
// row of bars per selected column, bins along y and values along z.
// times holds the time of every column of data.
func Bar3(w io.Writer, data mat.Matrix, labels Labels, cols []int, times []float64) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	bins, steps := data.Dims()
	if len(times) != steps {
		return fmt.Errorf("%w: %d times for %d columns", ErrLengthMismatch, len(times), steps)
	}
	timeNames := make([]string, len(cols))
	for k, t := range cols {
		timeNames[k] = fmt.Sprintf("%g", times[t])
	}
	binNames := make([]int, bins)
	for i := range binNames {
		binNames[i] = i
	}
	items := make([]opts.Chart3DData, 0, bins*len(cols))
	for k, t := range cols {
		for i := 0; i < bins; i++ {
			items = append(items, opts.Chart3DData{Value: []interface{}{k, i, data.At(i, t)}})
		}
	}

	bar3d := charts.NewBar3D()
	bar3d.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: labels.Title}),
		charts.WithTitleOpts(opts.Title{Title: labels.Title}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: labels.X, Type: "category", Data: timeNames}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: labels.Y, Type: "category", Data: binNames}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: labels.Z, Type: "value"}),
		charts.WithGrid3DOpts(opts.Grid3D{BoxWidth: 200, BoxDepth: 80}),
	)
	bar3d.AddSeries(labels.Z, items)
	return bar3d.Render(w)
}

// Snapshots writes one bar chart per selected column of a bins x steps
// matrix, stacked vertically. size is the size of each panel.
func Snapshots(path string, data mat.Matrix, labels Labels, cols []int, times []float64, size Size) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	_, steps := data.Dims()
	if len(times) != steps {
		return fmt.Errorf("%w: %d times for %d columns", ErrLengthMismatch, len(times), steps)
	}
	panels := make([]*plot.Plot, len(cols))
	for k, t := range cols {
		l := labels
		l.Title = fmt.Sprintf("%s t = %g", labels.Title, times[t])
		p, err := barPlot(mat.Col(nil, t, data), l, size.Width, 0)
		if err != nil {
			return err
		}
		panels[k] = p
	}
	return stack(path, panels, size)
}
