// Package plots renders timelines, trajectories and distributions to files.
// Static figures use gonum/plot (the format follows the file extension),
// interactive ones go-echarts.
package plots

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	// ErrLengthMismatch is returned when the coordinates of a series differ in length.
	ErrLengthMismatch = errors.New("plots: data lengths differ")
	// ErrNoColumns is returned when no time column is selected.
	ErrNoColumns = errors.New("plots: no column selected")
)

// Labels are the axis labels and title of a figure.
type Labels struct {
	Title string
	X     string
	Y     string
	Z     string // only used by 3-D figures
}

// Size is the size of a figure, or of one panel of a stacked figure.
type Size struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultSize is six by four inches.
var DefaultSize = Size{Width: 6 * vg.Inch, Height: 4 * vg.Inch}

// SizeInches returns a Size from inches.
func SizeInches(w, h float64) Size {
	return Size{Width: vg.Length(w) * vg.Inch, Height: vg.Length(h) * vg.Inch}
}

func newPlot(labels Labels) *plot.Plot {
	p := plot.New()
	p.Title.Text = labels.Title
	p.X.Label.Text = labels.X
	p.Y.Label.Text = labels.Y
	return p
}

// barPlot returns a bar chart of values with a fixed y range if ymax > 0.
func barPlot(values []float64, labels Labels, width vg.Length, ymax float64) (*plot.Plot, error) {
	p := newPlot(labels)
	bars, err := plotter.NewBarChart(plotter.Values(values), width/vg.Length(len(values)+2)*0.8)
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = 0
	bars.Color = plotterColor
	p.Add(bars)
	p.Y.Min = 0
	if ymax > 0 {
		p.Y.Max = ymax
	}
	return p, nil
}

func format(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// writeCanvas writes a formatted canvas to path.
func writeCanvas(path string, c vg.CanvasWriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// stack draws the plots one above the other on a single canvas.
func stack(path string, plots []*plot.Plot, size Size) error {
	c, err := draw.NewFormattedCanvas(size.Width, size.Height*vg.Length(len(plots)), format(path))
	if err != nil {
		return err
	}
	grid := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		grid[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{Rows: len(plots), Cols: 1, PadY: vg.Millimeter}
	canvases := plot.Align(grid, tiles, draw.New(c))
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}
	return writeCanvas(path, c)
}
