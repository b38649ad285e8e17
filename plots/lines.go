package plots

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is one named curve.
type Series struct {
	Name   string
	X, Y   []float64
	Points bool // draw markers instead of a line
}

func xys(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x for %d y", ErrLengthMismatch, len(x), len(y))
	}
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts, nil
}

// hline adds a dashed horizontal line at y over [xmin, xmax].
func hline(p *plot.Plot, name string, y, xmin, xmax float64) {
	f := plotter.NewFunction(func(float64) float64 { return y })
	f.XMin, f.XMax = xmin, xmax
	f.Dashes = plotutil.Dashes(1)
	f.Width = vg.Points(1)
	p.Add(f)
	p.Legend.Add(name, f)
}

// Lines writes the series to path. If steady is not nil, a dashed steady
// state line is drawn at that value.
func Lines(path string, labels Labels, series []Series, steady *float64, size Size) error {
	p := newPlot(labels)
	xmin, xmax := 0.0, 0.0
	for i, s := range series {
		pts, err := xys(s.X, s.Y)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Name, err)
		}
		if len(s.X) > 0 {
			if i == 0 {
				xmin, xmax = floats.Min(s.X), floats.Max(s.X)
			}
			xmin, xmax = min(xmin, floats.Min(s.X)), max(xmax, floats.Max(s.X))
		}
		if s.Points {
			sc, err := plotter.NewScatter(pts)
			if err != nil {
				return err
			}
			sc.Color = plotutil.Color(i)
			sc.Shape = plotutil.Shape(i)
			p.Add(sc)
			p.Legend.Add(s.Name, sc)
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(s.Name, l)
	}
	if steady != nil {
		hline(p, "steady state", *steady, xmin, xmax)
	}
	p.Legend.Top = true
	return p.Save(size.Width, size.Height, path)
}

// errorPoints is a set of points with symmetric vertical error bars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// ErrorBars writes measured points with their error bars and, if theory is
// not nil, a theory curve over the same x.
func ErrorBars(path string, labels Labels, name string, x, y, yerr, theory []float64, size Size) error {
	pts, err := xys(x, y)
	if err != nil {
		return err
	}
	if len(yerr) != len(y) {
		return fmt.Errorf("%w: %d errors for %d points", ErrLengthMismatch, len(yerr), len(y))
	}
	errs := make(plotter.YErrors, len(yerr))
	for i, e := range yerr {
		errs[i].Low, errs[i].High = e, e
	}
	p := newPlot(labels)
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.Color = plotutil.Color(0)
	bars, err := plotter.NewYErrorBars(errorPoints{XYs: pts, YErrors: errs})
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	p.Add(sc, bars)
	p.Legend.Add(name, sc)
	if theory != nil {
		tpts, err := xys(x, theory)
		if err != nil {
			return fmt.Errorf("theory: %w", err)
		}
		l, err := plotter.NewLine(tpts)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(1)
		p.Add(l)
		p.Legend.Add("Poisson", l)
	}
	p.Legend.Top = true
	return p.Save(size.Width, size.Height, path)
}
