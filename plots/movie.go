package plots

import (
	"bytes"
	"fmt"

	"github.com/icza/mjpeg"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Movie writes an MJPEG AVI with one bar chart frame per selected column of a
// bins x steps matrix. The y range is fixed to the data maximum so that
// frames are comparable.
func Movie(path string, data mat.Matrix, labels Labels, cols []int, times []float64, fps int, size Size) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	_, steps := data.Dims()
	if len(times) != steps {
		return fmt.Errorf("%w: %d times for %d columns", ErrLengthMismatch, len(times), steps)
	}
	if fps < 1 {
		fps = 1
	}
	ymax := mat.Max(data)
	var (
		aw  mjpeg.AviWriter
		buf bytes.Buffer
	)
	for _, t := range cols {
		l := labels
		l.Title = fmt.Sprintf("%s t = %g", labels.Title, times[t])
		p, err := barPlot(mat.Col(nil, t, data), l, size.Width, ymax)
		if err != nil {
			return err
		}
		c := vgimg.New(size.Width, size.Height)
		p.Draw(draw.New(c))
		buf.Reset()
		if _, err := (vgimg.JpegCanvas{Canvas: c}).WriteTo(&buf); err != nil {
			return err
		}
		if aw == nil {
			b := c.Image().Bounds()
			if aw, err = mjpeg.New(path, int32(b.Dx()), int32(b.Dy()), int32(fps)); err != nil {
				return err
			}
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			aw.Close()
			return fmt.Errorf("frame t=%g: %w", times[t], err)
		}
	}
	return aw.Close()
}
