// Package imaging holds the microscopy image operations used by the growth
// and segmentation tutorials: loading, normalization, thresholding, blurring
// and connected component labeling.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // decoder registration
	"os"

	_ "golang.org/x/image/tiff" // decoder registration
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyImage is returned for images without any pixel.
	ErrEmptyImage = errors.New("imaging: empty image")
	// ErrSizeMismatch is returned when two images of different sizes are combined.
	ErrSizeMismatch = errors.New("imaging: image sizes differ")
)

// Gray is a single channel image of float intensities stored row major.
type Gray struct {
	W, H int
	Pix  []float64
}

// NewGray returns a black image.
func NewGray(w, h int) *Gray {
	return &Gray{W: w, H: h, Pix: make([]float64, w*h)}
}

// At returns the intensity at column x, row y.
func (g *Gray) At(x, y int) float64 {
	return g.Pix[y*g.W+x]
}

// Set sets the intensity at column x, row y.
func (g *Gray) Set(x, y int, v float64) {
	g.Pix[y*g.W+x] = v
}

// Clone returns a deep copy of g.
func (g *Gray) Clone() *Gray {
	c := NewGray(g.W, g.H)
	copy(c.Pix, g.Pix)
	return c
}

// FromImage converts img to raw 16 bit gray intensities.
func FromImage(img image.Image) (*Gray, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	g := NewGray(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
			g.Set(x-b.Min.X, y-b.Min.Y, float64(c.Y))
		}
	}
	return g, nil
}

// Load decodes the TIFF (or PNG) image stored at path.
func Load(path string) (*Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	g, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Normalize returns (v - min)/(max - min) for every pixel.
// A constant image maps to zeros.
func Normalize(g *Gray) *Gray {
	out := NewGray(g.W, g.H)
	lo, hi := floats.Min(g.Pix), floats.Max(g.Pix)
	if hi == lo {
		return out
	}
	for i, v := range g.Pix {
		out.Pix[i] = (v - lo) / (hi - lo)
	}
	return out
}

// Sub returns a - b pixel by pixel.
func Sub(a, b *Gray) (*Gray, error) {
	if a.W != b.W || a.H != b.H {
		return nil, ErrSizeMismatch
	}
	out := a.Clone()
	floats.Sub(out.Pix, b.Pix)
	return out, nil
}

// Mask is a binary image.
type Mask struct {
	W, H int
	Pix  []bool
}

// Above returns the pixels strictly brighter than t.
func Above(g *Gray, t float64) *Mask {
	m := &Mask{W: g.W, H: g.H, Pix: make([]bool, len(g.Pix))}
	for i, v := range g.Pix {
		m.Pix[i] = v > t
	}
	return m
}

// Below returns the pixels strictly darker than t.
func Below(g *Gray, t float64) *Mask {
	m := &Mask{W: g.W, H: g.H, Pix: make([]bool, len(g.Pix))}
	for i, v := range g.Pix {
		m.Pix[i] = v < t
	}
	return m
}

// Area returns the number of set pixels.
func Area(m *Mask) int {
	n := 0
	for _, on := range m.Pix {
		if on {
			n++
		}
	}
	return n
}
