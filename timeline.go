package pboc

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Timeline stores a distribution over discrete bins at every time step.
// Rows are bins (spatial boxes or copy numbers), columns are time steps.
type Timeline struct {
	P  *mat.Dense // Probabilities (or counts), bins x steps.
	Dt float64    // Time between two columns.
}

// NewTimeline returns a zeroed timeline of the given shape.
// Column 0 must be set with SetInitial before calling Advance.
func NewTimeline(bins, steps int, dt float64) *Timeline {
	if bins < 2 {
		panic("timeline needs at least two bins")
	}
	if steps < 1 {
		panic("timeline needs at least one time step")
	}
	if dt <= 0 {
		panic("timeline time step must be positive")
	}
	return &Timeline{P: mat.NewDense(bins, steps, nil), Dt: dt}
}

// Bins returns the number of bins.
func (tl *Timeline) Bins() int {
	r, _ := tl.P.Dims()
	return r
}

// Steps returns the number of time steps, initial condition included.
func (tl *Timeline) Steps() int {
	_, c := tl.P.Dims()
	return c
}

// SetInitial sets the initial condition (column 0).
func (tl *Timeline) SetInitial(p []float64) {
	if len(p) != tl.Bins() {
		panic(fmt.Errorf("initial condition has %d bins, timeline has %d", len(p), tl.Bins()))
	}
	tl.P.SetCol(0, p)
}

// Column returns a copy of the distribution at step t.
func (tl *Timeline) Column(t int) []float64 {
	return mat.Col(nil, t, tl.P)
}

// Final returns a copy of the last computed distribution.
func (tl *Timeline) Final() []float64 {
	return tl.Column(tl.Steps() - 1)
}

// Sum returns the total mass at step t.
func (tl *Timeline) Sum(t int) float64 {
	return floats.Sum(tl.Column(t))
}

// Mean returns the mean bin index at step t, i.e. sum of x*P(x).
// For a copy-number timeline this is the mean copy number.
func (tl *Timeline) Mean(t int) float64 {
	return floats.Dot(binIndices(tl.Bins()), tl.Column(t))
}

// Times returns the time of every column.
func (tl *Timeline) Times() []float64 {
	times := make([]float64, tl.Steps())
	for t := range times {
		times[t] = float64(t) * tl.Dt
	}
	return times
}

// Strided returns the indices of every stride-th column, starting at 0.
// The last column is always included so that the final state is rendered.
func (tl *Timeline) Strided(stride int) []int {
	if stride < 1 {
		stride = 1
	}
	steps := tl.Steps()
	cols := make([]int, 0, steps/stride+1)
	for t := 0; t < steps; t += stride {
		cols = append(cols, t)
	}
	if cols[len(cols)-1] != steps-1 {
		cols = append(cols, steps-1)
	}
	return cols
}

// Sub returns a new bins x len(cols) matrix holding the selected columns.
func (tl *Timeline) Sub(cols []int) *mat.Dense {
	sub := mat.NewDense(tl.Bins(), len(cols), nil)
	for j, t := range cols {
		sub.SetCol(j, tl.Column(t))
	}
	return sub
}

// PointSource returns an initial condition with all the mass in bin at.
func PointSource(bins, at int, mass float64) []float64 {
	p := make([]float64, bins)
	p[at] = mass
	return p
}

// UniformWithHole returns a normalized uniform initial condition where bins
// from through to (inclusive) are emptied, as after photobleaching.
// Each remaining bin holds 1/(bins-holeWidth) so that the total is one.
func UniformWithHole(bins, from, to int) []float64 {
	if from < 0 || to >= bins || from > to || to-from+1 == bins {
		panic(fmt.Errorf("invalid bleached region [%d, %d] for %d bins", from, to, bins))
	}
	p := make([]float64, bins)
	level := 1 / float64(bins-(to-from+1))
	for x := range p {
		if x < from || x > to {
			p[x] = level
		}
	}
	return p
}
