package pboc

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	massε = 1e-9 // relative mass drift above which a run is reported as leaking
)

// binIndices returns 0, 1, ..., n-1 as floats.
func binIndices(n int) []float64 {
	return floats.Span(make([]float64, n), 0, float64(n-1))
}

// relDrift returns the relative change from a to b, or the absolute change if a is zero.
func relDrift(a, b float64) float64 {
	if scalar.EqualWithinAbs(a, 0, 1e-300) {
		return math.Abs(b - a)
	}
	return math.Abs(b-a) / math.Abs(a)
}
