// Package channel models a two-state ion channel.
package channel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// OpenProbability returns the probability that the channel is open when the
// open state is lower in energy by deltaE (in kT units).
func OpenProbability(deltaE float64) float64 {
	return 1 / (1 + math.Exp(-deltaE))
}

// Curve returns n energy differences evenly spanning [lo, hi] and the open
// probability at each of them.
func Curve(lo, hi float64, n int) (deltaE, pOpen []float64) {
	if n < 2 {
		panic("open probability curve needs at least two points")
	}
	deltaE = floats.Span(make([]float64, n), lo, hi)
	pOpen = make([]float64, n)
	for i, e := range deltaE {
		pOpen[i] = OpenProbability(e)
	}
	return deltaE, pOpen
}
