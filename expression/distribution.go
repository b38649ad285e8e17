package expression

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Poisson returns p(n) = exp(-mean) mean^n / n! for n in [0, length).
// The result is not renormalized over the truncated support.
// It is computed in log space to avoid overflowing n!.
func Poisson(mean float64, length int) []float64 {
	p := make([]float64, length)
	if length == 0 {
		return p
	}
	if mean == 0 {
		// distuv.Poisson requires a positive rate: all the mass is at zero.
		p[0] = 1
		return p
	}
	dist := distuv.Poisson{Lambda: mean}
	for n := range p {
		p[n] = math.Exp(dist.LogProb(float64(n)))
	}
	return p
}

func counts(n int) []float64 {
	c := make([]float64, n)
	for i := range c {
		c[i] = float64(i)
	}
	return c
}

// Mean returns sum(n*p(n)) of a copy-number distribution.
func Mean(p []float64) float64 {
	return floats.Dot(counts(len(p)), p)
}

// Variance returns the variance of the copy number weighted by p.
// The weights need not sum to one.
func Variance(p []float64) float64 {
	return stat.PopVariance(counts(len(p)), p)
}

// FanoFactor returns variance/mean, which is one for a Poisson distribution.
func FanoFactor(p []float64) float64 {
	return Variance(p) / (floats.Dot(counts(len(p)), p) / floats.Sum(p))
}

// ErrLengthMismatch is returned when data and theory do not cover the same support.
var ErrLengthMismatch = errors.New("expression: data and theory lengths differ")

// Compare returns the sum of squared residuals and the largest absolute
// deviation between a measured distribution and a theoretical one.
func Compare(data, theory []float64) (ssr, maxDev float64, err error) {
	if len(data) != len(theory) {
		return 0, 0, ErrLengthMismatch
	}
	for i := range data {
		d := data[i] - theory[i]
		ssr += d * d
		if math.Abs(d) > maxDev {
			maxDev = math.Abs(d)
		}
	}
	return ssr, maxDev, nil
}
