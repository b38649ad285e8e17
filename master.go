// Package pboc integrates one dimensional master equations for the Physical
// Biology of the Cell tutorials: diffusion on a lattice and birth-death
// processes over molecule copy numbers.
package pboc

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Advance fills every column of the timeline after the first using explicit
// (forward) Euler steps of the master equation defined by rule, and returns it.
// Column t is computed only from column t-1.
//
// Preconditions, not checked here: tl has at least two bins, rates are
// non-negative and (up+down)*dt <= 1 at every bin (see CheckStability).
// Violating them yields numerically invalid values, never a fault.
func Advance(tl *Timeline, rule Rule, bc Boundaries) *Timeline {
	bins, steps := tl.P.Dims()
	dt := tl.Dt
	last := bins - 1
	prev := make([]float64, bins)
	next := make([]float64, bins)
	up := make([]float64, bins)
	down := make([]float64, bins)
	for t := 1; t < steps; t++ {
		mat.Col(prev, t-1, tl.P)
		for x := range prev {
			up[x], down[x] = rule.Rates(x, prev)
		}
		// Lower edge: only the 0 <-> 1 relation exists.
		next[0] = prev[0] - up[0]*dt*prev[0] + down[1]*dt*prev[1]
		if bc.Lower == Absorbing {
			next[0] -= down[0] * dt * prev[0]
		}
		// Upper edge: only the last-1 <-> last relation exists.
		next[last] = prev[last] - down[last]*dt*prev[last] + up[last-1]*dt*prev[last-1]
		if bc.Upper == Absorbing {
			next[last] -= up[last] * dt * prev[last]
		}
		for x := 1; x < last; x++ {
			next[x] = prev[x] + up[x-1]*dt*prev[x-1] + down[x+1]*dt*prev[x+1] - (up[x]+down[x])*dt*prev[x]
		}
		tl.P.SetCol(t, next)
	}
	return tl
}

// UnstableStepError is returned when a bin would lose more than its whole
// content in one step.
type UnstableStepError struct {
	Bin  int
	Rate float64 // total outgoing rate of the bin
	Dt   float64
}

func (e *UnstableStepError) Error() string {
	return fmt.Sprintf("unstable step at bin %d: rate*dt = %.4g > 1 (rate=%.4g, dt=%.4g)", e.Bin, e.Rate*e.Dt, e.Rate, e.Dt)
}

// CheckStability returns an *UnstableStepError for the worst bin if the
// outgoing rate times dt exceeds one anywhere, using the initial column.
// Rules whose rates depend on the distribution are only checked at t=0.
func CheckStability(tl *Timeline, rule Rule, bc Boundaries) error {
	p := tl.Column(0)
	last := len(p) - 1
	worst, worstRate := -1, 0.0
	for x := range p {
		up, down := rule.Rates(x, p)
		if x == 0 && bc.Lower != Absorbing {
			down = 0
		}
		if x == last && bc.Upper != Absorbing {
			up = 0
		}
		if rate := up + down; rate*tl.Dt > 1 && rate > worstRate {
			worst, worstRate = x, rate
		}
	}
	if worst < 0 {
		return nil
	}
	return &UnstableStepError{Bin: worst, Rate: worstRate, Dt: tl.Dt}
}
