// Package integrator solves ordinary differential equations with fixed step
// explicit schemes.
package integrator

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrStateLength is returned when Func returns a derivative whose length
// differs from the state it was evaluated at.
var ErrStateLength = errors.New("integrator: derivative and state lengths differ")

// Integrable defines something which can be integrated, i.e. has a state vector.
// WARNING: Implementation must manage its own state based on the iteration.
type Integrable interface {
	GetState() []float64                   // Latest state.
	SetState(i uint64, s []float64)        // Stores the state s reached at the end of iteration i.
	Stop(i uint64) bool                    // Whether iteration i should not be performed.
	Func(t float64, s []float64) []float64 // Derivative at time t and state s.
}

// Solver is a fixed step integrator.
type Solver interface {
	Solve() (uint64, float64, error)
}

// stepper advances the state s at time t by one step of size h.
type stepper func(f func(float64, []float64) []float64, t, h float64, s []float64) ([]float64, error)

func checkConfig(stepSize float64, inte Integrable) {
	if stepSize <= 0 {
		panic("config StepSize must be positive")
	}
	if inte == nil {
		panic("config Integrable may not be nil")
	}
}

// solve runs step from x0 until inte asks to stop. It returns the number of
// iterations performed and the last x_i.
func solve(x0, h float64, inte Integrable, step stepper) (uint64, float64, error) {
	iterNum := uint64(0)
	xi := x0
	for !inte.Stop(iterNum) {
		next, err := step(inte.Func, xi, h, inte.GetState())
		if err != nil {
			return iterNum, xi, fmt.Errorf("iteration %d (x=%g): %w", iterNum, xi, err)
		}
		inte.SetState(iterNum, next)
		xi += h
		iterNum++
	}
	return iterNum, xi, nil
}

// axpy returns s + alpha*d in a new slice.
func axpy(s []float64, alpha float64, d []float64) ([]float64, error) {
	if len(d) != len(s) {
		return nil, fmt.Errorf("%w: %d != %d", ErrStateLength, len(d), len(s))
	}
	return floats.AddScaledTo(make([]float64, len(s)), s, alpha, d), nil
}
