// Package expression models constitutive (unregulated) gene expression: the
// mean mRNA copy number over time and the copy-number distribution it implies.
package expression

import (
	"fmt"
	"math"
	"strings"

	"github.com/RPGroup-PBoC/cshl-pboc/integrator"
)

// Method is the integration scheme of a mean trajectory.
type Method uint8

const (
	// Euler is the forward Euler scheme (default).
	Euler Method = iota
	// RK4 is the classical Runge-Kutta scheme.
	RK4
)

func (m Method) String() string {
	switch m {
	case Euler:
		return "euler"
	case RK4:
		return "rk4"
	}
	panic("cannot stringify unknown method")
}

// MethodFromString returns the method from its name.
func MethodFromString(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euler":
		return Euler, nil
	case "rk4":
		return RK4, nil
	}
	return 0, fmt.Errorf("unknown integration method `%s`", name)
}

// PromoterParams are the parameters of dm/dt = R - Gamma*m.
type PromoterParams struct {
	R        float64 // production rate (1/min)
	Gamma    float64 // decay rate (1/min)
	Duration float64 // min
	Dt       float64 // min
	M0       float64 // initial copy number
}

// Steps returns the number of time points, initial condition included.
func (p PromoterParams) Steps() int {
	return int(p.Duration/p.Dt + 0.5)
}

// SteadyState returns R/Gamma.
func (p PromoterParams) SteadyState() float64 {
	return p.R / p.Gamma
}

// Analytic returns the exact solution at time t.
func (p PromoterParams) Analytic(t float64) float64 {
	ss := p.SteadyState()
	return ss + (p.M0-ss)*math.Exp(-p.Gamma*t)
}

// Promoter is the mean copy number ODE, storing its whole history.
type Promoter struct {
	params  PromoterParams
	history []float64
}

// NewPromoter returns a Promoter at its initial condition.
func NewPromoter(p PromoterParams) *Promoter {
	steps := p.Steps()
	if steps < 1 {
		panic(fmt.Errorf("promoter needs at least one time step (duration=%f, dt=%f)", p.Duration, p.Dt))
	}
	h := make([]float64, 1, steps)
	h[0] = p.M0
	return &Promoter{params: p, history: h}
}

// GetState implements the integrator.Integrable interface.
func (p *Promoter) GetState() []float64 {
	return []float64{p.history[len(p.history)-1]}
}

// SetState implements the integrator.Integrable interface.
func (p *Promoter) SetState(i uint64, s []float64) {
	p.history = append(p.history, s[0])
}

// Stop implements the integrator.Integrable interface.
func (p *Promoter) Stop(i uint64) bool {
	return int(i)+1 >= p.params.Steps()
}

// Func implements the integrator.Integrable interface.
func (p *Promoter) Func(t float64, s []float64) []float64 {
	return []float64{p.params.R - p.params.Gamma*s[0]}
}

// History returns the copy number at every time point computed so far.
func (p *Promoter) History() []float64 {
	return p.history
}

// MeanTrajectory integrates the mean copy number and returns the times and
// m(t) at every step.
func MeanTrajectory(p PromoterParams, method Method) (times, m []float64, err error) {
	prom := NewPromoter(p)
	var solver integrator.Solver
	switch method {
	case Euler:
		solver = integrator.NewEuler(0, p.Dt, prom)
	case RK4:
		solver = integrator.NewRK4(0, p.Dt, prom)
	default:
		return nil, nil, fmt.Errorf("expression: unknown integration method %d", uint8(method))
	}
	if _, _, err := solver.Solve(); err != nil {
		return nil, nil, fmt.Errorf("expression: %s trajectory: %w", method, err)
	}
	m = prom.History()
	times = make([]float64, len(m))
	for i := range times {
		times[i] = float64(i) * p.Dt
	}
	return times, m, nil
}
