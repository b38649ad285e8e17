package integrator

// RK4 is the classical fourth order Runge-Kutta integrator.
type RK4 struct {
	X0         float64
	StepSize   float64
	Integrable Integrable
}

// NewRK4 returns a new RK4 integrator instance.
func NewRK4(x0 float64, stepSize float64, inte Integrable) *RK4 {
	checkConfig(stepSize, inte)
	return &RK4{X0: x0, StepSize: stepSize, Integrable: inte}
}

// Solve solves the configured RK4.
// Returns the number of iterations performed and the last X_i, or an error.
func (r *RK4) Solve() (uint64, float64, error) {
	return solve(r.X0, r.StepSize, r.Integrable, rk4Step)
}

// rk4Step evaluates f at t, twice at t+h/2 and at t+h, then combines the
// slopes with weights 1/6, 1/3, 1/3, 1/6.
func rk4Step(f func(float64, []float64) []float64, t, h float64, s []float64) ([]float64, error) {
	half := h / 2
	k1 := f(t, s)
	y, err := axpy(s, half, k1)
	if err != nil {
		return nil, err
	}
	k2 := f(t+half, y)
	if y, err = axpy(s, half, k2); err != nil {
		return nil, err
	}
	k3 := f(t+half, y)
	if y, err = axpy(s, h, k3); err != nil {
		return nil, err
	}
	k4 := f(t+h, y)

	next := s
	for _, term := range []struct {
		w float64
		k []float64
	}{{h / 6, k1}, {h / 3, k2}, {h / 3, k3}, {h / 6, k4}} {
		if next, err = axpy(next, term.w, term.k); err != nil {
			return nil, err
		}
	}
	return next, nil
}
