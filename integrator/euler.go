package integrator

// Euler is the explicit (forward) Euler integrator: s_{i+1} = s_i + h*f(x_i, s_i).
type Euler struct {
	X0         float64
	StepSize   float64
	Integrable Integrable
}

// NewEuler returns a new Euler integrator instance.
func NewEuler(x0 float64, stepSize float64, inte Integrable) *Euler {
	checkConfig(stepSize, inte)
	return &Euler{X0: x0, StepSize: stepSize, Integrable: inte}
}

// Solve solves the configured Euler integrator.
// Returns the number of iterations performed and the last X_i, or an error.
func (e *Euler) Solve() (uint64, float64, error) {
	return solve(e.X0, e.StepSize, e.Integrable, eulerStep)
}

func eulerStep(f func(float64, []float64) []float64, t, h float64, s []float64) ([]float64, error) {
	return axpy(s, h, f(t, s))
}
