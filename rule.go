package pboc

import "fmt"

// Rule defines the local transition rates of a master equation.
// Rates returns the per-unit-time rate at which mass leaves bin x toward x+1
// (up) and toward x-1 (down), given the distribution p of the previous step.
// The rate of the edge relation which does not exist (down at bin 0, up at the
// last bin) is only used by an Absorbing boundary.
type Rule interface {
	Rates(x int, p []float64) (up, down float64)
}

// Hopping is symmetric nearest neighbor hopping with rate K (diffusion).
type Hopping struct {
	K float64
}

// Rates implements the Rule interface.
func (h Hopping) Rates(x int, p []float64) (up, down float64) {
	return h.K, h.K
}

func (h Hopping) String() string {
	return fmt.Sprintf("hopping(k=%g)", h.K)
}

// BirthDeath is constitutive production at rate R and independent decay of
// each molecule at rate Gamma. The bin index is the copy number.
type BirthDeath struct {
	R     float64
	Gamma float64
}

// Rates implements the Rule interface.
func (b BirthDeath) Rates(x int, p []float64) (up, down float64) {
	return b.R, b.Gamma * float64(x)
}

func (b BirthDeath) String() string {
	return fmt.Sprintf("birthdeath(r=%g, gamma=%g)", b.R, b.Gamma)
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(x int, p []float64) (up, down float64)

// Rates implements the Rule interface.
func (f RuleFunc) Rates(x int, p []float64) (up, down float64) {
	return f(x, p)
}

// DiffusionParams are the physical parameters of a 1-D lattice diffusion.
type DiffusionParams struct {
	D  float64 // diffusion constant (um^2/s)
	Dx float64 // lattice spacing (um)
	Dt float64 // time step (s); zero means 1/(10k)
}

// K returns the hopping rate D/dx^2.
func (d DiffusionParams) K() float64 {
	return d.D / (d.Dx * d.Dx)
}

// Step returns the time step, defaulting to one tenth of the hopping time.
func (d DiffusionParams) Step() float64 {
	if d.Dt > 0 {
		return d.Dt
	}
	return 1 / (10 * d.K())
}

// Rule returns the hopping rule for these parameters.
func (d DiffusionParams) Rule() Hopping {
	return Hopping{K: d.K()}
}

// BirthDeathParams are the parameters of an unregulated promoter
// copy-number master equation.
type BirthDeathParams struct {
	R          float64 // production rate (1/min)
	Gamma      float64 // decay rate (1/min)
	Duration   float64 // total simulated time (min)
	Dt         float64 // time step (min)
	UpperBound int     // largest copy number simulated
}

// Steps returns the number of time steps covering the duration.
func (b BirthDeathParams) Steps() int {
	return int(b.Duration/b.Dt + 0.5)
}

// Bins returns the number of copy numbers simulated, zero included.
func (b BirthDeathParams) Bins() int {
	return b.UpperBound + 1
}

// Rule returns the birth-death rule for these parameters.
func (b BirthDeathParams) Rule() BirthDeath {
	return BirthDeath{R: b.R, Gamma: b.Gamma}
}
