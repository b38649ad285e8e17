package channel

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestOpenProbability(t *testing.T) {
	if p := OpenProbability(0); p != 0.5 {
		t.Fatalf("p(0) = %f", p)
	}
	for _, e := range []float64{0.5, 1, 3, 5} {
		if sum := OpenProbability(e) + OpenProbability(-e); !scalar.EqualWithinAbs(sum, 1, 1e-15) {
			t.Fatalf("p(%f) + p(-%f) = %f", e, e, sum)
		}
	}
	if p := OpenProbability(800); p != 1 {
		t.Fatalf("p(800) = %f", p)
	}
	if p := OpenProbability(-800); p != 0 {
		t.Fatalf("p(-800) = %g", p)
	}
}

func TestCurve(t *testing.T) {
	deltaE, pOpen := Curve(-5, 5, 100)
	if len(deltaE) != 100 || deltaE[0] != -5 || !scalar.EqualWithinAbs(deltaE[99], 5, 1e-12) {
		t.Fatalf("bad span: %d points from %f to %f", len(deltaE), deltaE[0], deltaE[len(deltaE)-1])
	}
	for i := 1; i < len(pOpen); i++ {
		if pOpen[i] <= pOpen[i-1] {
			t.Fatalf("p_open is not increasing at %d", i)
		}
	}
	if !scalar.EqualWithinAbs(pOpen[0], 1/(1+148.4131591025766), 1e-12) {
		t.Fatalf("p(-5) = %f", pOpen[0])
	}
}
