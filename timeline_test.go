package pboc

import (
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestTimelineStrided(t *testing.T) {
	tl := NewTimeline(3, 10, 0.5)
	for _, c := range []struct {
		stride int
		exp    []int
	}{
		{1, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{3, []int{0, 3, 6, 9}},
		{4, []int{0, 4, 8, 9}},
		{0, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{20, []int{0, 9}},
	} {
		got := tl.Strided(c.stride)
		if len(got) != len(c.exp) {
			t.Fatalf("stride %d: %v != %v", c.stride, got, c.exp)
		}
		for i := range got {
			if got[i] != c.exp[i] {
				t.Fatalf("stride %d: %v != %v", c.stride, got, c.exp)
			}
		}
	}
}

func TestTimelineSubAndTimes(t *testing.T) {
	tl := NewTimeline(2, 4, 0.25)
	tl.SetInitial([]float64{1, 0})
	Advance(tl, Hopping{K: 1}, DiffusionBoundaries)
	sub := tl.Sub([]int{0, 3})
	if r, c := sub.Dims(); r != 2 || c != 2 {
		t.Fatalf("sub is %dx%d", r, c)
	}
	if sub.At(0, 1) != tl.P.At(0, 3) || sub.At(1, 0) != 0 {
		t.Fatal("sub columns do not match the timeline")
	}
	if !floats.Equal(tl.Times(), []float64{0, 0.25, 0.5, 0.75}) {
		t.Fatalf("times = %v", tl.Times())
	}
}

func TestTimelineMean(t *testing.T) {
	tl := NewTimeline(4, 1, 1)
	tl.SetInitial([]float64{0.25, 0.25, 0.25, 0.25})
	if m := tl.Mean(0); m != 1.5 {
		t.Fatalf("mean = %f", m)
	}
}

func TestSetInitialLength(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("wrong initial length did not panic")
		}
	}()
	NewTimeline(3, 2, 1).SetInitial([]float64{1})
}

func TestUniformWithHole(t *testing.T) {
	p := UniformWithHole(10, 2, 5)
	exp := []float64{1. / 6, 1. / 6, 0, 0, 0, 0, 1. / 6, 1. / 6, 1. / 6, 1. / 6}
	if !floats.EqualApprox(p, exp, 1e-15) {
		t.Fatalf("%v != %v", p, exp)
	}
	for _, hole := range [][2]int{{-1, 2}, {3, 10}, {5, 4}, {0, 9}} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Fatalf("hole %v did not panic", hole)
				}
			}()
			UniformWithHole(10, hole[0], hole[1])
		}()
	}
}
