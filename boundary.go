package pboc

import (
	"fmt"
	"strings"
)

// Boundary defines what happens to mass at an edge of the index range.
type Boundary uint8

const (
	// Reflecting edges only exchange mass with their single interior neighbor.
	// The zero value of Boundary behaves as Reflecting.
	Reflecting Boundary = iota + 1
	// Absorbing edges also lose mass at their outward rate; that mass leaves the range.
	Absorbing
)

func (b Boundary) String() string {
	switch b {
	case 0, Reflecting:
		return "reflecting"
	case Absorbing:
		return "absorbing"
	}
	panic("cannot stringify unknown boundary")
}

// BoundaryFromString returns the boundary from its name.
func BoundaryFromString(name string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "reflecting":
		return Reflecting, nil
	case "absorbing":
		return Absorbing, nil
	}
	return 0, fmt.Errorf("unknown boundary `%s`", name)
}

// Boundaries holds the policy of both edges.
type Boundaries struct {
	Lower Boundary // bin 0
	Upper Boundary // last bin
}

func (bc Boundaries) String() string {
	return bc.Lower.String() + "/" + bc.Upper.String()
}

var (
	// DiffusionBoundaries confines particles to the box.
	DiffusionBoundaries = Boundaries{Reflecting, Reflecting}
	// BirthDeathBoundaries: nothing decays out of copy number 0, and the upper
	// bound folds in decay without any production from above.
	BirthDeathBoundaries = Boundaries{Reflecting, Reflecting}
)
