package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// ClosedForm solves the two determinate layouts by equilibrium alone:
// a single fixed support (cantilever), or two pinned/roller supports
// (simple or overhanging span). Other layouts return ErrUnsupported.
func ClosedForm(b beam.Beam, a beam.Actions) (Reactions, error) {
	if !Determinate(b) {
		return nil, fmt.Errorf("%w: closed form needs one fixed or two non-fixed supports, got %v",
			ErrUnsupported, b.Supports)
	}
	if len(b.Supports) == 1 {
		return cantilever(b.Supports[0], a), nil
	}
	return simpleSpan(b.Supports, a)
}

// cantilever balances every action with the force and moment of the fixed support.
func cantilever(s beam.Support, a beam.Actions) Reactions {
	return Reactions{
		s.Location: {
			Fy: a.TotalForce(),
			M:  -a.MomentAbout(s.Location),
		},
	}
}

// simpleSpan takes moments about the left support to find the right reaction,
// then closes vertical equilibrium for the left one.
func simpleSpan(supports []beam.Support, a beam.Actions) (Reactions, error) {
	s := append([]beam.Support(nil), supports...)
	sort.Slice(s, func(i, j int) bool { return s[i].Location < s[j].Location })

	x1, x2 := s[0].Location, s[1].Location
	span := x2 - x1
	if math.Abs(span) <= beam.Tolerance {
		return nil, fmt.Errorf("%w: both supports at %g m", ErrUnstable, x1)
	}

	r2 := a.MomentAbout(x1) / span
	r1 := a.TotalForce() - r2

	return Reactions{
		x1: {Fy: r1},
		x2: {Fy: r2},
	}, nil
}
