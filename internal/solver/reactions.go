// Package solver computes support reactions of a beam, either by closed-form
// statics for determinate layouts or by the direct stiffness method for any layout.
package solver

import (
	"errors"
	"math"
	"sort"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

var (
	// ErrUnsupported is returned by the closed-form solver for layouts it does not cover.
	ErrUnsupported = errors.New("unsupported support configuration")
	// ErrUnstable is returned when the supports cannot hold the beam in equilibrium.
	ErrUnstable = errors.New("unstable or under-constrained structure")
)

// Reaction is the action a support applies to the beam.
type Reaction struct {
	Fy float64 // kN, positive upward
	M  float64 // kNm, contribution to the bending moment of the left free body
}

// Reactions maps support location to its reaction.
type Reactions map[float64]Reaction

// Locations returns the support locations in ascending order.
func (r Reactions) Locations() []float64 {
	locs := make([]float64, 0, len(r))
	for x := range r {
		locs = append(locs, x)
	}
	sort.Float64s(locs)
	return locs
}

// TotalForce returns the sum of the vertical reactions.
func (r Reactions) TotalForce() float64 {
	var sum float64
	for _, x := range r.Locations() {
		sum += r[x].Fy
	}
	return sum
}

// At returns the reaction of the support at x, matching within beam.Tolerance.
func (r Reactions) At(x float64) (Reaction, bool) {
	if re, ok := r[x]; ok {
		return re, true
	}
	for loc, re := range r {
		if math.Abs(loc-x) <= beam.Tolerance {
			return re, true
		}
	}
	return Reaction{}, false
}

// Determinate reports whether the closed-form solver covers the beam's supports.
func Determinate(b beam.Beam) bool {
	switch len(b.Supports) {
	case 1:
		return b.Supports[0].Restraint == beam.Fixed
	case 2:
		return b.Supports[0].Restraint != beam.Fixed && b.Supports[1].Restraint != beam.Fixed
	}
	return false
}
