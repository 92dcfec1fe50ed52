package analysis

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/solver"
)

// Extremum is a governing design value and its position.
type Extremum struct {
	Value    float64
	Location float64 // m
}

// Diagram holds sampled shear and moment values for plotting.
type Diagram struct {
	X      []float64 // m, ascending
	Shear  []float64 // kN
	Moment []float64 // kNm
}

// Solution is a solved beam. It never changes after Solve returns it, so its
// query methods are safe for concurrent use.
type Solution struct {
	beam      beam.Beam
	actions   beam.Actions
	reactions solver.Reactions
	nodal     *solver.MatrixResult
	samples   int
}

// Beam returns the solved beam.
func (s *Solution) Beam() beam.Beam { return s.beam }

// Actions returns the resolved loads.
func (s *Solution) Actions() beam.Actions { return s.actions }

// Reactions returns the support reactions.
func (s *Solution) Reactions() solver.Reactions {
	r := make(solver.Reactions, len(s.reactions))
	for x, re := range s.reactions {
		r[x] = re
	}
	return r
}

// Nodal returns the stiffness solution, or nil when closed-form statics were used.
func (s *Solution) Nodal() *solver.MatrixResult { return s.nodal }

// Method reports which solver produced the reactions.
func (s *Solution) Method() Method {
	if s.nodal != nil {
		return MethodMatrix
	}
	return MethodClosedForm
}

func (s *Solution) check(x float64) error {
	if !s.beam.Contains(x) {
		return fmt.Errorf("%w: x = %g m, beam spans 0 to %g m", ErrOutOfRange, x, s.beam.Length)
	}
	return nil
}

// ShearForce returns the shear at x, summing actions from the left end.
// Actions located exactly at x are included.
func (s *Solution) ShearForce(x float64) (float64, error) {
	if err := s.check(x); err != nil {
		return 0, err
	}
	return s.shear(x), nil
}

// BendingMoment returns the bending moment at x, sagging positive.
func (s *Solution) BendingMoment(x float64) (float64, error) {
	if err := s.check(x); err != nil {
		return 0, err
	}
	return s.moment(x), nil
}

func (s *Solution) shear(x float64) float64 {
	var v float64
	for _, loc := range s.reactions.Locations() {
		if loc <= x {
			v += s.reactions[loc].Fy
		}
	}
	for _, f := range s.actions.Forces {
		if f.Location <= x {
			v -= f.Force
		}
	}
	for _, seg := range s.actions.Segments {
		if force, _, ok := seg.Upto(x); ok {
			v -= force
		}
	}
	return v
}

func (s *Solution) moment(x float64) float64 {
	var m float64
	for _, loc := range s.reactions.Locations() {
		if loc <= x {
			r := s.reactions[loc]
			m += r.Fy*(x-loc) + r.M
		}
	}
	for _, f := range s.actions.Forces {
		if f.Location <= x {
			m -= f.Force * (x - f.Location)
		}
	}
	for _, seg := range s.actions.Segments {
		if force, c, ok := seg.Upto(x); ok {
			m -= force * (x - c)
		}
	}
	for _, pm := range s.actions.Moments {
		if pm.Location <= x {
			m += pm.Moment
		}
	}
	return m
}

// MaxShear returns the shear of largest magnitude over the beam.
func (s *Solution) MaxShear() Extremum {
	return s.extremum(s.shear)
}

// MaxMoment returns the bending moment of largest magnitude over the beam.
func (s *Solution) MaxMoment() Extremum {
	return s.extremum(s.moment)
}

// extremum scans the sample grid; the left-most of equal magnitudes wins.
func (s *Solution) extremum(f func(float64) float64) Extremum {
	var best Extremum
	found := false
	for _, x := range s.points(s.samples) {
		v := f(x)
		if !found || math.Abs(v) > math.Abs(best.Value) {
			best = Extremum{Value: v, Location: x}
			found = true
		}
	}
	return best
}

// Sample evaluates shear and moment on n uniform points plus every critical point.
func (s *Solution) Sample(n int) Diagram {
	xs := s.points(n)
	d := Diagram{
		X:      xs,
		Shear:  make([]float64, len(xs)),
		Moment: make([]float64, len(xs)),
	}
	for i, x := range xs {
		d.Shear[i] = s.shear(x)
		d.Moment[i] = s.moment(x)
	}
	return d
}

// points returns the scan positions: a uniform grid of n points, the critical
// positions, points just left of every concentrated action, the midpoint and
// the zero-shear points between critical positions.
func (s *Solution) points(n int) []float64 {
	length := s.beam.Length
	eps := offset(length)

	pts := make([]float64, 0, n+32)
	if n < 2 {
		n = 2
	}
	for i := 0; i < n; i++ {
		pts = append(pts, length*float64(i)/float64(n-1))
	}
	pts = append(pts, length/2)

	critical := s.actions.Positions(s.beam)
	pts = append(pts, critical...)

	var jumps []float64
	for _, sup := range s.beam.Supports {
		jumps = append(jumps, sup.Location)
	}
	for _, f := range s.actions.Forces {
		jumps = append(jumps, f.Location)
	}
	for _, pm := range s.actions.Moments {
		jumps = append(jumps, pm.Location)
	}
	for _, x := range jumps {
		if x-eps >= 0 {
			pts = append(pts, x-eps)
		}
	}

	// shear is linear between critical positions; its roots locate moment peaks
	for i := 0; i+1 < len(critical); i++ {
		a, b := critical[i], critical[i+1]
		if b-a <= 2*eps {
			continue
		}
		va, vb := s.shear(a), s.shear(b-eps)
		if va*vb < 0 {
			pts = append(pts, a+va/(va-vb)*(b-eps-a))
		}
	}

	return beam.Unique(pts, 0)
}

func offset(length float64) float64 {
	return 1e-9 * math.Max(length, 1)
}
