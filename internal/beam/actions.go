package beam

import (
	"fmt"
	"math"
	"sort"
)

// Tolerance is the distance below which two positions are the same point.
const Tolerance = 1e-9

// Segment is a UDL resolved against a beam length.
type Segment struct {
	Magnitude  float64 // kN/m, positive downward
	Start, End float64 // m, Start < End
}

// Total returns the resultant force of the segment.
func (s Segment) Total() float64 {
	return s.Magnitude * (s.End - s.Start)
}

// Centroid returns the position of the resultant.
func (s Segment) Centroid() float64 {
	return (s.Start + s.End) / 2
}

// Upto returns the resultant and its centroid for the part of the segment left of x.
// ok is false when nothing of the segment lies left of x.
func (s Segment) Upto(x float64) (force, centroid float64, ok bool) {
	if x <= s.Start {
		return 0, 0, false
	}
	end := math.Min(x, s.End)
	return s.Magnitude * (end - s.Start), (s.Start + end) / 2, true
}

// Actions holds every load of an analysis, resolved once against the beam length.
// Consumers iterate the three slices instead of switching on load types.
type Actions struct {
	Forces   []PointLoad
	Segments []Segment
	Moments  []PointMoment
}

// Resolve splits loads by kind and fixes open UDL ends to the beam length.
// Loads are expected to have passed Beam.Check; zero-length segments are dropped.
func Resolve(length float64, loads []Load) Actions {
	var a Actions
	for _, l := range loads {
		switch v := l.(type) {
		case PointLoad:
			a.Forces = append(a.Forces, v)
		case UDL:
			start, end := v.Span(length)
			if end-start <= Tolerance {
				continue
			}
			a.Segments = append(a.Segments, Segment{Magnitude: v.Magnitude, Start: start, End: end})
		case PointMoment:
			a.Moments = append(a.Moments, v)
		default:
			panic(fmt.Sprintf("beam: unhandled load type %T", l))
		}
	}
	return a
}

// TotalForce returns the sum of all downward forces.
func (a Actions) TotalForce() float64 {
	var sum float64
	for _, f := range a.Forces {
		sum += f.Force
	}
	for _, s := range a.Segments {
		sum += s.Total()
	}
	return sum
}

// MomentAbout returns the clockwise moment of every action about x.
func (a Actions) MomentAbout(x float64) float64 {
	var sum float64
	for _, f := range a.Forces {
		sum += f.Force * (f.Location - x)
	}
	for _, s := range a.Segments {
		sum += s.Total() * (s.Centroid() - x)
	}
	for _, m := range a.Moments {
		sum += m.Moment
	}
	return sum
}

// Positions returns the sorted, de-duplicated positions where the load pattern
// changes: beam ends, supports, point actions and segment ends.
func (a Actions) Positions(b Beam) []float64 {
	pts := []float64{0, b.Length}
	for _, s := range b.Supports {
		pts = append(pts, s.Location)
	}
	for _, f := range a.Forces {
		pts = append(pts, f.Location)
	}
	for _, m := range a.Moments {
		pts = append(pts, m.Location)
	}
	for _, s := range a.Segments {
		pts = append(pts, s.Start, s.End)
	}
	return Unique(pts, Tolerance)
}

// Unique sorts xs and merges values closer than tol, keeping the first of each run.
func Unique(xs []float64, tol float64) []float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	out := sorted[:0]
	for _, x := range sorted {
		if len(out) > 0 && x-out[len(out)-1] <= tol {
			continue
		}
		out = append(out, x)
	}
	return out
}

// Nearest returns the index of the value in sorted xs closest to x.
func Nearest(xs []float64, x float64) int {
	i := sort.SearchFloat64s(xs, x)
	switch {
	case i == 0:
		return 0
	case i == len(xs):
		return len(xs) - 1
	case x-xs[i-1] <= xs[i]-x:
		return i - 1
	}
	return i
}
