package beam

import "fmt"

// Load is an action applied to the beam: PointLoad, UDL or PointMoment.
// Positive values act downward (forces) or clockwise (moments).
type Load interface {
	fmt.Stringer
	load()
}

// PointLoad is a concentrated force.
type PointLoad struct {
	Force    float64 // kN, positive downward
	Location float64 // m
}

// UDL is a uniformly distributed load over [Start, End].
// When ToEnd is set the load runs to the end of whatever beam it is applied to.
type UDL struct {
	Magnitude float64 // kN/m, positive downward
	Start     float64 // m
	End       float64 // m, ignored when ToEnd
	ToEnd     bool
}

// PointMoment is a concentrated couple.
type PointMoment struct {
	Moment   float64 // kNm, positive clockwise
	Location float64 // m
}

func (PointLoad) load()   {}
func (UDL) load()         {}
func (PointMoment) load() {}

// NewPointLoad creates a point load at a non-negative location
func NewPointLoad(force, location float64) (PointLoad, error) {
	if !finite(force) {
		return PointLoad{}, invalid(ErrInvalidLoad, "force must be finite, got %g", force)
	}
	if !finite(location) || location < 0 {
		return PointLoad{}, invalid(ErrInvalidLoad, "location cannot be negative, got %g", location)
	}
	return PointLoad{Force: force, Location: location}, nil
}

// NewUDL creates a distributed load between start and end
func NewUDL(magnitude, start, end float64) (UDL, error) {
	if err := checkUDL(magnitude, start); err != nil {
		return UDL{}, err
	}
	if !finite(end) || end < 0 {
		return UDL{}, invalid(ErrInvalidLoad, "end location cannot be negative, got %g", end)
	}
	if start >= end {
		return UDL{}, invalid(ErrInvalidLoad, "start location (%g) must be less than end location (%g)", start, end)
	}
	return UDL{Magnitude: magnitude, Start: start, End: end}, nil
}

// NewUDLToEnd creates a distributed load from start to the end of the beam
func NewUDLToEnd(magnitude, start float64) (UDL, error) {
	if err := checkUDL(magnitude, start); err != nil {
		return UDL{}, err
	}
	return UDL{Magnitude: magnitude, Start: start, ToEnd: true}, nil
}

func checkUDL(magnitude, start float64) error {
	if !finite(magnitude) {
		return invalid(ErrInvalidLoad, "magnitude must be finite, got %g", magnitude)
	}
	if !finite(start) || start < 0 {
		return invalid(ErrInvalidLoad, "start location cannot be negative, got %g", start)
	}
	return nil
}

// NewPointMoment creates a concentrated moment at a non-negative location
func NewPointMoment(moment, location float64) (PointMoment, error) {
	if !finite(moment) {
		return PointMoment{}, invalid(ErrInvalidLoad, "moment must be finite, got %g", moment)
	}
	if !finite(location) || location < 0 {
		return PointMoment{}, invalid(ErrInvalidLoad, "location cannot be negative, got %g", location)
	}
	return PointMoment{Moment: moment, Location: location}, nil
}

// Span returns the loaded interval on a beam of the given length.
func (u UDL) Span(length float64) (start, end float64) {
	if u.ToEnd {
		return u.Start, length
	}
	return u.Start, u.End
}

// Scale returns a copy of l with its magnitude multiplied by factor.
func Scale(l Load, factor float64) Load {
	switch v := l.(type) {
	case PointLoad:
		v.Force *= factor
		return v
	case UDL:
		v.Magnitude *= factor
		return v
	case PointMoment:
		v.Moment *= factor
		return v
	}
	panic(fmt.Sprintf("beam: unhandled load type %T", l))
}

func (p PointLoad) String() string {
	return fmt.Sprintf("PointLoad(force=%g kN, location=%g m)", p.Force, p.Location)
}

func (u UDL) String() string {
	switch {
	case u.ToEnd && u.Start == 0:
		return fmt.Sprintf("UDL(magnitude=%g kN/m)", u.Magnitude)
	case u.ToEnd:
		return fmt.Sprintf("UDL(magnitude=%g kN/m, start=%g m, end=End)", u.Magnitude, u.Start)
	}
	return fmt.Sprintf("UDL(magnitude=%g kN/m, start=%g m, end=%g m)", u.Magnitude, u.Start, u.End)
}

func (m PointMoment) String() string {
	return fmt.Sprintf("PointMoment(moment=%g kNm, location=%g m)", m.Moment, m.Location)
}
