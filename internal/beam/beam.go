package beam

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidBeam is returned for a beam that cannot exist (non-positive length).
	ErrInvalidBeam = errors.New("invalid beam")
	// ErrOutOfBounds is returned when a support or load lies outside the beam.
	ErrOutOfBounds = errors.New("location outside beam bounds")
	// ErrInvalidLoad is returned for a load with inconsistent values.
	ErrInvalidLoad = errors.New("invalid load")
)

// ValidationError represents a beam or load validation error
type ValidationError struct {
	kind error
	msg  string
}

func (e *ValidationError) Error() string {
	return e.kind.Error() + ": " + e.msg
}

// Unwrap exposes the error kind for errors.Is
func (e *ValidationError) Unwrap() error {
	return e.kind
}

func invalid(kind error, format string, args ...any) error {
	return &ValidationError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Restraint describes what a support prevents.
type Restraint int

const (
	Pinned Restraint = iota // vertical translation
	Roller                  // vertical translation
	Fixed                   // vertical translation and rotation
)

func (r Restraint) String() string {
	switch r {
	case Pinned:
		return "pinned"
	case Roller:
		return "roller"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("Restraint(%d)", int(r))
}

// RestrainsRotation reports whether the support carries moment.
func (r Restraint) RestrainsRotation() bool {
	return r == Fixed
}

// ParseRestraint converts a name such as "pinned" into a Restraint.
func ParseRestraint(s string) (Restraint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pinned", "pin", "hinge":
		return Pinned, nil
	case "roller":
		return Roller, nil
	case "fixed", "clamped":
		return Fixed, nil
	}
	return 0, fmt.Errorf("unknown support type %q", s)
}

// Support is a restraint at a point along the beam.
type Support struct {
	Location  float64   // m from the left end
	Restraint Restraint
}

func (s Support) String() string {
	return fmt.Sprintf("%s@%g", s.Restraint, s.Location)
}

// Beam is a straight prismatic member with its supports.
// It is immutable once built by NewBeam.
type Beam struct {
	Length   float64 // m
	Supports []Support
}

// NewBeam creates a beam after checking its length and support locations
func NewBeam(length float64, supports ...Support) (Beam, error) {
	if !finite(length) || length <= 0 {
		return Beam{}, invalid(ErrInvalidBeam, "length must be positive, got %g", length)
	}
	for i, s := range supports {
		if !finite(s.Location) || s.Location < 0 || s.Location > length {
			return Beam{}, invalid(ErrOutOfBounds,
				"support %d at %g m must be within beam limits (0 to %g)", i+1, s.Location, length)
		}
		switch s.Restraint {
		case Pinned, Roller, Fixed:
		default:
			return Beam{}, invalid(ErrInvalidBeam, "support %d has unknown restraint %d", i+1, int(s.Restraint))
		}
	}
	return Beam{Length: length, Supports: append([]Support(nil), supports...)}, nil
}

// SimplySupported is a beam pinned at 0 and carried on a roller at its length.
func SimplySupported(length float64) (Beam, error) {
	return NewBeam(length, Support{0, Pinned}, Support{length, Roller})
}

// Contains reports whether x lies on the beam.
func (b Beam) Contains(x float64) bool {
	return finite(x) && x >= 0 && x <= b.Length
}

// Check verifies that a load is well formed and lies entirely on the beam.
// It repeats the constructor checks for loads built as struct literals.
func (b Beam) Check(l Load) error {
	switch v := l.(type) {
	case PointLoad:
		if !finite(v.Force) {
			return invalid(ErrInvalidLoad, "%v: force must be finite", v)
		}
		if !b.Contains(v.Location) {
			return invalid(ErrOutOfBounds, "%v lies outside the beam (0 to %g)", v, b.Length)
		}
	case PointMoment:
		if !finite(v.Moment) {
			return invalid(ErrInvalidLoad, "%v: moment must be finite", v)
		}
		if !b.Contains(v.Location) {
			return invalid(ErrOutOfBounds, "%v lies outside the beam (0 to %g)", v, b.Length)
		}
	case UDL:
		return b.checkUDL(v)
	case nil:
		return invalid(ErrInvalidLoad, "nil load")
	default:
		panic(fmt.Sprintf("beam: unhandled load type %T", l))
	}
	return nil
}

func (b Beam) checkUDL(u UDL) error {
	if err := checkUDL(u.Magnitude, u.Start); err != nil {
		return err
	}
	if u.ToEnd {
		if u.Start >= b.Length {
			return invalid(ErrInvalidLoad, "%v starts at the beam end", u)
		}
		return nil
	}
	if !finite(u.End) {
		return invalid(ErrInvalidLoad, "end location must be finite, got %g", u.End)
	}
	if u.Start >= u.End {
		return invalid(ErrInvalidLoad, "start location (%g) must be less than end location (%g)", u.Start, u.End)
	}
	if u.End > b.Length {
		return invalid(ErrOutOfBounds, "%v extends outside the beam (0 to %g)", u, b.Length)
	}
	return nil
}

func (b Beam) String() string {
	locs := make([]string, len(b.Supports))
	for i, s := range b.Supports {
		locs[i] = s.String()
	}
	return fmt.Sprintf("Beam(length=%g m, supports=(%s))", b.Length, strings.Join(locs, ", "))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
