// Package analysis owns a beam and its loads and answers reaction, shear and
// bending moment queries.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/solver"
)

// ErrOutOfRange is returned for a query position outside the beam.
var ErrOutOfRange = errors.New("position outside beam")

// Method selects how reactions are computed.
type Method int

const (
	// MethodAuto uses closed-form statics for determinate layouts and the
	// stiffness solver for everything else.
	MethodAuto Method = iota
	// MethodMatrix always uses the stiffness solver.
	MethodMatrix
	// MethodClosedForm only uses closed-form statics.
	MethodClosedForm
)

func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodMatrix:
		return "matrix"
	case MethodClosedForm:
		return "closed"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod converts "auto", "matrix" or "closed" into a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return MethodAuto, nil
	case "matrix", "fem", "stiffness":
		return MethodMatrix, nil
	case "closed", "closed-form", "statics":
		return MethodClosedForm, nil
	}
	return 0, fmt.Errorf("unknown method %q: must be auto, matrix or closed", s)
}

// DefaultSamples is the grid resolution of the extremum scan.
const DefaultSamples = 1000

// Option configures an Engine.
type Option func(*Engine)

// WithMethod selects the reaction solver.
func WithMethod(m Method) Option {
	return func(e *Engine) { e.method = m }
}

// WithLogger sets the logger used for solver diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRigidity sets the flexural rigidity passed to the stiffness solver.
func WithRigidity(ei float64) Option {
	return func(e *Engine) { e.ei = ei }
}

// WithSamples sets the uniform grid size of the extremum scan.
func WithSamples(n int) Option {
	return func(e *Engine) {
		if n >= 2 {
			e.samples = n
		}
	}
}

// Engine holds one beam and an append-only list of loads.
// The last Solution is cached until the next AddLoad, so point queries on the
// engine solve the reactions once.
// An Engine is not safe for concurrent use; the Solutions it returns are.
type Engine struct {
	beam    beam.Beam
	loads   []beam.Load
	method  Method
	ei      float64
	samples int
	logger  *slog.Logger
	sol     *Solution
}

// New creates an engine for the beam
func New(b beam.Beam, opts ...Option) *Engine {
	e := &Engine{
		beam:    b,
		method:  MethodAuto,
		samples: DefaultSamples,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Beam returns the analysed beam.
func (e *Engine) Beam() beam.Beam {
	return e.beam
}

// Loads returns a copy of the current load list.
func (e *Engine) Loads() []beam.Load {
	return append([]beam.Load(nil), e.loads...)
}

// AddLoad appends a load after checking that it lies on the beam.
func (e *Engine) AddLoad(l beam.Load) error {
	if err := e.beam.Check(l); err != nil {
		return err
	}
	e.loads = append(e.loads, l)
	e.sol = nil
	return nil
}

// CalculateReactions returns the reaction of every support for the current loads.
func (e *Engine) CalculateReactions() (solver.Reactions, error) {
	s, err := e.Solve()
	if err != nil {
		return nil, err
	}
	return s.Reactions(), nil
}

// Solve computes reactions and returns an immutable snapshot for queries.
// Repeated calls without new loads return the same Solution.
func (e *Engine) Solve() (*Solution, error) {
	if e.sol != nil {
		return e.sol, nil
	}
	a := beam.Resolve(e.beam.Length, e.loads)
	r, mr, err := e.reactions(a)
	if err != nil {
		return nil, err
	}
	e.sol = &Solution{
		beam:      e.beam,
		actions:   a,
		reactions: r,
		nodal:     mr,
		samples:   e.samples,
	}
	return e.sol, nil
}

// ShearForce returns the internal shear at x.
func (e *Engine) ShearForce(x float64) (float64, error) {
	s, err := e.Solve()
	if err != nil {
		return 0, err
	}
	return s.ShearForce(x)
}

// BendingMoment returns the internal bending moment at x.
func (e *Engine) BendingMoment(x float64) (float64, error) {
	s, err := e.Solve()
	if err != nil {
		return 0, err
	}
	return s.BendingMoment(x)
}

// MaxShear returns the shear of largest magnitude and where it occurs.
func (e *Engine) MaxShear() (Extremum, error) {
	s, err := e.Solve()
	if err != nil {
		return Extremum{}, err
	}
	return s.MaxShear(), nil
}

// MaxMoment returns the bending moment of largest magnitude and where it occurs.
func (e *Engine) MaxMoment() (Extremum, error) {
	s, err := e.Solve()
	if err != nil {
		return Extremum{}, err
	}
	return s.MaxMoment(), nil
}

// reactions dispatches to the solver selected by the engine's method.
// The nodal result is nil when the closed form was used.
func (e *Engine) reactions(a beam.Actions) (solver.Reactions, *solver.MatrixResult, error) {
	useClosed := e.method == MethodClosedForm ||
		(e.method == MethodAuto && solver.Determinate(e.beam))

	if useClosed {
		e.logger.Debug("solving reactions", "method", "closed", "supports", len(e.beam.Supports))
		r, err := solver.ClosedForm(e.beam, a)
		if err != nil {
			return nil, nil, err
		}
		return r, nil, nil
	}

	m := solver.NewMatrix(e.beam, a, solver.WithRigidity(e.ei))
	e.logger.Debug("solving reactions",
		"method", "matrix",
		"supports", len(e.beam.Supports),
		"nodes", len(m.Nodes()),
		"ei", m.Rigidity(),
	)
	res, err := m.Solve()
	if err != nil {
		return nil, nil, err
	}
	return res.Reactions, res, nil
}
