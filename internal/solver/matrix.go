package solver

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// NominalRigidity is the flexural rigidity used when none is given.
// Reactions of a prismatic beam do not depend on it.
const NominalRigidity = 1.0e6

// MinElement is the shortest element as a fraction of the beam length.
// Load positions closer than this to an existing node share that node.
const MinElement = 0.01

// Option configures a Matrix solver.
type Option func(*Matrix)

// WithRigidity sets the flexural rigidity EI (kN·m²). Non-positive values are ignored.
func WithRigidity(ei float64) Option {
	return func(m *Matrix) {
		if ei > 0 && !math.IsInf(ei, 0) {
			m.ei = ei
		}
	}
}

// Matrix is a direct-stiffness solver for a continuous beam on any supports.
//
// The beam is split into Euler-Bernoulli elements between the beam ends, the
// supports and the load positions. Loads enter as work-equivalent nodal loads
// of the element they act on, so the nodal solution stays exact when nearby
// load positions are merged. Each node carries two degrees of freedom,
// vertical translation v and rotation θ, stored at indices 2i and 2i+1.
// Internally Y points up and moments are counter-clockwise; user loads are
// negated on assembly.
type Matrix struct {
	beam    beam.Beam
	actions beam.Actions
	ei      float64
	nodes   []float64
}

// MatrixResult holds the nodal solution of a Matrix solve.
type MatrixResult struct {
	Nodes       []float64 // m
	Deflections []float64 // m, positive upward
	Rotations   []float64 // rad, counter-clockwise
	Reactions   Reactions
}

// NewMatrix prepares a solver for the beam under the resolved actions
func NewMatrix(b beam.Beam, a beam.Actions, opts ...Option) *Matrix {
	m := &Matrix{beam: b, actions: a, ei: NominalRigidity}
	for _, opt := range opts {
		opt(m)
	}
	m.nodes = meshNodes(b, a)
	return m
}

// meshNodes keeps every support and both beam ends, then adds the remaining
// load positions that are at least MinElement·L away from existing nodes.
func meshNodes(b beam.Beam, a beam.Actions) []float64 {
	fixed := []float64{0, b.Length}
	for _, s := range b.Supports {
		fixed = append(fixed, s.Location)
	}
	nodes := beam.Unique(fixed, beam.Tolerance)

	h := MinElement * b.Length
	for _, x := range a.Positions(b) {
		i := sort.SearchFloat64s(nodes, x)
		if i < len(nodes) && nodes[i]-x < h {
			continue
		}
		if i > 0 && x-nodes[i-1] < h {
			continue
		}
		nodes = slices.Insert(nodes, i, x)
	}
	return nodes
}

// Nodes returns the element node positions.
func (m *Matrix) Nodes() []float64 {
	return append([]float64(nil), m.nodes...)
}

// Rigidity returns the flexural rigidity in use.
func (m *Matrix) Rigidity() float64 {
	return m.ei
}

// Solve assembles and solves the global system and extracts support reactions.
func (m *Matrix) Solve() (*MatrixResult, error) {
	supportNodes := make([]int, len(m.beam.Supports))
	for i, s := range m.beam.Supports {
		supportNodes[i] = beam.Nearest(m.nodes, s.Location)
	}
	if err := m.checkStability(supportNodes); err != nil {
		return nil, err
	}

	ndof := 2 * len(m.nodes)
	k := mat.NewDense(ndof, ndof, nil)
	f := make([]float64, ndof)
	m.assemble(k)
	m.addNodalActions(f)

	// boundary conditions
	constrained := make([]bool, ndof)
	for i, s := range m.beam.Supports {
		n := supportNodes[i]
		constrained[2*n] = true
		if s.Restraint.RestrainsRotation() {
			constrained[2*n+1] = true
		}
	}
	var free []int
	for dof := 0; dof < ndof; dof++ {
		if !constrained[dof] {
			free = append(free, dof)
		}
	}

	d, err := solveFree(k, f, free)
	if err != nil {
		return nil, err
	}

	// reactions: R = K·d - F
	var internal mat.VecDense
	internal.MulVec(k, mat.NewVecDense(ndof, d))

	res := &MatrixResult{
		Nodes:       m.Nodes(),
		Deflections: make([]float64, len(m.nodes)),
		Rotations:   make([]float64, len(m.nodes)),
		Reactions:   make(Reactions, len(m.beam.Supports)),
	}
	for i := range m.nodes {
		res.Deflections[i] = d[2*i]
		res.Rotations[i] = d[2*i+1]
	}

	seen := make(map[int]bool, len(supportNodes))
	for i, s := range m.beam.Supports {
		n := supportNodes[i]
		if seen[n] {
			continue
		}
		seen[n] = true
		r := Reaction{Fy: internal.AtVec(2*n) - f[2*n]}
		if constrained[2*n+1] {
			r.M = -(internal.AtVec(2*n+1) - f[2*n+1])
		}
		if math.IsNaN(r.Fy) || math.IsNaN(r.M) {
			return nil, fmt.Errorf("%w: non-finite reaction at %g m", ErrUnstable, s.Location)
		}
		res.Reactions[s.Location] = r
	}
	return res, nil
}

// checkStability rejects layouts that leave a rigid-body mode: a continuous
// beam needs a fixed support or two distinct vertical restraints.
func (m *Matrix) checkStability(supportNodes []int) error {
	if len(m.beam.Supports) == 0 {
		return fmt.Errorf("%w: beam has no supports", ErrUnstable)
	}
	distinct := make(map[int]bool)
	for i, s := range m.beam.Supports {
		if s.Restraint == beam.Fixed {
			return nil
		}
		distinct[supportNodes[i]] = true
	}
	if len(distinct) < 2 {
		return fmt.Errorf("%w: %d distinct vertical restraint(s) and no fixed support",
			ErrUnstable, len(distinct))
	}
	return nil
}

// assemble adds element stiffness matrices to k.
func (m *Matrix) assemble(k *mat.Dense) {
	for e := 0; e+1 < len(m.nodes); e++ {
		l := m.nodes[e+1] - m.nodes[e]
		if l <= beam.Tolerance {
			continue
		}
		ke := elementStiffness(m.ei, l)
		dofs := elementDOFs(e)
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				k.Set(dofs[r], dofs[c], k.At(dofs[r], dofs[c])+ke[r][c])
			}
		}
	}
}

// addNodalActions adds the work-equivalent nodal loads of every action to f.
func (m *Matrix) addNodalActions(f []float64) {
	for _, p := range m.actions.Forces {
		e, l, xi := m.locate(p.Location)
		n := hermite(l, xi)
		for i, dof := range elementDOFs(e) {
			f[dof] -= p.Force * n[i]
		}
	}
	for _, pm := range m.actions.Moments {
		e, l, xi := m.locate(pm.Location)
		dn := hermiteSlope(l, xi)
		for i, dof := range elementDOFs(e) {
			f[dof] -= pm.Moment * dn[i]
		}
	}
	for _, s := range m.actions.Segments {
		for e := 0; e+1 < len(m.nodes); e++ {
			x1, x2 := m.nodes[e], m.nodes[e+1]
			a, b := math.Max(s.Start, x1), math.Min(s.End, x2)
			l := x2 - x1
			if b-a <= beam.Tolerance || l <= beam.Tolerance {
				continue
			}
			// two-point Gauss rule, exact for the cubic shape functions
			half, mid := (b-a)/2, (a+b)/2
			for _, g := range [2]float64{-1 / math.Sqrt(3), 1 / math.Sqrt(3)} {
				n := hermite(l, (mid+g*half-x1)/l)
				for i, dof := range elementDOFs(e) {
					f[dof] -= s.Magnitude * half * n[i]
				}
			}
		}
	}
}

// locate returns the element holding x, its length and the local coordinate
// ξ of x in [0, 1].
func (m *Matrix) locate(x float64) (e int, l, xi float64) {
	e = sort.SearchFloat64s(m.nodes, x) - 1
	e = max(0, min(e, len(m.nodes)-2))
	l = m.nodes[e+1] - m.nodes[e]
	xi = math.Max(0, math.Min(1, (x-m.nodes[e])/l))
	return e, l, xi
}

func elementDOFs(e int) [4]int {
	return [4]int{2 * e, 2*e + 1, 2 * (e + 1), 2*(e+1) + 1}
}

// hermite returns the cubic shape functions [N1..N4] at ξ.
func hermite(l, xi float64) [4]float64 {
	x2, x3 := xi*xi, xi*xi*xi
	return [4]float64{
		1 - 3*x2 + 2*x3,
		l * (xi - 2*x2 + x3),
		3*x2 - 2*x3,
		l * (x3 - x2),
	}
}

// hermiteSlope returns dN/dx of the shape functions at ξ.
func hermiteSlope(l, xi float64) [4]float64 {
	x2 := xi * xi
	return [4]float64{
		6 * (x2 - xi) / l,
		1 - 4*xi + 3*x2,
		6 * (xi - x2) / l,
		3*x2 - 2*xi,
	}
}

// elementStiffness returns the Euler-Bernoulli beam element matrix for
// DOFs [v1, θ1, v2, θ2].
func elementStiffness(ei, l float64) [4][4]float64 {
	c := ei / (l * l * l)
	l2 := l * l
	return [4][4]float64{
		{12 * c, 6 * l * c, -12 * c, 6 * l * c},
		{6 * l * c, 4 * l2 * c, -6 * l * c, 2 * l2 * c},
		{-12 * c, -6 * l * c, 12 * c, -6 * l * c},
		{6 * l * c, 2 * l2 * c, -6 * l * c, 4 * l2 * c},
	}
}

// solveFree solves K_ff·d_f = F_f and returns the full displacement vector with
// constrained DOFs held at zero.
func solveFree(k *mat.Dense, f []float64, free []int) ([]float64, error) {
	d := make([]float64, len(f))
	if len(free) == 0 {
		return d, nil
	}

	nf := len(free)
	kff := mat.NewDense(nf, nf, nil)
	ff := mat.NewVecDense(nf, nil)
	for i, r := range free {
		ff.SetVec(i, f[r])
		for j, c := range free {
			kff.Set(i, j, k.At(r, c))
		}
	}

	var lu mat.LU
	lu.Factorize(kff)
	var df mat.VecDense
	if err := lu.SolveVecTo(&df, false, ff); err != nil {
		return nil, fmt.Errorf("%w: singular stiffness matrix: %v", ErrUnstable, err)
	}
	for i, r := range free {
		v := df.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite displacement", ErrUnstable)
		}
		d[r] = v
	}
	return d, nil
}
