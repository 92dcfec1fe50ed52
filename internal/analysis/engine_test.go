package analysis

import (
	"bytes"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/solver"
)

const tol = 1e-6

func newEngine(t *testing.T, length float64, supports []beam.Support, loads ...beam.Load) *Engine {
	t.Helper()
	b, err := beam.NewBeam(length, supports...)
	require.NoError(t, err)
	e := New(b)
	for _, l := range loads {
		require.NoError(t, e.AddLoad(l))
	}
	return e
}

func simple(length float64) []beam.Support {
	return []beam.Support{{Location: 0, Restraint: beam.Pinned}, {Location: length, Restraint: beam.Roller}}
}

func shear(t *testing.T, e *Engine, x float64) float64 {
	t.Helper()
	v, err := e.ShearForce(x)
	require.NoError(t, err)
	return v
}

func moment(t *testing.T, e *Engine, x float64) float64 {
	t.Helper()
	m, err := e.BendingMoment(x)
	require.NoError(t, err)
	return m
}

func TestEngineLoads(t *testing.T) {
	e := newEngine(t, 10, simple(10))
	assert.Empty(t, e.Loads())

	p := beam.PointLoad{Force: 10, Location: 5}
	require.NoError(t, e.AddLoad(p))
	require.Len(t, e.Loads(), 1)
	assert.Equal(t, p, e.Loads()[0])

	err := e.AddLoad(beam.PointLoad{Force: 10, Location: 12})
	assert.ErrorIs(t, err, beam.ErrOutOfBounds)
	assert.Len(t, e.Loads(), 1)
}

func TestEngineRejectsMalformedLoads(t *testing.T) {
	e := newEngine(t, 10, simple(10))

	for _, l := range []beam.Load{
		beam.UDL{Magnitude: 5, Start: -3, End: 5},
		beam.UDL{Magnitude: 5, Start: 6, End: 2},
		beam.PointLoad{Force: math.NaN(), Location: 5},
		beam.UDL{Magnitude: math.NaN(), ToEnd: true},
	} {
		assert.ErrorIs(t, e.AddLoad(l), beam.ErrInvalidLoad, "%v", l)
	}
	assert.Empty(t, e.Loads())

	require.NoError(t, e.AddLoad(beam.PointLoad{Force: 10, Location: 5}))
	r, err := e.CalculateReactions()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, r[0].Fy, tol)
	assert.InDelta(t, 5.0, r[10].Fy, tol)
}

func TestSolveCached(t *testing.T) {
	e := newEngine(t, 10, simple(10), beam.PointLoad{Force: 10, Location: 5})

	first, err := e.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, shear(t, e, 2), tol)
	again, err := e.Solve()
	require.NoError(t, err)
	assert.Same(t, first, again)

	require.NoError(t, e.AddLoad(beam.PointLoad{Force: 10, Location: 5}))
	fresh, err := e.Solve()
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)
	assert.InDelta(t, 10.0, shear(t, e, 2), tol)
	assert.InDelta(t, 5.0, first.Reactions()[0].Fy, tol)
}

func TestSimpleSpanPointLoad(t *testing.T) {
	e := newEngine(t, 10, simple(10), beam.PointLoad{Force: 10, Location: 5})

	r, err := e.CalculateReactions()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, r[0].Fy, tol)
	assert.InDelta(t, 5.0, r[10].Fy, tol)

	assert.InDelta(t, 5.0, shear(t, e, 2.5), tol)
	assert.InDelta(t, -5.0, shear(t, e, 7.5), tol)
	assert.InDelta(t, 12.5, moment(t, e, 2.5), tol)
	assert.InDelta(t, 25.0, moment(t, e, 5), tol)
	assert.InDelta(t, 0.0, moment(t, e, 10), tol)
}

func TestSimpleSpanOffCenter(t *testing.T) {
	e := newEngine(t, 10, simple(10), beam.PointLoad{Force: 10, Location: 2.5})
	r, err := e.CalculateReactions()
	require.NoError(t, err)
	assert.InDelta(t, 7.5, r[0].Fy, tol)
	assert.InDelta(t, 2.5, r[10].Fy, tol)
}

func TestSimpleSpanUDL(t *testing.T) {
	e := newEngine(t, 10, simple(10), beam.UDL{Magnitude: 5, ToEnd: true})

	r, err := e.CalculateReactions()
	require.NoError(t, err)
	assert.InDelta(t, 25.0, r[0].Fy, tol)
	assert.InDelta(t, 25.0, r[10].Fy, tol)

	assert.InDelta(t, 25.0, shear(t, e, 0), tol)
	assert.InDelta(t, -25.0, shear(t, e, 9.999), 1e-2)
	assert.InDelta(t, 0.0, shear(t, e, 10), tol)
	assert.InDelta(t, 62.5, moment(t, e, 5), tol)
	assert.InDelta(t, 0.0, moment(t, e, 0), tol)

	vmax, err := e.MaxShear()
	require.NoError(t, err)
	assert.InDelta(t, 25.0, vmax.Value, tol)
	assert.InDelta(t, 0.0, vmax.Location, tol)

	mmax, err := e.MaxMoment()
	require.NoError(t, err)
	assert.InDelta(t, 62.5, mmax.Value, tol)
	assert.InDelta(t, 5.0, mmax.Location, 1e-6)
}

func TestCantilever(t *testing.T) {
	fixed := []beam.Support{{Location: 0, Restraint: beam.Fixed}}

	t.Run("point load", func(t *testing.T) {
		e := newEngine(t, 5, fixed, beam.PointLoad{Force: 10, Location: 5})
		r, err := e.CalculateReactions()
		require.NoError(t, err)
		assert.InDelta(t, 10.0, r[0].Fy, tol)
		assert.InDelta(t, -50.0, r[0].M, tol)

		assert.InDelta(t, 10.0, shear(t, e, 2.5), tol)
		assert.InDelta(t, -50.0, moment(t, e, 0), tol)
		assert.InDelta(t, 0.0, moment(t, e, 5), tol)

		mmax, err := e.MaxMoment()
		require.NoError(t, err)
		assert.InDelta(t, -50.0, mmax.Value, tol)
		assert.InDelta(t, 0.0, mmax.Location, tol)
	})

	t.Run("udl", func(t *testing.T) {
		e := newEngine(t, 4, fixed, beam.UDL{Magnitude: 2, ToEnd: true})
		r, err := e.CalculateReactions()
		require.NoError(t, err)
		assert.InDelta(t, 8.0, r[0].Fy, tol)
		assert.InDelta(t, -16.0, r[0].M, tol)

		assert.InDelta(t, -16.0, moment(t, e, 0), tol)
		assert.InDelta(t, 8.0, shear(t, e, 0), tol)
		assert.InDelta(t, 0.0, shear(t, e, 3.999), 1e-2)
	})
}

func TestOverhang(t *testing.T) {
	t.Run("load between supports", func(t *testing.T) {
		supports := []beam.Support{{Location: 2, Restraint: beam.Pinned}, {Location: 8, Restraint: beam.Roller}}
		e := newEngine(t, 10, supports, beam.PointLoad{Force: 10, Location: 5})
		r, err := e.CalculateReactions()
		require.NoError(t, err)
		assert.InDelta(t, 5.0, r[2].Fy, tol)
		assert.InDelta(t, 5.0, r[8].Fy, tol)

		assert.InDelta(t, 0.0, shear(t, e, 1), tol)
		assert.InDelta(t, 5.0, shear(t, e, 3), tol)
		assert.InDelta(t, -5.0, shear(t, e, 6), tol)
		assert.InDelta(t, 0.0, shear(t, e, 9), tol)
	})

	t.Run("load on tip", func(t *testing.T) {
		supports := []beam.Support{{Location: 2, Restraint: beam.Pinned}, {Location: 10, Restraint: beam.Roller}}
		e := newEngine(t, 10, supports, beam.PointLoad{Force: 10, Location: 0})
		r, err := e.CalculateReactions()
		require.NoError(t, err)
		assert.InDelta(t, 12.5, r[2].Fy, tol)
		assert.InDelta(t, -2.5, r[10].Fy, tol)

		assert.InDelta(t, -10.0, shear(t, e, 1), tol)
		assert.InDelta(t, 2.5, shear(t, e, 3), tol)
		assert.InDelta(t, -20.0, moment(t, e, 2), tol)
	})
}

func TestIndeterminate(t *testing.T) {
	supports := []beam.Support{
		{Location: 0, Restraint: beam.Pinned},
		{Location: 4, Restraint: beam.Pinned},
		{Location: 10, Restraint: beam.Roller},
	}
	e := newEngine(t, 10, supports, beam.UDL{Magnitude: 10, Start: 4, End: 10})

	s, err := e.Solve()
	require.NoError(t, err)
	assert.Equal(t, MethodMatrix, s.Method())
	require.NotNil(t, s.Nodal())

	r := s.Reactions()
	assert.InDelta(t, -6.75, r[0].Fy, 0.01)
	assert.InDelta(t, 41.25, r[4].Fy, 0.01)
	assert.InDelta(t, 25.5, r[10].Fy, 0.01)

	// hogging over the interior support: R1*4 = -27
	m, err := s.BendingMoment(4)
	require.NoError(t, err)
	assert.InDelta(t, -27.0, m, 1e-6)
	m, err = s.BendingMoment(10)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, m, 1e-6)
}

func TestMethods(t *testing.T) {
	b, err := beam.NewBeam(10, beam.Support{Location: 0, Restraint: beam.Fixed}, beam.Support{Location: 10, Restraint: beam.Roller})
	require.NoError(t, err)
	load := beam.PointLoad{Force: 10, Location: 5}

	e := New(b, WithMethod(MethodClosedForm))
	require.NoError(t, e.AddLoad(load))
	_, err = e.CalculateReactions()
	assert.ErrorIs(t, err, solver.ErrUnsupported)

	e = New(b, WithMethod(MethodAuto))
	require.NoError(t, e.AddLoad(load))
	r, err := e.CalculateReactions()
	require.NoError(t, err)
	// propped cantilever, central load: R_B = 5P/16
	assert.InDelta(t, 50.0/16, r[10].Fy, tol)
	assert.InDelta(t, 110.0/16, r[0].Fy, tol)
	assert.InDelta(t, -3*10*10/16.0, r[0].M, tol)

	simpleBeam, err := beam.SimplySupported(10)
	require.NoError(t, err)
	e = New(simpleBeam, WithMethod(MethodMatrix))
	require.NoError(t, e.AddLoad(load))
	s, err := e.Solve()
	require.NoError(t, err)
	assert.Equal(t, MethodMatrix, s.Method())
	assert.InDelta(t, 5.0, s.Reactions()[0].Fy, tol)

	e = New(simpleBeam)
	require.NoError(t, e.AddLoad(load))
	s, err = e.Solve()
	require.NoError(t, err)
	assert.Equal(t, MethodClosedForm, s.Method())
	assert.Nil(t, s.Nodal())
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{"auto": MethodAuto, "": MethodAuto, "MATRIX": MethodMatrix, "closed": MethodClosedForm} {
		got, err := ParseMethod(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMethod("guess")
	assert.Error(t, err)
	assert.Equal(t, "matrix", MethodMatrix.String())
}

func TestOutOfRange(t *testing.T) {
	e := newEngine(t, 10, simple(10), beam.PointLoad{Force: 10, Location: 5})
	_, err := e.ShearForce(-0.1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = e.BendingMoment(10.5)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestUnstable(t *testing.T) {
	e := newEngine(t, 10, []beam.Support{{Location: 3, Restraint: beam.Roller}}, beam.PointLoad{Force: 1, Location: 5})
	_, err := e.CalculateReactions()
	assert.ErrorIs(t, err, solver.ErrUnstable)
	_, err = e.ShearForce(1)
	assert.ErrorIs(t, err, solver.ErrUnstable)
	_, err = e.MaxMoment()
	assert.ErrorIs(t, err, solver.ErrUnstable)
}

func TestEquilibriumAndContinuity(t *testing.T) {
	loads := []beam.Load{
		beam.PointLoad{Force: 12, Location: 3},
		beam.UDL{Magnitude: 4, Start: 2, End: 9},
		beam.PointMoment{Moment: 10, Location: 6},
	}
	layouts := map[string][]beam.Support{
		"simple":     simple(12),
		"continuous": {{Location: 0, Restraint: beam.Pinned}, {Location: 5, Restraint: beam.Roller}, {Location: 12, Restraint: beam.Roller}},
	}
	for name, supports := range layouts {
		t.Run(name, func(t *testing.T) {
			e := newEngine(t, 12, supports, loads...)
			s, err := e.Solve()
			require.NoError(t, err)

			assert.InDelta(t, 12+4*7.0, s.Reactions().TotalForce(), tol)

			m0, err := s.BendingMoment(0)
			require.NoError(t, err)
			mL, err := s.BendingMoment(12)
			require.NoError(t, err)
			assert.InDelta(t, 0.0, m0, tol)
			assert.InDelta(t, 0.0, mL, tol)

			// shear jumps down by the point load
			eps := 1e-9
			before, err := s.ShearForce(3 - eps)
			require.NoError(t, err)
			at, err := s.ShearForce(3)
			require.NoError(t, err)
			assert.InDelta(t, -12.0, at-before, 1e-6)

			// moment jumps by the applied couple
			before, err = s.BendingMoment(6 - eps)
			require.NoError(t, err)
			at, err = s.BendingMoment(6)
			require.NoError(t, err)
			assert.InDelta(t, 10.0, at-before, 1e-6)
		})
	}
}

func TestMaxMomentUnderPartialUDL(t *testing.T) {
	// w = 6 over [0, 4] on a 10 m span: R1 = 19.2 and V = 0 at x = 3.2
	e := newEngine(t, 10, simple(10), beam.UDL{Magnitude: 6, Start: 0, End: 4})
	mmax, err := e.MaxMoment()
	require.NoError(t, err)
	assert.InDelta(t, 19.2*3.2-6*3.2*3.2/2, mmax.Value, 1e-6)
	assert.InDelta(t, 3.2, mmax.Location, 1e-6)
}

func TestSample(t *testing.T) {
	e := newEngine(t, 10, simple(10), beam.PointLoad{Force: 10, Location: 5})
	s, err := e.Solve()
	require.NoError(t, err)

	d := s.Sample(11)
	require.Equal(t, len(d.X), len(d.Shear))
	require.Equal(t, len(d.X), len(d.Moment))
	assert.Equal(t, 0.0, d.X[0])
	assert.Equal(t, 10.0, d.X[len(d.X)-1])
	for i := 1; i < len(d.X); i++ {
		assert.Less(t, d.X[i-1], d.X[i])
	}
	// the point just left of the load carries the pre-jump shear
	assert.Contains(t, d.Shear, 5.0)
	assert.Contains(t, d.Shear, -5.0)
}

func TestSolutionConcurrentReads(t *testing.T) {
	e := newEngine(t, 10, simple(10), beam.UDL{Magnitude: 5, ToEnd: true})
	s, err := e.Solve()
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([]float64, 50)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = s.BendingMoment(10 * float64(i) / 49)
		}(i)
	}
	wg.Wait()
	for i, m := range got {
		x := 10 * float64(i) / 49
		assert.InDelta(t, 25*x-2.5*x*x, m, 1e-9)
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b, err := beam.NewBeam(10, simple(10)...)
	require.NoError(t, err)
	e := New(b, WithLogger(logger), WithMethod(MethodMatrix))
	require.NoError(t, e.AddLoad(beam.PointLoad{Force: 1, Location: 5}))
	_, err = e.CalculateReactions()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "solving reactions")
	assert.Contains(t, buf.String(), "method=matrix")
	assert.Contains(t, buf.String(), "nodes=3")
}
