package nscp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/solver"
)

func TestParseCategory(t *testing.T) {
	tcs := []struct {
		in   string
		want Category
	}{
		{"D", Dead},
		{"", Dead},
		{"live", Live},
		{"Lr", Roof},
		{"wind", Wind},
		{"seismic", Earthquake},
		{"R", Rain},
	}
	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCategory(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
	_, err := ParseCategory("snow")
	assert.Error(t, err)
	assert.Equal(t, "Lr", Roof.String())
}

func TestFactor(t *testing.T) {
	c := LoadCombinations[2]
	assert.Equal(t, 1.2, c.Factor(Dead))
	assert.Equal(t, 1.0, c.Factor(Live))
	assert.Equal(t, 1.6, c.Factor(Roof))
	assert.Equal(t, 0.5, c.Factor(Wind))
	assert.Equal(t, 0.0, c.Factor(Earthquake))
	assert.Equal(t, 1.6, c.Factor(Rain))
}

func TestFactored(t *testing.T) {
	cases := LoadCases{}
	cases.Add(Dead, beam.UDL{Magnitude: 2, ToEnd: true})
	cases.Add(Live, beam.PointLoad{Force: 10, Location: 5})
	cases.Add(Wind, beam.PointLoad{Force: 3, Location: 2})

	loads := cases.Factored(SimplifiedCombinations[0])
	require.Len(t, loads, 1)
	assert.InDelta(t, 2.8, loads[0].(beam.UDL).Magnitude, 1e-12)

	loads = cases.Factored(SimplifiedCombinations[1])
	require.Len(t, loads, 2)
	assert.InDelta(t, 16.0, loads[1].(beam.PointLoad).Force, 1e-12)
}

func TestGoverning(t *testing.T) {
	b, err := beam.SimplySupported(10)
	require.NoError(t, err)

	cases := LoadCases{}
	cases.Add(Dead, beam.UDL{Magnitude: 2, ToEnd: true})
	cases.Add(Live, beam.PointLoad{Force: 10, Location: 5})

	env, err := Governing(b, cases, SimplifiedCombinations)
	require.NoError(t, err)
	require.Len(t, env.Results, 2)

	assert.InDelta(t, 35.0, env.Results[0].MaxMoment.Value, 1e-6)
	assert.InDelta(t, 14.0, env.Results[0].MaxShear.Value, 1e-6)

	assert.Equal(t, "2", env.Governing.Combination.ID)
	assert.InDelta(t, 70.0, env.Governing.MaxMoment.Value, 1e-6)
	assert.InDelta(t, 5.0, env.Governing.MaxMoment.Location, 1e-6)
	assert.InDelta(t, 20.0, env.Governing.Reactions[0].Fy, 1e-6)
}

func TestGoverningErrors(t *testing.T) {
	b, err := beam.NewBeam(10, beam.Support{Location: 0, Restraint: beam.Roller})
	require.NoError(t, err)

	_, err = Governing(b, LoadCases{}, nil)
	assert.Error(t, err)

	cases := LoadCases{}
	cases.Add(Dead, beam.PointLoad{Force: 1, Location: 5})
	_, err = Governing(b, cases, LoadCombinations)
	assert.ErrorIs(t, err, solver.ErrUnstable)
}
