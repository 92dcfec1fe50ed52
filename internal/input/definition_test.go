package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/nscp"
)

const girder = `
name: Girder G1
description: Roof girder with overhang
length: 12
ei: 25000
supports:
  - {location: 0, type: pinned}
  - {location: 10, type: roller}
loads:
  - {type: udl, magnitude: 4, start: 0}
  - {type: udl, magnitude: 2, start: 0, end: 10, case: live}
  - {type: point, force: 15, location: 5, case: L}
  - {type: moment, moment: 8, location: 12, case: wind}
`

func TestParseAndBuild(t *testing.T) {
	def, err := Parse([]byte(girder))
	require.NoError(t, err)
	assert.Equal(t, "Girder G1", def.Name)
	require.Len(t, def.Loads, 4)
	assert.Nil(t, def.Loads[0].End)

	m, err := def.Build()
	require.NoError(t, err)
	assert.Equal(t, 12.0, m.Beam.Length)
	assert.Equal(t, 25000.0, m.EI)
	require.Len(t, m.Beam.Supports, 2)
	assert.Equal(t, beam.Roller, m.Beam.Supports[1].Restraint)

	require.Len(t, m.Cases[nscp.Dead], 1)
	assert.Equal(t, beam.UDL{Magnitude: 4, Start: 0, ToEnd: true}, m.Cases[nscp.Dead][0])
	require.Len(t, m.Cases[nscp.Live], 2)
	assert.Equal(t, beam.UDL{Magnitude: 2, Start: 0, End: 10}, m.Cases[nscp.Live][0])
	assert.Equal(t, beam.PointLoad{Force: 15, Location: 5}, m.Cases[nscp.Live][1])
	assert.Equal(t, beam.PointMoment{Moment: 8, Location: 12}, m.Cases[nscp.Wind][0])

	assert.Len(t, m.Loads(), 4)
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse([]byte("length: 10\nspan: 4\n"))
	assert.Error(t, err)
}

func TestBuildReportsEveryLoad(t *testing.T) {
	def := &Definition{
		Length:   10,
		Supports: []Support{{Location: 0, Type: "fixed"}},
		Loads: []Load{
			{Type: "point", Force: 10, Location: 12},
			{Type: "spring"},
			{Type: "moment", Moment: 5, Location: 3, Case: "snow"},
			{Type: "point", Force: 1, Location: 2},
		},
	}
	_, err := def.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, beam.ErrOutOfBounds)
	assert.Contains(t, err.Error(), "load 1:")
	assert.Contains(t, err.Error(), `load 2: unknown load type "spring"`)
	assert.Contains(t, err.Error(), "load 3:")
	assert.NotContains(t, err.Error(), "load 4:")
}

func TestBuildInvalidBeam(t *testing.T) {
	tcs := []struct {
		name string
		def  Definition
	}{
		{"bad support type", Definition{Length: 10, Supports: []Support{{Location: 0, Type: "spring"}}}},
		{"support past end", Definition{Length: 10, Supports: []Support{{Location: 11, Type: "pinned"}}}},
		{"zero length", Definition{Length: 0}},
		{"negative rigidity", Definition{Length: 10, EI: -1, Supports: []Support{{Location: 0, Type: "fixed"}}}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.def.Build()
			assert.Error(t, err)
		})
	}
}

func TestBuildSectionRigidity(t *testing.T) {
	def, err := Parse([]byte(`
length: 6
section: {e: 25000, width: 300, height: 500}
supports:
  - {location: 0, type: fixed}
`))
	require.NoError(t, err)
	m, err := def.Build()
	require.NoError(t, err)
	assert.InDelta(t, 78125, m.EI, 1e-6)

	def.EI = 1000
	_, err = def.Build()
	assert.ErrorContains(t, err, "either ei or section")

	def.EI = 0
	def.Section.E = 0
	_, err = def.Build()
	assert.ErrorContains(t, err, "section: elastic modulus")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beam.yaml")
	require.NoError(t, os.WriteFile(path, []byte(girder), 0o644))

	m, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Roof girder with overhang", m.Description)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
