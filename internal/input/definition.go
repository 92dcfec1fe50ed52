// Package input reads beam definitions from YAML files.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/section"
)

// Definition is the file form of a beam and its loads.
//
//	name: Two-span girder
//	length: 10
//	supports:
//	  - {location: 0, type: pinned}
//	  - {location: 10, type: roller}
//	loads:
//	  - {type: point, force: 10, location: 5, case: live}
//	  - {type: udl, magnitude: 5, start: 0}
//
// The flexural rigidity is optional. It is given either directly as ei
// (kN·m²) or as a section (mm, MPa) from which it is computed.
type Definition struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Length      float64          `yaml:"length"`
	EI          float64          `yaml:"ei,omitempty"`
	Section     *section.Section `yaml:"section,omitempty"`
	Supports    []Support        `yaml:"supports"`
	Loads       []Load           `yaml:"loads"`
}

// Support is a support entry.
type Support struct {
	Location float64 `yaml:"location"`
	Type     string  `yaml:"type"`
}

// Load is a load entry. Which fields apply depends on Type:
// point uses Force and Location, udl uses Magnitude, Start and End,
// moment uses Moment and Location.
type Load struct {
	Type      string   `yaml:"type"`
	Force     float64  `yaml:"force,omitempty"`
	Magnitude float64  `yaml:"magnitude,omitempty"`
	Moment    float64  `yaml:"moment,omitempty"`
	Location  float64  `yaml:"location,omitempty"`
	Start     float64  `yaml:"start,omitempty"`
	End       *float64 `yaml:"end,omitempty"` // nil runs to the beam end
	Case      string   `yaml:"case,omitempty"`
}

// Model is a validated definition ready for analysis.
type Model struct {
	Name        string
	Description string
	Beam        beam.Beam
	EI          float64 // kN·m², zero when not given
	Cases       nscp.LoadCases
}

// Loads returns the unfactored loads of every case in category order.
func (m *Model) Loads() []beam.Load {
	var out []beam.Load
	for _, c := range nscp.Categories {
		out = append(out, m.Cases[c]...)
	}
	return out
}

// LoadFromFile loads and validates a beam definition from a YAML file
func LoadFromFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def.Build()
}

// Parse decodes a YAML definition without validating it.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decoding beam definition: %w", err)
	}
	return &def, nil
}

// Build validates the definition and converts it into a Model.
// Every invalid entry is reported, not just the first.
func (d *Definition) Build() (*Model, error) {
	var errs []error

	supports := make([]beam.Support, 0, len(d.Supports))
	for i, s := range d.Supports {
		r, err := beam.ParseRestraint(s.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("support %d: %w", i+1, err))
			continue
		}
		supports = append(supports, beam.Support{Location: s.Location, Restraint: r})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	b, err := beam.NewBeam(d.Length, supports...)
	if err != nil {
		return nil, err
	}
	ei := d.EI
	switch {
	case ei < 0:
		errs = append(errs, fmt.Errorf("ei must be positive, got %g", ei))
	case d.Section != nil && ei > 0:
		errs = append(errs, errors.New("give either ei or section, not both"))
	case d.Section != nil:
		if ei, err = d.Section.Rigidity(); err != nil {
			errs = append(errs, fmt.Errorf("section: %w", err))
		}
	}

	cases := nscp.LoadCases{}
	for i, entry := range d.Loads {
		l, err := entry.load()
		if err == nil {
			err = b.Check(l)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("load %d: %w", i+1, err))
			continue
		}
		c, err := nscp.ParseCategory(entry.Case)
		if err != nil {
			errs = append(errs, fmt.Errorf("load %d: %w", i+1, err))
			continue
		}
		cases.Add(c, l)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Model{
		Name:        d.Name,
		Description: d.Description,
		Beam:        b,
		EI:          ei,
		Cases:       cases,
	}, nil
}

func (l Load) load() (beam.Load, error) {
	switch strings.ToLower(strings.TrimSpace(l.Type)) {
	case "point", "force":
		return beam.NewPointLoad(l.Force, l.Location)
	case "udl", "distributed":
		if l.End == nil {
			return beam.NewUDLToEnd(l.Magnitude, l.Start)
		}
		return beam.NewUDL(l.Magnitude, l.Start, *l.End)
	case "moment", "couple":
		return beam.NewPointMoment(l.Moment, l.Location)
	}
	return nil, fmt.Errorf("unknown load type %q: must be point, udl or moment", l.Type)
}
