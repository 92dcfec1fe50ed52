package nscp

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/solver"
)

// Category is the origin of a load, used to pick its combination factor
type Category int

const (
	Dead       Category = iota // D
	Live                       // L
	Roof                       // Lr
	Wind                       // W
	Earthquake                 // E
	Rain                       // R
)

// Categories lists every category in display order
var Categories = []Category{Dead, Live, Roof, Wind, Earthquake, Rain}

func (c Category) String() string {
	switch c {
	case Dead:
		return "D"
	case Live:
		return "L"
	case Roof:
		return "Lr"
	case Wind:
		return "W"
	case Earthquake:
		return "E"
	case Rain:
		return "R"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory accepts a symbol ("D", "Lr") or a name ("dead", "roof")
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "d", "dead":
		return Dead, nil
	case "l", "live":
		return Live, nil
	case "lr", "roof":
		return Roof, nil
	case "w", "wind":
		return Wind, nil
	case "e", "earthquake", "seismic":
		return Earthquake, nil
	case "r", "rain":
		return Rain, nil
	}
	return 0, fmt.Errorf("unknown load case %q", s)
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L + 0.5(Lr or R)", Dead: 1.2, Live: 1.6, Roof: 0.5, Rain: 0.5},
	{ID: "3", Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)", Dead: 1.2, Live: 1.0, Roof: 1.6, Rain: 1.6, Wind: 0.5},
	{ID: "4", Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)", Dead: 1.2, Live: 1.0, Wind: 1.0, Roof: 0.5, Rain: 0.5},
	{ID: "5", Description: "1.2D + 1.0E + 1.0L", Dead: 1.2, Live: 1.0, Earthquake: 1.0},
	{ID: "6", Description: "0.9D + 1.0W", Dead: 0.9, Wind: 1.0},
	{ID: "7", Description: "0.9D + 1.0E", Dead: 0.9, Earthquake: 1.0},
}

// SimplifiedCombinations for common beam design scenarios
// These are the most frequently used combinations for gravity loads
var SimplifiedCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L", Dead: 1.2, Live: 1.6},
}

// Factor returns the combination factor for a load category
func (lc LoadCombination) Factor(c Category) float64 {
	switch c {
	case Dead:
		return lc.Dead
	case Live:
		return lc.Live
	case Roof:
		return lc.Roof
	case Wind:
		return lc.Wind
	case Earthquake:
		return lc.Earthquake
	case Rain:
		return lc.Rain
	}
	return 0
}

// LoadCases holds unfactored loads grouped by category
type LoadCases map[Category][]beam.Load

// Add appends a load to its category
func (lc LoadCases) Add(c Category, l beam.Load) {
	lc[c] = append(lc[c], l)
}

// Factored returns every load scaled by the combination factors.
// Categories with a zero factor are left out.
func (lc LoadCases) Factored(combo LoadCombination) []beam.Load {
	var out []beam.Load
	for _, c := range Categories {
		f := combo.Factor(c)
		if f == 0 {
			continue
		}
		for _, l := range lc[c] {
			out = append(out, beam.Scale(l, f))
		}
	}
	return out
}

// CombinationResult holds the design values of one factored analysis
type CombinationResult struct {
	Combination LoadCombination
	Reactions   solver.Reactions
	MaxShear    analysis.Extremum // Vu (kN)
	MaxMoment   analysis.Extremum // Mu (kN-m)
}

// Envelope holds the results of every combination and the governing one
type Envelope struct {
	Results   []CombinationResult
	Governing CombinationResult // largest |Mu|
}

// Governing analyzes the beam once per combination and finds the combination
// producing the largest factored moment.
func Governing(b beam.Beam, cases LoadCases, combinations []LoadCombination, opts ...analysis.Option) (*Envelope, error) {
	if len(combinations) == 0 {
		return nil, fmt.Errorf("no load combinations given")
	}

	env := &Envelope{}
	for i, combo := range combinations {
		e := analysis.New(b, opts...)
		for _, l := range cases.Factored(combo) {
			if err := e.AddLoad(l); err != nil {
				return nil, fmt.Errorf("combination %s: %w", combo.ID, err)
			}
		}
		sol, err := e.Solve()
		if err != nil {
			return nil, fmt.Errorf("combination %s: %w", combo.ID, err)
		}

		res := CombinationResult{
			Combination: combo,
			Reactions:   sol.Reactions(),
			MaxShear:    sol.MaxShear(),
			MaxMoment:   sol.MaxMoment(),
		}
		env.Results = append(env.Results, res)

		if i == 0 || math.Abs(res.MaxMoment.Value) > math.Abs(env.Governing.MaxMoment.Value) {
			env.Governing = res
		}
	}
	return env, nil
}
