package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/report"
	"github.com/spf13/cobra"
)

var (
	simpleLength  float64
	simplePoints  []string
	simpleUDLs    []string
	simpleMoments []string
	simpleMethod  string
	simpleDiagram bool
	simpleOutput  string
	simpleLang    string
)

var simpleCmd = &cobra.Command{
	Use:   "simple",
	Short: "Analyze a simply supported beam from the command line",
	Long: `Analyze a beam pinned at x = 0 and carried on a roller at x = L,
with loads given as flags.

Load formats:
  --point  F@x      point load F (kN) at x (m)
  --udl    w        UDL w (kN/m) over the whole span
  --udl    w@a:b    UDL w (kN/m) from a to b (m)
  --udl    w@a:     UDL w (kN/m) from a to the beam end
  --moment M@x      clockwise moment M (kN-m) at x (m)

Each flag may be repeated.

Examples:
  # 10 m beam with a 5 kN/m UDL
  gobeam simple --length 10 --udl 5

  # Two point loads and a partial UDL
  gobeam simple -L 8 --point 20@2 --point 15@6 --udl 4@0:4 --diagram`,
	RunE: runSimple,
}

func init() {
	rootCmd.AddCommand(simpleCmd)

	simpleCmd.Flags().Float64VarP(&simpleLength, "length", "L", 0, "Span length (m) [required]")
	simpleCmd.Flags().StringArrayVarP(&simplePoints, "point", "p", nil, "Point load F@x (kN@m)")
	simpleCmd.Flags().StringArrayVarP(&simpleUDLs, "udl", "u", nil, "Distributed load w, w@a:b or w@a: (kN/m@m:m)")
	simpleCmd.Flags().StringArrayVar(&simpleMoments, "moment", nil, "Point moment M@x (kN-m@m)")
	addPresentationFlags(simpleCmd, &simpleMethod, &simpleDiagram, &simpleOutput, &simpleLang)

	simpleCmd.MarkFlagRequired("length")
}

func runSimple(cmd *cobra.Command, args []string) error {
	b, err := beam.SimplySupported(simpleLength)
	if err != nil {
		return err
	}
	loads, err := parseLoads(simplePoints, simpleUDLs, simpleMoments)
	if err != nil {
		return err
	}
	if len(loads) == 0 {
		return fmt.Errorf("no loads given: use --point, --udl or --moment")
	}

	method, err := analysis.ParseMethod(simpleMethod)
	if err != nil {
		return err
	}
	e := analysis.New(b, analysis.WithMethod(method), analysis.WithLogger(slog.Default()))
	for _, l := range loads {
		if err := e.AddLoad(l); err != nil {
			return err
		}
	}
	sol, err := e.Solve()
	if err != nil {
		return err
	}

	return present(cmd, sol, "Simply Supported Beam", presentation{
		lang:    simpleLang,
		diagram: simpleDiagram,
		output:  simpleOutput,
		opts:    report.Options{Loads: e.Loads()},
	})
}

func parseLoads(points, udls, moments []string) ([]beam.Load, error) {
	var loads []beam.Load
	for _, s := range points {
		f, x, err := parseAt(s)
		if err != nil {
			return nil, fmt.Errorf("--point %q: %w", s, err)
		}
		l, err := beam.NewPointLoad(f, x)
		if err != nil {
			return nil, fmt.Errorf("--point %q: %w", s, err)
		}
		loads = append(loads, l)
	}
	for _, s := range udls {
		l, err := parseUDL(s)
		if err != nil {
			return nil, fmt.Errorf("--udl %q: %w", s, err)
		}
		loads = append(loads, l)
	}
	for _, s := range moments {
		m, x, err := parseAt(s)
		if err != nil {
			return nil, fmt.Errorf("--moment %q: %w", s, err)
		}
		l, err := beam.NewPointMoment(m, x)
		if err != nil {
			return nil, fmt.Errorf("--moment %q: %w", s, err)
		}
		loads = append(loads, l)
	}
	return loads, nil
}

// parseAt splits "10@2.5" into its value and location.
func parseAt(s string) (value, location float64, err error) {
	v, x, ok := strings.Cut(s, "@")
	if !ok {
		return 0, 0, fmt.Errorf("expected VALUE@LOCATION")
	}
	if value, err = parseNumber(v); err != nil {
		return 0, 0, err
	}
	if location, err = parseNumber(x); err != nil {
		return 0, 0, err
	}
	return value, location, nil
}

// parseUDL accepts "w", "w@a:b" and "w@a:".
func parseUDL(s string) (beam.UDL, error) {
	v, span, ok := strings.Cut(s, "@")
	w, err := parseNumber(v)
	if err != nil {
		return beam.UDL{}, err
	}
	if !ok {
		return beam.NewUDLToEnd(w, 0)
	}

	a, b, ok := strings.Cut(span, ":")
	if !ok {
		return beam.UDL{}, fmt.Errorf("expected VALUE@START:END")
	}
	start, err := parseNumber(a)
	if err != nil {
		return beam.UDL{}, err
	}
	if strings.TrimSpace(b) == "" {
		return beam.NewUDLToEnd(w, start)
	}
	end, err := parseNumber(b)
	if err != nil {
		return beam.UDL{}, err
	}
	return beam.NewUDL(w, start, end)
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
