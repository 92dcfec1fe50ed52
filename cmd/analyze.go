package cmd

import (
	"fmt"
	"log/slog"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/input"
	"github.com/alexiusacademia/gobeam/internal/report"
	"github.com/spf13/cobra"
)

var (
	analyzeFile    string
	analyzeMethod  string
	analyzeDiagram bool
	analyzeOutput  string
	analyzeLang    string
	analyzeSamples int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a beam described in a YAML file",
	Long: `Compute support reactions, maximum shear and maximum bending moment
of a beam described in a YAML file. All load cases are applied unfactored;
use 'gobeam combos' for factored envelopes.

Sign convention:
  - Forces and distributed loads are positive downward
  - Point moments are positive clockwise
  - Sagging bending moment is positive

Example file:
  name: Girder G1
  length: 10
  ei: 25000            # kN-m², optional, enables deflections
  # or: section: {e: 25000, width: 300, height: 500}   (MPa, mm)
  supports:
    - {location: 0, type: pinned}
    - {location: 6, type: roller}
    - {location: 10, type: roller}
  loads:
    - {type: udl, magnitude: 5, start: 0}          # to the beam end
    - {type: point, force: 20, location: 3, case: live}
    - {type: moment, moment: 4, location: 8}

Examples:
  # Analyze and print a report
  gobeam analyze -f girder.yaml

  # Show ASCII diagrams and save images
  gobeam analyze -f girder.yaml --diagram -o out/girder.png

  # Force the stiffness solver, Turkish labels
  gobeam analyze -f girder.yaml --method matrix --lang tr`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Beam definition file (YAML) [required]")
	addPresentationFlags(analyzeCmd, &analyzeMethod, &analyzeDiagram, &analyzeOutput, &analyzeLang)
	analyzeCmd.Flags().IntVar(&analyzeSamples, "samples", analysis.DefaultSamples, "Grid points used to find maxima")

	analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	model, err := input.LoadFromFile(analyzeFile)
	if err != nil {
		return err
	}
	slog.Debug("beam definition loaded", "file", analyzeFile, "beam", model.Beam, "loads", len(model.Loads()))

	method, err := analysis.ParseMethod(analyzeMethod)
	if err != nil {
		return err
	}
	e := analysis.New(model.Beam,
		analysis.WithMethod(method),
		analysis.WithLogger(slog.Default()),
		analysis.WithRigidity(model.EI),
		analysis.WithSamples(analyzeSamples),
	)
	for _, l := range model.Loads() {
		if err := e.AddLoad(l); err != nil {
			return err
		}
	}
	sol, err := e.Solve()
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", analyzeFile, err)
	}

	title := model.Name
	if title == "" {
		title = "Beam Analysis"
	}
	return present(cmd, sol, title, presentation{
		description: model.Description,
		lang:        analyzeLang,
		diagram:     analyzeDiagram,
		output:      analyzeOutput,
		opts:        report.Options{Loads: e.Loads(), Rigidity: model.EI},
	})
}

func addPresentationFlags(c *cobra.Command, method *string, ascii *bool, output, lang *string) {
	c.Flags().StringVarP(method, "method", "m", "auto", "Reaction solver (auto|matrix|closed)")
	c.Flags().BoolVarP(ascii, "diagram", "d", false, "Print ASCII shear and moment diagrams")
	c.Flags().StringVarP(output, "output", "o", "", "Export diagrams to image file (png, svg, pdf)")
	c.Flags().StringVar(lang, "lang", "en", "Report language (en|fil|tr)")
}

type presentation struct {
	description string
	lang        string
	diagram     bool
	output      string
	opts        report.Options
}

// present writes the report and any requested diagrams for a solved beam.
func present(cmd *cobra.Command, sol *analysis.Solution, title string, p presentation) error {
	lang, err := report.ParseLanguage(p.lang)
	if err != nil {
		return err
	}
	p.opts.Language = lang
	p.opts.Description = p.description

	out := cmd.OutOrStdout()
	if err := report.Write(out, title, sol, p.opts); err != nil {
		return err
	}

	if p.diagram {
		fmt.Fprint(out, diagram.DrawASCII(sol.Sample(diagram.DefaultWidth*4), 0, 0))
		fmt.Fprintln(out)
	}

	if p.output != "" {
		paths, err := diagram.Export(sol.Sample(analysis.DefaultSamples), p.output)
		if err != nil {
			return fmt.Errorf("exporting diagrams: %w", err)
		}
		for _, path := range paths {
			slog.Info("diagram written", "path", path)
		}
	}
	return nil
}
