package cmd

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/input"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/spf13/cobra"
)

var (
	combosFile    string
	combosMethod  string
	showAll       bool
	useSimplified bool
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "Find the governing NSCP load combination for a beam",
	Long: `Analyze a beam once per NSCP 2015 load combination and report the
factored shear (Vu) and moment (Mu) of each.

Each load in the beam file carries a load case:
  D  - Dead load (default)
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Governing combination only
  gobeam combos -f girder.yaml

  # Gravity combinations, every result listed
  gobeam combos -f girder.yaml --simplified --all`,
	RunE: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	combosCmd.Flags().StringVarP(&combosFile, "file", "f", "", "Beam definition file (YAML) [required]")
	combosCmd.Flags().StringVarP(&combosMethod, "method", "m", "auto", "Reaction solver (auto|matrix|closed)")
	combosCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all load combination results")
	combosCmd.Flags().BoolVarP(&useSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")

	combosCmd.MarkFlagRequired("file")
}

func runCombos(cmd *cobra.Command, args []string) error {
	model, err := input.LoadFromFile(combosFile)
	if err != nil {
		return err
	}
	method, err := analysis.ParseMethod(combosMethod)
	if err != nil {
		return err
	}

	// Select which combinations to use
	combinations := nscp.LoadCombinations
	if useSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	env, err := nscp.Governing(model.Beam, model.Cases, combinations,
		analysis.WithMethod(method),
		analysis.WithLogger(slog.Default()),
		analysis.WithRigidity(model.EI),
	)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", combosFile, err)
	}

	out := cmd.OutOrStdout()

	// Print header
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "          NSCP 2015 LOAD COMBINATION ENVELOPE")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	if model.Name != "" {
		fmt.Fprintf(out, "  %s\n", model.Name)
		fmt.Fprintf(out, "  %s\n\n", model.Beam)
	}

	// Print unfactored loads
	fmt.Fprintln(out, "UNFACTORED LOADS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, c := range nscp.Categories {
		for _, l := range model.Cases[c] {
			fmt.Fprintf(w, "  %s\t%s\n", c, l)
		}
	}
	w.Flush()
	fmt.Fprintln(out)

	gov := env.Governing
	if showAll {
		fmt.Fprintln(out, "LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tVu (kN)\tMu (kN-m)\tx (m)\n")
		fmt.Fprintf(w, "  ─\t───────────\t───────\t─────────\t─────\n")
		for _, res := range env.Results {
			marker := ""
			if res.Combination.ID == gov.Combination.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.2f\t%.3f%s\n",
				res.Combination.ID, res.Combination.Description,
				res.MaxShear.Value, res.MaxMoment.Value, res.MaxMoment.Location, marker)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	// Print result
	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n", gov.Combination.ID, gov.Combination.Description)
	fmt.Fprintln(out)

	lines := []string{
		fmt.Sprintf("Mu = %.2f kN-m at x = %.3f m", gov.MaxMoment.Value, gov.MaxMoment.Location),
		fmt.Sprintf("Vu = %.2f kN at x = %.3f m", gov.MaxShear.Value, gov.MaxShear.Location),
	}
	for _, x := range gov.Reactions.Locations() {
		r := gov.Reactions[x]
		line := fmt.Sprintf("R(%.3f m) = %.2f kN", x, r.Fy)
		if r.M != 0 {
			line += fmt.Sprintf(", M = %.2f kN-m", r.M)
		}
		lines = append(lines, line)
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("FACTORED DESIGN VALUES", lines))
	fmt.Fprintln(out)
	return nil
}
