package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gobeam/internal/version"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gobeam",
	Short: "Beam Reaction, Shear and Moment Analysis Tool",
	Long: `gobeam - Go Beam Analyzer

A CLI tool for the analysis of straight prismatic beams
under point loads, distributed loads and point moments.

This tool helps structural engineers compute:
  - Support reactions (simple spans, overhangs, cantilevers)
  - Reactions of continuous and propped beams (stiffness method)
  - Shear force and bending moment along the beam
  - Governing design values under NSCP 2015 load combinations
  - Shear and moment diagrams in the terminal or as images`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd, verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", version.Short())
		fmt.Fprintln(out, "  ║   Go Beam Analyzer                                        ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for computing support reactions, shear forces")
		fmt.Fprintln(out, "  and bending moments of beams.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Point loads, partial or full UDLs and point moments")
		fmt.Fprintln(out, "    • Closed-form statics and direct stiffness solvers")
		fmt.Fprintln(out, "    • Factored envelopes using NSCP load combinations")
		fmt.Fprintln(out, "    • ASCII and image shear/moment diagrams")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gobeam --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  %s\n", version.Copyright())
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log solver details to stderr")
}

// setupLogging installs the default logger on the command's error stream.
func setupLogging(cmd *cobra.Command, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
