package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of " + version.Name,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.Short())
		fmt.Fprintln(out, version.Description)
		fmt.Fprintln(out, version.Build())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
