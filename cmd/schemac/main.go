package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"schemac/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "schemac",
	Short: "Schema node translator",
	Long:  `schemac translates declaration-tree fixtures into canonical in-memory schemas.`,
}

// main registers every subcommand and persistent flag, then executes the
// root command. A non-nil error exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
