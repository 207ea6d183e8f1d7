package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"scopekit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "scopekit",
	Short: "Scope tracking and name resolution for the scopekit toy language",
	Long: `scopekit parses source files in a single pass, resolving local names
while parsing and leaving top-level references and forward type
references for a binding pass that runs once the file is complete.`,
	SilenceUsage: true,
}

// main registers subcommands and persistent flags, then runs the root
// command. Any returned error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	registerPersistentFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func registerPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().Bool("timings", false, "show timing information")
	cmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	cmd.PersistentFlags().Int("jobs", 0, "files parsed in parallel (0 = GOMAXPROCS)")
	cmd.PersistentFlags().String("trace", "off", "trace level (off|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-output", "-", "trace destination; '-' for stderr, *.ndjson for NDJSON")
	cmd.PersistentFlags().String("config", "", "path to scopekit.toml (default: search upwards)")
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
