package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scopekit/internal/diagfmt"
	"scopekit/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.sk",
	Short: "Parse a source file and print its tree",
	Long: `Parse runs the single-pass parser and the binding pass over a file and
prints the resulting tree. Pending forward type references are marked '?',
reconciled ones '~'.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("no-bind", false, "stop after parsing; leave top-level references unbound")
}

func runParse(cmd *cobra.Command, args []string) error {
	noBind, err := cmd.Flags().GetBool("no-bind")
	if err != nil {
		return fmt.Errorf("failed to get no-bind flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := s.driverOptions()
	opts.SkipBind = noBind
	res, err := driver.ParseFile(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if res.Bag.Len() > 0 {
		if err := writeDiagnostics(os.Stderr, res.Bag, res.FileSet, "pretty", s.useColor(os.Stderr)); err != nil {
			return err
		}
	}
	if err := diagfmt.FormatASTPretty(os.Stdout, res.AST, res.Strings, res.FileSet); err != nil {
		return err
	}
	if s.timings {
		fmt.Fprint(os.Stderr, res.Timing.Summary())
	}
	if res.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
