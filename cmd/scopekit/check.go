package main

import (
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"scopekit/internal/diagfmt"
	"scopekit/internal/driver"
	"scopekit/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] path...",
	Short: "Parse and bind files or directories, reporting diagnostics",
	Long: `Check runs the full front end over each file, or over every source
file below each directory, and reports redefinitions, unresolved
identifiers and undeclared types.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json); json prints one document for all files to stdout")
	checkCmd.Flags().String("report", "", "write a msgpack scope report to this path")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	reportPath, err := cmd.Flags().GetString("report")
	if err != nil {
		return fmt.Errorf("failed to get report flag: %w", err)
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

	results, err := collectResults(cmd, args, s.driverOptions())
	if err != nil {
		return err
	}

	colored := s.useColor(os.Stderr)
	stats := diagfmt.SummaryStats{Files: len(results)}
	var timing observ.Report
	var reports []*driver.Report
	failed := false
	for _, dr := range results {
		res := dr.Result
		if res.Bag.HasErrors() {
			failed = true
		}
		_, warnings := severityCounts(res.Bag)
		errs, err := safecast.Conv[int](res.Errors)
		if err != nil {
			return fmt.Errorf("error count: %w", err)
		}
		stats.Errors += errs
		stats.Warnings += warnings
		stats.Placeholders += len(res.Unresolved)
		stats.Pending += len(res.Pending())
		timing = timing.Merge(res.Timing)

		if format != "json" && res.Bag.Len() > 0 {
			if err := writeDiagnostics(os.Stderr, res.Bag, res.FileSet, format, colored); err != nil {
				return err
			}
		}
		if reportPath != "" {
			rep := driver.BuildReport(res)
			if rep.Path == "" {
				rep.Path = dr.Path
			}
			reports = append(reports, rep)
		}
	}

	if format == "json" {
		if err := diagfmt.WriteJSON(os.Stdout, mergeJSON(results)); err != nil {
			return err
		}
	}
	if reportPath != "" {
		if err := driver.WriteReportFile(reportPath, reports); err != nil {
			return err
		}
	}
	if s.timings {
		fmt.Fprint(os.Stderr, timing.Summary())
	}
	if !s.quiet && format != "json" {
		if err := diagfmt.Summary(os.Stdout, stats, s.useColor(os.Stdout)); err != nil {
			return err
		}
	}
	if failed {
		return errDiagnostics
	}
	return nil
}

// mergeJSON builds a single diagnostics document covering every result.
func mergeJSON(results []driver.DirResult) diagfmt.DiagnosticsOutput {
	out := diagfmt.DiagnosticsOutput{Diagnostics: []diagfmt.DiagnosticJSON{}}
	for _, dr := range results {
		out = out.Merge(diagfmt.BuildDiagnosticsOutput(dr.Result.Bag, dr.Result.FileSet, jsonOpts))
	}
	return out
}

// collectResults runs ParseDir for directories and ParseFile for plain
// files, keeping argument order.
func collectResults(cmd *cobra.Command, args []string, opts driver.Options) ([]driver.DirResult, error) {
	var out []driver.DirResult
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("check: %w", err)
		}
		if info.IsDir() {
			_, dirResults, err := driver.ParseDir(cmd.Context(), arg, opts)
			if err != nil {
				return nil, fmt.Errorf("check %s: %w", arg, err)
			}
			out = append(out, dirResults...)
			continue
		}
		res, err := driver.ParseFile(cmd.Context(), arg, opts)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", arg, err)
		}
		out = append(out, driver.DirResult{Path: arg, Result: res})
	}
	return out, nil
}

