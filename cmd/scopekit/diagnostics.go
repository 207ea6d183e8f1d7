package main

import (
	"errors"
	"fmt"
	"io"

	"scopekit/internal/diag"
	"scopekit/internal/diagfmt"
	"scopekit/internal/source"
)

var errDiagnostics = errors.New("errors reported")

var jsonOpts = diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}

func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format string, colored bool) error {
	switch format {
	case "pretty":
		return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: colored, Context: 1, ShowNotes: true})
	case "short":
		return diagfmt.Short(w, bag, fs, diagfmt.PathModeAuto)
	case "json":
		return diagfmt.JSON(w, bag, fs, jsonOpts)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// severityCounts counts stored diagnostics. Dropped ones are not included.
func severityCounts(bag *diag.Bag) (errs, warnings int) {
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warnings++
		}
	}
	return errs, warnings
}
