package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// SummaryStats are the counters printed after a check run.
type SummaryStats struct {
	Files        int
	Errors       int
	Warnings     int
	Placeholders int // forward type references seen
	Pending      int // placeholders never satisfied
}

// Summary prints a one-line verdict for a check run.
func Summary(w io.Writer, s SummaryStats, colored bool) error {
	r := lipgloss.NewRenderer(w)
	if colored {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	okStyle := r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errStyle := r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle := r.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle := r.NewStyle().Faint(true)

	parts := []string{plural(s.Files, "file")}
	if s.Errors > 0 {
		parts = append(parts, errStyle.Render(plural(s.Errors, "error")))
	}
	if s.Warnings > 0 {
		parts = append(parts, warnStyle.Render(plural(s.Warnings, "warning")))
	}
	if s.Placeholders > 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("%s, %d pending", plural(s.Placeholders, "forward type reference"), s.Pending)))
	}

	verdict := okStyle.Render("ok")
	if s.Errors > 0 {
		verdict = errStyle.Render("failed")
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", verdict, strings.Join(parts, ", "))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
