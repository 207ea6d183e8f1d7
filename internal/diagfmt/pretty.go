package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"scopekit/internal/diag"
	"scopekit/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	gutter, caret, bold   *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgGreen),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders every diagnostic of bag as
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//
// followed by the source line and a caret underline, then notes in the
// same shape. The bag should be sorted beforehand.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		path := formatPath(fs, d.Primary.File, opts.PathMode, opts.BaseDir)
		sev := d.Severity.Label()
		if _, err := fmt.Fprintf(w, "%s: %s %s\n",
			pal.bold.Sprintf("%s:%d:%d", path, start.Line, start.Col),
			pal.severity(d.Severity).Sprintf("%s %s:", sev, d.Code.ID()),
			pal.bold.Sprint(d.Message)); err != nil {
			return err
		}
		if err := writeSnippet(w, fs, d.Primary, opts.Context, pal); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nstart, _ := fs.Resolve(n.Span)
			npath := formatPath(fs, n.Span.File, opts.PathMode, opts.BaseDir)
			if _, err := fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				pal.note.Sprint("note:"), npath, nstart.Line, nstart.Col, n.Msg); err != nil {
				return err
			}
			if err := writeSnippet(w, fs, n.Span, 0, pal); err != nil {
				return err
			}
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		if _, err := fmt.Fprintf(w, "... %d more diagnostics not shown\n", dropped); err != nil {
			return err
		}
	}
	return nil
}

// writeSnippet prints the line(s) of sp with a caret underline. Spans of
// zero width get a single caret; multi-line spans are underlined to the end
// of their first line.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int8, pal palette) error {
	f := fs.Get(sp.File)
	if f == nil {
		return nil
	}
	start, end := fs.Resolve(sp)
	first := start.Line
	if context > 0 && start.Line > uint32(context) {
		first = start.Line - uint32(context)
	} else if context > 0 {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		if _, err := fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, ln), f.Line(ln)); err != nil {
			return err
		}
	}

	line := f.Line(start.Line)
	from := min(int(start.Col-1), len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col-1), len(line))
	}
	pad := caretPadding(line[:from])
	n := max(1, runewidth.StringWidth(line[from:max(from, to)]))
	_, err := fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", width, ""), pad, pal.caret.Sprint("^"+strings.Repeat("~", n-1)))
	return err
}

// caretPadding reproduces the visual width of prefix, keeping tabs so the
// caret lines up however the terminal expands them.
func caretPadding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
