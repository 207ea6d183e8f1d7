package diagfmt

import (
	"fmt"
	"io"

	"scopekit/internal/diag"
	"scopekit/internal/source"
)

// Short prints one line per diagnostic, grep-friendly.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) error {
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		path := formatPath(fs, d.Primary.File, mode, "")
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, start.Line, start.Col, d.Severity, d.Code.ID(), d.Message); err != nil {
			return err
		}
	}
	return nil
}
