package diagfmt

import (
	"os"
	"path/filepath"
	"strings"

	"scopekit/internal/source"
)

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode, base string) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	p := f.Path
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil && f.Flags&source.FileVirtual == 0 {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, ok := relativeTo(p, base); ok {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(p)
	case PathModeAuto:
		if wd, err := os.Getwd(); err == nil && filepath.IsAbs(p) {
			if rel, ok := relativeTo(p, wd); ok {
				return rel
			}
		}
	}
	return p
}

func relativeTo(p, base string) (string, bool) {
	if base == "" {
		return "", false
	}
	rel, err := filepath.Rel(base, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
