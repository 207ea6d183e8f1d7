package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"scopekit/internal/ast"
	"scopekit/internal/namebind"
	"scopekit/internal/observ"
	"scopekit/internal/source"
)

// reportSchema is bumped whenever Report changes shape.
const reportSchema uint16 = 1

// TypeStatus says how a type declaration ended up.
type TypeStatus uint8

const (
	TypeDefined TypeStatus = iota
	TypeBuiltin
	TypeRedefinition
	TypePlaceholderResolved
	TypePlaceholderPending
)

func (s TypeStatus) String() string {
	switch s {
	case TypeDefined:
		return "defined"
	case TypeBuiltin:
		return "builtin"
	case TypeRedefinition:
		return "redefinition"
	case TypePlaceholderResolved:
		return "resolved"
	case TypePlaceholderPending:
		return "pending"
	default:
		return "unknown"
	}
}

type TypeEntry struct {
	Name   string     `msgpack:"name"`
	Depth  uint32     `msgpack:"depth"`
	Line   uint32     `msgpack:"line"`
	Col    uint32     `msgpack:"col"`
	Status TypeStatus `msgpack:"status"`
	// Target is the defining line of a reconciled placeholder.
	Target uint32 `msgpack:"target,omitempty"`
}

type DiagEntry struct {
	Code     string `msgpack:"code"`
	Severity string `msgpack:"severity"`
	Message  string `msgpack:"message"`
	Line     uint32 `msgpack:"line"`
	Col      uint32 `msgpack:"col"`
}

// Report is the serialisable scope summary of one file.
type Report struct {
	Schema      uint16          `msgpack:"schema"`
	Path        string          `msgpack:"path"`
	Types       []TypeEntry     `msgpack:"types"`
	Binding     namebind.Result `msgpack:"binding"`
	Diagnostics []DiagEntry     `msgpack:"diagnostics"`
	Timing      observ.Report   `msgpack:"timing"`
}

// BuildReport summarises res: every type declaration in source order
// (nested ones included) followed by the placeholders, then the
// diagnostics.
func BuildReport(res *Result) *Report {
	rep := &Report{
		Schema:  reportSchema,
		Binding: res.Binding,
		Timing:  res.Timing,
	}
	if res.File != nil {
		rep.Path = res.File.Path
	}
	pos := func(sp source.Span) (uint32, uint32) {
		if res.FileSet == nil {
			return 0, 0
		}
		start, _ := res.FileSet.Resolve(sp)
		return start.Line, start.Col
	}
	name := func(id source.StringID) string {
		if res.Strings == nil {
			return ""
		}
		s, _ := res.Strings.Lookup(id)
		return s
	}

	if res.AST != nil {
		for _, d := range collectTypeDecls(res.AST) {
			line, col := pos(d.NameSpan)
			status := TypeDefined
			if d.Flags&ast.TypeAliasRedefinition != 0 {
				status = TypeRedefinition
			}
			rep.Types = append(rep.Types, TypeEntry{Name: name(d.Name), Depth: d.Depth, Line: line, Col: col, Status: status})
		}
	}
	for _, ph := range res.Unresolved {
		line, col := pos(ph.NameSpan)
		entry := TypeEntry{Name: name(ph.Name), Depth: ph.Depth, Line: line, Col: col, Status: TypePlaceholderPending}
		if def := ph.Canonical(); def != ph && def != nil {
			entry.Status = TypePlaceholderResolved
			if def.Flags&ast.TypeAliasBuiltin == 0 {
				entry.Target, _ = pos(def.NameSpan)
			}
		}
		rep.Types = append(rep.Types, entry)
	}

	if res.Bag != nil {
		for _, d := range res.Bag.Items() {
			line, col := pos(d.Primary)
			rep.Diagnostics = append(rep.Diagnostics, DiagEntry{
				Code:     d.Code.ID(),
				Severity: d.Severity.String(),
				Message:  d.Message,
				Line:     line,
				Col:      col,
			})
		}
	}
	return rep
}

// collectTypeDecls walks the tree for type alias and struct declarations.
func collectTypeDecls(file *ast.File) []*ast.TypeAliasDecl {
	var out []*ast.TypeAliasDecl
	var walkStmts func([]ast.Stmt)
	var walkDecl func(ast.Decl)
	walkDecl = func(d ast.Decl) {
		switch d := d.(type) {
		case *ast.TypeAliasDecl:
			out = append(out, d)
		case *ast.FuncDecl:
			if d.Body != nil {
				walkStmts(d.Body.Stmts)
			}
		}
	}
	walkStmts = func(list []ast.Stmt) {
		for _, s := range list {
			switch s := s.(type) {
			case *ast.DeclStmt:
				walkDecl(s.Decl)
			case *ast.BlockStmt:
				walkStmts(s.Stmts)
			}
		}
	}
	for _, d := range file.Decls {
		walkDecl(d)
	}
	return out
}

// WriteReport encodes reports as one msgpack array.
func WriteReport(w io.Writer, reports []*Report) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// ReadReport decodes what WriteReport produced. Reports from another
// schema version are rejected.
func ReadReport(r io.Reader) ([]*Report, error) {
	var reports []*Report
	if err := msgpack.NewDecoder(r).Decode(&reports); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	for _, rep := range reports {
		if rep.Schema != reportSchema {
			return nil, fmt.Errorf("report %s: schema %d, want %d", rep.Path, rep.Schema, reportSchema)
		}
	}
	return reports, nil
}

// WriteReportFile writes reports to path atomically: a temp file in the
// same directory is renamed over the target.
func WriteReportFile(path string, reports []*Report) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".report-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if err := WriteReport(f, reports); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadReportFile is ReadReport on a file.
func ReadReportFile(path string) ([]*Report, error) {
	f, err := os.Open(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadReport(f)
}
