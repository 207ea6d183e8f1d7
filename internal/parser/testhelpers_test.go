package parser

import (
	"fmt"
	"strings"
	"testing"

	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/lexer"
	"scopekit/internal/source"
)

type parsed struct {
	Result
	bag  *diag.Bag
	strs *source.Interner
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()
	return parseWith(t, input, Options{})
}

func parseWith(t *testing.T, input string, opts Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.sk", []byte(input)))
	bag := diag.NewBag(100)
	strs := source.NewInterner()
	opts.Reporter = diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	res := ParseFile(lx, strs, opts)
	if n := res.Scopes.OpenScopes(); n != 0 {
		t.Fatalf("parser left %d scopes open", n)
	}
	if err := res.Scopes.Verify(); err != nil {
		t.Fatalf("scope tables inconsistent: %v", err)
	}
	return parsed{Result: res, bag: bag, strs: strs}
}

func mustParse(t *testing.T, input string) parsed {
	t.Helper()
	p := parseSource(t, input)
	if p.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	return p
}

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func (p parsed) name(id source.StringID) string {
	return p.strs.MustLookup(id)
}

func (p parsed) decl(t *testing.T, name string) ast.Decl {
	t.Helper()
	for _, d := range p.File.Decls {
		if n := d.DeclName(); n != source.NoStringID && p.name(n) == name {
			return d
		}
	}
	t.Fatalf("no top-level declaration %q", name)
	return nil
}

func (p parsed) fn(t *testing.T, name string) *ast.FuncDecl {
	t.Helper()
	fn, ok := p.decl(t, name).(*ast.FuncDecl)
	if !ok {
		t.Fatalf("%q is not a function", name)
	}
	return fn
}

func exprOf(t *testing.T, s ast.Stmt) ast.Expr {
	t.Helper()
	switch s := s.(type) {
	case *ast.ExprStmt:
		return s.X
	case *ast.ReturnStmt:
		return s.Value
	}
	t.Fatalf("statement %T has no expression", s)
	return nil
}
