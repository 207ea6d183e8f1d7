package namebind

import (
	"fmt"

	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/source"
	"scopekit/internal/trace"
)

type Options struct {
	Reporter diag.Reporter
	Strings  *source.Interner
	Tracer   trace.Tracer
}

// Result counts what the pass did.
type Result struct {
	Bound      int // references bound to a single declaration
	Overloaded int // references with several candidates
	Patched    int // placeholders patched with a top-level type
	Undefined  int // references and types nothing could satisfy
}

type binder struct {
	opts   Options
	values map[source.StringID][]ast.ValueDecl
	types  map[source.StringID]*ast.TypeAliasDecl
	res    Result
}

// Bind resolves file.UnresolvedRefs against the top-level values and the
// placeholders in unresolved against the top-level types.
func Bind(file *ast.File, unresolved []*ast.TypeAliasDecl, opts Options) Result {
	if opts.Strings == nil {
		opts.Strings = source.NewInterner()
	}
	b := &binder{
		opts:   opts,
		values: file.TopLevelValues(),
		types:  file.TopLevelTypes(),
	}
	span := trace.Begin(opts.Tracer, trace.LayerPass, "namebind", 0)
	for _, ref := range file.UnresolvedRefs {
		b.bindRef(ref)
	}
	for _, ph := range unresolved {
		b.patchType(ph)
	}
	span.WithExtra("bound", fmt.Sprint(b.res.Bound)).
		WithExtra("undefined", fmt.Sprint(b.res.Undefined)).
		End("")
	return b.res
}

func (b *binder) bindRef(ref *ast.UnresolvedDeclRefExpr) {
	cands := b.values[ref.Name]
	switch len(cands) {
	case 0:
		b.res.Undefined++
		msg := fmt.Sprintf("use of unresolved identifier '%s'", b.name(ref.Name))
		diag.ReportError(b.opts.Reporter, diag.SemaUnresolvedSymbol, ref.Span, msg).Emit()
	case 1:
		ref.Bound = cands[0]
		b.res.Bound++
	default:
		ref.Candidates = cands
		b.res.Overloaded++
		msg := fmt.Sprintf("'%s' refers to %d overloaded declarations", b.name(ref.Name), len(cands))
		rb := diag.ReportInfo(b.opts.Reporter, diag.SemaAmbiguousRef, ref.Span, msg)
		for _, c := range cands {
			rb = rb.WithNote(c.NodeSpan(), "candidate declared here")
		}
		rb.Emit()
	}
}

// patchType handles one entry of the unresolved type list. Reconciled
// placeholders are skipped; the rest are patched or reported.
func (b *binder) patchType(ph *ast.TypeAliasDecl) {
	if !ph.IsUnresolved() {
		return
	}
	if def, ok := b.types[ph.Name]; ok && def != ph && !def.IsUnresolved() {
		ph.Resolve(def)
		b.res.Patched++
		trace.Point(b.opts.Tracer, trace.LayerNode, "type.patch", b.name(ph.Name))
		return
	}
	b.res.Undefined++
	msg := fmt.Sprintf("use of undeclared type '%s'", b.name(ph.Name))
	diag.ReportError(b.opts.Reporter, diag.SemaUndeclaredType, ph.NameSpan, msg).Emit()
}

func (b *binder) name(id source.StringID) string {
	if s, ok := b.opts.Strings.Lookup(id); ok {
		return s
	}
	return fmt.Sprintf("#%d", id)
}
