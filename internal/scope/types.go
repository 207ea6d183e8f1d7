package scope

import (
	"fmt"

	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/source"
	"scopekit/internal/trace"
)

// LookupTypeNameAndLevel returns the innermost type binding of name and the
// depth it was bound at.
func (i *Info) LookupTypeNameAndLevel(name source.StringID) (*ast.TypeAliasDecl, uint32, bool) {
	return i.types.LookupWithDepth(name)
}

// LookupOrInsertTypeNameDecl resolves name in a type context. When nothing
// is visible it binds a placeholder at the current depth and records it in
// the unresolved list; repeated references then find the same placeholder.
func (i *Info) LookupOrInsertTypeNameDecl(name source.StringID, loc source.Span) *ast.TypeAliasDecl {
	depth := i.CurrentDepth()
	if d, ok := i.types.Lookup(name); ok {
		return d
	}
	placeholder := &ast.TypeAliasDecl{
		Name:     name,
		NameSpan: loc,
		Span:     loc,
		Flags:    ast.TypeAliasUnresolved,
		Depth:    depth,
	}
	i.types.Insert(name, depth, placeholder)
	i.byName[name] = append(i.byName[name], len(i.unresolved))
	i.unresolved = append(i.unresolved, pending{decl: placeholder, scope: i.top().id})
	trace.Point(i.tracer, trace.LayerNode, "type.placeholder", fmt.Sprintf("%s depth=%d", i.name(name), depth))
	return placeholder
}

// LookupOrInsertTypeName is LookupOrInsertTypeNameDecl wrapped as a type.
func (i *Info) LookupOrInsertTypeName(name source.StringID, loc source.Span) ast.Type {
	return &ast.NamedType{Decl: i.LookupOrInsertTypeNameDecl(name, loc), Span: loc}
}

// AddTypeAliasToScope defines name as ty in the current scope.
//
// A real definition already bound at the current depth makes this a
// redefinition: it is diagnosed, the first definition stays bound and the
// returned declaration is flagged TypeAliasRedefinition. Otherwise the new
// declaration is bound (shadowing outer ones, or a placeholder at this
// depth) and pending placeholders it satisfies are reconciled.
func (i *Info) AddTypeAliasToScope(loc source.Span, name source.StringID, ty ast.Type) *ast.TypeAliasDecl {
	depth := i.CurrentDepth()
	decl := &ast.TypeAliasDecl{
		Name:       name,
		NameSpan:   loc,
		Span:       loc,
		Underlying: ty,
		Depth:      depth,
	}

	if prev, level, ok := i.LookupTypeNameAndLevel(name); ok && level == depth && !prev.IsPlaceholder() {
		decl.Flags |= ast.TypeAliasRedefinition
		i.reportRedefinition(decl, prev)
		return decl
	}

	i.types.Insert(name, depth, decl)
	i.reconcile(decl)
	return decl
}

// reconcile resolves pending placeholders for def's name created in a scope
// that is still open (the current one or any enclosing it) or in a closed
// scope nested inside the current one. Placeholders from closed sibling
// scopes are left for the binding pass.
func (i *Info) reconcile(def *ast.TypeAliasDecl) {
	cur := i.top()
	for _, idx := range i.byName[def.Name] {
		p := i.unresolved[idx]
		if !p.decl.IsUnresolved() {
			continue
		}
		if !i.isOpen(p.scope) && !i.encloses(cur, p.scope) {
			continue
		}
		p.decl.Resolve(def)
		trace.Point(i.tracer, trace.LayerNode, "type.reconcile",
			fmt.Sprintf("%s placeholder depth=%d definition depth=%d", i.name(def.Name), p.decl.Depth, def.Depth))
	}
}

func (i *Info) reportRedefinition(decl, prev *ast.TypeAliasDecl) {
	msg := fmt.Sprintf("redefinition of type named '%s'", i.name(decl.Name))
	b := diag.ReportError(i.reporter, diag.SemaTypeRedefinition, decl.NameSpan, msg)
	if b == nil {
		return
	}
	if prev.Flags&ast.TypeAliasBuiltin != 0 {
		b.WithNote(prev.NameSpan, "built-in declaration here")
	} else {
		b.WithNote(prev.NameSpan, "previous definition here")
	}
	b.Emit()
}

// Unresolved returns every placeholder created so far, in creation order,
// including those already reconciled. The list only ever grows.
func (i *Info) Unresolved() []*ast.TypeAliasDecl {
	out := make([]*ast.TypeAliasDecl, len(i.unresolved))
	for idx, p := range i.unresolved {
		out[idx] = p.decl
	}
	return out
}

// Pending returns the placeholders that are still unresolved.
func (i *Info) Pending() []*ast.TypeAliasDecl {
	var out []*ast.TypeAliasDecl
	for _, p := range i.unresolved {
		if p.decl.IsUnresolved() {
			out = append(out, p.decl)
		}
	}
	return out
}
