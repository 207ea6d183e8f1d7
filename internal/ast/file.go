package ast

import "scopekit/internal/source"

// File is the root of one parsed source file.
type File struct {
	ID    source.FileID
	Span  source.Span
	Decls []Decl
	// UnresolvedRefs lists every value reference the parser could not bind,
	// in source order.
	UnresolvedRefs []*UnresolvedDeclRefExpr
}

func (f *File) NodeSpan() source.Span { return f.Span }

// TopLevelValues groups top-level value declarations by name in
// declaration order.
func (f *File) TopLevelValues() map[source.StringID][]ValueDecl {
	out := make(map[source.StringID][]ValueDecl)
	for _, d := range f.Decls {
		if vd, ok := d.(ValueDecl); ok && vd.DeclName() != source.NoStringID {
			out[vd.DeclName()] = append(out[vd.DeclName()], vd)
		}
	}
	return out
}

// TopLevelTypes returns the bound top-level type aliases by name. Redefinitions
// are skipped so the first definition wins.
func (f *File) TopLevelTypes() map[source.StringID]*TypeAliasDecl {
	out := make(map[source.StringID]*TypeAliasDecl)
	for _, d := range f.Decls {
		td, ok := d.(*TypeAliasDecl)
		if !ok || td.Flags&TypeAliasRedefinition != 0 {
			continue
		}
		if _, seen := out[td.Name]; !seen {
			out[td.Name] = td
		}
	}
	return out
}
