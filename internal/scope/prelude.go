package scope

import (
	"scopekit/internal/ast"
	"scopekit/internal/source"
)

// PreludeEntry is a type name installed before any source is parsed.
type PreludeEntry struct {
	Name string
	Type ast.Type
}

// DefaultPrelude lists the built-in type names.
func DefaultPrelude() []PreludeEntry {
	return []PreludeEntry{
		{Name: "Int", Type: &ast.BuiltinType{Kind: ast.BuiltinInt}},
		{Name: "Bool", Type: &ast.BuiltinType{Kind: ast.BuiltinBool}},
		{Name: "String", Type: &ast.BuiltinType{Kind: ast.BuiltinString}},
	}
}

// InstallPrelude binds entries in the current scope, which must be the root.
func (i *Info) InstallPrelude(entries []PreludeEntry) []*ast.TypeAliasDecl {
	if depth := i.CurrentDepth(); depth != 0 {
		violation("InstallPrelude", "prelude must go into the root scope, current depth is %d", depth)
	}
	out := make([]*ast.TypeAliasDecl, 0, len(entries))
	for _, e := range entries {
		decl := &ast.TypeAliasDecl{
			Name:       i.strings.Intern(e.Name),
			Underlying: e.Type,
			Flags:      ast.TypeAliasBuiltin,
			Span:       source.Span{},
		}
		i.types.Insert(decl.Name, 0, decl)
		out = append(out, decl)
	}
	return out
}
