package scope

import (
	"scopekit/internal/ast"
	"scopekit/internal/source"
)

// AddToScope registers d in the value namespace at the current depth.
// Same-depth duplicates are allowed; overloads are sorted out after parsing.
func (i *Info) AddToScope(d ast.ValueDecl) {
	depth := i.CurrentDepth()
	if d == nil || d.DeclName() == source.NoStringID {
		return
	}
	i.values.Insert(d.DeclName(), depth, d)
}

// LookupValueName returns the innermost local binding of name. Names
// visible only at depth 0 report nil: top-level values may be overloaded
// and are bound once the whole file has been seen.
func (i *Info) LookupValueName(name source.StringID) ast.ValueDecl {
	d, depth, ok := i.values.LookupWithDepth(name)
	if !ok || depth == 0 {
		return nil
	}
	return d
}

// LookupValueNameAndLevel returns the innermost binding at any depth,
// including the top level.
func (i *Info) LookupValueNameAndLevel(name source.StringID) (ast.ValueDecl, uint32, bool) {
	return i.values.LookupWithDepth(name)
}
