package ast

import "scopekit/internal/source"

// TypeAliasFlags describe how a type alias came to exist.
type TypeAliasFlags uint8

const (
	// TypeAliasUnresolved marks a placeholder created for a name used
	// before its definition was seen.
	TypeAliasUnresolved TypeAliasFlags = 1 << iota
	// TypeAliasRedefinition marks a second definition of a name in the
	// same scope. It is kept in the tree but never bound.
	TypeAliasRedefinition
	// TypeAliasBuiltin marks prelude entries.
	TypeAliasBuiltin
)

// TypeAliasDecl binds a name in the type namespace.
type TypeAliasDecl struct {
	Name       source.StringID
	NameSpan   source.Span
	Span       source.Span
	Underlying Type // nil while unresolved
	Flags      TypeAliasFlags
	Depth      uint32 // scope depth the declaration was bound at
	ResolvedTo *TypeAliasDecl
}

func (d *TypeAliasDecl) NodeSpan() source.Span     { return d.Span }
func (d *TypeAliasDecl) DeclName() source.StringID { return d.Name }
func (*TypeAliasDecl) isDecl()                     {}

func (d *TypeAliasDecl) IsUnresolved() bool {
	return d.Flags&TypeAliasUnresolved != 0
}

// IsPlaceholder reports whether d was created for a forward reference,
// resolved or not.
func (d *TypeAliasDecl) IsPlaceholder() bool {
	return d.Flags&TypeAliasUnresolved != 0 || d.ResolvedTo != nil
}

// Resolve reconciles a placeholder with its real definition.
func (d *TypeAliasDecl) Resolve(def *TypeAliasDecl) {
	if def == nil || def == d {
		return
	}
	d.ResolvedTo = def
	d.Underlying = def.Underlying
	d.Flags &^= TypeAliasUnresolved
}

// Canonical follows reconciliation links to the real definition.
func (d *TypeAliasDecl) Canonical() *TypeAliasDecl {
	cur := d
	for cur != nil && cur.ResolvedTo != nil {
		cur = cur.ResolvedTo
	}
	return cur
}
