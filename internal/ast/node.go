// Package ast holds the syntax tree produced by the parser.
//
// Nodes are plain pointers. References between declarations (a NamedType
// pointing at its TypeAliasDecl, a DeclRefExpr pointing at a VarDecl) are
// filled in while parsing by the scope tracker and later patched by the
// name-binding pass.
package ast

import "scopekit/internal/source"

// Node is anything with a source location.
type Node interface {
	NodeSpan() source.Span
}
