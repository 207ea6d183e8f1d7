package ast

import "scopekit/internal/source"

type Stmt interface {
	Node
	isStmt()
}

type BlockStmt struct {
	Stmts []Stmt
	Span  source.Span
}

type ReturnStmt struct {
	Value Expr // nil for a bare return
	Span  source.Span
}

type ExprStmt struct {
	X    Expr
	Span source.Span
}

type DeclStmt struct {
	Decl Decl
	Span source.Span
}

func (s *BlockStmt) NodeSpan() source.Span  { return s.Span }
func (s *ReturnStmt) NodeSpan() source.Span { return s.Span }
func (s *ExprStmt) NodeSpan() source.Span   { return s.Span }
func (s *DeclStmt) NodeSpan() source.Span   { return s.Span }
func (*BlockStmt) isStmt()                  {}
func (*ReturnStmt) isStmt()                 {}
func (*ExprStmt) isStmt()                   {}
func (*DeclStmt) isStmt()                   {}
