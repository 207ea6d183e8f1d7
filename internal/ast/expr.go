package ast

import "scopekit/internal/source"

type Expr interface {
	Node
	isExpr()
}

type IntLit struct {
	Text string
	Span source.Span
}

// DeclRefExpr is a reference resolved while parsing (locals, parameters).
type DeclRefExpr struct {
	Decl ValueDecl
	Span source.Span
}

// UnresolvedDeclRefExpr is a reference left to the binding pass. Names
// visible only at the top level always land here since their overload set
// is not complete until the whole file is parsed.
type UnresolvedDeclRefExpr struct {
	Name       source.StringID
	Span       source.Span
	Bound      ValueDecl   // set by the binding pass when unambiguous
	Candidates []ValueDecl // set when the name is overloaded
}

type CallExpr struct {
	Callee Expr
	Args   []Expr
	Span   source.Span
}

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota + 1
	OpSub
	OpMul
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	default:
		return "?"
	}
}

type BinaryExpr struct {
	Op   BinaryOp
	LHS  Expr
	RHS  Expr
	Span source.Span
}

type ParenExpr struct {
	Inner Expr
	Span  source.Span
}

type ErrorExpr struct {
	Span source.Span
}

func (e *IntLit) NodeSpan() source.Span                { return e.Span }
func (e *DeclRefExpr) NodeSpan() source.Span           { return e.Span }
func (e *UnresolvedDeclRefExpr) NodeSpan() source.Span { return e.Span }
func (e *CallExpr) NodeSpan() source.Span              { return e.Span }
func (e *BinaryExpr) NodeSpan() source.Span            { return e.Span }
func (e *ParenExpr) NodeSpan() source.Span             { return e.Span }
func (e *ErrorExpr) NodeSpan() source.Span             { return e.Span }
func (*IntLit) isExpr()                                {}
func (*DeclRefExpr) isExpr()                           {}
func (*UnresolvedDeclRefExpr) isExpr()                 {}
func (*CallExpr) isExpr()                              {}
func (*BinaryExpr) isExpr()                            {}
func (*ParenExpr) isExpr()                             {}
func (*ErrorExpr) isExpr()                             {}
