package ast

import "scopekit/internal/source"

// Decl is any named declaration.
type Decl interface {
	Node
	DeclName() source.StringID
	isDecl()
}

// ValueDecl lives in the value namespace (variables, parameters, functions).
type ValueDecl interface {
	Decl
	isValueDecl()
}

type VarDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Type     Type // nil when omitted
	Init     Expr // nil when omitted
}

type ParamDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Type     Type
	Index    int
}

type FuncDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Params   []*ParamDecl
	Result   Type // nil means no result
	Body     *BlockStmt
}

func (d *VarDecl) NodeSpan() source.Span       { return d.Span }
func (d *VarDecl) DeclName() source.StringID   { return d.Name }
func (*VarDecl) isDecl()                       {}
func (*VarDecl) isValueDecl()                  {}
func (d *ParamDecl) NodeSpan() source.Span     { return d.Span }
func (d *ParamDecl) DeclName() source.StringID { return d.Name }
func (*ParamDecl) isDecl()                     {}
func (*ParamDecl) isValueDecl()                {}
func (d *FuncDecl) NodeSpan() source.Span      { return d.Span }
func (d *FuncDecl) DeclName() source.StringID  { return d.Name }
func (*FuncDecl) isDecl()                      {}
func (*FuncDecl) isValueDecl()                 {}
