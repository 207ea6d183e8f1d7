package ast

import "scopekit/internal/source"

type Type interface {
	Node
	isType()
}

// NamedType is a use of a type name.
type NamedType struct {
	Decl *TypeAliasDecl
	Span source.Span
}

type TupleType struct {
	Elems []Type
	Span  source.Span
}

// FuncType is Param -> Result.
type FuncType struct {
	Param  Type
	Result Type
	Span   source.Span
}

// StructType is the body of a struct declaration.
type StructType struct {
	Members []*VarDecl
	Span    source.Span
}

type BuiltinKind uint8

const (
	BuiltinInt BuiltinKind = iota + 1
	BuiltinBool
	BuiltinString
)

func (k BuiltinKind) String() string {
	switch k {
	case BuiltinInt:
		return "Int"
	case BuiltinBool:
		return "Bool"
	case BuiltinString:
		return "String"
	default:
		return "?"
	}
}

type BuiltinType struct {
	Kind BuiltinKind
}

// ErrorType stands in for a type that failed to parse.
type ErrorType struct {
	Span source.Span
}

func (t *NamedType) NodeSpan() source.Span   { return t.Span }
func (t *TupleType) NodeSpan() source.Span   { return t.Span }
func (t *FuncType) NodeSpan() source.Span    { return t.Span }
func (t *StructType) NodeSpan() source.Span  { return t.Span }
func (t *BuiltinType) NodeSpan() source.Span { return source.Span{} }
func (t *ErrorType) NodeSpan() source.Span   { return t.Span }
func (*NamedType) isType()                   {}
func (*TupleType) isType()                   {}
func (*FuncType) isType()                    {}
func (*StructType) isType()                  {}
func (*BuiltinType) isType()                 {}
func (*ErrorType) isType()                   {}
