package parser

import (
	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/token"
)

// parseType parses `primType ('->' type)?`. It never returns nil; on
// failure the result is an *ast.ErrorType.
func (p *Parser) parseType() (ast.Type, bool) {
	lhs, ok := p.parsePrimType()
	if !ok || !p.at(token.Arrow) {
		return lhs, ok
	}
	p.advance()
	rhs, ok := p.parseType()
	return &ast.FuncType{Param: lhs, Result: rhs, Span: lhs.NodeSpan().Cover(rhs.NodeSpan())}, ok
}

func (p *Parser) parsePrimType() (ast.Type, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.scopes.LookupOrInsertTypeName(p.strs.Intern(tok.Text), tok.Span), true
	case token.LParen:
		return p.parseTupleType()
	default:
		sp := p.getDiagnosticSpan()
		p.report(diag.SynExpectType, diag.SevError, sp, "expected type, got "+describe(tok))
		return &ast.ErrorType{Span: sp}, false
	}
}

// parseTupleType parses `( (type (, type)*)? )`.
func (p *Parser) parseTupleType() (ast.Type, bool) {
	open := p.advance()
	tuple := &ast.TupleType{Span: open.Span}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		elem, ok := p.parseType()
		tuple.Elems = append(tuple.Elems, elem)
		if !ok {
			return tuple, false
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
	tuple.Span = tuple.Span.Cover(closeTok.Span)
	return tuple, ok
}
