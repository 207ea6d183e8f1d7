package parser

import (
	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/token"
)

// parseBlock parses a nested `{ ... }` in a scope of its own.
func (p *Parser) parseBlock() (*ast.BlockStmt, bool) {
	defer p.openScope().Close()
	return p.parseBlockBody()
}

// parseBlockBody parses `{ stmt* }` in the current scope. Function bodies
// use it directly so parameters and top-level locals share one scope.
func (p *Parser) parseBlockBody() (*ast.BlockStmt, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	block := &ast.BlockStmt{Span: open.Span}
	if !ok {
		return block, false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if !ok {
			p.resyncStmt()
		}
	}
	closeTok, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	block.Span = block.Span.Cover(closeTok.Span)
	return block, ok
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.StartsItem():
		decl, ok := p.parseItem()
		if decl == nil {
			return nil, ok
		}
		return &ast.DeclStmt{Decl: decl, Span: decl.NodeSpan()}, ok
	case tok.Kind == token.LBrace:
		return p.parseBlock()
	case tok.Kind == token.KwReturn:
		return p.parseReturn()
	case tok.Kind == token.Semicolon:
		p.advance()
		return nil, true
	default:
		x, ok := p.parseExpr()
		stmt := &ast.ExprStmt{X: x, Span: x.NodeSpan()}
		if !ok {
			return stmt, false
		}
		semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression")
		if ok {
			stmt.Span = stmt.Span.Cover(semi.Span)
		}
		return stmt, ok
	}
}

func (p *Parser) parseReturn() (ast.Stmt, bool) {
	kw := p.advance()
	ret := &ast.ReturnStmt{Span: kw.Span}
	if !p.at(token.Semicolon) {
		x, ok := p.parseExpr()
		ret.Value = x
		ret.Span = ret.Span.Cover(x.NodeSpan())
		if !ok {
			return ret, false
		}
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return")
	if ok {
		ret.Span = ret.Span.Cover(semi.Span)
	}
	return ret, ok
}

// resyncStmt skips to the end of the broken statement: past the next ';',
// or up to a '}' or the start of a declaration.
func (p *Parser) resyncStmt() {
	p.resyncUntil(token.Semicolon, token.RBrace, token.KwTypealias, token.KwVar, token.KwFunc, token.KwStruct)
	if p.at(token.Semicolon) {
		p.advance()
	}
}
