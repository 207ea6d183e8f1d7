package parser

import (
	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/token"
)

// parseExpr parses additive expressions. Like parseType it always returns a
// node, *ast.ErrorExpr on failure.
func (p *Parser) parseExpr() (ast.Expr, bool) {
	lhs, ok := p.parseTerm()
	for ok && p.atOr(token.Plus, token.Minus) {
		op := ast.OpAdd
		if p.advance().Kind == token.Minus {
			op = ast.OpSub
		}
		var rhs ast.Expr
		rhs, ok = p.parseTerm()
		lhs = &ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs, Span: lhs.NodeSpan().Cover(rhs.NodeSpan())}
	}
	return lhs, ok
}

func (p *Parser) parseTerm() (ast.Expr, bool) {
	lhs, ok := p.parsePostfix()
	for ok && p.at(token.Star) {
		p.advance()
		var rhs ast.Expr
		rhs, ok = p.parsePostfix()
		lhs = &ast.BinaryExpr{Op: ast.OpMul, LHS: lhs, RHS: rhs, Span: lhs.NodeSpan().Cover(rhs.NodeSpan())}
	}
	return lhs, ok
}

func (p *Parser) parsePostfix() (ast.Expr, bool) {
	x, ok := p.parsePrimary()
	for ok && p.at(token.LParen) {
		x, ok = p.parseCall(x)
	}
	return x, ok
}

func (p *Parser) parseCall(callee ast.Expr) (ast.Expr, bool) {
	open := p.advance()
	call := &ast.CallExpr{Callee: callee, Span: callee.NodeSpan().Cover(open.Span)}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		call.Args = append(call.Args, arg)
		if !ok {
			return call, false
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
	call.Span = call.Span.Cover(closeTok.Span)
	return call, ok
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.resolveValue(tok), true
	case token.IntLit:
		p.advance()
		return &ast.IntLit{Text: tok.Text, Span: tok.Span}, true
	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		paren := &ast.ParenExpr{Inner: inner, Span: open.Span.Cover(inner.NodeSpan())}
		if !ok {
			return paren, false
		}
		closeTok, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
		paren.Span = paren.Span.Cover(closeTok.Span)
		return paren, ok
	default:
		sp := p.getDiagnosticSpan()
		p.report(diag.SynExpectExpression, diag.SevError, sp, "expected expression, got "+describe(tok))
		return &ast.ErrorExpr{Span: sp}, false
	}
}

// resolveValue binds a name reference to a local declaration when one is
// visible, otherwise leaves it for the binding pass.
func (p *Parser) resolveValue(tok token.Token) ast.Expr {
	name := p.strs.Intern(tok.Text)
	if d := p.scopes.LookupValueName(name); d != nil {
		return &ast.DeclRefExpr{Decl: d, Span: tok.Span}
	}
	ref := &ast.UnresolvedDeclRefExpr{Name: name, Span: tok.Span}
	p.file.UnresolvedRefs = append(p.file.UnresolvedRefs, ref)
	return ref
}
