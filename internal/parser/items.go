package parser

import (
	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/token"
)

// parseTypeAlias parses `typealias Name = Type ;`. The underlying type is
// parsed before the name is bound, so `typealias A = A;` refers to an outer
// (or forward) A.
func (p *Parser) parseTypeAlias() (ast.Decl, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after type alias name"); !ok {
		return nil, false
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	decl := p.scopes.AddTypeAliasToScope(nameSpan, name, ty)
	decl.Span = kw.Span.Cover(ty.NodeSpan())
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after type alias")
	if ok {
		decl.Span = decl.Span.Cover(semi.Span)
	}
	return decl, ok
}

// parseVar parses `var name (: Type)? (= Expr)? ;`. The variable becomes
// visible only after its initialiser.
func (p *Parser) parseVar() (ast.Decl, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	v := &ast.VarDecl{Name: name, NameSpan: nameSpan, Span: kw.Span.Cover(nameSpan)}
	if p.at(token.Colon) {
		p.advance()
		ty, ok := p.parseType()
		v.Type = ty
		if !ok {
			p.scopes.AddToScope(v)
			return v, false
		}
		v.Span = v.Span.Cover(ty.NodeSpan())
	}
	if p.at(token.Assign) {
		p.advance()
		init, ok := p.parseExpr()
		v.Init = init
		if !ok {
			p.scopes.AddToScope(v)
			return v, false
		}
		v.Span = v.Span.Cover(init.NodeSpan())
	}
	p.scopes.AddToScope(v)
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after variable declaration")
	if ok {
		v.Span = v.Span.Cover(semi.Span)
	}
	return v, ok
}

// parseFunc parses `func name(params) (-> Type)? { ... }`. The function is
// bound before its signature so the body can call it.
func (p *Parser) parseFunc() (ast.Decl, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	fn := &ast.FuncDecl{Name: name, NameSpan: nameSpan, Span: kw.Span.Cover(nameSpan)}
	p.scopes.AddToScope(fn)
	return fn, p.parseFuncRest(fn)
}

// parseFuncRest parses parameters and body in the function's own scope.
func (p *Parser) parseFuncRest(fn *ast.FuncDecl) bool {
	defer p.openScope().Close()

	if !p.parseParams(fn) {
		return false
	}
	if p.at(token.Arrow) {
		p.advance()
		res, ok := p.parseType()
		fn.Result = res
		if !ok {
			return false
		}
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected function body, got "+describe(p.lx.Peek()))
		return false
	}
	body, ok := p.parseBlockBody()
	fn.Body = body
	fn.Span = fn.Span.Cover(body.Span)
	return ok
}

func (p *Parser) parseParams(fn *ast.FuncDecl) bool {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name")
	if !ok {
		return false
	}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param, ok := p.parseParam(len(fn.Params))
		if param != nil {
			fn.Params = append(fn.Params, param)
		}
		if !ok {
			p.resyncUntil(token.RParen, token.LBrace)
			break
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	_, ok = p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
	return ok
}

// parseParam parses `name : Type`; the parameter is bound after its type.
func (p *Parser) parseParam(index int) (*ast.ParamDecl, bool) {
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
		return nil, false
	}
	ty, ok := p.parseType()
	param := &ast.ParamDecl{
		Name:     name,
		NameSpan: nameSpan,
		Span:     nameSpan.Cover(ty.NodeSpan()),
		Type:     ty,
		Index:    index,
	}
	p.scopes.AddToScope(param)
	return param, ok
}

// parseStruct parses `struct Name { var... }`. The name is bound before the
// body so members can mention the struct itself.
func (p *Parser) parseStruct() (ast.Decl, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	body := &ast.StructType{Span: nameSpan}
	decl := p.scopes.AddTypeAliasToScope(nameSpan, name, body)
	decl.Span = kw.Span.Cover(nameSpan)

	ok = p.parseStructBody(body)
	decl.Span = decl.Span.Cover(body.Span)
	return decl, ok
}

func (p *Parser) parseStructBody(body *ast.StructType) bool {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after struct name")
	if !ok {
		return false
	}
	defer p.openScope().Close()

	body.Span = open.Span
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.at(token.KwVar) {
			tok := p.advance()
			p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected "+describe(tok)+" in struct body, expected 'var'")
			p.resyncUntil(token.KwVar, token.RBrace)
			continue
		}
		d, ok := p.parseVar()
		if v, isVar := d.(*ast.VarDecl); isVar {
			body.Members = append(body.Members, v)
		}
		if !ok {
			p.resyncStmt()
		}
	}
	closeTok, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	body.Span = body.Span.Cover(closeTok.Span)
	return ok
}
