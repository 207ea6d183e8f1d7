package parser

import (
	"slices"

	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/lexer"
	"scopekit/internal/scope"
	"scopekit/internal/source"
	"scopekit/internal/token"
	"scopekit/internal/trace"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	Tracer        trace.Tracer
	// Prelude replaces the built-in type names; nil means scope.DefaultPrelude.
	Prelude []scope.PreludeEntry
}

type Result struct {
	File *ast.File
	// Scopes is the finished scope session. All scopes are closed by the
	// time ParseFile returns; the unresolved type list stays available.
	Scopes     *scope.Info
	Unresolved []*ast.TypeAliasDecl
	Builtins   []*ast.TypeAliasDecl
	Errors     uint
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	strs     *source.Interner
	scopes   *scope.Info
	file     *ast.File
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile parses the whole token stream of lx. Names are interned in
// strs, which must be the interner the caller later resolves names with.
func ParseFile(lx *lexer.Lexer, strs *source.Interner, opts Options) Result {
	if strs == nil {
		strs = source.NewInterner()
	}
	start := lx.Peek().Span
	p := &Parser{
		lx:       lx,
		strs:     strs,
		file:     &ast.File{ID: start.File},
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	p.scopes = scope.NewInfo(scope.Options{
		Reporter: p.reporter(),
		Strings:  strs,
		Tracer:   opts.Tracer,
	})

	prelude := opts.Prelude
	if prelude == nil {
		prelude = scope.DefaultPrelude()
	}
	builtins := p.parseRoot(prelude)
	p.file.Span = start.Cover(p.lx.Peek().Span)

	return Result{
		File:       p.file,
		Scopes:     p.scopes,
		Unresolved: p.scopes.Unresolved(),
		Builtins:   builtins,
		Errors:     p.opts.CurrentErrors,
	}
}

// parseRoot runs the item loop inside the file's root scope.
func (p *Parser) parseRoot(prelude []scope.PreludeEntry) []*ast.TypeAliasDecl {
	defer p.openScope().Close()
	builtins := p.scopes.InstallPrelude(prelude)
	p.parseItems()
	return builtins
}

func (p *Parser) openScope() *scope.Scope {
	return p.scopes.Open()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

func (p *Parser) parseItems() {
	for !p.at(token.EOF) {
		decl, ok := p.parseItem()
		if decl != nil {
			p.file.Decls = append(p.file.Decls, decl)
		}
		if !ok {
			p.resyncTop()
		}
	}
}

// parseItem dispatches on the first token of a declaration. A non-nil decl
// is returned even on failure when enough was parsed to register it.
func (p *Parser) parseItem() (ast.Decl, bool) {
	switch p.lx.Peek().Kind {
	case token.KwTypealias:
		return p.parseTypeAlias()
	case token.KwVar:
		return p.parseVar()
	case token.KwFunc:
		return p.parseFunc()
	case token.KwStruct:
		return p.parseStruct()
	default:
		tok := p.advance()
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected "+describe(tok)+", expected declaration")
		return nil, false
	}
}

// resyncTop skips to the next ';' (consumed) or declaration keyword.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon, token.KwTypealias, token.KwVar, token.KwFunc, token.KwStruct)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseIdent expects an identifier or '_' and interns it. '_' yields
// NoStringID.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Underscore) {
		return source.NoStringID, p.advance().Span, true
	}
	if p.at(token.Ident) {
		tok := p.advance()
		return p.strs.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+describe(p.lx.Peek()))
	return source.NoStringID, p.getDiagnosticSpan(), false
}
