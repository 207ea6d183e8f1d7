package parser

import (
	"fmt"

	"scopekit/internal/diag"
	"scopekit/internal/source"
	"scopekit/internal/token"
)

// advance consumes the next token and remembers its span.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan points at the next token, or just past the last
// consumed one when the stream has run out.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports code and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.lx.Peek().Text}, false
}

// expectClose consumes the closing token of a pair opened at open.
func (p *Parser) expectClose(k token.Kind, code diag.Code, open source.Span) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	msg := fmt.Sprintf("expected '%s', got %s", k, describe(p.lx.Peek()))
	if b := diag.ReportError(p.reporter(), code, sp, msg); b != nil {
		b.WithNote(open, "opened here").Emit()
	}
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	p.reporter().Report(code, sev, sp, msg, nil)
}

func (p *Parser) reporter() diag.Reporter {
	return limitReporter{p: p}
}

// limitReporter is the only path from the parser and its scope session to
// Options.Reporter. Every error is counted in CurrentErrors; nothing is
// forwarded once MaxErrors has been exceeded.
type limitReporter struct{ p *Parser }

func (r limitReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	opts := &r.p.opts
	if sev.IsError() {
		opts.CurrentErrors++
	}
	if opts.Reporter == nil || (opts.MaxErrors != 0 && opts.CurrentErrors > opts.MaxErrors) {
		return
	}
	opts.Reporter.Report(code, sev, primary, msg, notes)
}

// resyncUntil skips tokens until one of stop (not consumed) or EOF.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	case token.IntLit:
		return fmt.Sprintf("number %s", tok.Text)
	default:
		if tok.Text != "" {
			return fmt.Sprintf("'%s'", tok.Text)
		}
		return fmt.Sprintf("'%s'", tok.Kind)
	}
}
