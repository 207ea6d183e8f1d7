package lexer

import (
	"scopekit/internal/diag"
	"scopekit/internal/token"
)

// scanNumber accepts decimal integers with '_' separators. A trailing
// identifier character makes the literal malformed.
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	kind := token.IntLit
	if isIdentContinue(lx.cursor.Peek()) {
		for isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		kind = token.Invalid
		lx.report(diag.LexBadNumber, lx.cursor.SpanFrom(mark), "malformed number literal")
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.Text(mark)}
}
