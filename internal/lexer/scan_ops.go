package lexer

import "scopekit/internal/token"

var singleByte = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'=': token.Assign,
	'+': token.Plus,
	'*': token.Star,
}

func (lx *Lexer) scanPunct() (token.Token, bool) {
	mark := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	if ch == '-' {
		lx.cursor.Bump()
		kind := token.Minus
		if lx.cursor.Peek() == '>' {
			lx.cursor.Bump()
			kind = token.Arrow
		}
		return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.Text(mark)}, true
	}
	kind, ok := singleByte[ch]
	if !ok {
		return token.Token{}, false
	}
	lx.cursor.Bump()
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.Text(mark)}, true
}
