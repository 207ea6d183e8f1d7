package lexer

import (
	"fmt"

	"scopekit/internal/diag"
	"scopekit/internal/source"
	"scopekit/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one token lookahead
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// EmptySpan is a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) scan() token.Token {
	for {
		lx.skipTrivia()
		if lx.cursor.EOF() {
			return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
		}

		ch := lx.cursor.Peek()
		switch {
		case ch == '_' && !isIdentContinue(lx.cursor.PeekAt(1)):
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			return token.Token{Kind: token.Underscore, Span: lx.cursor.SpanFrom(mark), Text: "_"}
		case isIdentStartByte(ch) || ch >= utf8RuneSelf:
			return lx.scanIdentOrKeyword()
		case isDec(ch):
			return lx.scanNumber()
		default:
			if tok, ok := lx.scanPunct(); ok {
				return tok
			}
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(mark)
			lx.report(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", ch))
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(mark)}
		}
	}
}

// All drains the lexer into a slice ending with EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
