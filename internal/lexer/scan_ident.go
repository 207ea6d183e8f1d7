package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"scopekit/internal/diag"
	"scopekit/internal/token"
)

const utf8RuneSelf = utf8.RuneSelf

// scanIdentOrKeyword consumes an identifier. Non-ASCII identifiers are
// folded to NFC so that differently composed spellings intern to one name.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	ascii := true
	first := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if (first && !isIdentStartByte(b)) || !isIdentContinue(b) {
				break
			}
			lx.cursor.Bump()
			first = false
			continue
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
		if !unicode.IsLetter(r) && (first || !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r)) {
			break
		}
		ascii = false
		first = false
		lx.cursor.Off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
	}

	if lx.cursor.Off == mark {
		// a non-letter rune where an identifier was expected
		_, size := utf8.DecodeRune(lx.file.Content[mark:lx.cursor.Limit])
		lx.cursor.Off += uint32(size) // #nosec G115
		sp := lx.cursor.SpanFrom(mark)
		text := lx.cursor.Text(mark)
		lx.report(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	text := lx.cursor.Text(mark)
	if !ascii {
		text = norm.NFC.String(text)
	}
	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: text}
}
