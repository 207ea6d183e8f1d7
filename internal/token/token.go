package token

import "scopekit/internal/source"

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwVar, KwFunc, KwTypealias, KwStruct, KwReturn:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// StartsItem reports whether the token can begin a declaration.
func (t Token) StartsItem() bool {
	switch t.Kind {
	case KwVar, KwFunc, KwTypealias, KwStruct:
		return true
	default:
		return false
	}
}
