package token

var keywords = map[string]Kind{
	"var":       KwVar,
	"func":      KwFunc,
	"typealias": KwTypealias,
	"struct":    KwStruct,
	"return":    KwReturn,
}

// LookupKeyword reports the keyword kind for an identifier spelling.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}
