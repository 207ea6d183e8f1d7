package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of input.
	EOF

	Ident
	IntLit

	KwVar       // var
	KwFunc      // func
	KwTypealias // typealias
	KwStruct    // struct
	KwReturn    // return

	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	Colon      // :
	Semicolon  // ;
	Comma      // ,
	Assign     // =
	Arrow      // ->
	Plus       // +
	Minus      // -
	Star       // *
	Underscore // _
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	IntLit:      "IntLit",
	KwVar:       "var",
	KwFunc:      "func",
	KwTypealias: "typealias",
	KwStruct:    "struct",
	KwReturn:    "return",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	Colon:       ":",
	Semicolon:   ";",
	Comma:       ",",
	Assign:      "=",
	Arrow:       "->",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Underscore:  "_",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
