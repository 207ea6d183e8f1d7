package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1004

	// syntax
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2006
	SynUnclosedBrace    Code = 2007
	SynExpectSemicolon  Code = 2012
	SynExpectIdentifier Code = 2102
	SynExpectType       Code = 2202
	SynExpectExpression Code = 2203
	SynExpectColon      Code = 2204

	// name binding
	SemaInfo             Code = 3000
	SemaTypeRedefinition Code = 3002
	SemaUnresolvedSymbol Code = 3005
	SemaUndeclaredType   Code = 3006
	SemaAmbiguousRef     Code = 3007

	IOLoadFileError Code = 4001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexUnknownChar:       "Unknown character",
	LexBadNumber:         "Malformed number literal",
	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynUnclosedParen:     "Unclosed parenthesis",
	SynUnclosedBrace:     "Unclosed brace",
	SynExpectSemicolon:   "Expected ';'",
	SynExpectIdentifier:  "Expected identifier",
	SynExpectType:        "Expected type",
	SynExpectExpression:  "Expected expression",
	SynExpectColon:       "Expected ':'",
	SemaInfo:             "Name binding information",
	SemaTypeRedefinition: "Redefinition of type",
	SemaUnresolvedSymbol: "Use of unresolved identifier",
	SemaUndeclaredType:   "Use of undeclared type",
	SemaAmbiguousRef:     "Reference to overloaded name",
	IOLoadFileError:      "I/O load file error",
	ObsInfo:              "Observability information",
	ObsTimings:           "Pipeline timings",
}

// ID is the stable short form used in output, e.g. "SEM3002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
