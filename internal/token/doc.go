// Package token defines lexical token kinds for scopekit sources.
// Invariants:
//   - Token.Span covers the source bytes of the token; identifier Text is
//     NFC-normalised and may differ from those bytes.
//   - Built-in type names (Int, Bool, String) are identifiers; the parser
//     installs them as a prelude, the lexer does not know about them.
//   - A lone '_' is Underscore, never an Ident.
package token
