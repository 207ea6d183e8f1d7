// Package diag defines the diagnostic model shared by the lexer, the parser
// and the name-binding pass.
//
// Producers emit through a Reporter, usually via ReportBuilder:
//
//	diag.ReportError(r, diag.SemaTypeRedefinition, span, msg).
//		WithNote(prev, "previous definition here").
//		Emit()
//
// BagReporter aggregates into a Bag, which supports limits, sorting and
// merging. Rendering lives in internal/diagfmt; this package does no IO.
//
// Contract violations inside the front end (for example closing a scope out
// of order) are programming errors and panic instead of producing a
// Diagnostic.
package diag
