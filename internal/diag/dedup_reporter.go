package diag

import "scopekit/internal/source"

// DedupReporter drops a diagnostic when one with the same code, severity,
// primary span and message already went through. Error recovery can land on
// the same token more than once (an unclosed brace seen by every enclosing
// block at EOF); only the first report is kept.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	Suppressed int
}

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	key := dedupKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		r.Suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}
