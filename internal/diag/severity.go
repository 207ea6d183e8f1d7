package diag

// Severity orders diagnostics; anything at SevError or above fails a run.
type Severity uint8

const (
	SevInfo Severity = iota // overload candidates, notes-only reports
	SevWarning
	SevError
)

var severityNames = [...]struct{ upper, label string }{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

// String is the upper-case form used by short and JSON output.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return "UNKNOWN"
}

// Label is the lower-case form printed in pretty headers.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s].label
	}
	return "unknown"
}

func (s Severity) IsError() bool { return s >= SevError }
