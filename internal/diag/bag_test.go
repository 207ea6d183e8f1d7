package diag

import (
	"testing"

	"scopekit/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}

	ReportWarning(r, SemaAmbiguousRef, source.Span{Start: 10, End: 12}, "late").Emit()
	ReportError(r, SemaUndeclaredType, source.Span{Start: 1, End: 3}, "early").
		WithNote(source.Span{Start: 20, End: 21}, "note").
		Emit()
	ReportError(r, SynUnexpectedToken, source.Span{Start: 0, End: 1}, "dropped").Emit()

	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if bag.Dropped() != 1 {
		t.Fatalf("expected 1 dropped, got %d", bag.Dropped())
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Message != "early" || len(items[0].Notes) != 1 {
		t.Fatalf("unexpected order or notes: %+v", items)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}
	if bag.Count(SemaUndeclaredType) != 1 {
		t.Fatalf("Count mismatch")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, SemaTypeRedefinition, source.Span{}, "x")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected single emit, got %d", bag.Len())
	}
	// nil reporter yields nil builder, chaining must not panic
	ReportError(nil, SemaTypeRedefinition, source.Span{}, "x").WithNote(source.Span{}, "n").Emit()
}

func TestDedupAndCounting(t *testing.T) {
	bag := NewBag(10)
	counting := &CountingReporter{Next: BagReporter{Bag: bag}}
	r := NewDedupReporter(counting)
	sp := source.Span{File: 1, Start: 4, End: 7}
	r.Report(SemaUndeclaredType, SevError, sp, "use of undeclared type 'Foo'", nil)
	r.Report(SemaUndeclaredType, SevError, sp, "use of undeclared type 'Foo'", nil)
	r.Report(SemaAmbiguousRef, SevWarning, sp, "w", nil)
	if bag.Len() != 2 || counting.Errors != 1 || r.Suppressed != 1 {
		t.Fatalf("len=%d errors=%d suppressed=%d", bag.Len(), counting.Errors, r.Suppressed)
	}
}

func TestSeverityNames(t *testing.T) {
	cases := []struct {
		sev          Severity
		upper, label string
		isError      bool
	}{
		{SevInfo, "INFO", "info", false},
		{SevWarning, "WARNING", "warning", false},
		{SevError, "ERROR", "error", true},
		{Severity(9), "UNKNOWN", "unknown", true},
	}
	for _, tc := range cases {
		if tc.sev.String() != tc.upper || tc.sev.Label() != tc.label || tc.sev.IsError() != tc.isError {
			t.Fatalf("%d: got %q %q %v", tc.sev, tc.sev.String(), tc.sev.Label(), tc.sev.IsError())
		}
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:       "LEX1001",
		SynExpectType:        "SYN2202",
		SemaTypeRedefinition: "SEM3002",
		IOLoadFileError:      "IO4001",
		UnknownCode:          "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
}
