package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("lex")
	tm.End(idx, "12 tokens")
	tm.Track("parse", func() string { return "" })
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "lex" || rep.Phases[0].Note != "12 tokens" {
		t.Fatalf("report = %+v", rep)
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "lex") || !strings.Contains(sum, "(12 tokens)") || !strings.Contains(sum, "total") {
		t.Fatalf("summary = %q", sum)
	}
}

func TestReportMerge(t *testing.T) {
	a := (&Timer{phases: []Phase{{Name: "parse", Dur: time.Millisecond, Note: "3 decls"}}}).Report()
	b := (&Timer{phases: []Phase{{Name: "parse", Dur: 2 * time.Millisecond}, {Name: "bind", Dur: time.Millisecond}}}).Report()
	rep := a.Merge(b).Merge(Report{})
	if len(rep.Phases) != 2 || rep.Phases[0].DurationMS != 3 || rep.TotalMS != 4 {
		t.Fatalf("merged report = %+v", rep)
	}
	if rep.Phases[0].Note != "" {
		t.Fatalf("merged phases must drop notes, got %q", rep.Phases[0].Note)
	}
	if len(a.Phases) != 1 || a.Phases[0].DurationMS != 1 {
		t.Fatalf("Merge must not modify its receiver: %+v", a)
	}
	if (&Timer{}).Report().Phases != nil {
		t.Fatalf("empty timer must produce an empty report")
	}
}
