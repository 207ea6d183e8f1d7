package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.sk", []byte("var a : Int;"), 0)
	id2 := fs.Add("main.sk", []byte("var b : Int;"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("main.sk")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v, want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "var a : Int;" {
		t.Fatalf("old version lost: %q", got)
	}
	if fs.Get(FileID(42)) != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.sk")
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("var a;\r\nvar b;\r\n")...)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "var a;\nvar b;\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.sk")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestResolveAndLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("v.sk", []byte("ab\ncde\n\nf"))
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{5, LineCol{2, 3}},
		{7, LineCol{3, 1}},
		{8, LineCol{4, 1}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Errorf("offset %d: got %+v, want %+v", tc.off, start, tc.want)
		}
	}

	lines := map[uint32]string{1: "ab", 2: "cde", 3: "", 4: "f", 5: ""}
	for n, want := range lines {
		if got := f.Line(n); got != want {
			t.Errorf("Line(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Foo")
	b := in.Intern("Foo")
	c := in.Intern("Bar")
	if a != b || a == c {
		t.Fatalf("unexpected ids a=%d b=%d c=%d", a, b, c)
	}
	if a == NoStringID {
		t.Fatalf("non-empty string got NoStringID")
	}
	if in.Intern("") != NoStringID {
		t.Fatalf("empty string must map to NoStringID")
	}
	if s := in.MustLookup(c); s != "Bar" {
		t.Fatalf("lookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(100)); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("cross-file cover changed span: %v", got)
	}
	if !a.Cover(b).Contains(b) {
		t.Fatalf("cover must contain operand")
	}
}
