package token

import "testing"

func TestKeywords(t *testing.T) {
	for spelling, kind := range keywords {
		if kind.String() != spelling {
			t.Errorf("keyword %q renders as %q", spelling, kind.String())
		}
		if !(Token{Kind: kind}).IsKeyword() {
			t.Errorf("%q not reported as keyword", spelling)
		}
	}
	if _, ok := LookupKeyword("Int"); ok {
		t.Fatalf("built-in type names must stay identifiers")
	}
}

func TestKindStringCoversAll(t *testing.T) {
	for k := Invalid; k <= Underscore; k++ {
		if k.String() == "Unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if Kind(200).String() != "Unknown" {
		t.Fatalf("out of range kind must be Unknown")
	}
}
