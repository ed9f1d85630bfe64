package jiter

import (
	"os"
	"testing"
)

func loadPass1(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/pass1.json")
	if err != nil {
		t.Fatalf("reading testdata/pass1.json: %v", err)
	}
	return data
}

// TestPass1Parses exercises the full classic JSON-test-suite pass1 document
// end to end through the value builder, the typed cursor, and skip.
func TestPass1Parses(t *testing.T) {
	data := loadPass1(t)

	v, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	arr, ok := v.Array()
	if !ok {
		t.Fatal("expected top-level array")
	}
	if arr.Len() != 20 {
		t.Fatalf("expected 20 top-level elements, got %d", arr.Len())
	}
	first, _ := arr.At(0)
	if s, ok := first.Str(); !ok || s != "JSON Test Pattern pass1" {
		t.Fatalf("unexpected first element: %q, %v", s, ok)
	}
	last, _ := arr.At(arr.Len() - 1)
	if s, ok := last.Str(); !ok || s != "rosebud" {
		t.Fatalf("unexpected last element: %q, %v", s, ok)
	}

	out := AppendJSON(nil, v)
	v2, err := Parse(out)
	if err != nil {
		t.Fatalf("re-parsing serialized output: %v", err)
	}
	arr2, _ := v2.Array()
	if arr2.Len() != arr.Len() {
		t.Fatalf("round trip changed element count: %d vs %d", arr2.Len(), arr.Len())
	}
}

// TestPass1SkipsWithoutError exercises next_skip across every top-level
// element via the typed cursor, the way a caller uninterested in most of the
// document would use it.
func TestPass1SkipsWithoutError(t *testing.T) {
	data := loadPass1(t)
	j := New(data)
	pk, hasElem, err := j.NextArray()
	if err != nil {
		t.Fatalf("NextArray: %v", err)
	}
	count := 0
	for hasElem {
		if err := j.KnownSkip(pk); err != nil {
			t.Fatalf("KnownSkip at element %d: %v", count, err)
		}
		count++
		pk, hasElem, err = j.ArrayStep()
		if err != nil {
			t.Fatalf("ArrayStep at element %d: %v", count, err)
		}
	}
	if count != 20 {
		t.Fatalf("expected 20 elements skipped, got %d", count)
	}
	if err := j.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

// TestPass1AllPrefixesSucceedUnderPartialMode mirrors spec.md §8.1's
// testable property: every prefix of the document, fed through the builder
// with partial recovery (including trailing strings) enabled, parses
// without error.
func TestPass1AllPrefixesSucceedUnderPartialMode(t *testing.T) {
	data := loadPass1(t)
	for end := 1; end <= len(data); end++ {
		_, err := Parse(data[:end], WithPartialMode(PartialTrailingStrings))
		if err != nil {
			t.Fatalf("prefix ending at %d failed: %#v", end, err)
		}
	}
}

// TestPass1FullDocumentNeedsNoPartialMode confirms the complete document
// parses cleanly with partial mode off, establishing the baseline the
// prefix sweep above is relative to.
func TestPass1FullDocumentNeedsNoPartialMode(t *testing.T) {
	data := loadPass1(t)
	if _, err := Parse(data); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}
