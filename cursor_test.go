package jiter

import "testing"

// TestArrayWalk mirrors the array walk scenario: "[1, 2.2, 3]" should yield
// an int, a float, and another int across NextArray/ArrayStep.
func TestArrayWalk(t *testing.T) {
	j := New([]byte("[1, 2.2, 3]"))
	pk, hasElem, err := j.NextArray()
	if err != nil || !hasElem {
		t.Fatalf("NextArray: pk=%v hasElem=%v err=%v", pk, hasElem, err)
	}
	iv, err := j.KnownInt(pk)
	if err != nil || iv.Small != 1 {
		t.Fatalf("KnownInt: %+v err=%v", iv, err)
	}

	pk, hasElem, err = j.ArrayStep()
	if err != nil || !hasElem {
		t.Fatalf("ArrayStep 1: pk=%v hasElem=%v err=%v", pk, hasElem, err)
	}
	f, err := j.KnownFloat(pk)
	if err != nil || f != 2.2 {
		t.Fatalf("KnownFloat: %v err=%v", f, err)
	}

	pk, hasElem, err = j.ArrayStep()
	if err != nil || !hasElem {
		t.Fatalf("ArrayStep 2: pk=%v hasElem=%v err=%v", pk, hasElem, err)
	}
	iv, err = j.KnownInt(pk)
	if err != nil || iv.Small != 3 {
		t.Fatalf("KnownInt 2: %+v err=%v", iv, err)
	}

	_, hasElem, err = j.ArrayStep()
	if err != nil || hasElem {
		t.Fatalf("expected array end, got hasElem=%v err=%v", hasElem, err)
	}
	if err := j.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

// TestDuplicateKeyDetection mirrors the duplicate-key scenario: with
// detection opted into via WithAllowDuplicateKeys(false), the second
// occurrence of a repeated key must fail at the position of its opening
// quote, naming the offending key.
func TestDuplicateKeyDetection(t *testing.T) {
	src := []byte(`{"a": 1, "a": 2}`)
	_, err := Parse(src, WithAllowDuplicateKeys(false))
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
	je, ok := err.(*JSONError)
	if !ok || je.Kind != DuplicateKey {
		t.Fatalf("expected DuplicateKey error, got %#v", err)
	}
	wantIndex := 9 // opening quote of the second "a"
	if je.Index != wantIndex {
		t.Fatalf("expected duplicate key detected at index %d, got %d", wantIndex, je.Index)
	}
	if je.Key != "a" {
		t.Fatalf("expected offending key %q, got %q", "a", je.Key)
	}
}

// TestDuplicateKeysAllowedByDefault mirrors spec.md §3.1/§4.8's default:
// without opting into detection, a repeated key is simply appended twice,
// and the consumer resolves first/last via Entries' last-wins order.
func TestDuplicateKeysAllowedByDefault(t *testing.T) {
	src := []byte(`{"a": 1, "a": 2}`)
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("expected no error by default, got %v", err)
	}
	obj, ok := v.Object()
	if !ok {
		t.Fatalf("expected an object, got %v", v.Type())
	}
	entries := obj.Entries()
	if len(entries) != 1 || entries[0].Key != "a" {
		t.Fatalf("expected last-wins resolution to a single %q entry, got %#v", "a", entries)
	}
	iv, ok := entries[0].Val.Int()
	if !ok || iv.Small != 2 {
		t.Fatalf("expected last-wins value 2, got %#v", entries[0].Val)
	}
}

// TestNumberOutOfRange mirrors the 4302-digit integer scenario: the ceiling
// is reported at a fixed offset past maxDigits regardless of how much more
// input follows.
func TestNumberOutOfRange(t *testing.T) {
	digits := make([]byte, 4302)
	for i := range digits {
		digits[i] = '9'
	}
	_, err := Parse(digits)
	if err == nil {
		t.Fatal("expected NumberOutOfRange error")
	}
	je, ok := err.(*JSONError)
	if !ok || je.Kind != NumberOutOfRange {
		t.Fatalf("expected NumberOutOfRange, got %#v", err)
	}
	if je.Index != 4301 {
		t.Fatalf("expected index 4301, got %d", je.Index)
	}
}

// TestSurrogatePairDecode mirrors "\"\\uD83D\\uDE00\"" decoding to the U+1F600
// grinning-face emoji.
func TestSurrogatePairDecode(t *testing.T) {
	v, err := Parse([]byte("\"\\uD83D\\uDE00\""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, ok := v.Str()
	if !ok {
		t.Fatal("expected string value")
	}
	if s != "\U0001F600" {
		t.Fatalf("got %q, want grinning face emoji", s)
	}
}

// TestTrailingComma mirrors the "[1,]"-shaped trailing-comma scenario, with
// the error located at index 6 for "[1, 2,]" (line 1, col 7).
func TestTrailingComma(t *testing.T) {
	_, err := Parse([]byte("[1, 2,]"))
	if err == nil {
		t.Fatal("expected TrailingComma error")
	}
	je, ok := err.(*JSONError)
	if !ok || je.Kind != TrailingComma {
		t.Fatalf("expected TrailingComma, got %#v", err)
	}
	if je.Index != 6 {
		t.Fatalf("expected index 6, got %d", je.Index)
	}
	pos := je.Position([]byte("[1, 2,]"))
	if pos.Line != 1 || pos.Column != 7 {
		t.Fatalf("expected (line 1, col 7), got %+v", pos)
	}
}

// TestWrongType mirrors calling NextStr on a number: the cursor must not
// advance past the offending value.
func TestWrongType(t *testing.T) {
	j := New([]byte(" 123 "))
	_, err := j.NextStr()
	if err == nil {
		t.Fatal("expected WrongTypeError")
	}
	wte, ok := err.(*WrongTypeError)
	if !ok {
		t.Fatalf("expected *WrongTypeError, got %#v", err)
	}
	if wte.Expected != TypeString || wte.Actual != TypeInt {
		t.Fatalf("unexpected WrongTypeError fields: %+v", wte)
	}
	// the cursor must not have advanced: the value is still readable.
	iv, err := j.NextInt()
	if err != nil || iv.Small != 123 {
		t.Fatalf("expected to still be able to read 123, got %+v err=%v", iv, err)
	}
}

func TestObjectWalk(t *testing.T) {
	j := New([]byte(`{"a": 1, "b": 2}`))
	key, hasKey, err := j.NextObject()
	if err != nil || !hasKey || key != "a" {
		t.Fatalf("NextObject: key=%q hasKey=%v err=%v", key, hasKey, err)
	}
	iv, err := j.NextInt()
	if err != nil || iv.Small != 1 {
		t.Fatalf("NextInt: %+v err=%v", iv, err)
	}
	key, hasKey, err = j.ObjectStep()
	if err != nil || !hasKey || key != "b" {
		t.Fatalf("ObjectStep: key=%q hasKey=%v err=%v", key, hasKey, err)
	}
	iv, err = j.NextInt()
	if err != nil || iv.Small != 2 {
		t.Fatalf("NextInt 2: %+v err=%v", iv, err)
	}
	_, hasKey, err = j.ObjectStep()
	if err != nil || hasKey {
		t.Fatalf("expected object end, hasKey=%v err=%v", hasKey, err)
	}
}

func TestNextSkip(t *testing.T) {
	j := New([]byte(`[{"a": [1, 2, {"b": null}]}, "tail"]`))
	pk, hasElem, err := j.NextArray()
	if err != nil || !hasElem {
		t.Fatalf("NextArray: %v %v %v", pk, hasElem, err)
	}
	if err := j.KnownSkip(pk); err != nil {
		t.Fatalf("KnownSkip: %v", err)
	}
	pk, hasElem, err = j.ArrayStep()
	if err != nil || !hasElem {
		t.Fatalf("ArrayStep: %v %v %v", pk, hasElem, err)
	}
	s, err := j.KnownStr(pk)
	if err != nil || s != "tail" {
		t.Fatalf("KnownStr: %q err=%v", s, err)
	}
}

func TestNextValueRoundTrip(t *testing.T) {
	src := []byte(`{"a": [1, 2.5, "x", null, true], "b": {"c": 1}}`)
	j := New(src)
	v, err := j.NextValue()
	if err != nil {
		t.Fatalf("NextValue: %v", err)
	}
	if err := j.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	// AppendJSON writes compact output, so the source's spaces are dropped.
	want := `{"a":[1,2.5,"x",null,true],"b":{"c":1}}`
	out := AppendJSON(nil, v)
	if string(out) != want {
		t.Fatalf("round trip mismatch:\n got: %s\nwant: %s", out, want)
	}
}

func TestStringCacheWiring(t *testing.T) {
	cache := NewStringCache()
	j := New([]byte(`{"name": "alice", "name2": "alice"}`), WithStringCache(cache))
	_, _, err := j.NextObject()
	if err != nil {
		t.Fatalf("NextObject: %v", err)
	}
	s1, err := j.NextStr()
	if err != nil {
		t.Fatalf("NextStr: %v", err)
	}
	if _, _, err := j.ObjectStep(); err != nil {
		t.Fatalf("ObjectStep: %v", err)
	}
	s2, err := j.NextStr()
	if err != nil {
		t.Fatalf("NextStr 2: %v", err)
	}
	if s1 != s2 {
		t.Fatalf("expected interned strings to be equal, got %q vs %q", s1, s2)
	}
}

// TestKnownArrayObjectAndBytesVariants exercises the known_-form and
// Bytes-returning siblings of NextArray/NextObject/ObjectStep.
func TestKnownArrayObjectAndBytesVariants(t *testing.T) {
	j := New([]byte(`[{"a": 1, "b": 2}]`))
	pk, err := j.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	pk, hasElem, err := j.KnownArray(pk)
	if err != nil || !hasElem {
		t.Fatalf("KnownArray: pk=%v hasElem=%v err=%v", pk, hasElem, err)
	}

	jo := New([]byte(`{"a": 1, "b": 2}`))
	pk, err = jo.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	key, hasKey, err := jo.KnownObject(pk)
	if err != nil || !hasKey || key != "a" {
		t.Fatalf("KnownObject: key=%q hasKey=%v err=%v", key, hasKey, err)
	}
	if _, err := jo.NextInt(); err != nil {
		t.Fatalf("NextInt: %v", err)
	}
	kb, hasKey, err := jo.NextKeyBytes()
	if err != nil || !hasKey || string(kb) != "b" {
		t.Fatalf("NextKeyBytes: kb=%q hasKey=%v err=%v", kb, hasKey, err)
	}

	jb := New([]byte(`{"a": 1}`))
	kb, hasKey, err = jb.NextObjectBytes()
	if err != nil || !hasKey || string(kb) != "a" {
		t.Fatalf("NextObjectBytes: kb=%q hasKey=%v err=%v", kb, hasKey, err)
	}
}
