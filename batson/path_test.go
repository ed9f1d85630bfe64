package batson

import (
	"testing"

	"github.com/jiter-go/jiter"
)

func encodeJSON(t *testing.T, src string) []byte {
	t.Helper()
	v, err := jiter.Parse([]byte(src))
	if err != nil {
		t.Fatalf("jiter.Parse(%s): %v", src, err)
	}
	buf, err := EncodeFromJSON(v)
	if err != nil {
		t.Fatalf("EncodeFromJSON(%s): %v", src, err)
	}
	return buf
}

func TestPathGetBoolAndInt(t *testing.T) {
	buf := encodeJSON(t, `{"a":true,"b":[1,2,3]}`)

	b, found, err := GetBool(buf, []Step{KeyOf("a")})
	if err != nil {
		t.Fatalf("GetBool: %v", err)
	}
	if !found || !b {
		t.Fatalf("GetBool(a) = %v, %v", b, found)
	}

	n, found, err := GetInt(buf, []Step{KeyOf("b"), IndexOf(1)})
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if !found || n != 2 {
		t.Fatalf("GetInt(b[1]) = %v, %v", n, found)
	}

	length, found, err := GetLength(buf, []Step{KeyOf("b")})
	if err != nil {
		t.Fatalf("GetLength: %v", err)
	}
	if !found || length != 3 {
		t.Fatalf("GetLength(b) = %v, %v", length, found)
	}
}

func TestPathGetStr(t *testing.T) {
	buf := encodeJSON(t, `{"nested": {"name": "hello world"}}`)
	s, found, err := GetStr(buf, []Step{KeyOf("nested"), KeyOf("name")})
	if err != nil {
		t.Fatalf("GetStr: %v", err)
	}
	if !found || s != "hello world" {
		t.Fatalf("GetStr = %q, %v", s, found)
	}
}

func TestPathContains(t *testing.T) {
	buf := encodeJSON(t, `{"a": [1,2,3], "b": null}`)
	ok, err := Contains(buf, []Step{KeyOf("a"), IndexOf(2)})
	if err != nil || !ok {
		t.Fatalf("expected a[2] to be found, ok=%v err=%v", ok, err)
	}
	ok, err = Contains(buf, []Step{KeyOf("a"), IndexOf(5)})
	if err != nil || ok {
		t.Fatalf("expected a[5] to be missing, ok=%v err=%v", ok, err)
	}
	ok, err = Contains(buf, []Step{KeyOf("missing")})
	if err != nil || ok {
		t.Fatalf("expected missing key to not be found, ok=%v err=%v", ok, err)
	}
}

func TestPathTypeMismatchReturnsNotFound(t *testing.T) {
	buf := encodeJSON(t, `{"a": "a string"}`)
	_, found, err := GetInt(buf, []Step{KeyOf("a")})
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if found {
		t.Fatal("expected type mismatch to report not-found, not an error")
	}
	_, found, err = GetBool(buf, []Step{KeyOf("a"), IndexOf(0)})
	if err != nil {
		t.Fatalf("GetBool: %v", err)
	}
	if found {
		t.Fatal("expected indexing into a string to report not-found")
	}
}

// TestPathIndexIntoFixedWidthArrays exercises the terminal-scalar re-encode
// path for HeaderArray, U8Array, and I64Array alike, since all three pack
// elements without a per-element header usable in place.
func TestPathIndexIntoFixedWidthArrays(t *testing.T) {
	// HeaderArray: all elements fit in one header byte.
	buf := encodeJSON(t, `[true, false, null, 5]`)
	n, found, err := GetInt(buf, []Step{IndexOf(3)})
	if err != nil || !found || n != 5 {
		t.Fatalf("HeaderArray[3] = %v, %v, err=%v", n, found, err)
	}
	b, found, err := GetBool(buf, []Step{IndexOf(0)})
	if err != nil || !found || !b {
		t.Fatalf("HeaderArray[0] = %v, %v, err=%v", b, found, err)
	}

	// U8Array: all elements are ints in [0, 255].
	buf = encodeJSON(t, `[10, 20, 30, 255]`)
	n, found, err = GetInt(buf, []Step{IndexOf(3)})
	if err != nil || !found || n != 255 {
		t.Fatalf("U8Array[3] = %v, %v, err=%v", n, found, err)
	}

	// I64Array: ints outside the u8 range force this encoding.
	buf = encodeJSON(t, `[-5, 1000000000000]`)
	n, found, err = GetInt(buf, []Step{IndexOf(1)})
	if err != nil || !found || n != 1000000000000 {
		t.Fatalf("I64Array[1] = %v, %v, err=%v", n, found, err)
	}
	n, found, err = GetInt(buf, []Step{IndexOf(0)})
	if err != nil || !found || n != -5 {
		t.Fatalf("I64Array[0] = %v, %v, err=%v", n, found, err)
	}
}

func TestPathGetBatsonReturnsIndependentSlice(t *testing.T) {
	buf := encodeJSON(t, `{"a": {"b": 1, "c": 2}}`)
	sub, found, err := GetBatson(buf, []Step{KeyOf("a")})
	if err != nil || !found {
		t.Fatalf("GetBatson: found=%v err=%v", found, err)
	}
	v, err := DecodeToJSONValue(sub)
	if err != nil {
		t.Fatalf("DecodeToJSONValue(sub): %v", err)
	}
	obj, ok := v.Object()
	if !ok || obj.Len() != 2 {
		t.Fatalf("expected decoded sub-value to be a 2-entry object, got %+v", v)
	}
}

func TestPathEmptyPathReturnsRoot(t *testing.T) {
	buf := encodeJSON(t, `42`)
	n, found, err := GetInt(buf, nil)
	if err != nil || !found || n != 42 {
		t.Fatalf("GetInt(root) = %v, %v, err=%v", n, found, err)
	}
}
