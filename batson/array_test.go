package batson

import (
	"math/big"
	"testing"

	"github.com/jiter-go/jiter"
)

func smallInt(n int64) jiter.Value { return jiter.IntValueOfIV(jiter.IntValue{Small: n}) }

func TestEncodeArrayChoosesHeaderArray(t *testing.T) {
	items := []jiter.Value{jiter.BoolValueOf(true), jiter.NullValue(), smallInt(3)}
	buf, err := encodeArray(nil, items)
	if err != nil {
		t.Fatalf("encodeArray: %v", err)
	}
	if decodeHeader(buf[0]).cat != catHeaderArray {
		t.Fatalf("expected HeaderArray, got category %d", decodeHeader(buf[0]).cat)
	}
}

func TestEncodeArrayChoosesU8Array(t *testing.T) {
	items := []jiter.Value{smallInt(0), smallInt(128), smallInt(255)}
	buf, err := encodeArray(nil, items)
	if err != nil {
		t.Fatalf("encodeArray: %v", err)
	}
	if decodeHeader(buf[0]).cat != catU8Array {
		t.Fatalf("expected U8Array, got category %d", decodeHeader(buf[0]).cat)
	}
}

func TestEncodeArrayChoosesI64Array(t *testing.T) {
	items := []jiter.Value{smallInt(-1), smallInt(300)}
	buf, err := encodeArray(nil, items)
	if err != nil {
		t.Fatalf("encodeArray: %v", err)
	}
	if decodeHeader(buf[0]).cat != catI64Array {
		t.Fatalf("expected I64Array, got category %d", decodeHeader(buf[0]).cat)
	}
}

func TestEncodeArrayChoosesHetArrayForMixedTypes(t *testing.T) {
	items := []jiter.Value{smallInt(1), jiter.StringValueOf("x")}
	buf, err := encodeArray(nil, items)
	if err != nil {
		t.Fatalf("encodeArray: %v", err)
	}
	if decodeHeader(buf[0]).cat != catHetArray {
		t.Fatalf("expected HetArray, got category %d", decodeHeader(buf[0]).cat)
	}
}

func TestEncodeArrayBigIntForcesHetArray(t *testing.T) {
	bigVal := jiter.IntValueOfIV(jiter.IntValue{Big: bigFromString(t, "99999999999999999999999999999")})
	items := []jiter.Value{smallInt(1), bigVal, smallInt(2)}
	buf, err := encodeArray(nil, items)
	if err != nil {
		t.Fatalf("encodeArray: %v", err)
	}
	if decodeHeader(buf[0]).cat != catHetArray {
		t.Fatalf("expected BigInt element to force HetArray, got category %d", decodeHeader(buf[0]).cat)
	}
	v, _, err := decodeArrayAt(buf, 0)
	if err != nil {
		t.Fatalf("decodeArrayAt: %v", err)
	}
	arr, _ := v.Array()
	if arr.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", arr.Len())
	}
	mid, _ := arr.At(1)
	iv, _ := mid.Int()
	if !iv.IsBig() {
		t.Fatal("expected the middle element to decode back as a big int")
	}
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("invalid big int literal %q", s)
	}
	return n
}

func TestSkipArrayMatchesDecodeLengthForEachCategory(t *testing.T) {
	cases := [][]jiter.Value{
		{jiter.BoolValueOf(true), jiter.NullValue()},
		{smallInt(1), smallInt(2), smallInt(3)},
		{smallInt(-1), smallInt(99999999999)},
		{smallInt(1), jiter.StringValueOf("x"), jiter.ArrayValueOfItems(nil)},
	}
	for i, items := range cases {
		buf, err := encodeArray(nil, items)
		if err != nil {
			t.Fatalf("case %d: encodeArray: %v", i, err)
		}
		buf = append(buf, 0xAB)
		next, err := skipArray(buf, 0)
		if err != nil {
			t.Fatalf("case %d: skipArray: %v", i, err)
		}
		if next != len(buf)-1 {
			t.Fatalf("case %d: skipArray returned %d, want %d", i, next, len(buf)-1)
		}
	}
}

func TestEmptyArrayEncodesToSingleHeaderByte(t *testing.T) {
	buf, err := encodeArray(nil, nil)
	if err != nil {
		t.Fatalf("encodeArray: %v", err)
	}
	if len(buf) != 1 {
		t.Fatalf("expected a single header byte, got %d bytes", len(buf))
	}
	if decodeHeader(buf[0]).cat != catHeaderArray {
		t.Fatalf("expected an empty array to take the HeaderArray shape, got category %d", decodeHeader(buf[0]).cat)
	}
}
