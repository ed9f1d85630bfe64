package batson

import (
	"testing"

	"github.com/jiter-go/jiter"
)

func TestEncodeIntSizeClasses(t *testing.T) {
	cases := []int64{0, 10, 11, -1, 127, -128, 128, -129, 40000, -40000, 3000000000, -3000000000}
	for _, n := range cases {
		buf := encodeInt(nil, n)
		v, next, err := decodeIntAt(buf, 0)
		if err != nil {
			t.Fatalf("n=%d: decodeIntAt: %v", n, err)
		}
		if next != len(buf) {
			t.Fatalf("n=%d: next=%d, want %d", n, next, len(buf))
		}
		iv, _ := v.Int()
		if iv.Small != n {
			t.Fatalf("n=%d: got %d", n, iv.Small)
		}
	}
}

func TestEncodeFloatDirectVsSized(t *testing.T) {
	direct := encodeFloat(nil, 7.0)
	if len(direct) != 1 {
		t.Fatalf("expected a whole float in [0,10] to take 1 byte, got %d", len(direct))
	}
	sized := encodeFloat(nil, 7.5)
	if len(sized) != 9 {
		t.Fatalf("expected a fractional float to take a sized 8-byte field plus header, got %d bytes", len(sized))
	}
	negZero := encodeFloat(nil, -0.0)
	if len(negZero) != 1 && len(negZero) != 9 {
		t.Fatalf("unexpected encoding length for -0.0: %d", len(negZero))
	}
}

func TestDecodeFloatRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 3, 10, -1.5, 3.14159, 1e10, -1e-10} {
		buf := encodeFloat(nil, f)
		v, next, err := decodeFloatAt(buf, 0)
		if err != nil {
			t.Fatalf("f=%v: decodeFloatAt: %v", f, err)
		}
		if next != len(buf) {
			t.Fatalf("f=%v: next=%d, want %d", f, next, len(buf))
		}
		got, _ := v.Float()
		if got != f {
			t.Fatalf("f=%v: got %v", f, got)
		}
	}
}

func TestIsHeaderOnlyClassification(t *testing.T) {
	tests := []struct {
		v    jiter.Value
		want bool
	}{
		{jiter.NullValue(), true},
		{jiter.BoolValueOf(true), true},
		{smallInt(10), true},
		{smallInt(11), false},
		{smallInt(-1), false},
		{jiter.StringValueOf(""), true},
		{jiter.StringValueOf("x"), false},
		{jiter.ArrayValueOfItems(nil), true},
		{jiter.ArrayValueOfItems([]jiter.Value{smallInt(1)}), false},
		{jiter.EmptyObjectValue(), true},
	}
	for i, tt := range tests {
		if got := isHeaderOnly(tt.v); got != tt.want {
			t.Fatalf("case %d: isHeaderOnly = %v, want %v", i, got, tt.want)
		}
	}
}

func TestSkipValueAdvancesPastEachScalarKind(t *testing.T) {
	values := []jiter.Value{
		jiter.NullValue(),
		jiter.BoolValueOf(true),
		smallInt(12345),
		jiter.FloatValueOf(3.5),
		jiter.StringValueOf("hello"),
	}
	var buf []byte
	var ends []int
	for _, v := range values {
		var err error
		buf, err = encodeValue(buf, v)
		if err != nil {
			t.Fatalf("encodeValue: %v", err)
		}
		ends = append(ends, len(buf))
	}
	pos := 0
	for i, end := range ends {
		next, err := skipValue(buf, pos)
		if err != nil {
			t.Fatalf("value %d: skipValue: %v", i, err)
		}
		if next != end {
			t.Fatalf("value %d: skipValue = %d, want %d", i, next, end)
		}
		pos = next
	}
}
