package batson

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/jiter-go/jiter"
)

// encodeScalar encodes a non-container Value (Null, Bool, Int, BigInt,
// Float, Str) and appends it to buf. Callers holding an Array/Object Value
// dispatch to encodeArray/encodeObject instead (see array.go/object.go).
func encodeScalar(buf []byte, v jiter.Value) ([]byte, error) {
	switch v.Type() {
	case jiter.TypeNull:
		return append(buf, makeHeader(catPrimitive, primNull)), nil
	case jiter.TypeBool:
		b, _ := v.Bool()
		if b {
			return append(buf, makeHeader(catPrimitive, primTrue)), nil
		}
		return append(buf, makeHeader(catPrimitive, primFalse)), nil
	case jiter.TypeInt:
		iv, _ := v.Int()
		if iv.IsBig() {
			return encodeBigInt(buf, iv.Big), nil
		}
		return encodeInt(buf, iv.Small), nil
	case jiter.TypeFloat:
		f, _ := v.Float()
		return encodeFloat(buf, f), nil
	case jiter.TypeString:
		s, _ := v.Str()
		return encodeStr(buf, s), nil
	default:
		return buf, errUnsupportedValue
	}
}

func encodeInt(buf []byte, v int64) []byte {
	if v >= 0 && v <= sizeDirectMax {
		return append(buf, makeHeader(catInt, byte(v)))
	}
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		buf = append(buf, makeHeader(catInt, sizeU8))
		return append(buf, byte(int8(v)))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		buf = append(buf, makeHeader(catInt, sizeU32))
		return appendU32LE(buf, uint32(int32(v)))
	default:
		buf = append(buf, makeHeader(catInt, sizeU64))
		return appendI64LE(buf, v)
	}
}

// encodeBigInt encodes an arbitrary-precision integer as sign-tagged
// category (BigIntPos/BigIntNeg) plus a length-prefixed big-endian
// magnitude (spec.md §4.10).
func encodeBigInt(buf []byte, n *big.Int) []byte {
	cat := catBigIntPos
	if n.Sign() < 0 {
		cat = catBigIntNeg
	}
	mag := new(big.Int).Abs(n).Bytes()
	buf = encodeLength(buf, cat, len(mag))
	return append(buf, mag...)
}

func encodeFloat(buf []byte, f float64) []byte {
	if f == math.Trunc(f) && f >= 0 && f <= sizeDirectMax && !math.Signbit(f) {
		return append(buf, makeHeader(catFloat, byte(f)))
	}
	buf = append(buf, makeHeader(catFloat, sizeU64))
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(f))
	return append(buf, tmp[:]...)
}

func encodeStr(buf []byte, s string) []byte {
	buf = encodeLength(buf, catStr, len(s))
	return append(buf, s...)
}

// decodeScalar decodes the value at pos, which must not be an Object or
// array-family header (callers route those to decodeArray/decodeObject).
func decodeScalar(buf []byte, pos int) (jiter.Value, int, error) {
	if pos >= len(buf) {
		return jiter.Value{}, pos, errTruncated
	}
	h := decodeHeader(buf[pos])
	switch h.cat {
	case catPrimitive:
		switch h.right {
		case primNull:
			return jiter.NullValue(), pos + 1, nil
		case primTrue:
			return jiter.BoolValueOf(true), pos + 1, nil
		case primFalse:
			return jiter.BoolValueOf(false), pos + 1, nil
		}
		return jiter.Value{}, pos, errCorrupt
	case catInt:
		return decodeIntAt(buf, pos)
	case catBigIntPos, catBigIntNeg:
		return decodeBigIntAt(buf, pos)
	case catFloat:
		return decodeFloatAt(buf, pos)
	case catStr:
		s, next, err := decodeStrAt(buf, pos)
		if err != nil {
			return jiter.Value{}, pos, err
		}
		return jiter.StringValueOf(s), next, nil
	default:
		return jiter.Value{}, pos, errCorrupt
	}
}

func decodeIntAt(buf []byte, pos int) (jiter.Value, int, error) {
	h := decodeHeader(buf[pos])
	pos++
	switch h.right {
	case sizeU8:
		if pos >= len(buf) {
			return jiter.Value{}, pos, errTruncated
		}
		v := int64(int8(buf[pos]))
		return jiter.IntValueOfIV(jiter.IntValue{Small: v}), pos + 1, nil
	case sizeU32:
		if pos+4 > len(buf) {
			return jiter.Value{}, pos, errTruncated
		}
		v := int64(int32(binary.LittleEndian.Uint32(buf[pos:])))
		return jiter.IntValueOfIV(jiter.IntValue{Small: v}), pos + 4, nil
	case sizeU64:
		if pos+8 > len(buf) {
			return jiter.Value{}, pos, errTruncated
		}
		v := int64(binary.LittleEndian.Uint64(buf[pos:]))
		return jiter.IntValueOfIV(jiter.IntValue{Small: v}), pos + 8, nil
	default:
		return jiter.IntValueOfIV(jiter.IntValue{Small: int64(h.right)}), pos, nil
	}
}

func decodeBigIntAt(buf []byte, pos int) (jiter.Value, int, error) {
	neg := decodeHeader(buf[pos]).cat == catBigIntNeg
	n, next, ok := decodeLength(buf, pos)
	if !ok || next+n > len(buf) {
		return jiter.Value{}, pos, errTruncated
	}
	mag := buf[next : next+n]
	bi := new(big.Int).SetBytes(mag)
	if neg {
		bi.Neg(bi)
	}
	if bi.IsInt64() {
		return jiter.IntValueOfIV(jiter.IntValue{Small: bi.Int64()}), next + n, nil
	}
	return jiter.IntValueOfIV(jiter.IntValue{Big: bi}), next + n, nil
}

func decodeFloatAt(buf []byte, pos int) (jiter.Value, int, error) {
	h := decodeHeader(buf[pos])
	pos++
	if h.right == sizeU64 {
		if pos+8 > len(buf) {
			return jiter.Value{}, pos, errTruncated
		}
		bits := binary.LittleEndian.Uint64(buf[pos:])
		return jiter.FloatValueOf(math.Float64frombits(bits)), pos + 8, nil
	}
	return jiter.FloatValueOf(float64(h.right)), pos, nil
}

func decodeStrAt(buf []byte, pos int) (string, int, error) {
	n, next, ok := decodeLength(buf, pos)
	if !ok || next+n > len(buf) {
		return "", pos, errTruncated
	}
	return string(buf[next : next+n]), next + n, nil
}

// skipValue returns the offset just past the encoded value at pos without
// allocating a decoded Value, used by HetArray/Object body walks that only
// need to skip past elements they are not indexing into.
func skipValue(buf []byte, pos int) (next int, err error) {
	if pos >= len(buf) {
		return pos, errTruncated
	}
	h := decodeHeader(buf[pos])
	switch h.cat {
	case catPrimitive:
		return pos + 1, nil
	case catInt:
		_, next, err := decodeIntAt(buf, pos)
		return next, err
	case catBigIntPos, catBigIntNeg:
		_, next, err := decodeBigIntAt(buf, pos)
		return next, err
	case catFloat:
		_, next, err := decodeFloatAt(buf, pos)
		return next, err
	case catStr:
		_, next, err := decodeStrAt(buf, pos)
		return next, err
	case catObject:
		return skipObject(buf, pos)
	case catHeaderArray, catU8Array, catI64Array, catHetArray:
		return skipArray(buf, pos)
	default:
		return pos, errCorrupt
	}
}

// isHeaderOnly reports whether v's entire representation fits in one header
// byte: Null/Bool, direct ints 0-10, direct floats 0-10, or an empty
// string/array/object (spec.md §4.11 HeaderArray eligibility).
func isHeaderOnly(v jiter.Value) bool {
	switch v.Type() {
	case jiter.TypeNull, jiter.TypeBool:
		return true
	case jiter.TypeInt:
		iv, _ := v.Int()
		return !iv.IsBig() && iv.Small >= 0 && iv.Small <= sizeDirectMax
	case jiter.TypeFloat:
		f, _ := v.Float()
		return f == math.Trunc(f) && f >= 0 && f <= sizeDirectMax && !math.Signbit(f)
	case jiter.TypeString:
		s, _ := v.Str()
		return s == ""
	case jiter.TypeArray:
		a, _ := v.Array()
		return a.Len() == 0
	case jiter.TypeObject:
		o, _ := v.Object()
		return o.Len() == 0
	default:
		return false
	}
}

// encodeHeaderOnly appends the single header byte representing v, assuming
// isHeaderOnly(v) already returned true.
func encodeHeaderOnly(buf []byte, v jiter.Value) []byte {
	switch v.Type() {
	case jiter.TypeNull:
		return append(buf, makeHeader(catPrimitive, primNull))
	case jiter.TypeBool:
		b, _ := v.Bool()
		if b {
			return append(buf, makeHeader(catPrimitive, primTrue))
		}
		return append(buf, makeHeader(catPrimitive, primFalse))
	case jiter.TypeInt:
		iv, _ := v.Int()
		return append(buf, makeHeader(catInt, byte(iv.Small)))
	case jiter.TypeFloat:
		f, _ := v.Float()
		return append(buf, makeHeader(catFloat, byte(f)))
	case jiter.TypeString:
		return append(buf, makeHeader(catStr, 0))
	case jiter.TypeArray:
		return append(buf, makeHeader(catHeaderArray, 0))
	default:
		return append(buf, makeHeader(catObject, 0))
	}
}

// decodeHeaderOnly decodes a single header byte previously written by
// encodeHeaderOnly. Strings/arrays/objects only ever appear here when empty.
func decodeHeaderOnly(b byte) jiter.Value {
	h := decodeHeader(b)
	switch h.cat {
	case catPrimitive:
		switch h.right {
		case primTrue:
			return jiter.BoolValueOf(true)
		case primFalse:
			return jiter.BoolValueOf(false)
		default:
			return jiter.NullValue()
		}
	case catInt:
		return jiter.IntValueOfIV(jiter.IntValue{Small: int64(h.right)})
	case catFloat:
		return jiter.FloatValueOf(float64(h.right))
	case catStr:
		return jiter.StringValueOf("")
	case catHeaderArray:
		return jiter.ArrayValueOfItems(nil)
	default:
		return jiter.EmptyObjectValue()
	}
}
