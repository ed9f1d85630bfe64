// Package batson implements the compact binary re-encoding of a parsed JSON
// value described in spec.md §3.5-§4.13: a type-tagged header byte scheme
// that supports direct path lookup on the encoded bytes without a full
// decode.
package batson

import "encoding/binary"

// category is the left nibble of a Batson header byte (spec.md §4.10).
type category byte

const (
	catPrimitive   category = 0
	catInt         category = 1
	catBigIntPos   category = 2
	catBigIntNeg   category = 3
	catFloat       category = 4
	catStr         category = 5
	catObject      category = 6
	catHeaderArray category = 7
	catU8Array     category = 8
	catI64Array    category = 9
	catHetArray    category = 10
)

// Right-nibble sentinels for category Primitive.
const (
	primNull  = 0
	primTrue  = 1
	primFalse = 2
)

// Right-nibble size classes shared by Int/Float ("direct small value, else
// sized"), and by length-bearing categories ("direct small length, else
// sized"). Both schemes reuse 11/12/13 as the "a sized field follows"
// markers; spec.md §4.10 keeps them distinct by category, not by value.
const (
	sizeDirectMax = 10
	sizeU8        = 11
	sizeU32       = 12
	sizeU64       = 13
)

const (
	lenDirectMax = 10
	lenU8        = 11
	lenU16       = 12
	lenU32       = 13
)

// header is a decoded Batson header byte.
type header struct {
	cat   category
	right byte
}

func makeHeader(cat category, right byte) byte {
	return byte(cat)<<4 | (right & 0x0f)
}

func decodeHeader(b byte) header {
	return header{cat: category(b >> 4), right: b & 0x0f}
}

// appendU8 appends a single byte length/size follow-on field.
func appendU8(buf []byte, v uint8) []byte {
	return append(buf, v)
}

// appendU16LE appends a little-endian uint16 follow-on field.
func appendU16LE(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// appendU32LE appends a little-endian uint32 follow-on field.
func appendU32LE(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// appendU64LE appends a little-endian uint64 follow-on field.
func appendU64LE(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

// appendI64LE appends a little-endian int64 follow-on field, naturally
// aligned body slices for I64Array per spec.md §6.3.
func appendI64LE(buf []byte, v int64) []byte {
	return appendU64LE(buf, uint64(v))
}

// encodeLength appends a header byte for cat with a length encoded in the
// right nibble (direct 0..10, else a sized follow-on field), per spec.md
// §4.10's length class table. Used by Str/Object/array categories.
func encodeLength(buf []byte, cat category, n int) []byte {
	switch {
	case n <= lenDirectMax:
		return append(buf, makeHeader(cat, byte(n)))
	case n <= 0xff:
		buf = append(buf, makeHeader(cat, lenU8))
		return appendU8(buf, uint8(n))
	case n <= 0xffff:
		buf = append(buf, makeHeader(cat, lenU16))
		return appendU16LE(buf, uint16(n))
	default:
		buf = append(buf, makeHeader(cat, lenU32))
		return appendU32LE(buf, uint32(n))
	}
}

// decodeLength reads back a length encoded by encodeLength. pos points at
// the header byte; it returns the decoded length and the offset of the
// first byte following the (header + any follow-on field).
func decodeLength(buf []byte, pos int) (n int, next int, ok bool) {
	if pos >= len(buf) {
		return 0, pos, false
	}
	h := decodeHeader(buf[pos])
	pos++
	switch h.right {
	case lenU8:
		if pos >= len(buf) {
			return 0, pos, false
		}
		return int(buf[pos]), pos + 1, true
	case lenU16:
		if pos+2 > len(buf) {
			return 0, pos, false
		}
		return int(binary.LittleEndian.Uint16(buf[pos:])), pos + 2, true
	case lenU32:
		if pos+4 > len(buf) {
			return 0, pos, false
		}
		return int(binary.LittleEndian.Uint32(buf[pos:])), pos + 4, true
	default:
		return int(h.right), pos, true
	}
}

// alignUp rounds n up to the next multiple of align (align must be a power
// of two). Used to tail-pad encoded buffers/fields so fixed-width bodies
// land on their natural alignment (spec.md §3.5, §6.3).
func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// padTo appends zero bytes until buf's length is a multiple of align.
func padTo(buf []byte, align int) []byte {
	for len(buf)%align != 0 {
		buf = append(buf, 0)
	}
	return buf
}
