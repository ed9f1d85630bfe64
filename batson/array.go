package batson

import (
	"encoding/binary"

	"github.com/jiter-go/jiter"
)

// encodeArray chooses the most compact of the four array encodings spec.md
// §4.11 lists, in order of preference: HeaderArray, U8Array, I64Array,
// HetArray. BigInt elements are never packed (open question in spec.md §9):
// any BigInt forces the general HetArray layout.
func encodeArray(buf []byte, items []jiter.Value) ([]byte, error) {
	switch {
	case allHeaderOnly(items):
		return encodeHeaderArray(buf, items), nil
	case allU8Ints(items):
		return encodeU8Array(buf, items), nil
	case allPlainInts(items):
		return encodeI64Array(buf, items), nil
	default:
		return encodeHetArray(buf, items)
	}
}

func allHeaderOnly(items []jiter.Value) bool {
	for _, v := range items {
		if !isHeaderOnly(v) {
			return false
		}
	}
	return true
}

func allU8Ints(items []jiter.Value) bool {
	for _, v := range items {
		if v.Type() != jiter.TypeInt {
			return false
		}
		iv, _ := v.Int()
		if iv.IsBig() || iv.Small < 0 || iv.Small > 255 {
			return false
		}
	}
	return true
}

func allPlainInts(items []jiter.Value) bool {
	for _, v := range items {
		if v.Type() != jiter.TypeInt {
			return false
		}
		iv, _ := v.Int()
		if iv.IsBig() {
			return false
		}
	}
	return true
}

func encodeHeaderArray(buf []byte, items []jiter.Value) []byte {
	buf = encodeLength(buf, catHeaderArray, len(items))
	for _, v := range items {
		buf = encodeHeaderOnly(buf, v)
	}
	return buf
}

func encodeU8Array(buf []byte, items []jiter.Value) []byte {
	buf = encodeLength(buf, catU8Array, len(items))
	for _, v := range items {
		iv, _ := v.Int()
		buf = append(buf, byte(iv.Small))
	}
	return buf
}

func encodeI64Array(buf []byte, items []jiter.Value) []byte {
	buf = encodeLength(buf, catI64Array, len(items))
	buf = padTo(buf, 8)
	for _, v := range items {
		iv, _ := v.Int()
		buf = appendI64LE(buf, iv.Small)
	}
	return buf
}

// encodeHetArray is the general-case array layout: a length, a zero-padded
// offset table (one u32 per element, relative to the first byte past the
// table), then each value appended in order. The table is backfilled once
// every element's position is known (spec.md §4.11).
func encodeHetArray(buf []byte, items []jiter.Value) ([]byte, error) {
	buf = encodeLength(buf, catHetArray, len(items))
	buf = padTo(buf, 4)
	tableStart := len(buf)
	for range items {
		buf = appendU32LE(buf, 0)
	}
	valuesStart := len(buf)
	offsets := make([]uint32, len(items))
	for i, v := range items {
		offsets[i] = uint32(len(buf) - valuesStart)
		var err error
		buf, err = encodeValue(buf, v)
		if err != nil {
			return nil, err
		}
	}
	for i, off := range offsets {
		binary.LittleEndian.PutUint32(buf[tableStart+i*4:], off)
	}
	return buf, nil
}

// arrayHeader is the decoded shape of an array-family header: its category,
// element count, and the position of its body (the first element, or for
// HetArray the start of the offset table).
type arrayHeader struct {
	cat  category
	n    int
	body int
}

func decodeArrayHeader(buf []byte, pos int) (arrayHeader, error) {
	n, next, ok := decodeLength(buf, pos)
	if !ok {
		return arrayHeader{}, errTruncated
	}
	cat := decodeHeader(buf[pos]).cat
	switch cat {
	case catI64Array:
		next = alignUp(next, 8)
	case catHetArray:
		next = alignUp(next, 4)
	}
	return arrayHeader{cat: cat, n: n, body: next}, nil
}

// arrayElemPos returns the absolute byte offset of element idx's encoding,
// for categories whose elements are themselves full encoded values
// (HetArray only — HeaderArray/U8Array/I64Array elements are fixed-width
// and decoded directly via arrayElemValue).
func arrayElemPos(buf []byte, h arrayHeader, idx int) (int, error) {
	if idx < 0 || idx >= h.n {
		return 0, errCorrupt
	}
	if h.cat != catHetArray {
		return 0, errCorrupt
	}
	offTablePos := h.body + idx*4
	if offTablePos+4 > len(buf) {
		return 0, errTruncated
	}
	valuesStart := h.body + h.n*4
	off := binary.LittleEndian.Uint32(buf[offTablePos:])
	return valuesStart + int(off), nil
}

// arrayElemValue decodes element idx to a full Value, for HeaderArray,
// U8Array, and I64Array (whose elements are always terminal scalars by
// construction — see isHeaderOnly/allU8Ints/allPlainInts above) and, as a
// convenience, for HetArray too (decodeValue on the located offset).
func arrayElemValue(buf []byte, h arrayHeader, idx int) (jiter.Value, error) {
	if idx < 0 || idx >= h.n {
		return jiter.Value{}, errCorrupt
	}
	switch h.cat {
	case catHeaderArray:
		pos := h.body + idx
		if pos >= len(buf) {
			return jiter.Value{}, errTruncated
		}
		return decodeHeaderOnly(buf[pos]), nil
	case catU8Array:
		pos := h.body + idx
		if pos >= len(buf) {
			return jiter.Value{}, errTruncated
		}
		return jiter.IntValueOfIV(jiter.IntValue{Small: int64(buf[pos])}), nil
	case catI64Array:
		pos := h.body + idx*8
		if pos+8 > len(buf) {
			return jiter.Value{}, errTruncated
		}
		v := int64(binary.LittleEndian.Uint64(buf[pos:]))
		return jiter.IntValueOfIV(jiter.IntValue{Small: v}), nil
	case catHetArray:
		pos, err := arrayElemPos(buf, h, idx)
		if err != nil {
			return jiter.Value{}, err
		}
		v, _, err := decodeValue(buf, pos)
		return v, err
	default:
		return jiter.Value{}, errCorrupt
	}
}

// decodeArrayAt fully materializes the array starting at pos into a
// jiter.Value, returning the offset just past the whole encoding.
func decodeArrayAt(buf []byte, pos int) (jiter.Value, int, error) {
	h, err := decodeArrayHeader(buf, pos)
	if err != nil {
		return jiter.Value{}, pos, err
	}
	items := make([]jiter.Value, h.n)
	for i := 0; i < h.n; i++ {
		v, verr := arrayElemValue(buf, h, i)
		if verr != nil {
			return jiter.Value{}, pos, verr
		}
		items[i] = v
	}
	next, err := skipArray(buf, pos)
	if err != nil {
		return jiter.Value{}, pos, err
	}
	return jiter.ArrayValueOfItems(items), next, nil
}

// skipArray returns the offset just past the array-family encoding at pos,
// without decoding any element it doesn't have to.
func skipArray(buf []byte, pos int) (int, error) {
	h, err := decodeArrayHeader(buf, pos)
	if err != nil {
		return pos, err
	}
	switch h.cat {
	case catHeaderArray:
		return h.body + h.n, nil
	case catU8Array:
		return h.body + h.n, nil
	case catI64Array:
		return h.body + h.n*8, nil
	case catHetArray:
		if h.n == 0 {
			return h.body, nil
		}
		lastPos, perr := arrayElemPos(buf, h, h.n-1)
		if perr != nil {
			return pos, perr
		}
		return skipValue(buf, lastPos)
	default:
		return pos, errCorrupt
	}
}
