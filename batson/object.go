package batson

import (
	"encoding/binary"
	"sort"

	"github.com/jiter-go/jiter"
)

// djb2 hashes key per spec.md §4.12's exact recipe, truncated to uint32.
func djb2(key string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(key); i++ {
		h = (h << 5) + h + uint32(key[i])
	}
	return h
}

// superHeaderItem is one entry of an Object's sorted super-header.
type superHeaderItem struct {
	keyLen uint32
	hash   uint32
	offset uint32 // byte offset of this key's body entry, relative to body start
}

func superHeaderLess(a, b superHeaderItem) bool {
	if a.keyLen != b.keyLen {
		return a.keyLen < b.keyLen
	}
	return a.hash < b.hash
}

// encodeObject writes an Object per spec.md §4.12: a length header, a
// sorted super-header of (key_length, key_hash, offset) triples, and a body
// holding, per key in insertion order, a back-pointer to that key's sorted
// super-header index, the key bytes, then the encoded value. Empty objects
// degenerate to a single header byte via encodeLength's direct-length case.
func encodeObject(buf []byte, entries []jiter.Entry) ([]byte, error) {
	buf = encodeLength(buf, catObject, len(entries))
	if len(entries) == 0 {
		return buf, nil
	}
	buf = padTo(buf, 4)

	// Body is built first (insertion order) with the back-pointer field
	// reserved as zero; bodyOffsets[i] records where entry i's reserved
	// back-pointer word lives so it can be backfilled once the super-header
	// order is known. The body slice starts with bodyPad scratch bytes so
	// that len(body) is congruent mod 8 to the absolute position the body
	// will occupy; nested I64Array values then pad to the same 8-byte
	// boundary the decoder computes from absolute offsets.
	bodyPad := (len(buf) + len(entries)*12) % 8
	body := make([]byte, bodyPad)
	bodyOffsets := make([]int, len(entries))
	items := make([]superHeaderItem, len(entries))
	for i, e := range entries {
		bodyOffsets[i] = len(body)
		body = appendU32LE(body, 0) // back-pointer placeholder
		body = append(body, e.Key...)
		var err error
		body, err = encodeValue(body, e.Val)
		if err != nil {
			return nil, err
		}
		items[i] = superHeaderItem{keyLen: uint32(len(e.Key)), hash: djb2(e.Key), offset: uint32(bodyOffsets[i] - bodyPad)}
	}

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return superHeaderLess(items[order[a]], items[order[b]])
	})

	for sortedIdx, origIdx := range order {
		binary.LittleEndian.PutUint32(body[bodyOffsets[origIdx]:], uint32(sortedIdx))
	}

	for _, origIdx := range order {
		it := items[origIdx]
		buf = appendU32LE(buf, it.keyLen)
		buf = appendU32LE(buf, it.hash)
		buf = appendU32LE(buf, it.offset)
	}
	return append(buf, body[bodyPad:]...), nil
}

// objectHeader is the decoded shape of an Object's header: entry count and
// the position of its super-header and body.
type objectHeader struct {
	n          int
	superStart int
	bodyStart  int
}

func decodeObjectHeader(buf []byte, pos int) (objectHeader, error) {
	n, next, ok := decodeLength(buf, pos)
	if !ok {
		return objectHeader{}, errTruncated
	}
	if n == 0 {
		return objectHeader{n: 0, superStart: next, bodyStart: next}, nil
	}
	superStart := alignUp(next, 4)
	bodyStart := superStart + n*12
	if bodyStart > len(buf) {
		return objectHeader{}, errTruncated
	}
	return objectHeader{n: n, superStart: superStart, bodyStart: bodyStart}, nil
}

func readSuperHeaderItem(buf []byte, h objectHeader, idx int) (superHeaderItem, error) {
	pos := h.superStart + idx*12
	if pos+12 > len(buf) {
		return superHeaderItem{}, errTruncated
	}
	return superHeaderItem{
		keyLen: binary.LittleEndian.Uint32(buf[pos:]),
		hash:   binary.LittleEndian.Uint32(buf[pos+4:]),
		offset: binary.LittleEndian.Uint32(buf[pos+8:]),
	}, nil
}

// objectLookup binary-searches the super-header for key, then walks
// linearly within the matching (key_length, key_hash) run comparing actual
// key bytes, per spec.md §4.12. It returns the byte offset of the value
// immediately following the matched key, or ok=false on a miss.
func objectLookup(buf []byte, h objectHeader, key string) (valuePos int, ok bool, err error) {
	if h.n == 0 {
		return 0, false, nil
	}
	target := superHeaderItem{keyLen: uint32(len(key)), hash: djb2(key)}
	lo, hi := 0, h.n
	for lo < hi {
		mid := (lo + hi) / 2
		it, ierr := readSuperHeaderItem(buf, h, mid)
		if ierr != nil {
			return 0, false, ierr
		}
		if superHeaderLess(it, target) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	for i := lo; i < h.n; i++ {
		it, ierr := readSuperHeaderItem(buf, h, i)
		if ierr != nil {
			return 0, false, ierr
		}
		if it.keyLen != target.keyLen || it.hash != target.hash {
			break
		}
		entryPos := h.bodyStart + int(it.offset)
		keyStart := entryPos + 4 // skip the back-pointer word
		keyEnd := keyStart + int(it.keyLen)
		if keyEnd > len(buf) {
			return 0, false, errTruncated
		}
		if string(buf[keyStart:keyEnd]) == key {
			return keyEnd, true, nil
		}
	}
	return 0, false, nil
}

// decodeObjectAt fully materializes the object at pos, in insertion order,
// returning the offset just past the whole encoding. Each body entry's
// back-pointer indexes into the super-header to recover that key's length
// without re-deriving it (the reason the wire format carries it at all).
func decodeObjectAt(buf []byte, pos int) (jiter.Value, int, error) {
	h, err := decodeObjectHeader(buf, pos)
	if err != nil {
		return jiter.Value{}, pos, err
	}
	m := jiter.NewObjectBuilder(h.n)
	cur := h.bodyStart
	for i := 0; i < h.n; i++ {
		key, valPos, kerr := readBodyEntry(buf, h, cur)
		if kerr != nil {
			return jiter.Value{}, pos, kerr
		}
		val, valNext, verr := decodeValue(buf, valPos)
		if verr != nil {
			return jiter.Value{}, pos, verr
		}
		m.Add(key, val)
		cur = valNext
	}
	return m.Build(), cur, nil
}

// skipObject returns the offset just past the object encoding at pos,
// decoding only what is needed (keys, not values) to advance.
func skipObject(buf []byte, pos int) (int, error) {
	h, err := decodeObjectHeader(buf, pos)
	if err != nil {
		return pos, err
	}
	cur := h.bodyStart
	for i := 0; i < h.n; i++ {
		_, valPos, kerr := readBodyEntry(buf, h, cur)
		if kerr != nil {
			return pos, kerr
		}
		next, verr := skipValue(buf, valPos)
		if verr != nil {
			return pos, verr
		}
		cur = next
	}
	return cur, nil
}

// readBodyEntry reads one sequential body entry starting at entryPos: the
// back-pointer and the key bytes (whose length it recovers from the
// back-pointer's super-header slot), returning the key and the offset
// where its value begins.
func readBodyEntry(buf []byte, h objectHeader, entryPos int) (key string, valuePos int, err error) {
	if entryPos+4 > len(buf) {
		return "", 0, errTruncated
	}
	bp := binary.LittleEndian.Uint32(buf[entryPos:])
	it, ierr := readSuperHeaderItem(buf, h, int(bp))
	if ierr != nil {
		return "", 0, ierr
	}
	keyStart := entryPos + 4
	keyEnd := keyStart + int(it.keyLen)
	if keyEnd > len(buf) {
		return "", 0, errTruncated
	}
	return string(buf[keyStart:keyEnd]), keyEnd, nil
}
