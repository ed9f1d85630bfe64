package batson

// StepKind distinguishes the two path-step shapes spec.md §4.13 supports.
type StepKind int

const (
	KeyStep StepKind = iota
	IndexStep
)

// Step is one hop of a path walked directly over encoded bytes: either an
// object key or an array index.
type Step struct {
	Kind  StepKind
	Key   string
	Index int
}

// KeyOf builds a Key step.
func KeyOf(key string) Step { return Step{Kind: KeyStep, Key: key} }

// IndexOf builds an Index step.
func IndexOf(i int) Step { return Step{Kind: IndexStep, Index: i} }

// walk follows path over buf starting at the root value, without decoding
// anything it doesn't have to. On a type mismatch or missing key/index it
// returns ok=false with a nil error (spec.md §4.13: "if the current node is
// a scalar or type-mismatched, return None"); a non-nil error means the
// buffer itself is malformed.
//
// Index steps into HeaderArray/U8Array/I64Array resolve to a terminal value
// immediately (those categories hold only scalars and empty strings, arrays
// and objects — see isHeaderOnly/allU8Ints/allPlainInts); walk re-encodes
// that value into a small standalone buffer so every subsequent operation still
// reads "encoded bytes at an offset" uniformly, regardless of which array
// category produced it.
func walk(buf []byte, path []Step) (cur []byte, pos int, ok bool, err error) {
	cur, pos = buf, 0
	for _, step := range path {
		if pos >= len(cur) {
			return nil, 0, false, errTruncated
		}
		h := decodeHeader(cur[pos])
		switch step.Kind {
		case KeyStep:
			if h.cat != catObject {
				return nil, 0, false, nil
			}
			oh, herr := decodeObjectHeader(cur, pos)
			if herr != nil {
				return nil, 0, false, herr
			}
			valuePos, found, lerr := objectLookup(cur, oh, step.Key)
			if lerr != nil {
				return nil, 0, false, lerr
			}
			if !found {
				return nil, 0, false, nil
			}
			pos = valuePos
		case IndexStep:
			switch h.cat {
			case catHeaderArray, catU8Array, catI64Array, catHetArray:
				ah, herr := decodeArrayHeader(cur, pos)
				if herr != nil {
					return nil, 0, false, herr
				}
				if step.Index < 0 || step.Index >= ah.n {
					return nil, 0, false, nil
				}
				if ah.cat == catHetArray {
					ep, perr := arrayElemPos(cur, ah, step.Index)
					if perr != nil {
						return nil, 0, false, perr
					}
					pos = ep
				} else {
					val, verr := arrayElemValue(cur, ah, step.Index)
					if verr != nil {
						return nil, 0, false, verr
					}
					tmp, eerr := encodeValue(nil, val)
					if eerr != nil {
						return nil, 0, false, eerr
					}
					cur, pos = tmp, 0
				}
			default:
				return nil, 0, false, nil
			}
		}
	}
	return cur, pos, true, nil
}

// GetBool implements get_bool: walk path, requiring the terminal value be a
// Bool.
func GetBool(buf []byte, path []Step) (bool, bool, error) {
	cur, pos, ok, err := walk(buf, path)
	if err != nil || !ok {
		return false, false, err
	}
	h := decodeHeader(cur[pos])
	if h.cat != catPrimitive || (h.right != primTrue && h.right != primFalse) {
		return false, false, nil
	}
	return h.right == primTrue, true, nil
}

// GetStr implements get_str: walk path, requiring the terminal value be a
// Str.
func GetStr(buf []byte, path []Step) (string, bool, error) {
	cur, pos, ok, err := walk(buf, path)
	if err != nil || !ok {
		return "", false, err
	}
	if decodeHeader(cur[pos]).cat != catStr {
		return "", false, nil
	}
	s, _, derr := decodeStrAt(cur, pos)
	if derr != nil {
		return "", false, derr
	}
	return s, true, nil
}

// GetInt implements get_int: walk path, requiring the terminal value be an
// integer that fits in int64. A BigInt-encoded leaf whose value fits is
// returned; one that does not fit reports found=false, same as any other
// type mismatch.
func GetInt(buf []byte, path []Step) (int64, bool, error) {
	cur, pos, ok, err := walk(buf, path)
	if err != nil || !ok {
		return 0, false, err
	}
	h := decodeHeader(cur[pos])
	switch h.cat {
	case catInt:
		v, _, derr := decodeIntAt(cur, pos)
		if derr != nil {
			return 0, false, derr
		}
		iv, _ := v.Int()
		return iv.Small, true, nil
	case catBigIntPos, catBigIntNeg:
		v, _, derr := decodeBigIntAt(cur, pos)
		if derr != nil {
			return 0, false, derr
		}
		iv, _ := v.Int()
		if iv.IsBig() {
			return 0, false, nil
		}
		return iv.Small, true, nil
	default:
		return 0, false, nil
	}
}

// Contains implements contains: does path resolve at all.
func Contains(buf []byte, path []Step) (bool, error) {
	_, _, ok, err := walk(buf, path)
	return ok, err
}

// GetLength implements get_length: the element count of a Str (byte
// length), Object, or any array-family terminal; None for scalars.
func GetLength(buf []byte, path []Step) (int, bool, error) {
	cur, pos, ok, err := walk(buf, path)
	if err != nil || !ok {
		return 0, false, err
	}
	h := decodeHeader(cur[pos])
	switch h.cat {
	case catStr:
		n, _, lok := decodeLength(cur, pos)
		if !lok {
			return 0, false, errTruncated
		}
		return n, true, nil
	case catObject:
		oh, herr := decodeObjectHeader(cur, pos)
		if herr != nil {
			return 0, false, herr
		}
		return oh.n, true, nil
	case catHeaderArray, catU8Array, catI64Array, catHetArray:
		ah, herr := decodeArrayHeader(cur, pos)
		if herr != nil {
			return 0, false, herr
		}
		return ah.n, true, nil
	default:
		return 0, false, nil
	}
}

// GetBatson implements get_batson: return a standalone Batson encoding of
// the value at path, letting a caller re-decode or re-store just that
// fragment without touching the rest of the document. The value is decoded
// and re-encoded rather than sliced out, because alignment padding inside
// the original bytes is relative to the start of the whole buffer.
func GetBatson(buf []byte, path []Step) ([]byte, bool, error) {
	cur, pos, ok, err := walk(buf, path)
	if err != nil || !ok {
		return nil, false, err
	}
	v, _, derr := decodeValue(cur, pos)
	if derr != nil {
		return nil, false, derr
	}
	out, eerr := EncodeFromJSON(v)
	if eerr != nil {
		return nil, false, eerr
	}
	return out, true, nil
}
