package batson

import "github.com/jiter-go/jiter"

// encodeValue appends the Batson encoding of any Value — scalar, array, or
// object — to buf. This is the single recursive entry point array/object
// encoders call for their elements.
func encodeValue(buf []byte, v jiter.Value) ([]byte, error) {
	switch v.Type() {
	case jiter.TypeArray:
		a, _ := v.Array()
		return encodeArray(buf, a.Items())
	case jiter.TypeObject:
		o, _ := v.Object()
		return encodeObject(buf, o.Entries())
	default:
		return encodeScalar(buf, v)
	}
}

// decodeValue decodes the value starting at pos, dispatching on its header
// category, and returns the offset just past it.
func decodeValue(buf []byte, pos int) (jiter.Value, int, error) {
	if pos >= len(buf) {
		return jiter.Value{}, pos, errTruncated
	}
	switch decodeHeader(buf[pos]).cat {
	case catObject:
		return decodeObjectAt(buf, pos)
	case catHeaderArray, catU8Array, catI64Array, catHetArray:
		return decodeArrayAt(buf, pos)
	default:
		return decodeScalar(buf, pos)
	}
}
