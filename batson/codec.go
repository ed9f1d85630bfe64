package batson

import "github.com/jiter-go/jiter"

// EncodeFromJSON re-encodes an already-parsed jiter.Value into Batson's
// compact binary form (spec.md §6.4). The result is padded to 4-byte
// alignment per spec.md §6.3. Every multi-byte field is written with
// encoding/binary's explicit little-endian helpers rather than a native
// bit-cast, so unlike the reference format this implementation places no
// restriction on host byte order.
func EncodeFromJSON(v jiter.Value) ([]byte, error) {
	buf, err := encodeValue(nil, v)
	if err != nil {
		return nil, err
	}
	return padTo(buf, 4), nil
}

// DecodeToJSONValue decodes an encoded buffer back into a full jiter.Value
// tree (spec.md §6.4). Trailing alignment padding is ignored.
func DecodeToJSONValue(buf []byte) (jiter.Value, error) {
	v, _, err := decodeValue(buf, 0)
	return v, err
}

// BatsonToJSONString renders an encoded buffer as canonical JSON text
// without an intermediate round trip through a second serializer: it
// decodes to a Value and reuses jiter's own canonical AppendJSON (spec.md
// §8.1's "same key order, same array order" property is satisfied for free
// this way, since both Batson's decode and JSON's own tree share one
// serializer).
func BatsonToJSONString(buf []byte) (string, error) {
	v, err := DecodeToJSONValue(buf)
	if err != nil {
		return "", err
	}
	return string(jiter.AppendJSON(nil, v)), nil
}
