package batson

import (
	"encoding/binary"

	"github.com/klauspost/compress/s2"
)

// Compress and Decompress wrap an already-encoded Batson buffer with s2
// block compression, adapting the teacher's CompressMode concept
// (parsed_serialize.go: CompressNone/CompressFast/CompressDefault/
// CompressBest) to Batson's single encoded buffer rather than a
// tape/string/tag triple. spec.md is silent on at-rest storage for Batson
// buffers; this is a SPEC_FULL supplement, not part of the core wire
// format, so it lives behind its own two functions rather than folding into
// EncodeFromJSON/DecodeToJSONValue.
//
// The compressed form is a 4-byte little-endian original-length prefix
// followed by the s2 block, so Decompress can preallocate the destination
// buffer exactly.
func Compress(buf []byte) []byte {
	encoded := s2.Encode(make([]byte, s2.MaxEncodedLen(len(buf))), buf)
	out := make([]byte, 4+len(encoded))
	binary.LittleEndian.PutUint32(out, uint32(len(buf)))
	copy(out[4:], encoded)
	return out
}

// Decompress reverses Compress.
func Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) < 4 {
		return nil, errTruncated
	}
	n := binary.LittleEndian.Uint32(compressed)
	dst := make([]byte, n)
	return s2.Decode(dst, compressed[4:])
}
