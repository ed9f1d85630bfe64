package batson

import "errors"

// Sentinel errors for the encode/decode/path-read paths (spec.md §6.4):
// EncodeErr, DecodeErr, ToJsonErr are satisfied by these via errors.Is, the
// way the teacher's own sentinel errors (e.g. parsed_array.go's
// "expected TagArrayEnd...") are compared by identity in tests.
var (
	// errUnsupportedValue is returned by EncodeFromJSON when a Value holds
	// a shape this encoder has no wire representation for (there are none
	// today; reserved for forward compatibility with new jiter.ValueType
	// cases).
	errUnsupportedValue = errors.New("batson: unsupported value shape")
	// errTruncated means the buffer ended before a header's follow-on
	// fields or body could be read in full.
	errTruncated = errors.New("batson: truncated buffer")
	// errCorrupt means a header byte's category/right-nibble combination is
	// not one this decoder recognizes.
	errCorrupt = errors.New("batson: corrupt header byte")
	// errBigEndianHost is not returned by any code path: every multi-byte
	// field goes through encoding/binary's little-endian helpers, so host
	// byte order is never checked.
	errBigEndianHost = errors.New("batson: big-endian hosts are not supported")
)
