package jiter

// stringScanWidth is the width of the vectorized string-scan kernel
// (spec.md §4.5).
const stringScanWidth = 16

// scanPlainAscii16 reports whether none of the 16 bytes starting at data is
// a quote, backslash, control character, or non-ASCII byte. If so, the
// whole 16-byte chunk is ordinary ASCII content that the scalar scanner can
// skip over in one step. Mirrors the teacher's "build a mask, if zero skip
// the block" shape (find_whitespace_and_structurals_amd64.go), translated
// from an AVX2 compare-mask to a plain byte scan since no SIMD intrinsic is
// available to this module.
func scanPlainAscii16(data []byte) bool {
	_ = data[15]
	for _, b := range data {
		if b == '"' || b == '\\' || b < 0x20 || b > 0x7f {
			return false
		}
	}
	return true
}

// hasWideStringSupport gates the wide scan path the same way
// hasWideIntSupport gates the digit kernel.
func hasWideStringSupport() bool {
	return hasWideIntSupport()
}
