package jiter

import "github.com/klauspost/cpuid/v2"

// wideKernelWidth is the width of the vectorized integer-chunk kernel
// (spec.md §4.5: "load 16 bytes"). Chunks shorter than this always take the
// scalar path below.
const wideKernelWidth = 16

// hasWideIntSupport reports whether the current CPU is worth taking the
// wide accumulation path on. The kernel itself is portable pure-Go SWAR
// (no assembly is available to this module), but gating it behind a real
// feature check mirrors the teacher's practice of deciding per-host whether
// to take its vectorized path (simdjson_amd64.go's supportsAVX2) rather
// than assuming every build should.
func hasWideIntSupport() bool {
	return cpuid.CPU.Supports(cpuid.SSE2)
}

// combine16Digits folds 16 ASCII digit bytes into their decimal value using
// the cascading pairwise-multiply pattern from spec.md §4.5: d0*10+d1, then
// *100+.., then *10000+.., then *1e8+.. This is the same reduction a 16-lane
// vector multiply-add would perform; written scalar here since no SIMD
// intrinsic is available, but it processes the whole chunk as one unit
// rather than digit-by-digit.
func combine16Digits(d []byte) uint64 {
	_ = d[15]
	var p [8]uint64
	for i := 0; i < 8; i++ {
		p[i] = uint64(d[2*i]-'0')*10 + uint64(d[2*i+1]-'0')
	}
	var q [4]uint64
	for i := 0; i < 4; i++ {
		q[i] = p[2*i]*100 + p[2*i+1]
	}
	var r [2]uint64
	for i := 0; i < 2; i++ {
		r[i] = q[2*i]*10000 + q[2*i+1]
	}
	return r[0]*100000000 + r[1]
}

// digitsMask16 reports whether all 16 bytes of d are ASCII digits, mirroring
// the "not-a-digit mask via OR of <'0' and >'9'" test from spec.md §4.5.
func digitsMask16(d []byte) bool {
	_ = d[15]
	var bad byte
	for _, b := range d {
		bad |= boolToByte(b < '0') | boolToByte(b > '9')
	}
	return bad == 0
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// accumulateDigits converts a run of validated ASCII digits (length <= 18,
// guaranteed by the caller) into its uint64 value. When the input is wide
// enough and the host is worth it, the first 16 bytes are folded by the
// wide kernel and only the short tail falls through to the scalar loop;
// otherwise the whole chunk takes the scalar loop. Both paths are
// semantically identical, as spec.md §4.5 requires.
func accumulateDigits(digits []byte) uint64 {
	if len(digits) >= wideKernelWidth && hasWideIntSupport() && digitsMask16(digits[:wideKernelWidth]) {
		v := combine16Digits(digits[:wideKernelWidth])
		for _, c := range digits[wideKernelWidth:] {
			v = v*10 + uint64(c-'0')
		}
		return v
	}
	v := uint64(0)
	for _, c := range digits {
		v = v*10 + uint64(c-'0')
	}
	return v
}
