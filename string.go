package jiter

import "unicode/utf8"

// StringOutput is the result of decoding a JSON string: either a borrow
// into the source bytes (escape-free fast path) or a borrow into the
// cursor's tape (decoded escapes). Ascii is true when no byte above 0x7F
// was seen, letting callers skip a redundant UTF-8 validation pass.
type StringOutput struct {
	Bytes []byte
	Ascii bool
}

// partialEOF signals that decoding stopped early because allowPartial is
// set and the input ended mid-string or mid-escape. It is not surfaced to
// callers as an error; decodeStringValidate/decodeStringRange convert it
// into a successful partial result.
type partialEOF struct{ index int }

func (p *partialEOF) Error() string { return "partial string: input ended" }

// decodeStringValidate scans, unescapes, and UTF-8-validates a JSON string.
// pos must point at the opening quote. It returns the position just past
// the closing quote (or, in partial mode, just past the last byte read).
func decodeStringValidate(data []byte, pos int, tp *tape, allowPartial bool) (StringOutput, int, error) {
	start := pos + 1
	i := start
	asciiOnly := true
	lastCopy := start
	escaped := false
	tp.reset()

	finishBorrowed := func(end int) StringOutput {
		return StringOutput{Bytes: data[start:end], Ascii: asciiOnly}
	}
	finishTaped := func(end int) StringOutput {
		tp.appendString(data[lastCopy:end])
		return StringOutput{Bytes: tp.bytes(), Ascii: asciiOnly}
	}

	for {
		for hasWideStringSupport() && i+stringScanWidth <= len(data) && scanPlainAscii16(data[i:i+stringScanWidth]) {
			i += stringScanWidth
		}
		if i >= len(data) {
			if !allowPartial {
				return StringOutput{}, i, newJSONErr(EofWhileParsingString, i)
			}
			var out StringOutput
			if escaped {
				out = finishTaped(i)
			} else {
				out = finishBorrowed(i)
			}
			out, err := validatedOutput(out, start, allowPartial)
			return out, i, err
		}
		c := data[i]
		switch {
		case c == '"':
			var out StringOutput
			var end int
			if escaped {
				out = finishTaped(i)
			} else {
				out = finishBorrowed(i)
			}
			end = i + 1
			out, err := validatedOutput(out, start, allowPartial)
			return out, end, err
		case c == '\\':
			escaped = true
			tp.appendString(data[lastCopy:i])
			next, err := decodeEscape(data, i, tp, allowPartial)
			if err != nil {
				if _, ok := err.(*partialEOF); ok {
					out, verr := validatedOutput(StringOutput{Bytes: tp.bytes(), Ascii: asciiOnly}, start, allowPartial)
					return out, len(data), verr
				}
				return StringOutput{}, i, err
			}
			i = next
			lastCopy = i
		case c < 0x20:
			return StringOutput{}, i, newJSONErr(ControlCharacterWhileParsingString, i)
		case c > 0x7f:
			asciiOnly = false
			i++
		default:
			i++
		}
	}
}

// validatedOutput runs the deferred UTF-8 validation pass (spec.md §4.4):
// skipped entirely when Ascii is set, otherwise performed once over the
// final bytes. In partial mode, an incomplete (not invalid) trailing
// sequence is truncated rather than rejected.
func validatedOutput(out StringOutput, start int, allowPartial bool) (StringOutput, error) {
	if out.Ascii {
		return out, nil
	}
	validUpTo, truncated, bad := scanUTF8(out.Bytes, allowPartial)
	if bad {
		return StringOutput{}, newJSONErr(InvalidUnicodeCodePoint, start+validUpTo+1)
	}
	if truncated {
		out.Bytes = out.Bytes[:validUpTo]
	}
	return out, nil
}

// scanUTF8 walks b rune by rune. It returns the offset of the first
// problem (or len(b) if none), whether that problem is a merely-incomplete
// trailing sequence (only reported as such when allowPartial is set), and
// whether it is a genuine invalid-encoding error.
func scanUTF8(b []byte, allowPartial bool) (validUpTo int, truncated bool, bad bool) {
	i := 0
	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			if allowPartial && !utf8.FullRune(b[i:]) {
				return i, true, false
			}
			return i, false, true
		}
		i += size
	}
	return i, false, false
}

func parseHex4(data []byte, pos int) (uint32, *JSONError) {
	var v uint32
	for i := 0; i < 4; i++ {
		c := data[pos+i]
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			return 0, newJSONErr(InvalidEscape, pos+i)
		}
		v = v<<4 | d
	}
	return v, nil
}

// decodeEscape decodes a single escape sequence starting at the backslash
// at data[pos], appending its decoded bytes to tp. It returns the position
// just past the escape.
func decodeEscape(data []byte, pos int, tp *tape, allowPartial bool) (int, error) {
	if pos+1 >= len(data) {
		if allowPartial {
			return pos, &partialEOF{index: pos}
		}
		return pos, newJSONErr(EofWhileParsingString, len(data))
	}
	switch data[pos+1] {
	case '"', '\\', '/':
		tp.append(data[pos+1])
		return pos + 2, nil
	case 'b':
		tp.append(0x08)
		return pos + 2, nil
	case 'f':
		tp.append(0x0C)
		return pos + 2, nil
	case 'n':
		tp.append(0x0A)
		return pos + 2, nil
	case 'r':
		tp.append(0x0D)
		return pos + 2, nil
	case 't':
		tp.append(0x09)
		return pos + 2, nil
	case 'u':
		if pos+6 > len(data) {
			if allowPartial {
				return pos, &partialEOF{index: pos}
			}
			return pos, newJSONErr(EofWhileParsingString, len(data))
		}
		hi, herr := parseHex4(data, pos+2)
		if herr != nil {
			return pos, herr
		}
		if hi >= 0xDC00 && hi <= 0xDFFF {
			return pos, newJSONErr(LoneLeadingSurrogateInHexEscape, pos)
		}
		if hi >= 0xD800 && hi <= 0xDBFF {
			if pos+8 > len(data) {
				if allowPartial {
					return pos, &partialEOF{index: pos}
				}
				return pos, newJSONErr(EofWhileParsingString, len(data))
			}
			if data[pos+6] != '\\' || data[pos+7] != 'u' {
				return pos, newJSONErr(UnexpectedEndOfHexEscape, pos+6)
			}
			if pos+12 > len(data) {
				if allowPartial {
					return pos, &partialEOF{index: pos}
				}
				return pos, newJSONErr(EofWhileParsingString, len(data))
			}
			lo, lerr := parseHex4(data, pos+8)
			if lerr != nil {
				return pos, lerr
			}
			if lo < 0xDC00 || lo > 0xDFFF {
				return pos, newJSONErr(UnexpectedEndOfHexEscape, pos+6)
			}
			r := rune((hi-0xD800)<<10|(lo-0xDC00)) + 0x10000
			tp.appendRune(r)
			return pos + 12, nil
		}
		tp.appendRune(rune(hi))
		return pos + 6, nil
	default:
		return pos, newJSONErr(InvalidEscape, pos+1)
	}
}

// decodeStringRange scans a JSON string without decoding escapes or
// validating UTF-8, returning only its source byte range (component D,
// StringDecoderRange). Used by the skip-value fast path, which never needs
// the decoded text.
func decodeStringRange(data []byte, pos int, allowPartial bool) (start, end, next int, err error) {
	start = pos + 1
	i := start
	for {
		for hasWideStringSupport() && i+stringScanWidth <= len(data) && scanPlainAscii16(data[i:i+stringScanWidth]) {
			i += stringScanWidth
		}
		if i >= len(data) {
			if !allowPartial {
				return start, i, i, newJSONErr(EofWhileParsingString, i)
			}
			return start, i, i, nil
		}
		switch {
		case data[i] == '"':
			return start, i, i + 1, nil
		case data[i] == '\\':
			if i+1 >= len(data) {
				if allowPartial {
					return start, i, i, nil
				}
				return start, i, i, newJSONErr(EofWhileParsingString, len(data))
			}
			if data[i+1] == 'u' {
				if i+6 > len(data) {
					if allowPartial {
						return start, i, i, nil
					}
					return start, i, i, newJSONErr(EofWhileParsingString, len(data))
				}
				i += 6
			} else {
				i += 2
			}
		case data[i] < 0x20:
			return start, i, i, newJSONErr(ControlCharacterWhileParsingString, i)
		default:
			i++
		}
	}
}
