package jiter

import (
	"bytes"
	"math"
	"strconv"
	"unicode/utf8"
)

func appendRune(buf []byte, r rune) []byte {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return append(buf, tmp[:n]...)
}

// serFrame is one level of the explicit stack AppendJSON walks instead of
// recursing, mirroring the teacher's MarshalJSONBuffer technique of writing
// a recursive structure with a slice-based stack rather than the Go call
// stack.
type serFrame struct {
	v      Value
	opened bool
	arr    []Value
	obj    []Entry
	idx    int
}

// AppendJSON serializes v in canonical form, appending to buf. Floats built
// via LosslessFloatValueOf reserialize using their exact source digits
// rather than strconv's shortest round-trip form.
func AppendJSON(buf []byte, v Value) []byte {
	stack := []serFrame{{v: v}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.opened {
			top.opened = true
			switch top.v.typ {
			case TypeNull:
				buf = append(buf, "null"...)
				stack = stack[:len(stack)-1]
			case TypeBool:
				b, _ := top.v.Bool()
				if b {
					buf = append(buf, "true"...)
				} else {
					buf = append(buf, "false"...)
				}
				stack = stack[:len(stack)-1]
			case TypeInt:
				iv, _ := top.v.Int()
				buf = append(buf, iv.String()...)
				stack = stack[:len(stack)-1]
			case TypeFloat:
				buf = appendFloat(buf, top.v)
				stack = stack[:len(stack)-1]
			case TypeString:
				s, _ := top.v.Str()
				buf = appendJSONString(buf, s)
				stack = stack[:len(stack)-1]
			case TypeArray:
				a, _ := top.v.Array()
				top.arr = a.Items()
				buf = append(buf, '[')
				if len(top.arr) == 0 {
					buf = append(buf, ']')
					stack = stack[:len(stack)-1]
				}
			case TypeObject:
				o, _ := top.v.Object()
				top.obj = o.Entries()
				buf = append(buf, '{')
				if len(top.obj) == 0 {
					buf = append(buf, '}')
					stack = stack[:len(stack)-1]
				}
			}
			continue
		}

		if top.arr != nil {
			if top.idx < len(top.arr) {
				if top.idx > 0 {
					buf = append(buf, ',')
				}
				child := top.arr[top.idx]
				top.idx++
				stack = append(stack, serFrame{v: child})
				continue
			}
			buf = append(buf, ']')
			stack = stack[:len(stack)-1]
			continue
		}

		if top.idx < len(top.obj) {
			if top.idx > 0 {
				buf = append(buf, ',')
			}
			e := top.obj[top.idx]
			top.idx++
			buf = appendJSONString(buf, e.Key)
			buf = append(buf, ':')
			stack = append(stack, serFrame{v: e.Val})
			continue
		}
		buf = append(buf, '}')
		stack = stack[:len(stack)-1]
	}
	return buf
}

// appendFloat reserializes a Float value. A value built via
// LosslessFloatValueOf reuses its exact source digits; otherwise ±Inf and
// NaN are given their spec.md §4.3 spellings ("Infinity"/"-Infinity"/"NaN")
// rather than strconv's "+Inf"/"-Inf"/"NaN", since a Float carrying one of
// these three values may have reached here without raw source bytes to
// reuse (e.g. reconstructed from a Batson-decoded bit pattern). Any other
// value without raw bytes gets strconv's shortest form, with ".0" appended
// when that form has neither a '.' nor an exponent, so a whole-valued float
// such as 3.0 still reads back as a float.
func appendFloat(buf []byte, v Value) []byte {
	if raw, ok := v.FloatBytes(); ok {
		return append(buf, raw...)
	}
	f, _ := v.Float()
	switch {
	case math.IsNaN(f):
		return append(buf, "NaN"...)
	case math.IsInf(f, 1):
		return append(buf, "Infinity"...)
	case math.IsInf(f, -1):
		return append(buf, "-Infinity"...)
	default:
		start := len(buf)
		buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
		if !bytes.ContainsAny(buf[start:], ".e") {
			buf = append(buf, ".0"...)
		}
		return buf
	}
}

var hexDigits = "0123456789abcdef"

func appendJSONString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for _, r := range s {
		switch {
		case r == '"':
			buf = append(buf, '\\', '"')
		case r == '\\':
			buf = append(buf, '\\', '\\')
		case r == '\n':
			buf = append(buf, '\\', 'n')
		case r == '\r':
			buf = append(buf, '\\', 'r')
		case r == '\t':
			buf = append(buf, '\\', 't')
		case r < 0x20:
			buf = append(buf, '\\', 'u', '0', '0', hexDigits[r>>4], hexDigits[r&0xf])
		default:
			buf = appendRune(buf, r)
		}
	}
	return append(buf, '"')
}
