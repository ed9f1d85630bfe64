package jiter

// Peek is a one-byte sentinel summarizing the next structural token without
// consuming it (spec.md §3.2). For digits, Peek is the digit byte itself;
// is_num is true for any digit plus Minus/Infinity/NaN lead bytes.
type Peek byte

const (
	PeekNull   Peek = 'n'
	PeekTrue   Peek = 't'
	PeekFalse  Peek = 'f'
	PeekMinus  Peek = '-'
	PeekInf    Peek = 'I'
	PeekNaN    Peek = 'N'
	PeekString Peek = '"'
	PeekArray  Peek = '['
	PeekObject Peek = '{'
)

// IsNum reports whether this peek leads a number: an ASCII digit, or one of
// the Minus/Infinity/NaN sentinels.
func (p Peek) IsNum() bool {
	switch {
	case p >= '0' && p <= '9':
		return true
	case p == PeekMinus, p == PeekInf, p == PeekNaN:
		return true
	default:
		return false
	}
}

// ValueType reports the coarse value type a peek implies, for WrongType
// diagnostics. Numbers resolve to TypeInt as a default guess; callers with a
// concrete value should prefer the type they actually decoded.
func (p Peek) ValueType() ValueType {
	switch {
	case p == PeekNull:
		return TypeNull
	case p == PeekTrue, p == PeekFalse:
		return TypeBool
	case p == PeekString:
		return TypeString
	case p == PeekArray:
		return TypeArray
	case p == PeekObject:
		return TypeObject
	case p.IsNum():
		return TypeInt
	default:
		return TypeNull
	}
}
