package jiter

import "fmt"

// ErrorKind enumerates the lexer-level error taxonomy (spec.md component B).
type ErrorKind int

const (
	EofWhileParsingList ErrorKind = iota
	EofWhileParsingObject
	EofWhileParsingString
	EofWhileParsingValue
	ExpectedColon
	ExpectedListCommaOrEnd
	ExpectedObjectCommaOrEnd
	ExpectedSomeIdent
	ExpectedSomeValue
	InvalidEscape
	InvalidNumber
	NumberOutOfRange
	InvalidUnicodeCodePoint
	ControlCharacterWhileParsingString
	KeyMustBeAString
	LoneLeadingSurrogateInHexEscape
	TrailingComma
	TrailingCharacters
	UnexpectedEndOfHexEscape
	RecursionLimitExceeded
	FloatExpectingInt
	DuplicateKey
)

var errorKindText = map[ErrorKind]string{
	EofWhileParsingList:                 "EOF while parsing a list",
	EofWhileParsingObject:               "EOF while parsing an object",
	EofWhileParsingString:               "EOF while parsing a string",
	EofWhileParsingValue:                "EOF while parsing a value",
	ExpectedColon:                       "expected `:`",
	ExpectedListCommaOrEnd:              "expected `,` or `]`",
	ExpectedObjectCommaOrEnd:            "expected `,` or `}`",
	ExpectedSomeIdent:                   "expected ident",
	ExpectedSomeValue:                   "expected value",
	InvalidEscape:                       "invalid escape",
	InvalidNumber:                       "invalid number",
	NumberOutOfRange:                    "number out of range",
	InvalidUnicodeCodePoint:             "invalid unicode code point",
	ControlCharacterWhileParsingString:  "control character while parsing a string",
	KeyMustBeAString:                    "key must be a string",
	LoneLeadingSurrogateInHexEscape:     "lone leading surrogate in hex escape",
	TrailingComma:                       "trailing comma",
	TrailingCharacters:                  "trailing characters",
	UnexpectedEndOfHexEscape:            "unexpected end of hex escape",
	RecursionLimitExceeded:              "recursion limit exceeded",
	FloatExpectingInt:                   "float expecting int",
	DuplicateKey:                        "duplicate key",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindText[k]; ok {
		return s
	}
	return "unknown error"
}

// allowedIfPartialSet holds the six error kinds that partial mode is allowed
// to recover from by finalizing the in-progress container (spec.md §4.2).
var allowedIfPartialSet = map[ErrorKind]bool{
	EofWhileParsingList:      true,
	EofWhileParsingObject:    true,
	EofWhileParsingString:    true,
	EofWhileParsingValue:     true,
	ExpectedListCommaOrEnd:   true,
	ExpectedObjectCommaOrEnd: true,
}

// AllowedIfPartial reports whether this error kind may be swallowed by
// partial-mode recovery.
func (k ErrorKind) AllowedIfPartial() bool {
	return allowedIfPartialSet[k]
}

// JSONError is a lexer-level error, carrying the byte index at which it was
// detected. The (line, column) form is computed lazily via Position.
type JSONError struct {
	Kind  ErrorKind
	Index int
	// Key carries the offending key name for DuplicateKey; empty otherwise.
	Key string
}

func (e *JSONError) Error() string {
	if e.Kind == DuplicateKey {
		return fmt.Sprintf("%s %q at index %d", e.Kind, e.Key, e.Index)
	}
	return fmt.Sprintf("%s at index %d", e.Kind, e.Index)
}

// Position computes the human-readable location of this error within data.
func (e *JSONError) Position(data []byte) Position {
	return FindPosition(data, e.Index)
}

func newJSONErr(kind ErrorKind, index int) *JSONError {
	return &JSONError{Kind: kind, Index: index}
}

func newDuplicateKeyErr(index int, key string) *JSONError {
	return &JSONError{Kind: DuplicateKey, Index: index, Key: key}
}

// ValueType names the seven JSON value shapes used in WrongType diagnostics.
type ValueType int

const (
	TypeNull ValueType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeArray
	TypeObject
)

func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// WrongTypeError is raised by the typed cursor API (component G) when the
// caller's expectation of the next value's type does not match reality. It
// does not advance the cursor past the offending value.
type WrongTypeError struct {
	Expected ValueType
	Actual   ValueType
	Index    int
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("expected %s but found %s at index %d", e.Expected, e.Actual, e.Index)
}

func newWrongType(expected, actual ValueType, index int) *WrongTypeError {
	return &WrongTypeError{Expected: expected, Actual: actual, Index: index}
}
