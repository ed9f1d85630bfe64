package jiter

import (
	"math/big"
	"strconv"
)

// maxDigits is the arbitrary-precision ceiling from spec.md §4.3: an integer
// literal longer than this many characters is rejected outright so that a
// pathological input (millions of digits) fails fast instead of allocating
// without bound.
const maxDigits = 4300

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// IntValue is the result of parsing a JSON integer. Values that fit in an
// int64 are carried in Small; Big is non-nil only for magnitudes that do
// not fit (spec.md invariant: BigInt is never produced when Int would do).
type IntValue struct {
	Small int64
	Big   *big.Int
}

// IsBig reports whether this value required arbitrary-precision storage.
func (v IntValue) IsBig() bool { return v.Big != nil }

func (v IntValue) String() string {
	if v.Big != nil {
		return v.Big.String()
	}
	return strconv.FormatInt(v.Small, 10)
}

// Float64 widens an IntValue to float64, used where a number in a float
// context arrived in integer notation.
func (v IntValue) Float64() float64 {
	if v.Big != nil {
		f := new(big.Float).SetInt(v.Big)
		out, _ := f.Float64()
		return out
	}
	return float64(v.Small)
}

// AnyNumber is the result of NumberAny: either a float or an integer,
// tagged by IsFloat.
type AnyNumber struct {
	IsFloat bool
	Float   float64
	Int     IntValue
}

// NumberRange is the lossless shape: the exact byte span of the number as it
// appeared in the source, plus whether it was written in integer notation.
// Retaining the bytes verbatim lets a caller build a "lossless float" that
// re-parses on demand instead of losing precision up front.
type NumberRange struct {
	Start, End int
	IsInt      bool
}

// Bytes returns the source slice this range covers.
func (r NumberRange) Bytes(data []byte) []byte {
	return data[r.Start:r.End]
}

// LosslessFloat preserves the exact source digits of a float literal. Float
// re-parses those bytes on demand; it is never computed eagerly.
type LosslessFloat struct {
	raw []byte
}

// NewLosslessFloat wraps a byte range (typically from NumberRange.Bytes) as
// a lossless float.
func NewLosslessFloat(raw []byte) LosslessFloat {
	return LosslessFloat{raw: raw}
}

func (l LosslessFloat) Bytes() []byte { return l.raw }

func (l LosslessFloat) Float() (float64, error) {
	return strconv.ParseFloat(string(l.raw), 64)
}

// scanNumberRange classifies and scans a complete number literal starting at
// pos, per the classification rules of spec.md §4.3. It never materializes
// a numeric value; it only finds the literal's extent and whether it is
// integer-shaped.
func scanNumberRange(data []byte, pos int, allowInfNan bool) (isInt bool, end int, err *JSONError) {
	start := pos
	if pos >= len(data) {
		return false, pos, newJSONErr(EofWhileParsingValue, pos)
	}
	positive := true
	if data[pos] == '-' {
		positive = false
		pos++
		if pos >= len(data) {
			return false, pos, newJSONErr(EofWhileParsingValue, pos)
		}
	}

	switch {
	case data[pos] == 'N':
		if !allowInfNan {
			if positive {
				return false, pos, newJSONErr(ExpectedSomeValue, start)
			}
			return false, pos, newJSONErr(InvalidNumber, start)
		}
		end, jerr := consumeLiteral(data, pos, "NaN")
		return false, end, jerr
	case data[pos] == 'I':
		if !allowInfNan {
			if positive {
				return false, pos, newJSONErr(ExpectedSomeValue, start)
			}
			return false, pos, newJSONErr(InvalidNumber, start)
		}
		end, jerr := consumeLiteral(data, pos, "Infinity")
		return false, end, jerr
	case data[pos] == '0':
		pos++
		if pos < len(data) {
			switch data[pos] {
			case '.', 'e', 'E':
				end, jerr := consumeFloatRest(data, pos)
				return false, end, jerr
			}
			if isDigit(data[pos]) {
				return false, pos, newJSONErr(InvalidNumber, pos)
			}
		}
		return true, pos, nil
	case data[pos] >= '1' && data[pos] <= '9':
		pos++
		digitCount := 1
		for pos < len(data) && isDigit(data[pos]) {
			pos++
			digitCount++
			if digitCount > maxDigits {
				// Reported at a fixed offset past the ceiling so that
				// pathological inputs with millions of digits fail without
				// scanning the rest of them.
				return false, pos, newJSONErr(NumberOutOfRange, start+maxDigits+1)
			}
		}
		if pos < len(data) {
			switch data[pos] {
			case '.', 'e', 'E':
				end, jerr := consumeFloatRest(data, pos)
				return false, end, jerr
			}
		}
		return true, pos, nil
	default:
		return false, pos, newJSONErr(InvalidNumber, start)
	}
}

func consumeLiteral(data []byte, pos int, lit string) (int, *JSONError) {
	for i := 0; i < len(lit); i++ {
		if pos+i >= len(data) {
			return pos + i, newJSONErr(EofWhileParsingValue, pos+i)
		}
		if data[pos+i] != lit[i] {
			return pos + i, newJSONErr(InvalidNumber, pos+i)
		}
	}
	return pos + len(lit), nil
}

// consumeFloatRest scans an optional fractional part and optional exponent
// sub-grammar (spec.md §4.3 "Exponent sub-grammar"), starting at the first
// byte after the integer part ('.', 'e', or 'E').
func consumeFloatRest(data []byte, pos int) (int, *JSONError) {
	if pos < len(data) && data[pos] == '.' {
		dotPos := pos
		pos++
		digitStart := pos
		for pos < len(data) && isDigit(data[pos]) {
			pos++
		}
		if pos == digitStart {
			if pos >= len(data) {
				return pos, newJSONErr(EofWhileParsingValue, pos)
			}
			return pos, newJSONErr(InvalidNumber, dotPos+1)
		}
	}
	if pos < len(data) && (data[pos] == 'e' || data[pos] == 'E') {
		ePos := pos
		pos++
		if pos < len(data) && (data[pos] == '+' || data[pos] == '-') {
			pos++
		}
		digitStart := pos
		for pos < len(data) && isDigit(data[pos]) {
			pos++
		}
		if pos == digitStart {
			if pos >= len(data) {
				return pos, newJSONErr(EofWhileParsingValue, pos)
			}
			return pos, newJSONErr(InvalidNumber, ePos+1)
		}
	}
	return pos, nil
}

// parseNumberAny scans and fully materializes a number as either an integer
// or a float (component C, NumberAny shape).
func parseNumberAny(data []byte, pos int, allowInfNan bool) (AnyNumber, int, error) {
	isInt, end, jerr := scanNumberRange(data, pos, allowInfNan)
	if jerr != nil {
		return AnyNumber{}, end, jerr
	}
	raw := data[pos:end]
	if isInt {
		iv, ierr := magnitudeToInt(raw)
		if ierr != nil {
			return AnyNumber{}, end, ierr
		}
		return AnyNumber{IsFloat: false, Int: iv}, end, nil
	}
	f, ferr := parseFloatLiteral(data, pos, end)
	if ferr != nil {
		return AnyNumber{}, end, ferr
	}
	return AnyNumber{IsFloat: true, Float: f}, end, nil
}

// parseNumberInt scans and requires integer notation (component C,
// NumberInt shape). A float-shaped literal is reported via the dedicated
// FloatExpectingInt error kind, which the strict-int cursor methods
// reclassify into a WrongType error (spec.md §4.2).
func parseNumberInt(data []byte, pos int, allowInfNan bool) (IntValue, int, error) {
	isInt, end, jerr := scanNumberRange(data, pos, allowInfNan)
	if jerr != nil {
		return IntValue{}, end, jerr
	}
	if !isInt {
		return IntValue{}, end, newJSONErr(FloatExpectingInt, pos)
	}
	iv, ierr := magnitudeToInt(data[pos:end])
	if ierr != nil {
		return IntValue{}, end, ierr
	}
	return iv, end, nil
}

// parseNumberFloat scans and materializes a float, widening integer
// notation automatically (component C, NumberFloat shape).
func parseNumberFloat(data []byte, pos int, allowInfNan bool) (float64, int, error) {
	isInt, end, jerr := scanNumberRange(data, pos, allowInfNan)
	if jerr != nil {
		return 0, end, jerr
	}
	if isInt {
		iv, ierr := magnitudeToInt(data[pos:end])
		if ierr != nil {
			return 0, end, ierr
		}
		return iv.Float64(), end, nil
	}
	f, ferr := parseFloatLiteral(data, pos, end)
	if ferr != nil {
		return 0, end, ferr
	}
	return f, end, nil
}

// parseNumberRangeValue scans without materializing a value at all
// (component C, NumberRange shape), used by lossless-float callers and by
// next_number_bytes.
func parseNumberRangeValue(data []byte, pos int, allowInfNan bool) (NumberRange, int, error) {
	isInt, end, jerr := scanNumberRange(data, pos, allowInfNan)
	if jerr != nil {
		return NumberRange{}, end, jerr
	}
	return NumberRange{Start: pos, End: end, IsInt: isInt}, end, nil
}

// parseFloatLiteral re-parses a validated float literal with strconv. Go's
// ParseFloat already accepts "Infinity"/"NaN" spellings (case-insensitively)
// so no separate inf/nan construction is required. If it somehow fails
// despite scanNumberRange's validation, it returns InvalidNumber at the
// literal's start in place of strconv's message; the range is not scanned
// again to locate the offending byte.
func parseFloatLiteral(data []byte, start, end int) (float64, error) {
	f, err := strconv.ParseFloat(string(data[start:end]), 64)
	if err != nil {
		return 0, newJSONErr(InvalidNumber, start)
	}
	return f, nil
}

// magnitudeToInt accumulates a validated run of ASCII digits (optionally
// signed) into an IntValue, preferring int64 and falling back to arbitrary
// precision only when the magnitude does not fit (spec.md invariant).
func magnitudeToInt(raw []byte) (IntValue, *JSONError) {
	neg := false
	digits := raw
	if len(digits) > 0 && digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}
	if len(digits) <= 18 {
		v := accumulateDigits(digits)
		if neg {
			return IntValue{Small: -int64(v)}, nil
		}
		return IntValue{Small: int64(v)}, nil
	}

	acc := new(big.Int)
	pos := 0
	for pos < len(digits) {
		chunkLen := 18
		if len(digits)-pos < chunkLen {
			chunkLen = len(digits) - pos
		}
		chunkVal := accumulateDigits(digits[pos : pos+chunkLen])
		acc.Mul(acc, pow10Big(chunkLen))
		acc.Add(acc, new(big.Int).SetUint64(chunkVal))
		pos += chunkLen
	}
	if neg {
		acc.Neg(acc)
	}
	if acc.IsInt64() {
		return IntValue{Small: acc.Int64()}, nil
	}
	return IntValue{Big: acc}, nil
}

var pow10Cache [19]*big.Int

func pow10Big(n int) *big.Int {
	if n >= 0 && n < len(pow10Cache) {
		if pow10Cache[n] == nil {
			pow10Cache[n] = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
		}
		return pow10Cache[n]
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
