package jiter

// Jiter is the typed pull-parsing cursor (component G): a peek/consume API
// layered on top of the lexical core, returning materialized values without
// building an intermediate tree unless the caller asks for one via
// NextValue.
type Jiter struct {
	p   *parser
	tp  *tape
	cfg Config
}

// New wraps data for pull-parsing.
func New(data []byte, opts ...Option) *Jiter {
	return &Jiter{p: newParser(data), tp: &tape{}, cfg: newConfig(opts...)}
}

// Clone returns an independent cursor over the same remaining input and
// current position, with a fresh empty tape so neither cursor can observe
// the other's in-flight string decode.
func (j *Jiter) Clone() *Jiter {
	return &Jiter{
		p:   &parser{data: j.p.data, pos: j.p.pos},
		tp:  &tape{},
		cfg: j.cfg,
	}
}

// Peek classifies the next token without consuming it.
func (j *Jiter) Peek() (Peek, error) { return j.p.peek() }

// CurrentIndex is the cursor's current byte offset into the input.
func (j *Jiter) CurrentIndex() int { return j.p.pos }

// CurrentPosition is the (line, column) form of CurrentIndex.
func (j *Jiter) CurrentPosition() Position { return FindPosition(j.p.data, j.p.pos) }

// ErrorPosition computes the (line, column) form of an arbitrary byte index
// into this cursor's input, for reporting errors captured elsewhere.
func (j *Jiter) ErrorPosition(index int) Position { return FindPosition(j.p.data, index) }

// SliceToCurrent returns the source bytes from start up to (not including)
// the cursor's current position.
func (j *Jiter) SliceToCurrent(start int) []byte { return j.p.data[start:j.p.pos] }

func (j *Jiter) NextNull() error {
	pk, err := j.Peek()
	if err != nil {
		return err
	}
	return j.KnownNull(pk)
}

func (j *Jiter) KnownNull(pk Peek) error {
	if pk != PeekNull {
		return newWrongType(TypeNull, pk.ValueType(), j.p.pos)
	}
	return j.p.consumeNull()
}

func (j *Jiter) NextBool() (bool, error) {
	pk, err := j.Peek()
	if err != nil {
		return false, err
	}
	return j.KnownBool(pk)
}

func (j *Jiter) KnownBool(pk Peek) (bool, error) {
	switch pk {
	case PeekTrue:
		return true, j.p.consumeTrue()
	case PeekFalse:
		return false, j.p.consumeFalse()
	default:
		return false, newWrongType(TypeBool, pk.ValueType(), j.p.pos)
	}
}

func (j *Jiter) NextInt() (IntValue, error) {
	pk, err := j.Peek()
	if err != nil {
		return IntValue{}, err
	}
	return j.KnownInt(pk)
}

// KnownInt requires integer notation. A float-shaped literal is reclassified
// from the lexer's FloatExpectingInt into a cursor-level WrongTypeError, per
// spec.md §4.2: callers see one coherent type-mismatch taxonomy regardless
// of which layer detected the mismatch.
func (j *Jiter) KnownInt(pk Peek) (IntValue, error) {
	if !pk.IsNum() {
		return IntValue{}, newWrongType(TypeInt, pk.ValueType(), j.p.pos)
	}
	start := j.p.pos
	iv, next, err := parseNumberInt(j.p.data, j.p.pos, j.cfg.AllowInfNaN)
	if err != nil {
		if je, ok := err.(*JSONError); ok && je.Kind == FloatExpectingInt {
			return IntValue{}, newWrongType(TypeInt, TypeFloat, start)
		}
		return IntValue{}, err
	}
	j.p.pos = next
	return iv, nil
}

func (j *Jiter) NextFloat() (float64, error) {
	pk, err := j.Peek()
	if err != nil {
		return 0, err
	}
	return j.KnownFloat(pk)
}

func (j *Jiter) KnownFloat(pk Peek) (float64, error) {
	if !pk.IsNum() {
		return 0, newWrongType(TypeFloat, pk.ValueType(), j.p.pos)
	}
	f, next, err := parseNumberFloat(j.p.data, j.p.pos, j.cfg.AllowInfNaN)
	if err != nil {
		return 0, err
	}
	j.p.pos = next
	return f, nil
}

func (j *Jiter) NextNumber() (AnyNumber, error) {
	pk, err := j.Peek()
	if err != nil {
		return AnyNumber{}, err
	}
	return j.KnownNumber(pk)
}

func (j *Jiter) KnownNumber(pk Peek) (AnyNumber, error) {
	if !pk.IsNum() {
		return AnyNumber{}, newWrongType(TypeInt, pk.ValueType(), j.p.pos)
	}
	num, next, err := parseNumberAny(j.p.data, j.p.pos, j.cfg.AllowInfNaN)
	if err != nil {
		return AnyNumber{}, err
	}
	j.p.pos = next
	return num, nil
}

// NextNumberBytes scans a number without materializing it, for callers that
// only need the lossless source span (component C, NumberRange shape).
func (j *Jiter) NextNumberBytes() (NumberRange, error) {
	pk, err := j.Peek()
	if err != nil {
		return NumberRange{}, err
	}
	if !pk.IsNum() {
		return NumberRange{}, newWrongType(TypeInt, pk.ValueType(), j.p.pos)
	}
	nr, next, err := parseNumberRangeValue(j.p.data, j.p.pos, j.cfg.AllowInfNaN)
	if err != nil {
		return NumberRange{}, err
	}
	j.p.pos = next
	return nr, nil
}

// NextBytes decodes a string, returning the zero-copy StringOutput form.
func (j *Jiter) NextBytes() (StringOutput, error) {
	pk, err := j.Peek()
	if err != nil {
		return StringOutput{}, err
	}
	return j.KnownBytes(pk)
}

func (j *Jiter) KnownBytes(pk Peek) (StringOutput, error) {
	if pk != PeekString {
		return StringOutput{}, newWrongType(TypeString, pk.ValueType(), j.p.pos)
	}
	out, next, err := decodeStringValidate(j.p.data, j.p.pos, j.tp, j.cfg.Partial.allowsTrailingString())
	if err != nil {
		return StringOutput{}, err
	}
	j.p.pos = next
	return out, nil
}

func (j *Jiter) NextStr() (string, error) {
	out, err := j.NextBytes()
	if err != nil {
		return "", err
	}
	return j.internString(out), nil
}

func (j *Jiter) KnownStr(pk Peek) (string, error) {
	out, err := j.KnownBytes(pk)
	if err != nil {
		return "", err
	}
	return j.internString(out), nil
}

// internString routes a decoded string through the configured StringCache,
// if any, so that repeated keys/values across a large document share one Go
// string instead of allocating a copy per occurrence.
func (j *Jiter) internString(out StringOutput) string {
	if j.cfg.Cache != nil {
		return j.cfg.Cache.Intern(out.Bytes, out.Ascii)
	}
	return string(out.Bytes)
}

// internKeyBytes is internString's counterpart for object keys, which reach
// here as plain []byte rather than StringOutput (decodeKey already folded
// that wrapper away before the parser's objectFirst/objectStep see it).
func (j *Jiter) internKeyBytes(b []byte) string {
	if j.cfg.Cache != nil {
		return j.cfg.Cache.Intern(b, false)
	}
	return string(b)
}

// NextArray opens an array, returning the peek of its first element and
// false if it is empty.
func (j *Jiter) NextArray() (Peek, bool, error) {
	pk, err := j.Peek()
	if err != nil {
		return 0, false, err
	}
	return j.KnownArray(pk)
}

// KnownArray is NextArray's known_-form counterpart for a caller that has
// already peeked; if pk is not PeekArray it returns a WrongTypeError.
func (j *Jiter) KnownArray(pk Peek) (Peek, bool, error) {
	if pk != PeekArray {
		return 0, false, newWrongType(TypeArray, pk.ValueType(), j.p.pos)
	}
	return j.p.arrayFirst()
}

// ArrayStep must be called once the caller has fully consumed the element
// NextArray/ArrayStep last returned.
func (j *Jiter) ArrayStep() (Peek, bool, error) { return j.p.arrayStep() }

func (j *Jiter) decodeKey(data []byte, pos int, allowPartial bool) ([]byte, int, error) {
	out, next, err := decodeStringValidate(data, pos, j.tp, allowPartial)
	if err != nil {
		return nil, next, err
	}
	return out.Bytes, next, nil
}

func (j *Jiter) decodeKeyRange(data []byte, pos int, allowPartial bool) ([]byte, int, error) {
	_, _, next, err := decodeStringRange(data, pos, allowPartial)
	if err != nil {
		return nil, next, err
	}
	return nil, next, nil
}

// NextObject opens an object, returning its first key, or hasKey=false if it
// is empty.
func (j *Jiter) NextObject() (key string, hasKey bool, err error) {
	pk, perr := j.Peek()
	if perr != nil {
		return "", false, perr
	}
	return j.KnownObject(pk)
}

// KnownObject is NextObject's known_-form counterpart: the caller has
// already peeked and confirmed pk is PeekObject.
func (j *Jiter) KnownObject(pk Peek) (key string, hasKey bool, err error) {
	if pk != PeekObject {
		return "", false, newWrongType(TypeObject, pk.ValueType(), j.p.pos)
	}
	k, hasKey, err := j.p.objectFirst(j.decodeKey, j.cfg.Partial.allowsRecovery())
	if err != nil || !hasKey {
		return "", hasKey, err
	}
	return j.internKeyBytes(k), true, nil
}

// NextObjectBytes is NextObject's uninterned form, returning the key's raw
// decoded bytes directly (skipping the StringCache, same as NextBytes vs
// NextStr for string values).
func (j *Jiter) NextObjectBytes() (key []byte, hasKey bool, err error) {
	pk, perr := j.Peek()
	if perr != nil {
		return nil, false, perr
	}
	if pk != PeekObject {
		return nil, false, newWrongType(TypeObject, pk.ValueType(), j.p.pos)
	}
	return j.p.objectFirst(j.decodeKey, j.cfg.Partial.allowsRecovery())
}

// ObjectStep must be called once the caller has fully consumed the value
// belonging to the key NextObject/ObjectStep last returned.
func (j *Jiter) ObjectStep() (key string, hasKey bool, err error) {
	k, hasKey, err := j.p.objectStep(j.decodeKey, j.cfg.Partial.allowsRecovery())
	if err != nil || !hasKey {
		return "", hasKey, err
	}
	return j.internKeyBytes(k), true, nil
}

// NextKeyBytes is ObjectStep's uninterned form (next_key_bytes), the
// Bytes-returning sibling of ObjectStep the same way NextObjectBytes is to
// NextObject.
func (j *Jiter) NextKeyBytes() (key []byte, hasKey bool, err error) {
	return j.p.objectStep(j.decodeKey, j.cfg.Partial.allowsRecovery())
}

// NextValue builds one complete Value at the cursor's current position
// using the full recursive-descent builder, without requiring the rest of
// the input be consumed (the cursor may still have siblings left to read).
func (j *Jiter) NextValue() (Value, error) {
	return buildValueWithParser(j.p, j.tp, j.cfg, false)
}

// Finish requires the remaining input (after trailing whitespace) be empty.
func (j *Jiter) Finish() error { return j.p.finish() }

// NextSkip advances past the next value without materializing it
// (component G, next_skip), using a bounded explicit stack so arbitrarily
// deep nesting cannot overflow the goroutine stack the way native recursion
// would.
func (j *Jiter) NextSkip() error {
	pk, err := j.Peek()
	if err != nil {
		return err
	}
	return j.KnownSkip(pk)
}

func (j *Jiter) KnownSkip(pk Peek) error {
	switch pk {
	case PeekNull:
		return j.p.consumeNull()
	case PeekTrue:
		return j.p.consumeTrue()
	case PeekFalse:
		return j.p.consumeFalse()
	case PeekString:
		_, _, next, serr := decodeStringRange(j.p.data, j.p.pos, j.cfg.Partial.allowsTrailingString())
		if serr != nil {
			return serr
		}
		j.p.pos = next
		return nil
	case PeekArray, PeekObject:
		return j.skipContainer(pk == PeekArray)
	default:
		_, next, nerr := scanNumberRange(j.p.data, j.p.pos, j.cfg.AllowInfNaN)
		if nerr != nil {
			return nerr
		}
		j.p.pos = next
		return nil
	}
}

type skipFrame struct{ isArray bool }

func (j *Jiter) openSkipFrame(isArray bool) (pk Peek, hasElem bool, err error) {
	if isArray {
		return j.p.arrayFirst()
	}
	_, hasElem, err = j.p.objectFirst(j.decodeKeyRange, j.cfg.Partial.allowsRecovery())
	if err != nil || !hasElem {
		return 0, hasElem, err
	}
	pk, err = j.p.peek()
	return pk, hasElem, err
}

func (j *Jiter) stepSkipFrame(isArray bool) (pk Peek, hasElem bool, err error) {
	if isArray {
		return j.p.arrayStep()
	}
	_, hasElem, err = j.p.objectStep(j.decodeKeyRange, j.cfg.Partial.allowsRecovery())
	if err != nil || !hasElem {
		return 0, hasElem, err
	}
	pk, err = j.p.peek()
	return pk, hasElem, err
}

func (j *Jiter) skipContainer(isArray bool) error {
	stack := []skipFrame{{isArray: isArray}}
	pk, hasElem, err := j.openSkipFrame(isArray)
	if err != nil {
		return err
	}
	for {
		if !hasElem {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return nil
			}
			top := stack[len(stack)-1]
			pk, hasElem, err = j.stepSkipFrame(top.isArray)
			if err != nil {
				return err
			}
			continue
		}
		switch pk {
		case PeekArray, PeekObject:
			if len(stack) >= j.cfg.RecursionLimit {
				return newJSONErr(RecursionLimitExceeded, j.p.pos)
			}
			nextIsArray := pk == PeekArray
			stack = append(stack, skipFrame{isArray: nextIsArray})
			pk, hasElem, err = j.openSkipFrame(nextIsArray)
			if err != nil {
				return err
			}
		default:
			if serr := j.KnownSkip(pk); serr != nil {
				return serr
			}
			top := stack[len(stack)-1]
			pk, hasElem, err = j.stepSkipFrame(top.isArray)
			if err != nil {
				return err
			}
		}
	}
}
