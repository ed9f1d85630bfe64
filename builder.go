package jiter

// frameKind distinguishes the two container shapes a builder frame can
// represent.
type frameKind int

const (
	frameArray frameKind = iota
	frameObject
)

// frame is one level of the builder's explicit stack (component H), used in
// place of native recursion so a pathologically deep document fails with
// RecursionLimitExceeded rather than a goroutine stack overflow.
type frame struct {
	kind       frameKind
	arrItems   []Value
	objEntries []Entry
	pendingKey string
	keySet     map[string]bool
}

// builder drives the iterative recursive-descent value construction loop
// described in spec.md §4.7: a "descend" phase that opens containers until
// it reaches a scalar or an empty container, and an "ascend" phase that
// closes finished containers and attaches them into their parent.
type builder struct {
	p            *parser
	tp           *tape
	cfg          Config
	stack        []frame
	lastKeyStart int
}

func recoverable(err error, mode PartialMode) bool {
	if !mode.allowsRecovery() {
		return false
	}
	je, ok := err.(*JSONError)
	if !ok {
		return false
	}
	return je.Kind.AllowedIfPartial()
}

// buildValue parses one complete JSON value from data and requires the
// input be fully consumed afterward (aside from trailing whitespace).
func buildValue(data []byte, cfg Config) (Value, error) {
	return buildValueWithParser(newParser(data), &tape{}, cfg, true)
}

// buildValueWithParser runs the same descend/ascend loop against an
// existing parser and tape, optionally skipping the end-of-input check so a
// Jiter cursor can build one value out of a larger stream and keep going.
func buildValueWithParser(p *parser, tp *tape, cfg Config, requireFinish bool) (Value, error) {
	bd := &builder{p: p, tp: tp, cfg: cfg}

	pk, err := p.peek()
	if err != nil {
		return Value{}, err
	}

	for {
		val, isContainer, oerr := bd.openScalarOrContainer(pk)
		if oerr != nil {
			if recoverable(oerr, cfg.Partial) && len(bd.stack) > 0 {
				return bd.unwindAll(), nil
			}
			return Value{}, oerr
		}

		if isContainer {
			top := &bd.stack[len(bd.stack)-1]
			var hasElem bool
			var ferr error
			pk, hasElem, ferr = bd.firstOf(top)
			if ferr != nil {
				if recoverable(ferr, cfg.Partial) {
					return bd.unwindAll(), nil
				}
				return Value{}, ferr
			}
			if hasElem {
				continue
			}
			val = bd.closeFrame(top)
			bd.stack = bd.stack[:len(bd.stack)-1]
		}

		// Ascend: val holds a completed value (scalar, or a container that
		// was just closed because it was empty or finished filling).
		for {
			if len(bd.stack) == 0 {
				if requireFinish {
					if ferr := p.finish(); ferr != nil {
						return Value{}, ferr
					}
				}
				return val, nil
			}
			top := &bd.stack[len(bd.stack)-1]
			bd.attach(top, val)

			var hasElem bool
			var serr error
			pk, hasElem, serr = bd.stepOf(top)
			if serr != nil {
				if recoverable(serr, cfg.Partial) {
					return bd.unwindAll(), nil
				}
				return Value{}, serr
			}
			if hasElem {
				break
			}
			val = bd.closeFrame(top)
			bd.stack = bd.stack[:len(bd.stack)-1]
		}
	}
}

// internString/internBytes route decoded strings through the configured
// StringCache (spec.md §5), if any, the same way Jiter.internString does
// for the typed cursor's NextStr/KnownStr.
func (bd *builder) internString(out StringOutput) string {
	if bd.cfg.Cache != nil {
		return bd.cfg.Cache.Intern(out.Bytes, out.Ascii)
	}
	return string(out.Bytes)
}

func (bd *builder) internBytes(b []byte) string {
	if bd.cfg.Cache != nil {
		return bd.cfg.Cache.Intern(b, false)
	}
	return string(b)
}

func (bd *builder) decodeKey(data []byte, pos int, allowPartial bool) ([]byte, int, error) {
	bd.lastKeyStart = pos
	out, next, err := decodeStringValidate(data, pos, bd.tp, allowPartial)
	if err != nil {
		return nil, next, err
	}
	return out.Bytes, next, nil
}

func (bd *builder) openScalarOrContainer(pk Peek) (Value, bool, error) {
	switch pk {
	case PeekNull:
		if err := bd.p.consumeNull(); err != nil {
			return Value{}, false, err
		}
		return NullValue(), false, nil
	case PeekTrue:
		if err := bd.p.consumeTrue(); err != nil {
			return Value{}, false, err
		}
		return BoolValueOf(true), false, nil
	case PeekFalse:
		if err := bd.p.consumeFalse(); err != nil {
			return Value{}, false, err
		}
		return BoolValueOf(false), false, nil
	case PeekString:
		out, next, err := decodeStringValidate(bd.p.data, bd.p.pos, bd.tp, bd.cfg.Partial.allowsTrailingString())
		if err != nil {
			return Value{}, false, err
		}
		bd.p.pos = next
		return StringValueOf(bd.internString(out)), false, nil
	case PeekArray:
		if len(bd.stack) >= bd.cfg.RecursionLimit {
			return Value{}, false, newJSONErr(RecursionLimitExceeded, bd.p.pos)
		}
		bd.stack = append(bd.stack, frame{kind: frameArray})
		return Value{}, true, nil
	case PeekObject:
		if len(bd.stack) >= bd.cfg.RecursionLimit {
			return Value{}, false, newJSONErr(RecursionLimitExceeded, bd.p.pos)
		}
		f := frame{kind: frameObject}
		if !bd.cfg.AllowDuplicateKeys {
			f.keySet = map[string]bool{}
		}
		bd.stack = append(bd.stack, f)
		return Value{}, true, nil
	default:
		start := bd.p.pos
		num, next, err := parseNumberAny(bd.p.data, bd.p.pos, bd.cfg.AllowInfNaN)
		if err != nil {
			return Value{}, false, err
		}
		bd.p.pos = next
		if num.IsFloat {
			return LosslessFloatValueOf(bd.p.data[start:next]), false, nil
		}
		return IntValueOfIV(num.Int), false, nil
	}
}

func (bd *builder) firstOf(f *frame) (Peek, bool, error) {
	if f.kind == frameArray {
		return bd.p.arrayFirst()
	}
	key, hasElem, err := bd.p.objectFirst(bd.decodeKey, bd.cfg.Partial.allowsRecovery())
	if err != nil || !hasElem {
		return 0, false, err
	}
	return bd.afterKey(f, key)
}

func (bd *builder) stepOf(f *frame) (Peek, bool, error) {
	if f.kind == frameArray {
		return bd.p.arrayStep()
	}
	key, hasElem, err := bd.p.objectStep(bd.decodeKey, bd.cfg.Partial.allowsRecovery())
	if err != nil || !hasElem {
		return 0, false, err
	}
	return bd.afterKey(f, key)
}

// afterKey records the decoded key and, when AllowDuplicateKeys is false,
// checks it against the keys already seen in this frame (spec.md §4.8). When
// duplicates are allowed (the default), f.keySet is nil and every key is
// simply accepted, leaving resolution to lazyMap's iterUnique/last-wins
// machinery.
func (bd *builder) afterKey(f *frame, key []byte) (Peek, bool, error) {
	keyStr := bd.internBytes(key)
	if f.keySet != nil {
		if f.keySet[keyStr] {
			return 0, false, newDuplicateKeyErr(bd.lastKeyStart, keyStr)
		}
		f.keySet[keyStr] = true
	}
	f.pendingKey = keyStr
	pk, err := bd.p.peek()
	if err != nil {
		return 0, false, err
	}
	return pk, true, nil
}

func (bd *builder) attach(f *frame, val Value) {
	if f.kind == frameArray {
		f.arrItems = append(f.arrItems, val)
		return
	}
	f.objEntries = append(f.objEntries, Entry{Key: f.pendingKey, Val: val})
}

func (bd *builder) closeFrame(f *frame) Value {
	if f.kind == frameArray {
		return ArrayValueOfItems(f.arrItems)
	}
	m := newLazyMap(len(f.objEntries))
	for _, e := range f.objEntries {
		m.add(e.Key, e.Val)
	}
	return ObjectValueOfMap(m)
}

// unwindAll is called once a recoverable EOF-class error has been detected
// partway through filling bd.stack's top frame. It closes every open frame
// bottom-up, attaching each into its parent, and returns the resulting root
// value (spec.md §4.2/§3.4 partial-mode recovery).
func (bd *builder) unwindAll() Value {
	var val Value
	for len(bd.stack) > 0 {
		top := &bd.stack[len(bd.stack)-1]
		val = bd.closeFrame(top)
		bd.stack = bd.stack[:len(bd.stack)-1]
		if len(bd.stack) > 0 {
			bd.attach(&bd.stack[len(bd.stack)-1], val)
		}
	}
	return val
}
