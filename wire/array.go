package wire

// arrayParsePhase tracks the Array parser state machine of §4.2.
type arrayParsePhase int

const (
	arrayBeforeOpen arrayParsePhase = iota
	arraySkipBefore
	arrayParseElement
	arraySkipAfter
	arrayDone
)

// ElementFactory constructs a fresh Element of an array's concrete element
// type, used to grow the array during deserialization.
type ElementFactory func() Element

// Array is an ordered, homogeneous sequence of elements (§3.1/§4.2). An
// array is set iff its length is greater than zero; a JSON `null` maps to
// a distinct null-array state.
type Array struct {
	state

	newElement ElementFactory
	items      []Element

	phase   arrayParsePhase
	current Element
	cursor  deserializeCursor

	serIndex    int
	serSepDone  bool
	serElemDone bool
	serStarted  bool
}

func NewArray(factory ElementFactory) *Array {
	return &Array{newElement: factory}
}

func (a *Array) Items() []Element { return a.items }

func (a *Array) Len() int { return len(a.items) }

// IsSet overrides state.IsSet: an array is set iff non-empty (§3.1).
func (a *Array) IsSet() bool { return len(a.items) > 0 }

func (a *Array) Clear() {
	a.state.clear()
	a.items = a.items[:0]
	a.phase = arrayBeforeOpen
	a.current = nil
	a.cursor.reset()
	a.serIndex = 0
	a.serSepDone = false
	a.serElemDone = false
	a.serStarted = false
}

// Deserialize implements Element per §4.2 (Array).
func (a *Array) Deserialize(src []byte) (int, bool, error) {
	n, done, err := a.deserializeOnce(src)
	// On error, Clear already reset the cursor; advancing it here with a
	// failed call's consumption would leave stale state behind for an
	// array reused on a fresh document.
	if err == nil {
		a.cursor.advance(src, n)
	}
	return n, done, err
}

// deserializeOnce runs the array's state machine over a single call's src,
// reporting positions and errors relative to that call's own byte offsets;
// Deserialize rebases them against the cursor before returning so a nested
// element's sub-slice view never leaks into a caller-visible ParseError.
func (a *Array) deserializeOnce(src []byte) (int, bool, error) {
	i := 0
	for {
		switch a.phase {
		case arrayBeforeOpen:
			for i < len(src) && isWhitespace(src[i]) {
				i++
			}
			if i >= len(src) {
				return i, false, nil
			}
			if src[i] == 'n' {
				const literal = "null"
				matched := 0
				for i < len(src) && matched < len(literal) {
					if src[i] != literal[matched] {
						return i, true, a.cursor.errorAt(ErrorSyntax, "invalid literal, expected null", src, i)
					}
					matched++
					i++
				}
				if matched < len(literal) {
					return i, false, nil
				}
				a.null, a.set = true, true
				a.phase = arrayDone
				return i, true, nil
			}
			if src[i] != '[' {
				return i, true, a.cursor.errorAt(ErrorSyntax, "expected '['", src, i)
			}
			i++
			a.phase = arraySkipBefore

		case arraySkipBefore:
			for i < len(src) && isWhitespace(src[i]) {
				i++
			}
			if i >= len(src) {
				return i, false, nil
			}
			if src[i] == ']' {
				if len(a.items) > 0 {
					// A ']' reached via SKIP_BEFORE after a comma (i.e.
					// with elements already parsed) means a trailing
					// comma, which is not permitted.
					err := a.cursor.errorAt(ErrorStructural, "trailing comma before ']'", src, i)
					a.Clear()
					return i, true, err
				}
				i++
				a.null = false
				a.phase = arrayDone
				return i, true, nil
			}
			if src[i] == ',' {
				err := a.cursor.errorAt(ErrorStructural, "unexpected ',' before first element", src, i)
				a.Clear()
				return i, true, err
			}
			a.current = a.newElement()
			a.phase = arrayParseElement

		case arrayParseElement:
			n, done, err := a.current.Deserialize(src[i:])
			if err != nil {
				err = a.cursor.rebase(err, src, i)
				i += n
				a.Clear()
				return i, true, err
			}
			i += n
			if !done {
				return i, false, nil
			}
			a.items = append(a.items, a.current)
			a.current = nil
			a.phase = arraySkipAfter

		case arraySkipAfter:
			for i < len(src) && isWhitespace(src[i]) {
				i++
			}
			if i >= len(src) {
				return i, false, nil
			}
			switch src[i] {
			case ',':
				i++
				a.phase = arraySkipBefore
			case ']':
				i++
				a.phase = arrayDone
				return i, true, nil
			default:
				err := a.cursor.errorAt(ErrorStructural, "expected ',' or ']'", src, i)
				a.Clear()
				return i, true, err
			}

		case arrayDone:
			return i, true, nil
		}
	}
}

// Serialize implements Element per §4.2 (Array).
func (a *Array) Serialize(dst []byte) (int, bool) {
	written := 0

	emit := func(b byte) bool {
		if written >= len(dst) {
			return false
		}
		dst[written] = b
		written++
		return true
	}

	if a.null {
		const text = "null"
		n := copy(dst, text[a.serIndex:])
		a.serIndex += n
		done := a.serIndex >= len(text)
		if done {
			a.serIndex = 0
		}
		return n, done
	}

	if !a.serStarted {
		if !emit('[') {
			return written, false
		}
		a.serStarted = true
	}

	for a.serIndex < len(a.items) {
		if a.serIndex > 0 && !a.serSepDone {
			if !emit(',') {
				return written, false
			}
			a.serSepDone = true
		}
		n, done := a.items[a.serIndex].Serialize(dst[written:])
		written += n
		if !done {
			return written, false
		}
		a.serIndex++
		a.serSepDone = false
	}

	if !emit(']') {
		return written, false
	}
	a.serStarted = false
	a.serIndex = 0
	return written, true
}
