package wire

// containerPhase tracks the Container parser state machine of §4.2.
type containerPhase int

const (
	containerBeforeOpen containerPhase = iota
	containerSkipBefore
	containerLabel
	containerSkipAfterKey
	containerSkipBeforeValue
	containerParse
	containerSkipAfter
	containerDone
)

// RequestFunc materializes a new field for an unknown label encountered
// during parsing. It returns the newly registered element and true if the
// container wants to accept the field, or (nil, false) to have the value
// skipped instead. This is the hook VariantContainer uses (§4.2, §4.4).
type RequestFunc func(label string) (Element, bool)

type field struct {
	label string
	elem  Element
}

// Container is an ordered sequence of (label, element) bindings, labels
// unique and registered at construction time (§3.1/§4.2).
type Container struct {
	state

	fields  []field
	index   map[string]int
	request RequestFunc

	phase       containerPhase
	label       *String
	currentElem Element
	skip        *String
	skipping    bool
	pairsSeen   int
	cursor      deserializeCursor

	serIndex     int
	serSepDone   bool
	serHeaderPos int // bytes of the current field's `,"label":` header already written
	serStarted   bool
}

func NewContainer() *Container {
	return &Container{
		index: make(map[string]int),
		label: NewString(true),
	}
}

// Register binds a label to an element at construction time. Registration
// order is preserved for serialization.
func (c *Container) Register(label string, elem Element) {
	c.index[label] = len(c.fields)
	c.fields = append(c.fields, field{label: label, elem: elem})
}

// SetRequest installs the dynamic-field hook used by VariantContainer.
func (c *Container) SetRequest(fn RequestFunc) {
	c.request = fn
}

// Field returns the element registered under label, if any.
func (c *Container) Field(label string) (Element, bool) {
	idx, ok := c.index[label]
	if !ok {
		return nil, false
	}
	return c.fields[idx].elem, true
}

// Fields returns the registered (label, element) pairs in registration
// order, for callers that need to walk the container generically (the
// Streamer's dynamic-field dump path, or test assertions).
func (c *Container) Fields() [](struct {
	Label   string
	Element Element
}) {
	out := make([]struct {
		Label   string
		Element Element
	}, len(c.fields))
	for i, f := range c.fields {
		out[i] = struct {
			Label   string
			Element Element
		}{f.label, f.elem}
	}
	return out
}

// IsSet overrides state.IsSet: a container is set iff any field is set
// (§3.1).
func (c *Container) IsSet() bool {
	for _, f := range c.fields {
		if f.elem.IsSet() {
			return true
		}
	}
	return false
}

func (c *Container) Clear() {
	c.state.clear()
	for _, f := range c.fields {
		f.elem.Clear()
	}
	c.phase = containerBeforeOpen
	c.label.Clear()
	c.currentElem = nil
	c.skip = nil
	c.skipping = false
	c.pairsSeen = 0
	c.cursor.reset()
	c.serIndex = 0
	c.serSepDone = false
	c.serHeaderPos = 0
	c.serStarted = false
}

// clearOnError clears the whole container on a parse failure, per §4.2:
// "On any parse error the container clears itself."
func (c *Container) clearOnError() {
	c.Clear()
}

// Deserialize implements Element per §4.2 (Container).
func (c *Container) Deserialize(src []byte) (int, bool, error) {
	n, done, err := c.deserializeOnce(src)
	// On error, clearOnError already reset the cursor; advancing it here
	// with a failed call's consumption would leave stale state behind for
	// a container reused on a fresh document.
	if err == nil {
		c.cursor.advance(src, n)
	}
	return n, done, err
}

// deserializeOnce runs the container's state machine over a single call's
// src, reporting positions and errors relative to that call's own byte
// offsets; Deserialize rebases them against the cursor before returning so
// a nested element's sub-slice view never leaks into a caller-visible
// ParseError.
func (c *Container) deserializeOnce(src []byte) (int, bool, error) {
	i := 0
	for {
		switch c.phase {
		case containerBeforeOpen:
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
						return i, true, c.cursor.errorAt(ErrorSyntax, "invalid literal, expected null", src, i)
					}
					matched++
					i++
				}
				if matched < len(literal) {
					return i, false, nil
				}
				c.null, c.set = true, true
				c.phase = containerDone
				return i, true, nil
			}
			if src[i] != '{' {
				return i, true, c.cursor.errorAt(ErrorSyntax, "expected '{'", src, i)
			}
			i++
			c.phase = containerSkipBefore

		case containerSkipBefore:
			for i < len(src) && isWhitespace(src[i]) {
				i++
			}
			if i >= len(src) {
				return i, false, nil
			}
			if src[i] == '}' {
				if c.pairsSeen > 0 {
					// Reached via a comma after at least one field, so
					// this ',' before '}' was a trailing comma.
					err := c.cursor.errorAt(ErrorStructural, "trailing comma before '}'", src, i)
					c.clearOnError()
					return i, true, err
				}
				i++
				c.phase = containerDone
				return i, true, nil
			}
			if src[i] == ',' {
				err := c.cursor.errorAt(ErrorStructural, "unexpected ',' before first field", src, i)
				c.clearOnError()
				return i, true, err
			}
			c.label.Clear()
			c.phase = containerLabel

		case containerLabel:
			n, done, err := c.label.Deserialize(src[i:])
			if err != nil {
				err = c.cursor.rebase(err, src, i)
				i += n
				c.clearOnError()
				return i, true, err
			}
			i += n
			if !done {
				return i, false, nil
			}
			c.phase = containerSkipAfterKey

		case containerSkipAfterKey:
			for i < len(src) && isWhitespace(src[i]) {
				i++
			}
			if i >= len(src) {
				return i, false, nil
			}
			if src[i] != ':' {
				err := c.cursor.errorAt(ErrorStructural, "expected ':' after key", src, i)
				c.clearOnError()
				return i, true, err
			}
			i++
			c.phase = containerSkipBeforeValue

		case containerSkipBeforeValue:
			for i < len(src) && isWhitespace(src[i]) {
				i++
			}
			if i >= len(src) {
				return i, false, nil
			}
			label := c.label.Value()
			if elem, ok := c.Field(label); ok {
				c.currentElem = elem
				c.skipping = false
			} else if c.request != nil {
				if elem, accept := c.request(label); accept {
					c.Register(label, elem)
					c.currentElem = elem
					c.skipping = false
				} else {
					c.skip = NewString(false)
					c.skipping = true
				}
			} else {
				c.skip = NewString(false)
				c.skipping = true
			}
			c.phase = containerParse

		case containerParse:
			var n int
			var done bool
			var err error
			if c.skipping {
				n, done, err = c.skip.Deserialize(src[i:])
			} else {
				n, done, err = c.currentElem.Deserialize(src[i:])
			}
			if err != nil {
				err = c.cursor.rebase(err, src, i)
				i += n
				c.clearOnError()
				return i, true, err
			}
			i += n
			if !done {
				return i, false, nil
			}
			c.currentElem = nil
			c.skip = nil
			c.phase = containerSkipAfter

		case containerSkipAfter:
			for i < len(src) && isWhitespace(src[i]) {
				i++
			}
			if i >= len(src) {
				return i, false, nil
			}
			switch src[i] {
			case ',':
				i++
				c.pairsSeen++
				c.phase = containerSkipBefore
			case '}':
				i++
				c.phase = containerDone
				return i, true, nil
			default:
				err := c.cursor.errorAt(ErrorStructural, "expected ',' or '}'", src, i)
				c.clearOnError()
				return i, true, err
			}

		case containerDone:
			return i, true, nil
		}
	}
}

// Serialize implements Element per §4.2 (Container): iterate fields in
// registration order, skipping unset fields, emitting "label":value.
func (c *Container) Serialize(dst []byte) (int, bool) {
	written := 0
	emit := func(b byte) bool {
		if written >= len(dst) {
			return false
		}
		dst[written] = b
		written++
		return true
	}
	emitStr := func(s string) bool {
		n := copy(dst[written:], s)
		written += n
		return n == len(s)
	}

	if c.null {
		const text = "null"
		n := copy(dst, text[c.serIndex:])
		c.serIndex += n
		done := c.serIndex >= len(text)
		if done {
			c.serIndex = 0
		}
		return n, done
	}

	if !c.serStarted {
		if !emit('{') {
			return written, false
		}
		c.serStarted = true
	}

	for c.serIndex < len(c.fields) {
		f := c.fields[c.serIndex]
		if !f.elem.IsSet() {
			c.serIndex++
			c.serSepDone = false
			continue
		}
		if !c.serSepDone {
			header := `"` + f.label + `":`
			if c.serIndex > 0 && c.anyPriorSet() {
				header = "," + header
			}
			before := written
			ok := emitStr(header[c.serHeaderPos:])
			c.serHeaderPos += written - before
			if !ok {
				return written, false
			}
			c.serHeaderPos = 0
			c.serSepDone = true
		}
		n, done := f.elem.Serialize(dst[written:])
		written += n
		if !done {
			return written, false
		}
		c.serIndex++
		c.serSepDone = false
	}

	if !emit('}') {
		return written, false
	}
	c.serStarted = false
	c.serIndex = 0
	return written, true
}

// anyPriorSet reports whether any field before serIndex is set, used to
// decide whether a separating comma is needed (so a leading unset run
// doesn't produce a stray comma).
func (c *Container) anyPriorSet() bool {
	for _, f := range c.fields[:c.serIndex] {
		if f.elem.IsSet() {
			return true
		}
	}
	return false
}
