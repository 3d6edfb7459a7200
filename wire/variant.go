package wire

// ContentKind tags the concrete shape a Variant detected on parse
// (§3.1/§4.4).
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentBoolean
	ContentNumber
	ContentString
	ContentArray
	ContentObject
)

// Variant behaves like a String on the wire but tags the concrete content
// shape detected on parse; for array/object it stores the raw sub-JSON
// substring rather than committing to a static schema (§4.4).
type Variant struct {
	inner   *String
	content ContentKind
}

func NewVariant() *Variant {
	return &Variant{inner: NewString(false), content: ContentEmpty}
}

func (v *Variant) IsSet() bool  { return v.inner.IsSet() }
func (v *Variant) IsNull() bool { return v.inner.IsNull() }

func (v *Variant) Clear() {
	v.inner.Clear()
	v.content = ContentEmpty
}

// Content reports the detected shape.
func (v *Variant) Content() ContentKind { return v.content }

// Raw returns the underlying text: the opaque sub-JSON substring for
// array/object content, or the scalar's literal text otherwise.
func (v *Variant) Raw() string { return v.inner.Value() }

// Deserialize implements Element per §4.4.
func (v *Variant) Deserialize(src []byte) (int, bool, error) {
	// Peek the first non-whitespace byte to classify without committing,
	// matching the Variant's "quoted" flag passed to the inner String:
	// quoted only when the wire value itself is a JSON string literal.
	i := 0
	for i < len(src) && isWhitespace(src[i]) {
		i++
	}
	if i >= len(src) {
		return i, false, nil
	}
	if v.content == ContentEmpty && !v.inner.IsSet() && !v.inner.openConsumed && len(v.inner.value) == 0 {
		switch src[i] {
		case '{', '[':
			v.inner = NewString(false)
		case '"':
			v.inner = NewString(true)
		}
	}

	n, done, err := v.inner.Deserialize(src)
	if err != nil {
		return n, done, err
	}
	if !done {
		return n, false, nil
	}

	if v.inner.opaque {
		if len(v.inner.value) > 0 && v.inner.value[0] == '[' {
			v.content = ContentArray
		} else {
			v.content = ContentObject
		}
		return n, true, nil
	}

	if v.inner.quoted {
		v.content = ContentString
		return n, true, nil
	}

	// Unquoted scalar: classify per §4.4, order-sensitive to quoted=false
	// per §9 Open Questions (test this path explicitly).
	switch v.inner.Value() {
	case "true", "false":
		v.content = ContentBoolean
	case "null":
		v.content = ContentEmpty
	default:
		v.content = ContentNumber
	}
	return n, true, nil
}

// Serialize implements Element per §4.4: re-emits the raw captured text.
func (v *Variant) Serialize(dst []byte) (int, bool) {
	return v.inner.Serialize(dst)
}

// Number re-parses the captured text as an integer on demand; the codec
// itself does not validate digits at parse time (§4.4).
func (v *Variant) Number() (int64, error) {
	n := NewNumber[int64](0, true, Base10)
	text := []byte(v.Raw())
	text = append(text, ' ') // ensure a terminator for the unquoted path
	_, done, err := n.Deserialize(text)
	if err != nil {
		return 0, err
	}
	if !done {
		return 0, &ParseError{Kind: ErrorValue, Message: "incomplete number in variant"}
	}
	return n.Value(), nil
}

// Boolean re-interprets the captured text as a boolean.
func (v *Variant) Boolean() bool {
	return v.Raw() == "true"
}
