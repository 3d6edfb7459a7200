package wire

// Boolean implements the boolean of §3.1/§4.1.2: value and default, plus
// the set and null flags inherited from state.
type Boolean struct {
	state

	value bool
	def   bool

	// resumable parse state: the parser commits to one of the five
	// literals ("true", "false", "null", "1", "0") on the first byte,
	// then requires the remaining bytes to match exactly.
	literal string
	matched int
	started bool

	serPos int
}

func NewBoolean(def bool) *Boolean {
	return &Boolean{def: def}
}

func (b *Boolean) Value() bool {
	if !b.set || b.null {
		return b.def
	}
	return b.value
}

func (b *Boolean) SetValue(v bool) {
	b.value = v
	b.set = true
	b.null = false
}

func (b *Boolean) Clear() {
	b.state.clear()
	b.value = false
	b.literal = ""
	b.matched = 0
	b.started = false
	b.serPos = 0
}

// Deserialize implements Element per §4.1.2.
func (b *Boolean) Deserialize(src []byte) (int, bool, error) {
	i := 0
	for i < len(src) {
		c := src[i]
		if !b.started {
			if isWhitespace(c) {
				i++
				continue
			}
			switch c {
			case 't':
				b.literal = "true"
			case 'f':
				b.literal = "false"
			case 'n':
				b.literal = "null"
			case '1':
				b.value, b.set, b.null = true, true, false
				return i + 1, true, nil
			case '0':
				b.value, b.set, b.null = false, true, false
				return i + 1, true, nil
			default:
				return i, true, newParseError(ErrorSyntax, "unexpected byte starting boolean", src, i)
			}
			b.started = true
			b.matched = 0
		}

		if c != b.literal[b.matched] {
			return i, true, newParseError(ErrorSyntax, "literal mismatch parsing boolean", src, i)
		}
		b.matched++
		i++
		if b.matched == len(b.literal) {
			if b.literal == "null" {
				b.null = true
				b.set = true
			} else {
				b.value = b.literal == "true"
				b.set = true
				b.null = false
			}
			return i, true, nil
		}
	}
	return i, false, nil
}

// Serialize implements Element per §4.1.2.
func (b *Boolean) Serialize(dst []byte) (int, bool) {
	var text string
	switch {
	case b.null || !b.set:
		text = "null"
	case b.value:
		text = "true"
	default:
		text = "false"
	}
	n := copy(dst, text[b.serPos:])
	b.serPos += n
	done := b.serPos >= len(text)
	if done {
		b.serPos = 0
	}
	return n, done
}
