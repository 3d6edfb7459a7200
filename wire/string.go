package wire

const maxOpaqueDepth = 23

// bracketKind tags one level of the opaque-object bracket stack.
type bracketKind uint8

const (
	bracketObject bracketKind = iota + 1
	bracketArray
)

// String implements §3.1/§4.1.3: a byte-exact string value whose
// quoted-ness is driven by the container it lives in, with opaque-object
// passthrough capture for Variant leaves.
type String struct {
	state

	quoted bool // whether this instance is parsed/serialized with quotes
	value  []byte

	// parse state, persisted across resumed calls
	openConsumed bool
	escaping     bool
	uEscapeLeft  int // bytes of \uXXXX still to consume
	uEscapeBuf   [4]byte
	uEscapeIdx   int

	// opaque-object capture: non-nil once the first byte of the value is
	// '{' or '['. depth tracks nesting; stack records bracket kinds so
	// the matching close can be verified.
	opaque      bool
	opaqueStack []bracketKind
	inOpaqueStr bool // currently inside a quoted substring while capturing opaque
	opaqueEsc   bool // previous byte inside opaque quoted substring was backslash
	bareOpaque  bool // entered opaque capture without a surrounding quote

	serPos int
}

// NewString constructs a String. quoted controls whether the wire form is
// wrapped in double quotes (driven by the container, per §3.1).
func NewString(quoted bool) *String {
	return &String{quoted: quoted}
}

func (s *String) Value() string {
	if !s.set || s.null {
		return ""
	}
	return string(s.value)
}

func (s *String) SetValue(v string) {
	s.value = []byte(v)
	s.set = true
	s.null = false
}

func (s *String) Clear() {
	s.state.clear()
	s.value = s.value[:0]
	s.openConsumed = false
	s.escaping = false
	s.uEscapeLeft = 0
	s.uEscapeIdx = 0
	s.opaque = false
	s.opaqueStack = s.opaqueStack[:0]
	s.inOpaqueStr = false
	s.opaqueEsc = false
	s.bareOpaque = false
	s.serPos = 0
}

// Deserialize implements Element per §4.1.3.
func (s *String) Deserialize(src []byte) (int, bool, error) {
	i := 0

	if s.quoted && !s.openConsumed {
		for i < len(src) && isWhitespace(src[i]) {
			i++
		}
		if i >= len(src) {
			return i, false, nil
		}
		if src[i] == 'n' {
			// null
			const literal = "null"
			matched := 0
			for i < len(src) && matched < len(literal) {
				if src[i] != literal[matched] {
					return i, true, newParseError(ErrorSyntax, "invalid literal, expected null", src, i)
				}
				matched++
				i++
			}
			if matched == len(literal) {
				s.null = true
				s.set = true
				return i, true, nil
			}
			return i, false, nil
		}
		if src[i] == '{' || src[i] == '[' {
			// Opaque capture bypasses the surrounding quotes entirely: a
			// String expecting a quoted leaf may instead receive a bare
			// object/array literal, which it captures verbatim without
			// requiring (or expecting) an enclosing quote (§4.1.3 item 2).
			s.bareOpaque = true
			s.openConsumed = true
		} else if src[i] != '"' {
			return i, true, newParseError(ErrorSyntax, "expected opening quote", src, i)
		} else {
			s.openConsumed = true
			i++
		}
	}

	for i < len(src) {
		b := src[i]

		if s.opaque {
			n, done, err := s.consumeOpaqueByte(b)
			i++
			if err != nil {
				return i, true, err
			}
			if done {
				s.set = true
				s.null = false
				if s.quoted && !s.bareOpaque {
					// expect closing quote of the enclosing string value
					if i >= len(src) {
						return i, false, nil
					}
					if src[i] != '"' {
						return i, true, newParseError(ErrorSyntax, "expected closing quote after opaque value", src, i)
					}
					i++
				}
				return i, true, nil
			}
			_ = n
			continue
		}

		if s.escaping {
			n, err := s.consumeEscape(b)
			i++
			if err != nil {
				return i, true, err
			}
			_ = n
			continue
		}

		if len(s.value) == 0 && (b == '{' || b == '[') {
			s.opaque = true
			kind := bracketObject
			if b == '[' {
				kind = bracketArray
			}
			s.opaqueStack = append(s.opaqueStack, kind)
			s.value = append(s.value, b)
			i++
			continue
		}

		if b == '\\' {
			s.escaping = true
			i++
			continue
		}

		if s.quoted {
			if b == '"' {
				s.set = true
				s.null = false
				return i + 1, true, nil
			}
			s.value = append(s.value, b)
			i++
			continue
		}

		if isTerminator(b) {
			s.set = true
			s.null = false
			return i, true, nil
		}
		s.value = append(s.value, b)
		i++
	}

	return i, false, nil
}

func (s *String) consumeEscape(b byte) (int, error) {
	s.escaping = false
	if s.uEscapeLeft > 0 {
		if _, ok := digitValue(b, Base16); !ok {
			return 0, &ParseError{Kind: ErrorValue, Message: "invalid \\u escape hex digit"}
		}
		s.uEscapeBuf[s.uEscapeIdx] = b
		s.uEscapeIdx++
		s.uEscapeLeft--
		s.value = append(s.value, b)
		if s.uEscapeLeft > 0 {
			s.escaping = true
		}
		return 0, nil
	}
	if b == 'u' {
		s.uEscapeLeft = 4
		s.uEscapeIdx = 0
		s.escaping = true // stay in escape handling until 4 hex digits consumed
		s.value = append(s.value, '\\', 'u')
		return 0, nil
	}
	switch b {
	case '"':
		s.value = append(s.value, '"')
	case '\\':
		s.value = append(s.value, '\\')
	case '/':
		s.value = append(s.value, '/')
	case 'b':
		s.value = append(s.value, '\b')
	case 'f':
		s.value = append(s.value, '\f')
	case 'n':
		s.value = append(s.value, '\n')
	case 'r':
		s.value = append(s.value, '\r')
	case 't':
		s.value = append(s.value, '\t')
	default:
		return 0, &ParseError{Kind: ErrorSyntax, Message: "invalid escape sequence"}
	}
	return 0, nil
}

// consumeOpaqueByte advances the scope-balanced scan used to capture an
// opaque object/array verbatim (§4.1.3 item 2). Returns done=true once the
// outermost bracket has been balanced.
func (s *String) consumeOpaqueByte(b byte) (int, bool, error) {
	s.value = append(s.value, b)

	if s.inOpaqueStr {
		if s.opaqueEsc {
			s.opaqueEsc = false
		} else if b == '\\' {
			s.opaqueEsc = true
		} else if b == '"' {
			s.inOpaqueStr = false
		}
		return 0, false, nil
	}

	switch b {
	case '"':
		s.inOpaqueStr = true
	case '{':
		if len(s.opaqueStack) >= maxOpaqueDepth {
			return 0, false, &ParseError{Kind: ErrorStructural, Message: "opaque object nesting exceeds depth 23"}
		}
		s.opaqueStack = append(s.opaqueStack, bracketObject)
	case '[':
		if len(s.opaqueStack) >= maxOpaqueDepth {
			return 0, false, &ParseError{Kind: ErrorStructural, Message: "opaque object nesting exceeds depth 23"}
		}
		s.opaqueStack = append(s.opaqueStack, bracketArray)
	case '}':
		if len(s.opaqueStack) == 0 || s.opaqueStack[len(s.opaqueStack)-1] != bracketObject {
			return 0, false, &ParseError{Kind: ErrorStructural, Message: "mismatched closing brace in opaque value"}
		}
		s.opaqueStack = s.opaqueStack[:len(s.opaqueStack)-1]
		if len(s.opaqueStack) == 0 {
			return 0, true, nil
		}
	case ']':
		if len(s.opaqueStack) == 0 || s.opaqueStack[len(s.opaqueStack)-1] != bracketArray {
			return 0, false, &ParseError{Kind: ErrorStructural, Message: "mismatched closing bracket in opaque value"}
		}
		s.opaqueStack = s.opaqueStack[:len(s.opaqueStack)-1]
		if len(s.opaqueStack) == 0 {
			return 0, true, nil
		}
	}
	return 0, false, nil
}

// Serialize implements Element per §4.1.3. Per the documented asymmetry
// (§9 Open Questions), only the quote character is re-escaped on output;
// other control-character escapes accepted on input are not re-emitted.
func (s *String) Serialize(dst []byte) (int, bool) {
	text := s.renderOnce()
	n := copy(dst, text[s.serPos:])
	s.serPos += n
	done := s.serPos >= len(text)
	if done {
		s.serPos = 0
	}
	return n, done
}

func (s *String) renderOnce() []byte {
	if s.null || !s.set {
		return []byte("null")
	}
	quote := s.quoted && !s.opaque
	var buf []byte
	if quote {
		buf = append(buf, '"')
	}
	if s.opaque {
		// Opaque text is re-emitted verbatim; it is already valid JSON.
		buf = append(buf, s.value...)
	} else {
		for _, c := range s.value {
			if c == '"' {
				buf = append(buf, '\\', '"')
				continue
			}
			buf = append(buf, c)
		}
	}
	if quote {
		buf = append(buf, '"')
	}
	return buf
}

