package wire

import "strconv"

// Integer is the set of Go integer kinds a Number can hold.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Base is the numeric base used for quoted text and for serialization.
type Base int

const (
	Base8  Base = 8
	Base10 Base = 10
	Base16 Base = 16
)

// numberPhase tracks where within the text grammar a resumed parse left off.
type numberPhase int

const (
	phaseStart numberPhase = iota
	phaseQuoteOpened
	phaseAfterSign
	phaseZeroSeen  // saw a leading '0', deciding octal vs plain zero
	phaseHexPrefix // saw '0x'/'0X', consuming hex digits
	phaseDigits
	phaseNull // matching the literal "null"
	phaseDone
)

// Number holds an integer value of type T with the default-when-unset,
// set/null/error semantics of §3.1, parsed per the state machine of §4.1.1.
type Number[T Integer] struct {
	state

	value  T
	def    T
	signed bool
	base   Base

	// deserialize resumable state
	phase     numberPhase
	quoted    bool
	neg       bool
	digits    uint64
	digitBase Base // base in effect while phase == phaseDigits
	sawDigit  bool
	matched   int // bytes of "null" matched so far

	// serialize resumable state: the fully-rendered encoding, computed
	// once on first Serialize and then copied out across calls.
	encoded    []byte
	encodedPos int
}

// NewNumber constructs a Number with the given default value, signedness,
// and serialization base.
func NewNumber[T Integer](def T, signed bool, base Base) *Number[T] {
	return &Number[T]{def: def, signed: signed, base: base}
}

// Value returns the current value, or the default if unset.
func (n *Number[T]) Value() T {
	if !n.set || n.null {
		return n.def
	}
	return n.value
}

// SetValue assigns a value directly, marking the element set and non-null.
func (n *Number[T]) SetValue(v T) {
	n.value = v
	n.set = true
	n.null = false
}

func (n *Number[T]) Clear() {
	n.state.clear()
	n.value = 0
	n.phase = phaseStart
	n.quoted = false
	n.neg = false
	n.digits = 0
	n.sawDigit = false
	n.matched = 0
	n.encoded = nil
	n.encodedPos = 0
}

func digitValue(b byte, base Base) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		v := int(b - '0')
		if base == Base8 && v > 7 {
			return 0, false
		}
		return v, true
	case base == Base16 && b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case base == Base16 && b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	}
	return 0, false
}

// Deserialize implements Element per §4.1.1. There is no exponent
// notation: 'e'/'E' is a digit inside a hex literal and an invalid byte in
// a decimal or octal one, so "1e3" fails to parse.
func (n *Number[T]) Deserialize(src []byte) (int, bool, error) {
	i := 0
	for i < len(src) {
		b := src[i]

		switch n.phase {
		case phaseStart:
			if isWhitespace(b) {
				i++
				continue
			}
			switch {
			case b == '"':
				n.quoted = true
				n.phase = phaseQuoteOpened
				i++
			case b == '-':
				if !n.signed {
					return i, true, newParseError(ErrorValue, "unsigned number cannot be negative", src, i)
				}
				n.neg = true
				n.phase = phaseAfterSign
				i++
			case b == '0':
				n.digits = 0
				n.sawDigit = true
				n.phase = phaseZeroSeen
				i++
			case b >= '1' && b <= '9':
				n.digits = uint64(b - '0')
				n.sawDigit = true
				n.phase = phaseDigits
				n.digitBase = Base10
				i++
			case b == 'n':
				n.matched = 1
				n.phase = phaseNull
				i++
			default:
				return i, true, newParseError(ErrorSyntax, "unexpected byte starting number", src, i)
			}

		case phaseQuoteOpened:
			// Same grammar as phaseStart, minus the opening quote itself:
			// a quoted number still begins with an optional sign, then a
			// digit run or the literal "null".
			switch {
			case b == '-':
				if !n.signed {
					return i, true, newParseError(ErrorValue, "unsigned number cannot be negative", src, i)
				}
				n.neg = true
				n.phase = phaseAfterSign
				i++
			case b == '0':
				n.digits = 0
				n.sawDigit = true
				n.phase = phaseZeroSeen
				i++
			case b >= '1' && b <= '9':
				n.digits = uint64(b - '0')
				n.sawDigit = true
				n.phase = phaseDigits
				n.digitBase = Base10
				i++
			case b == 'n':
				n.matched = 1
				n.phase = phaseNull
				i++
			default:
				return i, true, newParseError(ErrorSyntax, "expected digit after opening quote", src, i)
			}

		case phaseAfterSign:
			switch {
			case b == '0':
				n.sawDigit = true
				n.phase = phaseZeroSeen
				i++
			case b >= '1' && b <= '9':
				n.digits = uint64(b - '0')
				n.sawDigit = true
				n.phase = phaseDigits
				n.digitBase = Base10
				i++
			default:
				return i, true, newParseError(ErrorSyntax, "expected digit after sign", src, i)
			}

		case phaseZeroSeen:
			// A leading '0' may begin a hex prefix ("0x"/"0X"), continue
			// as octal digits, or (bare) terminate as the value zero.
			// This applies whether or not the value is quoted: §6.1
			// permits both quoted octal/hex and unquoted hex literals.
			if b == 'x' || b == 'X' {
				n.phase = phaseHexPrefix
				i++
				continue
			}
			if v, ok := digitValue(b, Base8); ok {
				n.digits = n.digits*8 + uint64(v)
				n.phase = phaseDigits
				n.digitBase = Base8
				i++
				continue
			}
			if n.quoted {
				if b == '"' {
					i++
					return n.finishDeserialize(i, true)
				}
				return i, true, newParseError(ErrorValue, "invalid digit in quoted number", src, i)
			}
			if isTerminator(b) {
				return n.finishDeserialize(i, true)
			}
			return i, true, newParseError(ErrorSyntax, "unexpected byte after leading zero", src, i)

		case phaseHexPrefix:
			if v, ok := digitValue(b, Base16); ok {
				n.digits = n.digits*16 + uint64(v)
				i++
				continue
			}
			if n.quoted {
				if b == '"' {
					i++
					return n.finishDeserialize(i, true)
				}
				return i, true, newParseError(ErrorValue, "invalid hex digit", src, i)
			}
			if isTerminator(b) {
				return n.finishDeserialize(i, true)
			}
			return i, true, newParseError(ErrorSyntax, "unexpected byte in hex number", src, i)

		case phaseDigits:
			if v, ok := digitValue(b, n.digitBase); ok {
				n.digits = n.digits*uint64(n.digitBase) + uint64(v)
				i++
				continue
			}
			if n.quoted {
				if b == '"' {
					i++
					return n.finishDeserialize(i, true)
				}
				return i, true, newParseError(ErrorValue, "invalid digit", src, i)
			}
			if isTerminator(b) {
				return n.finishDeserialize(i, true)
			}
			return i, true, newParseError(ErrorSyntax, "unexpected byte in number", src, i)

		case phaseNull:
			const literal = "null"
			if n.matched >= len(literal) || b != literal[n.matched] {
				return i, true, newParseError(ErrorSyntax, "invalid literal, expected null", src, i)
			}
			n.matched++
			i++
			if n.matched == len(literal) {
				n.null = true
				n.set = true
				n.phase = phaseDone
				return i, true, nil
			}

		case phaseDone:
			return i, true, nil
		}
	}

	if n.phase == phaseZeroSeen || n.phase == phaseDigits || n.phase == phaseHexPrefix {
		if !n.quoted {
			// Ambiguous at end-of-window: could still extend. Caller must
			// supply more bytes or an explicit terminator.
			return i, false, nil
		}
	}
	return i, false, nil
}

func (n *Number[T]) finishDeserialize(consumed int, done bool) (int, bool, error) {
	v := T(n.digits)
	if n.neg {
		v = -v
	}
	n.value = v
	n.set = true
	n.null = false
	n.phase = phaseDone
	return consumed, done, nil
}

// Serialize implements Element per §4.1.1 (serialization half).
func (n *Number[T]) Serialize(dst []byte) (int, bool) {
	if n.encoded == nil {
		n.encoded = n.render()
		n.encodedPos = 0
	}
	count := copy(dst, n.encoded[n.encodedPos:])
	n.encodedPos += count
	done := n.encodedPos >= len(n.encoded)
	if done {
		n.encoded = nil
		n.encodedPos = 0
	}
	return count, done
}

func (n *Number[T]) render() []byte {
	if n.null || !n.set {
		return []byte("null")
	}

	quote := n.base != Base10
	var buf []byte
	if quote {
		buf = append(buf, '"')
	}

	v := n.value
	neg := n.signed && v < 0
	if neg {
		buf = append(buf, '-')
		v = -v
	}

	switch n.base {
	case Base16:
		buf = append(buf, '0', 'x')
		buf = strconv.AppendUint(buf, uint64(v), 16)
	case Base8:
		if v != 0 {
			buf = append(buf, '0')
		}
		buf = strconv.AppendUint(buf, uint64(v), 8)
	default:
		buf = strconv.AppendUint(buf, uint64(v), 10)
	}

	if quote {
		buf = append(buf, '"')
	}
	return buf
}
