package wire

import "encoding/base64"

// Buffer holds arbitrary bytes serialized as a quoted base-64 string (or
// null), per §3.1/§4.1.4. Backing storage grows geometrically as bytes
// are decoded.
type Buffer struct {
	state

	data []byte

	// parse state
	openConsumed bool
	pending      [4]byte // up to 3 undecoded base-64 input chars buffered
	pendingLen   int

	serPos int
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Value() []byte {
	if !b.set || b.null {
		return nil
	}
	return b.data
}

func (b *Buffer) SetValue(v []byte) {
	b.data = append([]byte(nil), v...)
	b.set = true
	b.null = false
}

func (b *Buffer) Clear() {
	b.state.clear()
	b.data = b.data[:0]
	b.openConsumed = false
	b.pendingLen = 0
	b.serPos = 0
}

func isBase64Char(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '/', c == '=':
		return true
	}
	return false
}

// grow doubles the backing storage before appending, matching §4.1.4's
// geometric growth description.
func (b *Buffer) grow(extra int) {
	if cap(b.data)-len(b.data) >= extra {
		return
	}
	newCap := cap(b.data)*2 + extra
	if newCap < 16 {
		newCap = 16
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// Deserialize implements Element per §4.1.4.
func (b *Buffer) Deserialize(src []byte) (int, bool, error) {
	i := 0
	if !b.openConsumed {
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
					return i, true, newParseError(ErrorSyntax, "invalid literal, expected null", src, i)
				}
				matched++
				i++
			}
			if matched == len(literal) {
				b.null, b.set = true, true
				return i, true, nil
			}
			return i, false, nil
		}
		if src[i] != '"' {
			return i, true, newParseError(ErrorSyntax, "expected opening quote for buffer", src, i)
		}
		b.openConsumed = true
		i++
	}

	for i < len(src) {
		c := src[i]
		if c == '"' {
			if err := b.flushPending(); err != nil {
				return i, true, err
			}
			b.set = true
			b.null = false
			return i + 1, true, nil
		}
		if isWhitespace(c) {
			i++
			continue
		}
		if !isBase64Char(c) {
			return i, true, newParseError(ErrorValue, "invalid base-64 character", src, i)
		}
		b.pending[b.pendingLen] = c
		b.pendingLen++
		i++
		if b.pendingLen == 4 {
			if err := b.flushPending(); err != nil {
				return i, true, err
			}
		}
	}
	return i, false, nil
}

func (b *Buffer) flushPending() error {
	if b.pendingLen == 0 {
		return nil
	}
	chunk := string(b.pending[:b.pendingLen])
	decoded, err := base64.StdEncoding.WithPadding(base64.NoPadding).DecodeString(trimPad(chunk))
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(padTo4(chunk))
		if err != nil {
			return &ParseError{Kind: ErrorValue, Message: "invalid base-64 sequence"}
		}
	}
	b.grow(len(decoded))
	b.data = append(b.data, decoded...)
	b.pendingLen = 0
	return nil
}

func trimPad(s string) string {
	for len(s) > 0 && s[len(s)-1] == '=' {
		s = s[:len(s)-1]
	}
	return s
}

func padTo4(s string) string {
	for len(s)%4 != 0 {
		s += "="
	}
	return s
}

// Serialize implements Element per §4.1.4.
func (b *Buffer) Serialize(dst []byte) (int, bool) {
	text := b.renderOnce()
	n := copy(dst, text[b.serPos:])
	b.serPos += n
	done := b.serPos >= len(text)
	if done {
		b.serPos = 0
	}
	return n, done
}

func (b *Buffer) renderOnce() []byte {
	if b.null || !b.set {
		return []byte("null")
	}
	encoded := base64.StdEncoding.EncodeToString(b.data)
	buf := make([]byte, 0, len(encoded)+2)
	buf = append(buf, '"')
	buf = append(buf, encoded...)
	buf = append(buf, '"')
	return buf
}
