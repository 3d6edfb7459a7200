package wire

import "encoding/binary"

// MessagePack-like binary framing headers, per §6.2.
const (
	mpPosFixintMax = 0x7F
	mpNegFixintMin = 0xE0

	mpNil   = 0xC0
	mpFalse = 0xC2
	mpTrue  = 0xC3

	mpUint8  = 0xCC
	mpUint16 = 0xCD
	mpUint32 = 0xCE
	mpUint64 = 0xCF

	mpInt8  = 0xD0
	mpInt16 = 0xD1
	mpInt32 = 0xD2
	mpInt64 = 0xD3

	mpFixstrMin = 0xA0
	mpFixstrMax = 0xBF
	mpStr8      = 0xD9
	mpStr16     = 0xDA

	mpBin8  = 0xC4
	mpBin16 = 0xC5

	mpFixarrayMin = 0x90
	mpFixarrayMax = 0x9F
	mpArray16     = 0xDC

	mpFixmapMin = 0x80
	mpFixmapMax = 0x8F
	mpMap16     = 0xDE
)

// binaryCursor is a small resumable byte-buffer-copy helper shared by the
// binary Serialize* methods: the full frame is rendered once into buf and
// then copied out across calls.
type binaryCursor struct {
	buf []byte
	pos int
}

func (c *binaryCursor) copyOut(dst []byte) (int, bool) {
	n := copy(dst, c.buf[c.pos:])
	c.pos += n
	done := c.pos >= len(c.buf)
	if done {
		c.buf = nil
		c.pos = 0
	}
	return n, done
}

// serializeBinaryUint renders a single MessagePack-framed unsigned integer
// (or nil) into dst. Used by Enum and other code-valued elements.
func serializeBinaryUint(v uint64, isNil bool, dst []byte) (int, bool) {
	cur := &binaryCursor{buf: renderBinaryUint(v, isNil)}
	return cur.copyOut(dst)
}

func renderBinaryUint(v uint64, isNil bool) []byte {
	if isNil {
		return []byte{mpNil}
	}
	switch {
	case v <= mpPosFixintMax:
		return []byte{byte(v)}
	case v <= 0xFF:
		return []byte{mpUint8, byte(v)}
	case v <= 0xFFFF:
		b := make([]byte, 3)
		b[0] = mpUint16
		binary.BigEndian.PutUint16(b[1:], uint16(v))
		return b
	case v <= 0xFFFFFFFF:
		b := make([]byte, 5)
		b[0] = mpUint32
		binary.BigEndian.PutUint32(b[1:], uint32(v))
		return b
	default:
		b := make([]byte, 9)
		b[0] = mpUint64
		binary.BigEndian.PutUint64(b[1:], v)
		return b
	}
}

// deserializeBinaryUint reads one MessagePack-framed unsigned integer from
// src, returning (value, bytesConsumed, done, error). Pauses (done=false)
// if src does not yet contain a full frame.
func deserializeBinaryUint(src []byte) (uint64, int, bool, error) {
	if len(src) == 0 {
		return 0, 0, false, nil
	}
	head := src[0]
	if head == mpNil {
		return 0, 1, true, nil
	}
	if head <= mpPosFixintMax {
		return uint64(head), 1, true, nil
	}
	var width int
	switch head {
	case mpUint8:
		width = 1
	case mpUint16:
		width = 2
	case mpUint32:
		width = 4
	case mpUint64:
		width = 8
	default:
		return 0, 1, true, &ParseError{Kind: ErrorStructural, Message: "unexpected binary header for unsigned integer"}
	}
	if len(src) < 1+width {
		return 0, 0, false, nil
	}
	var v uint64
	switch width {
	case 1:
		v = uint64(src[1])
	case 2:
		v = uint64(binary.BigEndian.Uint16(src[1:3]))
	case 4:
		v = uint64(binary.BigEndian.Uint32(src[1:5]))
	case 8:
		v = binary.BigEndian.Uint64(src[1:9])
	}
	return v, 1 + width, true, nil
}

// SerializeBinary implements BinaryElement for Number.
func (n *Number[T]) SerializeBinary(dst []byte) (int, bool) {
	cur := &binaryCursor{buf: n.renderBinary()}
	return cur.copyOut(dst)
}

func (n *Number[T]) renderBinary() []byte {
	if n.null || !n.set {
		return []byte{mpNil}
	}
	if n.signed {
		v := int64(n.value)
		if v >= 0 {
			return renderBinaryUint(uint64(v), false)
		}
		switch {
		case v >= -32:
			return []byte{byte(int8(v))}
		case v >= -128:
			return []byte{mpInt8, byte(int8(v))}
		case v >= -32768:
			b := make([]byte, 3)
			b[0] = mpInt16
			binary.BigEndian.PutUint16(b[1:], uint16(int16(v)))
			return b
		case v >= -2147483648:
			b := make([]byte, 5)
			b[0] = mpInt32
			binary.BigEndian.PutUint32(b[1:], uint32(int32(v)))
			return b
		default:
			b := make([]byte, 9)
			b[0] = mpInt64
			binary.BigEndian.PutUint64(b[1:], uint64(v))
			return b
		}
	}
	return renderBinaryUint(uint64(n.value), false)
}

// DeserializeBinary implements BinaryElement for Number.
func (n *Number[T]) DeserializeBinary(src []byte) (int, bool, error) {
	if len(src) == 0 {
		return 0, false, nil
	}
	head := src[0]
	if head == mpNil {
		n.null, n.set = true, true
		return 1, true, nil
	}
	if head <= mpPosFixintMax || head >= mpNegFixintMin {
		n.value = T(int64(int8(head)))
		n.set, n.null = true, false
		return 1, true, nil
	}
	var width int
	signed := false
	switch head {
	case mpUint8:
		width = 1
	case mpUint16:
		width = 2
	case mpUint32:
		width = 4
	case mpUint64:
		width = 8
	case mpInt8:
		width, signed = 1, true
	case mpInt16:
		width, signed = 2, true
	case mpInt32:
		width, signed = 4, true
	case mpInt64:
		width, signed = 8, true
	default:
		return 1, true, &ParseError{Kind: ErrorStructural, Message: "unexpected binary header for number"}
	}
	if len(src) < 1+width {
		return 0, false, nil
	}
	var v int64
	if signed {
		switch width {
		case 1:
			v = int64(int8(src[1]))
		case 2:
			v = int64(int16(binary.BigEndian.Uint16(src[1:3])))
		case 4:
			v = int64(int32(binary.BigEndian.Uint32(src[1:5])))
		case 8:
			v = int64(binary.BigEndian.Uint64(src[1:9]))
		}
	} else {
		switch width {
		case 1:
			v = int64(src[1])
		case 2:
			v = int64(binary.BigEndian.Uint16(src[1:3]))
		case 4:
			v = int64(binary.BigEndian.Uint32(src[1:5]))
		case 8:
			v = int64(binary.BigEndian.Uint64(src[1:9]))
		}
	}
	n.value = T(v)
	n.set, n.null = true, false
	return 1 + width, true, nil
}

// SerializeBinary implements BinaryElement for Boolean.
func (b *Boolean) SerializeBinary(dst []byte) (int, bool) {
	var frame byte
	switch {
	case b.null || !b.set:
		frame = mpNil
	case b.value:
		frame = mpTrue
	default:
		frame = mpFalse
	}
	if len(dst) == 0 {
		return 0, false
	}
	dst[0] = frame
	return 1, true
}

// DeserializeBinary implements BinaryElement for Boolean.
func (b *Boolean) DeserializeBinary(src []byte) (int, bool, error) {
	if len(src) == 0 {
		return 0, false, nil
	}
	switch src[0] {
	case mpNil:
		b.null, b.set = true, true
	case mpTrue:
		b.value, b.set, b.null = true, true, false
	case mpFalse:
		b.value, b.set, b.null = false, true, false
	default:
		return 1, true, &ParseError{Kind: ErrorStructural, Message: "unexpected binary header for boolean"}
	}
	return 1, true, nil
}

// SerializeBinary implements BinaryElement for String.
func (s *String) SerializeBinary(dst []byte) (int, bool) {
	cur := &binaryCursor{buf: s.renderBinary()}
	return cur.copyOut(dst)
}

func (s *String) renderBinary() []byte {
	if s.null || !s.set {
		return []byte{mpNil}
	}
	v := s.value
	switch {
	case len(v) <= 31:
		buf := make([]byte, 0, 1+len(v))
		buf = append(buf, byte(mpFixstrMin+len(v)))
		return append(buf, v...)
	case len(v) <= 0xFF:
		buf := make([]byte, 0, 2+len(v))
		buf = append(buf, mpStr8, byte(len(v)))
		return append(buf, v...)
	default:
		buf := make([]byte, 3, 3+len(v))
		buf[0] = mpStr16
		binary.BigEndian.PutUint16(buf[1:], uint16(len(v)))
		return append(buf, v...)
	}
}

// DeserializeBinary implements BinaryElement for String.
func (s *String) DeserializeBinary(src []byte) (int, bool, error) {
	if len(src) == 0 {
		return 0, false, nil
	}
	head := src[0]
	if head == mpNil {
		s.null, s.set = true, true
		return 1, true, nil
	}
	var length, headerLen int
	switch {
	case head >= mpFixstrMin && head <= mpFixstrMax:
		length, headerLen = int(head-mpFixstrMin), 1
	case head == mpStr8:
		if len(src) < 2 {
			return 0, false, nil
		}
		length, headerLen = int(src[1]), 2
	case head == mpStr16:
		if len(src) < 3 {
			return 0, false, nil
		}
		length, headerLen = int(binary.BigEndian.Uint16(src[1:3])), 3
	default:
		return 1, true, &ParseError{Kind: ErrorStructural, Message: "unexpected binary header for string"}
	}
	if len(src) < headerLen+length {
		return 0, false, nil
	}
	s.value = append(s.value[:0], src[headerLen:headerLen+length]...)
	s.set, s.null = true, false
	return headerLen + length, true, nil
}

// SerializeBinary implements BinaryElement for Buffer.
func (b *Buffer) SerializeBinary(dst []byte) (int, bool) {
	cur := &binaryCursor{buf: b.renderBinaryFrame()}
	return cur.copyOut(dst)
}

func (b *Buffer) renderBinaryFrame() []byte {
	if b.null || !b.set {
		return []byte{mpNil}
	}
	v := b.data
	if len(v) <= 0xFF {
		buf := make([]byte, 0, 2+len(v))
		buf = append(buf, mpBin8, byte(len(v)))
		return append(buf, v...)
	}
	buf := make([]byte, 3, 3+len(v))
	buf[0] = mpBin16
	binary.BigEndian.PutUint16(buf[1:], uint16(len(v)))
	return append(buf, v...)
}

// DeserializeBinary implements BinaryElement for Buffer.
func (b *Buffer) DeserializeBinary(src []byte) (int, bool, error) {
	if len(src) == 0 {
		return 0, false, nil
	}
	head := src[0]
	if head == mpNil {
		b.null, b.set = true, true
		return 1, true, nil
	}
	var length, headerLen int
	switch head {
	case mpBin8:
		if len(src) < 2 {
			return 0, false, nil
		}
		length, headerLen = int(src[1]), 2
	case mpBin16:
		if len(src) < 3 {
			return 0, false, nil
		}
		length, headerLen = int(binary.BigEndian.Uint16(src[1:3])), 3
	default:
		return 1, true, &ParseError{Kind: ErrorStructural, Message: "unexpected binary header for buffer"}
	}
	if len(src) < headerLen+length {
		return 0, false, nil
	}
	b.grow(length)
	b.data = append(b.data[:0], src[headerLen:headerLen+length]...)
	b.set, b.null = true, false
	return headerLen + length, true, nil
}
