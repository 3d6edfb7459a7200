// Package stream implements the Streamer of §4.3: drives a tree of wire
// codec elements through a bounded byte window between an io.Reader/
// io.Writer and the resumable byte-slice API each wire.Element exposes.
package stream

import (
	"io"

	"github.com/teranos/corelib/errors"
	"github.com/teranos/corelib/logger"
	"github.com/teranos/corelib/wire"
)

const defaultMaxLen = 4096

// Streamer pumps wire.Element trees through a bounded working buffer
// (§3.2/§4.3): the byte window never grows past maxLen regardless of
// document size.
type Streamer struct {
	maxLen int
}

// New constructs a Streamer with the given maximum per-read/write chunk
// size. A non-positive size falls back to a sensible default.
func New(maxLen int) *Streamer {
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}
	return &Streamer{maxLen: maxLen}
}

// Serialize drains elem's complete encoding to w, one bounded chunk at a
// time (§4.3's Serialize(stream, maxLen, *offset), offset state living
// inside elem itself per §9).
func (s *Streamer) Serialize(w io.Writer, elem wire.Element) error {
	buf := make([]byte, s.maxLen)
	for {
		n, done := elem.Serialize(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return err
			}
		}
		if done {
			return nil
		}
		if n == 0 {
			// Serialize reported not-done while making no progress and the
			// buffer has room: this only happens if maxLen is too small
			// for even one byte of output, a caller configuration error.
			return errors.New("stream: Serialize made no progress; maxLen too small")
		}
	}
}

// Deserialize reads from r into elem until elem reports completion,
// feeding bytes through the bounded window (§4.3's Deserialize(stream,
// maxLen, *offset, *error)).
func (s *Streamer) Deserialize(r io.Reader, elem wire.Element) error {
	buf := make([]byte, s.maxLen)
	var pending []byte

	for {
		if len(pending) > 0 {
			n, done, err := elem.Deserialize(pending)
			pending = pending[n:]
			if err != nil {
				logger.WireDebugw("deserialize error", logger.FieldError, err.Error())
				return err
			}
			if done {
				return nil
			}
		}

		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			continue
		}
		if err != nil {
			if err == io.EOF {
				// End of input terminates a trailing unquoted scalar (a
				// bare top-level number) the same way a NUL byte does.
				if len(pending) == 0 {
					if _, done, derr := elem.Deserialize([]byte{0}); derr == nil && done {
						return nil
					}
				}
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
}
