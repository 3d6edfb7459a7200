package stream

import (
	"io"

	"github.com/teranos/corelib/wire"
)

// Factory mints a fresh top-level element for the next document in a
// stream of back-to-back documents.
type Factory func() wire.Element

// frame is one entry of the explicit iterator stack the Announcer walks:
// recursing into nested elements is ordinary Go recursion handled inside
// the wire package itself (Container/Array deserialize their children
// directly); what needs an explicit stack here is iterating across a
// sequence of *top-level* documents on one continuous stream without
// growing the call stack per document, per §4.3's design decision to
// avoid unbounded recursion depth for long-running streams.
type frame struct {
	elem wire.Element
}

// Announcer drains a stream of concatenated top-level documents, invoking
// onComplete once each is fully parsed before starting the next (the
// "announce" assembler of §4.3 expansion).
type Announcer struct {
	streamer   *Streamer
	next       Factory
	onComplete func(wire.Element) error
	stack      []frame
}

// NewAnnouncer constructs an Announcer. next mints a fresh element for each
// document; onComplete is called with the finished element in document
// order.
func NewAnnouncer(s *Streamer, next Factory, onComplete func(wire.Element) error) *Announcer {
	return &Announcer{streamer: s, next: next, onComplete: onComplete}
}

// Run reads from r until it is exhausted between documents, pushing and
// popping stack frames rather than recursing per document.
func (a *Announcer) Run(r io.Reader) error {
	buf := make([]byte, a.streamer.maxLen)
	var pending []byte

	a.stack = append(a.stack, frame{elem: a.next()})
	for {
		top := &a.stack[len(a.stack)-1]

		if len(pending) > 0 {
			n, done, err := top.elem.Deserialize(pending)
			pending = pending[n:]
			if err != nil {
				return err
			}
			if done {
				a.stack = a.stack[:len(a.stack)-1]
				if err := a.onComplete(top.elem); err != nil {
					return err
				}
				a.stack = append(a.stack, frame{elem: a.next()})
				continue
			}
		}

		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			continue
		}
		if err != nil {
			if err == io.EOF {
				if len(pending) == 0 {
					return nil
				}
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
}

// Dispatcher implements the "dispatch" assembler of §4.3: a prefix field
// (typically a handler-name label) selects which concrete element type to
// deserialize the remainder of a document into. Rather than duplicating
// label-driven resolution, it drives a wire.Container whose RequestFunc
// hook (wire.Container.SetRequest) has already been wired by the caller to
// pick element types per field label.
type Dispatcher struct {
	streamer *Streamer
}

// NewDispatcher constructs a Dispatcher using s's bounded read window.
func NewDispatcher(s *Streamer) *Dispatcher {
	return &Dispatcher{streamer: s}
}

// Run drains r into c until c reports a complete document.
func (d *Dispatcher) Run(r io.Reader, c *wire.Container) error {
	return d.streamer.Deserialize(r, c)
}
