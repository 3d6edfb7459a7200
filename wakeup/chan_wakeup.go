package wakeup

import "time"

// chanWakeup is the portable Source fallback: a buffered channel of
// capacity 1 whose non-blocking send implements "no-op if already woken"
// (§4.5 expansion). Used on non-Linux build targets.
type chanWakeup struct {
	ch chan struct{}
}

// NewPortable constructs the portable channel-based wakeup source. Exported
// unconditionally (unlike NewEventfd, which is Linux-only) so callers on
// any platform, or tests, can construct one explicitly.
func NewPortable() Source {
	return &chanWakeup{ch: make(chan struct{}, 1)}
}

func (w *chanWakeup) Arm() {
	// Drain any stale pending signal from a previous cycle.
	select {
	case <-w.ch:
	default:
	}
}

func (w *chanWakeup) Signal() {
	select {
	case w.ch <- struct{}{}:
	default:
		// already signaled, no-op
	}
}

func (w *chanWakeup) Wait(timeout time.Duration) <-chan struct{} {
	out := make(chan struct{})
	go func() {
		defer close(out)
		select {
		case <-w.ch:
		case <-time.After(timeout):
		}
	}()
	return out
}

func (w *chanWakeup) Close() error {
	return nil
}
