//go:build linux

package wakeup

import (
	"time"

	"golang.org/x/sys/unix"
)

// linuxEventfd is the Linux-native wakeup source: a single eventfd counter,
// Signal writes 1, Wait reads via poll with a timeout.
type linuxEventfd struct {
	fd int
}

// NewEventfd constructs the Linux eventfd-backed Source. Falls back to the
// portable channel implementation if eventfd creation fails (e.g. a
// sandboxed environment without the syscall).
func NewEventfd() Source {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return NewPortable()
	}
	return &linuxEventfd{fd: fd}
}

// New constructs the platform-default wakeup source.
func New() Source {
	return NewEventfd()
}

func (w *linuxEventfd) Arm() {
	// Drain any pending counter value left from a previous Signal so a
	// stale wakeup doesn't immediately resolve the next Wait.
	var buf [8]byte
	for {
		_, err := unix.Read(w.fd, buf[:])
		if err != nil {
			return
		}
	}
}

func (w *linuxEventfd) Signal() {
	var buf [8]byte
	buf[0] = 1
	_, _ = unix.Write(w.fd, buf[:])
}

func (w *linuxEventfd) Wait(timeout time.Duration) <-chan struct{} {
	out := make(chan struct{})
	go func() {
		defer close(out)
		fds := []unix.PollFd{{Fd: int32(w.fd), Events: unix.POLLIN}}
		timeoutMS := int(timeout / time.Millisecond)
		_, _ = unix.Poll(fds, timeoutMS)
	}()
	return out
}

func (w *linuxEventfd) Close() error {
	return unix.Close(w.fd)
}
