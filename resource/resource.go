// Package resource implements the single-threaded resource monitor of
// §3.4/§4.5: one background goroutine owning a dynamic set of
// file-descriptor-like resources, dispatching readiness events, with safe
// concurrent registration/unregistration and a cross-platform wakeup.
package resource

// EventMask reports which readiness conditions a Resource currently wants
// to be notified of. A zero mask means the resource has nothing left to
// wait for and is removed from the monitor (§4.5: "empty mask -> removed").
type EventMask uint32

const (
	EventReadable EventMask = 1 << iota
	EventWritable
	EventError
)

// Resource is the abstract registrable unit of §3.4: an opaque handle plus
// an events-mask query and a ready callback. The monitor owns only
// pointers; lifetime is externally managed.
type Resource interface {
	// Events returns the mask of conditions currently of interest. A zero
	// mask signals the monitor to drop this resource.
	Events() EventMask
	// Ready is invoked on the monitor goroutine when at least one event in
	// the returned mask is satisfied. ready reports which ones actually
	// fired. Ready must not block the monitor for long; dispatch heavy
	// work to a worker pool.
	Ready(ready EventMask)
}

// Watchdog brackets a handler invocation: Arm before calling Ready, Reset
// after it returns. A watchdog implementation that never observes a Reset
// within its window should log a warning (§4.5).
type Watchdog interface {
	Arm(r Resource)
	Reset(r Resource)
}
