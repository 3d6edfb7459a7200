//go:build !linux

package wakeup

// New constructs the platform-default wakeup source: the portable
// channel-based fallback on every non-Linux build target (§4.5 expansion).
func New() Source {
	return NewPortable()
}
