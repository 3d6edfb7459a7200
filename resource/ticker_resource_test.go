package resource

import (
	"sync"
	"testing"
	"time"
)

func TestTickerResourceFiresHandlerOnTick(t *testing.T) {
	calls := make(chan time.Time, 4)
	tr := NewTickerResource(5*time.Millisecond, func(ts time.Time) {
		calls <- ts
	})
	defer tr.Stop()

	m, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer m.Stop()
	m.Register(tr)

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("ticker handler was never invoked via the monitor")
	}
}

func TestTickerResourceEventsZeroAfterStop(t *testing.T) {
	tr := NewTickerResource(time.Hour, func(time.Time) {})
	if tr.Events() != EventReadable {
		t.Fatalf("Events() before Stop = %v, want EventReadable", tr.Events())
	}
	tr.Stop()
	if tr.Events() != 0 {
		t.Errorf("Events() after Stop = %v, want 0", tr.Events())
	}
}

func TestTickerResourceReadyWithoutHandlerDoesNotPanic(t *testing.T) {
	tr := NewTickerResource(time.Hour, nil)
	defer tr.Stop()
	tr.Ready(EventReadable) // must not panic
}

func TestTickerResourceDroppedByMonitorAfterStop(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	tr := NewTickerResource(5*time.Millisecond, func(time.Time) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	m, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer m.Stop()
	m.Register(tr)

	time.Sleep(30 * time.Millisecond)
	tr.Stop()

	mu.Lock()
	before := calls
	mu.Unlock()

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	after := calls
	mu.Unlock()
	if after > before+1 {
		// one in-flight tick may still land right at Stop(); anything beyond
		// that means the monitor kept driving a stopped resource.
		t.Errorf("handler called %d more times after Stop, want at most 1 in-flight tick", after-before)
	}
}
