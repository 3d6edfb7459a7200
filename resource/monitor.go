package resource

import (
	"reflect"
	"sync"
	"time"

	"github.com/teranos/corelib/logger"
	"github.com/teranos/corelib/wakeup"
)

// NotifyResource is the concrete shape every registrable resource in this
// module implements: Events reports current interest, Notify is the
// channel a readiness condition arrives on. Fan-in across a dynamic,
// changing set of such channels is done with reflect.Select, since Go's
// select statement cannot range over a runtime-sized channel list — the
// idiomatic way to realize "query each resource's events mask ... wait for
// readiness-or-wakeup" (§4.5) without binding to a specific OS polling API.
type NotifyResource interface {
	Resource
	Notify() <-chan EventMask
}

type registration struct {
	res NotifyResource
}

// Monitor is the single background event loop of §4.5.
type Monitor struct {
	mu    sync.Mutex
	regs  []*registration
	wake  wakeup.Source
	watch Watchdog

	stopCh   chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// New constructs a Monitor. wakeup.New always falls back to a portable
// implementation rather than failing outright, so construction here cannot
// currently fail; New still returns an error to keep the signature stable
// if a future wakeup.Source gains a real failure mode.
func New(watch Watchdog) (*Monitor, error) {
	m := &Monitor{
		wake:    wakeup.New(),
		watch:   watch,
		stopCh:  make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go m.loop()
	return m, nil
}

// Register appends a resource and signals wakeup so it is observed within
// the current or next wait cycle (§4.5).
func (m *Monitor) Register(r NotifyResource) {
	m.mu.Lock()
	m.regs = append(m.regs, &registration{res: r})
	m.mu.Unlock()
	m.wake.Signal()
	logger.ResourceDebugw("resource registered")
}

// Unregister removes r synchronously and signals wakeup; after Unregister
// returns, the monitor will never invoke r's handler again (§4.5).
func (m *Monitor) Unregister(r NotifyResource) {
	m.mu.Lock()
	for i, reg := range m.regs {
		if reg.res == r {
			m.regs = append(m.regs[:i], m.regs[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	m.wake.Signal()
	logger.ResourceDebugw("resource unregistered")
}

// Stop halts the monitor goroutine. It does not Unregister resources;
// callers retain ownership of their lifetime.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
	<-m.stopped
}

const waitTimeout = 1 * time.Second

func (m *Monitor) loop() {
	defer close(m.stopped)
	for {
		select {
		case <-m.stopCh:
			return
		default:
		}

		m.mu.Lock()
		snapshot := make([]*registration, 0, len(m.regs))
		kept := m.regs[:0]
		for _, reg := range m.regs {
			if reg.res.Events() == 0 {
				continue
			}
			kept = append(kept, reg)
			snapshot = append(snapshot, reg)
		}
		m.regs = kept
		m.mu.Unlock()

		m.wake.Arm()

		cases := make([]reflect.SelectCase, 0, len(snapshot)+2)
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(m.stopCh),
		})
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(m.wake.Wait(waitTimeout)),
		})
		for _, reg := range snapshot {
			cases = append(cases, reflect.SelectCase{
				Dir:  reflect.SelectRecv,
				Chan: reflect.ValueOf(reg.res.Notify()),
			})
		}

		chosen, recv, ok := reflect.Select(cases)
		switch chosen {
		case 0:
			return
		case 1:
			// woken (registration change or periodic re-evaluation); loop
			continue
		default:
			if !ok {
				continue
			}
			reg := snapshot[chosen-2]
			mask := EventMask(recv.Uint())
			m.mu.Lock()
			live := false
			for _, r := range m.regs {
				if r == reg {
					live = true
					break
				}
			}
			m.mu.Unlock()
			if !live {
				continue
			}
			m.dispatch(reg.res, mask)
		}
	}
}

func (m *Monitor) dispatch(r NotifyResource, mask EventMask) {
	if m.watch != nil {
		m.watch.Arm(r)
		defer m.watch.Reset(r)
	}
	r.Ready(mask)
}
