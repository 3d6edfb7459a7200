package pool

import (
	"sync"
	"time"

	"github.com/teranos/corelib/job"
)

// TickerScheduler is a Scheduler implementation driven by its own interval
// timer (§4.6.3 expansion, grounded on pulse/schedule/ticker.go's
// periodic-check loop): on every tick, any pending entry whose time has
// arrived is handed to its enqueue callback. It owns its timer and pump
// goroutine directly rather than riding a resource.Monitor registration,
// since nothing else drives readiness for a Scheduler used standalone (as
// pool.Config.Scheduler) outside of any monitor loop.
type TickerScheduler struct {
	mu      sync.Mutex
	pending []schedEntry

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

type schedEntry struct {
	at      time.Time
	job     *job.Job
	enqueue func(*job.Job)
}

// NewTickerScheduler constructs a TickerScheduler polling at the given
// resolution (1s is a reasonable default).
func NewTickerScheduler(resolution time.Duration) *TickerScheduler {
	if resolution <= 0 {
		resolution = time.Second
	}
	s := &TickerScheduler{
		ticker: time.NewTicker(resolution),
		done:   make(chan struct{}),
	}
	go s.pump()
	return s
}

func (s *TickerScheduler) pump() {
	for {
		select {
		case now := <-s.ticker.C:
			s.tick(now)
		case <-s.done:
			return
		}
	}
}

func (s *TickerScheduler) tick(now time.Time) {
	s.mu.Lock()
	var due []schedEntry
	remaining := make([]schedEntry, 0, len(s.pending))
	for _, e := range s.pending {
		if !now.Before(e.at) {
			due = append(due, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	s.pending = remaining
	s.mu.Unlock()

	for _, e := range due {
		e.enqueue(e.job)
	}
}

// ScheduleAt implements pool.Scheduler.
func (s *TickerScheduler) ScheduleAt(at time.Time, j *job.Job, enqueue func(*job.Job)) {
	s.mu.Lock()
	s.pending = append(s.pending, schedEntry{at: at, job: j, enqueue: enqueue})
	s.mu.Unlock()
}

// Stop implements pool.Scheduler: stops the ticker and fires any
// still-pending entries immediately so no job is silently dropped.
func (s *TickerScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.ticker.Stop()
	})
	s.mu.Lock()
	due := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, e := range due {
		e.enqueue(e.job)
	}
}
