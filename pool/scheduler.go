package pool

import (
	"time"

	"github.com/teranos/corelib/job"
)

// Scheduler hands a job back to the pool for re-enqueue at or after a
// recorded time (§4.6.3: "Scheduled submission"). Without a Scheduler
// attached, all re-enqueues are immediate.
type Scheduler interface {
	// ScheduleAt arranges for enqueue(j) to be called at or after at. The
	// scheduler owns the timer; it must call enqueue exactly once per call
	// to ScheduleAt, even across pool shutdown (a best-effort final call is
	// acceptable, but never a silent drop of a job the pool still holds).
	ScheduleAt(at time.Time, j *job.Job, enqueue func(*job.Job))
	// Stop releases any timers the scheduler is holding.
	Stop()
}

// Minion is an externally-driven worker body: instead of the pool running
// its own goroutine per worker slot, a Minion's Run method is invoked on
// the caller's own goroutine via Pool.Join (§6.4). Used when the embedding
// application wants to own its own thread/goroutine topology.
type Minion interface {
	Run(extract func() *job.Job, execute func(*job.Job))
}

// TickerScheduler, the concrete time.Ticker-backed implementation of this
// interface, lives alongside this file in ticker_scheduler.go.
