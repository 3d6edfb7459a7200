// Package pool implements the worker pool of §4.6.3: a bounded set of
// worker goroutines consuming a shared job queue, with scheduled
// submission, completion-wait revoke, an idle callback, and the
// ambient rate-limiting / memory-pressure watchdog extensions.
package pool

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/corelib/errors"
	"github.com/teranos/corelib/job"
	"github.com/teranos/corelib/logger"
)

// Dispatcher is implemented by callers that know how to run a job's body;
// the pool never interprets HandlerName/Payload itself (§4.6.3).
type Dispatcher = job.Dispatcher

// Config configures Pool construction.
type Config struct {
	Workers       int
	QueueCapacity int
	Dispatcher    Dispatcher
	Scheduler     Scheduler // optional
	Minion        Minion    // optional; when set, no internal worker goroutines are spawned
	OnIdle        func()    // optional; called when the queue is empty and no worker is active

	// RateLimit, when non-zero, caps Submit calls per second via
	// golang.org/x/time/rate (§4.6.3 expansion, grounded on
	// pulse/budget/limiter.go's sliding window, upgraded to the ecosystem
	// limiter per this module's ambient-stack policy).
	RateLimit rate.Limit
	RateBurst int

	// MemoryPressureThreshold, when non-zero (0.0-1.0), enables a periodic
	// watchdog (gopsutil/v3/mem) that pauses new submissions once used
	// memory exceeds the threshold (§4.6.3 expansion, grounded on
	// checkMemoryPressure in pulse/async/worker.go).
	MemoryPressureThreshold float64
	MemoryPressureInterval  time.Duration

	Logger *zap.SugaredLogger
}

// Pool is the worker pool of §4.6.3.
type Pool struct {
	cfg    Config
	queue  *Queue
	logger *zap.SugaredLogger

	limiter *rate.Limiter

	workerDone []chan *job.Job // per-worker completion signal, closed workers' index
	activeJob  []*job.Job      // per-worker currently-executing job, guarded by mu
	mu         sync.Mutex
	active     int

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopped  chan struct{}

	memPressure int32 // 0/1, accessed via atomic-style guarded field under mu
}

// New constructs and starts a Pool per cfg, wrapping misconfiguration (a
// zero worker count, a missing dispatcher) at the construction boundary
// rather than failing later inside a worker goroutine.
func New(cfg Config) (*Pool, error) {
	if cfg.Workers <= 0 && cfg.Minion == nil {
		return nil, errors.WithHint(
			errors.New("pool: Workers must be positive when no Minion is configured"),
			"set Config.Workers to at least 1, or supply a Minion to drive extraction externally",
		)
	}
	if cfg.Dispatcher == nil {
		return nil, errors.New("pool: Dispatcher is required")
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 64
	}
	if cfg.MemoryPressureInterval <= 0 {
		cfg.MemoryPressureInterval = 30 * time.Second
	}

	log := cfg.Logger
	if log == nil {
		log = logger.ComponentLogger("pool")
	}

	p := &Pool{
		cfg:     cfg,
		queue:   NewQueue(cfg.QueueCapacity),
		logger:  log,
		stopped: make(chan struct{}),
	}

	if cfg.RateLimit > 0 {
		p.limiter = rate.NewLimiter(cfg.RateLimit, cfg.RateBurst)
	}

	if cfg.Minion == nil {
		p.activeJob = make([]*job.Job, cfg.Workers)
		p.workerDone = make([]chan *job.Job, cfg.Workers)
		for i := range p.workerDone {
			p.workerDone[i] = make(chan *job.Job, 1)
		}
		for i := 0; i < cfg.Workers; i++ {
			p.wg.Add(1)
			go p.workerLoop(i)
		}
	}

	if cfg.MemoryPressureThreshold > 0 {
		p.wg.Add(1)
		go p.watchMemoryPressure()
	}

	return p, nil
}

// Submit implements §6.4's Submit(job, timeout): blocking insert bounded by
// timeout, subject to the optional rate limiter.
func (p *Pool) Submit(j *job.Job, timeout time.Duration) bool {
	select {
	case <-p.stopped:
		return false
	default:
	}
	if p.limiter != nil && !p.limiter.Allow() {
		logger.PoolDebugw("submission rate-limited", logger.FieldJobID, string(j.ID()))
		return false
	}
	if p.underMemoryPressure() {
		logger.PoolDebugw("submission deferred: memory pressure", logger.FieldJobID, string(j.ID()))
		return false
	}
	switch j.Submit() {
	case job.SubmitEnqueued:
		return p.queue.Insert(j, timeout)
	case job.SubmitCoalesced, job.SubmitNoop:
		return true
	}
	return false
}

// Schedule implements §6.4's Schedule(time, job).
func (p *Pool) Schedule(at time.Time, j *job.Job) {
	j.Reschedule(at)
	if p.cfg.Scheduler != nil {
		p.cfg.Scheduler.ScheduleAt(at, j, func(ready *job.Job) {
			p.enqueueAfterSchedule(ready)
		})
		return
	}
	// No scheduler: re-enqueue immediately (§4.6.3: "without a scheduler
	// all re-enqueues are immediate").
	p.enqueueAfterSchedule(j)
}

func (p *Pool) enqueueAfterSchedule(j *job.Job) {
	if j.FireSchedule() {
		p.queue.Post(j)
	}
}

// RevokeOutcome is the result of Revoke, per §6.4.
type RevokeOutcome int

const (
	RevokeResultNone RevokeOutcome = iota
	RevokeResultUnknownKey
	RevokeResultTimedOut
)

// Revoke implements §4.6.3's "Revoke with completion wait": removes a
// queued job first; if executing, blocks on that worker's completion
// channel up to timeout. A worker whose id equals callerWorkerID is
// skipped (self-revocation never deadlocks).
func (p *Pool) Revoke(j *job.Job, timeout time.Duration, callerWorkerID int) RevokeOutcome {
	result := j.BeginRevoke()
	if result == job.RevokeAlreadyIdle {
		return RevokeResultUnknownKey
	}

	if p.queue.Revoke(j) {
		j.EndRevoke()
		return RevokeResultNone
	}

	p.mu.Lock()
	workerIdx := -1
	for i, aj := range p.activeJob {
		if aj == j {
			workerIdx = i
			break
		}
	}
	p.mu.Unlock()

	if workerIdx < 0 {
		// Not queued and not executing: either it already completed or it
		// is waiting in the scheduler. Either way it ends IDLE here, and a
		// later FireSchedule for it finds no SCHEDULE state and does nothing.
		j.EndRevoke()
		return RevokeResultNone
	}
	if workerIdx == callerWorkerID {
		// Self-revocation: treated as successful cancellation of future
		// runs without waiting (§4.6.3).
		return RevokeResultNone
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		select {
		case done := <-p.workerDone[workerIdx]:
			if done == j {
				return RevokeResultNone
			}
			// A completion left over from an earlier job on this worker:
			// keep waiting while j is still active there.
			p.mu.Lock()
			still := p.activeJob[workerIdx] == j
			p.mu.Unlock()
			if !still {
				return RevokeResultNone
			}
		case <-deadline.C:
			return RevokeResultTimedOut
		}
	}
}

// Join runs the configured Minion on the caller's goroutine (§6.4).
func (p *Pool) Join() {
	if p.cfg.Minion == nil {
		return
	}
	p.cfg.Minion.Run(p.queue.Extract, func(j *job.Job) {
		p.runJob(-1, j)
	})
}

func (p *Pool) workerLoop(id int) {
	defer p.wg.Done()
	for {
		j := p.queue.Extract()
		if j == nil {
			return // queue closed and drained
		}
		p.runJob(id, j)
	}
}

func (p *Pool) runJob(workerID int, j *job.Job) {
	if !j.BeginExecution() {
		// Revoked before a worker reached it.
		return
	}

	if workerID >= 0 {
		p.mu.Lock()
		p.activeJob[workerID] = j
		p.active++
		p.mu.Unlock()
	}

	runErr := j.Dispatch()
	if runErr != nil {
		logger.JobErrorw("job execution failed",
			logger.FieldJobID, string(j.ID()),
			logger.FieldHandler, j.HandlerName(),
			logger.FieldError, runErr.Error())
	}

	outcome := j.EndExecution(runErr)

	if workerID >= 0 {
		p.mu.Lock()
		p.activeJob[workerID] = nil
		p.mu.Unlock()
	}

	// RESUBMIT/SCHEDULE outcomes are handled before idleness is judged.
	switch outcome {
	case job.OutcomeReenqueueImmediate:
		p.queue.Post(j)
	case job.OutcomeReenqueueScheduled:
		if at, ok := j.ScheduledAt(); ok {
			p.Schedule(at, j)
		}
	case job.OutcomeRevoked:
		j.EndRevoke()
	}

	if workerID >= 0 {
		p.mu.Lock()
		p.active--
		idle := p.active == 0 && p.queue.Len() == 0
		p.mu.Unlock()
		select {
		case p.workerDone[workerID] <- j:
		default:
		}
		if idle && p.cfg.OnIdle != nil {
			p.cfg.OnIdle()
		}
	}
}

func (p *Pool) underMemoryPressure() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.memPressure != 0
}

func (p *Pool) watchMemoryPressure() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.cfg.MemoryPressureInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stopped:
			return
		case <-ticker.C:
			v, err := mem.VirtualMemory()
			if err != nil {
				continue
			}
			used := v.UsedPercent / 100.0
			pressured := used >= p.cfg.MemoryPressureThreshold
			p.mu.Lock()
			changed := (p.memPressure != 0) != pressured
			if pressured {
				p.memPressure = 1
			} else {
				p.memPressure = 0
			}
			p.mu.Unlock()
			if changed && pressured {
				logger.PoolInfow("memory pressure threshold exceeded, deferring submissions",
					"used_percent", v.UsedPercent,
					"threshold", p.cfg.MemoryPressureThreshold*100)
			}
		}
	}
}

// Snapshot is the consistent point-in-time view of §6.4's Snapshot(),
// extended per §4.6.3 with RateLimited/MemoryPressure reporting.
// RunCounts has one slot per worker holding the RunCount of the job that
// worker is executing when the snapshot is taken, or 0 for an idle worker;
// it is not a count of the jobs each worker has run.
type Snapshot struct {
	Pending         int
	Occupation      int
	RunCounts       []int64
	RateLimited     bool
	MemoryPressure  bool
}

// Snapshot returns a consistent snapshot of pending jobs and active workers
// under the queue/pool lock.
func (p *Pool) Snapshot() Snapshot {
	p.mu.Lock()
	occ := p.active
	pressure := p.memPressure != 0
	runCounts := make([]int64, len(p.activeJob))
	for i, j := range p.activeJob {
		if j != nil {
			runCounts[i] = j.RunCount()
		}
	}
	p.mu.Unlock()

	return Snapshot{
		Pending:        p.queue.Len(),
		Occupation:     occ,
		RunCounts:      runCounts,
		RateLimited:    p.limiter != nil,
		MemoryPressure: pressure,
	}
}

// Stop implements the graceful drain of §4.6.3 expansion: stops accepting
// new submissions, lets in-flight jobs finish, and honors ctx cancellation
// to force-abandon the wait.
func (p *Pool) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.stopped)
		p.queue.Close()
		if p.cfg.Scheduler != nil {
			p.cfg.Scheduler.Stop()
		}
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
