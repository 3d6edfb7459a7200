// Package job implements the CAS-based job state machine of §3.3/§4.6.1: a
// uniform unit of work with idempotent submission, self-resubmission, and
// in-flight rescheduling, resolved without a per-job lock.
package job

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/corelib/wire"
)

// State is one position in the job state machine of §4.6.1.
type State int32

const (
	IDLE State = iota
	SUBMITTED
	EXECUTING
	RESUBMIT
	SCHEDULE
	REVOKING
)

func (s State) String() string {
	switch s {
	case IDLE:
		return "IDLE"
	case SUBMITTED:
		return "SUBMITTED"
	case EXECUTING:
		return "EXECUTING"
	case RESUBMIT:
		return "RESUBMIT"
	case SCHEDULE:
		return "SCHEDULE"
	case REVOKING:
		return "REVOKING"
	default:
		return "UNKNOWN"
	}
}

// Dispatcher invokes a job's body. Implemented by callers (typically the
// pool's configured element dispatcher, §4.6.3).
type Dispatcher interface {
	Dispatch(j *Job) error
}

// ID identifies a job for revocation and logging (§3.3 expansion).
type ID string

// NewID mints a fresh job identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// Job is one unit of work moving through the state machine of §4.6.1. A
// zero Job is not usable; construct with New.
type Job struct {
	id          ID
	handlerName string
	payload     wire.Element

	state      int32 // State, accessed only via atomic
	scheduleAt atomic.Value // time.Time, valid only while state observes SCHEDULE

	runCount  int64 // atomic
	lastErr   atomic.Value // error, nil until first failure

	dispatcher Dispatcher
}

// New constructs an IDLE job bound to the given dispatcher. payload may be
// nil for jobs that carry no streamable input.
func New(handlerName string, payload wire.Element, dispatcher Dispatcher) *Job {
	return &Job{
		id:          NewID(),
		handlerName: handlerName,
		payload:     payload,
		dispatcher:  dispatcher,
	}
}

func (j *Job) ID() ID                  { return j.id }
func (j *Job) HandlerName() string     { return j.handlerName }
func (j *Job) Payload() wire.Element   { return j.payload }
func (j *Job) RunCount() int64         { return atomic.LoadInt64(&j.runCount) }
func (j *Job) State() State            { return State(atomic.LoadInt32(&j.state)) }

// LastError returns the error from the most recent failed execution, or nil.
func (j *Job) LastError() error {
	if v := j.lastErr.Load(); v != nil {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}

// ScheduledAt returns the most recently recorded schedule time and whether
// one has ever been recorded.
func (j *Job) ScheduledAt() (time.Time, bool) {
	if v := j.scheduleAt.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func (j *Job) casState(from, to State) bool {
	return atomic.CompareAndSwapInt32(&j.state, int32(from), int32(to))
}

// SubmitResult tells the caller what Submit actually did, so a queue owner
// knows whether to enqueue.
type SubmitResult int

const (
	// SubmitEnqueued means the caller must push the job onto the work queue.
	SubmitEnqueued SubmitResult = iota
	// SubmitNoop means the job was already pending or executing; no
	// additional enqueue is needed (idempotent submission, §4.6.1).
	SubmitNoop
	// SubmitCoalesced means a self-submission from within Dispatch was
	// recorded (RESUBMIT) and will be re-enqueued automatically at
	// execution end (§4.6.2).
	SubmitCoalesced
)

// Submit implements the Submit column of §4.6.1's transition table.
func (j *Job) Submit() SubmitResult {
	for {
		switch j.State() {
		case IDLE:
			if j.casState(IDLE, SUBMITTED) {
				return SubmitEnqueued
			}
		case SUBMITTED, RESUBMIT, SCHEDULE, REVOKING:
			return SubmitNoop
		case EXECUTING:
			if j.casState(EXECUTING, RESUBMIT) {
				return SubmitCoalesced
			}
		}
	}
}

// Reschedule implements the Reschedule(t) column of §4.6.1: records t and
// moves (or keeps) the job in SCHEDULE, overwriting any previously recorded
// time.
func (j *Job) Reschedule(at time.Time) {
	j.scheduleAt.Store(at)
	for {
		cur := j.State()
		if cur == REVOKING {
			return
		}
		if cur == SCHEDULE {
			return // time already overwritten above
		}
		if j.casState(cur, SCHEDULE) {
			return
		}
	}
}

// FireSchedule implements the scheduler's due-time transition: SCHEDULE ->
// SUBMITTED, so the pool may post the job to the work queue. Returns false
// if the job was revoked while waiting (state observed REVOKING instead),
// in which case the caller must not enqueue it.
func (j *Job) FireSchedule() bool {
	return j.casState(SCHEDULE, SUBMITTED)
}

// RevokeResult is the outcome of attempting to revoke a job.
type RevokeResult int

const (
	RevokeNone RevokeResult = iota
	RevokeAlreadyIdle
	RevokeMarkedForRevocation
)

// beginRevoke implements the Revoke column of §4.6.1, short of the
// completion-wait the pool layer performs.
func (j *Job) beginRevoke() RevokeResult {
	for {
		switch j.State() {
		case IDLE:
			return RevokeAlreadyIdle
		case REVOKING:
			return RevokeMarkedForRevocation
		default:
			cur := j.State()
			if j.casState(cur, REVOKING) {
				return RevokeMarkedForRevocation
			}
		}
	}
}

// BeginRevoke is exported for pool.Revoke's use; Job itself never blocks.
func (j *Job) BeginRevoke() RevokeResult { return j.beginRevoke() }

// BeginExecution transitions SUBMITTED -> EXECUTING. Returns false if the
// job is not in SUBMITTED (e.g. it was revoked before a worker reached it).
func (j *Job) BeginExecution() bool {
	return j.casState(SUBMITTED, EXECUTING)
}

// ExecutionOutcome tells the caller (the pool's worker loop) what to do
// after execution ends, per the "At execution end" row of §4.6.1.
type ExecutionOutcome int

const (
	// OutcomeIdle means the job settled into IDLE; nothing further to do.
	OutcomeIdle ExecutionOutcome = iota
	// OutcomeReenqueueImmediate means the job observed RESUBMIT and must be
	// re-enqueued immediately.
	OutcomeReenqueueImmediate
	// OutcomeReenqueueScheduled means the job observed SCHEDULE and must be
	// handed to the pool's scheduler for the recorded time.
	OutcomeReenqueueScheduled
	// OutcomeRevoked means the job was REVOKING at execution end; the pool
	// must run the dedicated completion routine (EndRevoke) rather than any
	// re-enqueue path.
	OutcomeRevoked
)

// EndExecution implements the "execution end" column of §4.6.1 and
// increments the run counter and, on error, LastError.
func (j *Job) EndExecution(runErr error) ExecutionOutcome {
	atomic.AddInt64(&j.runCount, 1)
	if runErr != nil {
		j.lastErr.Store(runErr)
	}
	for {
		switch j.State() {
		case EXECUTING:
			if j.casState(EXECUTING, IDLE) {
				return OutcomeIdle
			}
		case RESUBMIT:
			if j.casState(RESUBMIT, SUBMITTED) {
				return OutcomeReenqueueImmediate
			}
		case SCHEDULE:
			if j.casState(SCHEDULE, SUBMITTED) {
				return OutcomeReenqueueScheduled
			}
		case REVOKING:
			return OutcomeRevoked
		default:
			// Unreachable under correct pool usage: execution end is only
			// observed from EXECUTING/RESUBMIT/SCHEDULE/REVOKING.
			return OutcomeIdle
		}
	}
}

// EndRevoke is the dedicated completion routine of §4.6.1: REVOKING -> IDLE,
// called once the pool confirms the job is no longer in flight.
func (j *Job) EndRevoke() {
	atomic.StoreInt32(&j.state, int32(IDLE))
}

// Dispatch invokes the bound dispatcher. The pool calls this once execution
// has begun (BeginExecution returned true); Job itself forbids re-entrant
// Dispatch via the EXECUTING state (a Submit observed during Dispatch
// coalesces into RESUBMIT rather than recursing, per §4.6.2).
func (j *Job) Dispatch() error {
	if j.dispatcher == nil {
		return nil
	}
	return j.dispatcher.Dispatch(j)
}
