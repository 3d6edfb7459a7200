package job

import (
	"errors"
	"testing"
	"time"
)

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(j *Job) error { return nil }

func TestSubmitFromIdleEnqueues(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	if got := j.Submit(); got != SubmitEnqueued {
		t.Fatalf("Submit() = %v, want SubmitEnqueued", got)
	}
	if j.State() != SUBMITTED {
		t.Fatalf("State() = %v, want SUBMITTED", j.State())
	}
}

func TestSubmitWhilePendingIsNoop(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	j.Submit()
	if got := j.Submit(); got != SubmitNoop {
		t.Fatalf("second Submit() = %v, want SubmitNoop", got)
	}
}

func TestSubmitDuringExecutionCoalesces(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	j.Submit()
	if !j.BeginExecution() {
		t.Fatal("BeginExecution() = false, want true")
	}
	if got := j.Submit(); got != SubmitCoalesced {
		t.Fatalf("Submit() during execution = %v, want SubmitCoalesced", got)
	}
	if j.State() != RESUBMIT {
		t.Fatalf("State() = %v, want RESUBMIT", j.State())
	}
}

func TestEndExecutionIdle(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	j.Submit()
	j.BeginExecution()
	if got := j.EndExecution(nil); got != OutcomeIdle {
		t.Fatalf("EndExecution() = %v, want OutcomeIdle", got)
	}
	if j.State() != IDLE {
		t.Fatalf("State() = %v, want IDLE", j.State())
	}
	if j.RunCount() != 1 {
		t.Errorf("RunCount() = %d, want 1", j.RunCount())
	}
}

func TestEndExecutionReenqueuesImmediateOnResubmit(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	j.Submit()
	j.BeginExecution()
	j.Submit() // coalesces into RESUBMIT
	if got := j.EndExecution(nil); got != OutcomeReenqueueImmediate {
		t.Fatalf("EndExecution() = %v, want OutcomeReenqueueImmediate", got)
	}
	if j.State() != SUBMITTED {
		t.Fatalf("State() = %v, want SUBMITTED", j.State())
	}
}

func TestEndExecutionRecordsError(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	j.Submit()
	j.BeginExecution()
	wantErr := errors.New("boom")
	j.EndExecution(wantErr)
	if got := j.LastError(); got == nil || got.Error() != "boom" {
		t.Errorf("LastError() = %v, want boom", got)
	}
}

func TestRescheduleThenFireSchedule(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	at := time.Now().Add(time.Minute)
	j.Reschedule(at)
	if j.State() != SCHEDULE {
		t.Fatalf("State() = %v, want SCHEDULE", j.State())
	}
	got, ok := j.ScheduledAt()
	if !ok || !got.Equal(at) {
		t.Errorf("ScheduledAt() = (%v, %v), want (%v, true)", got, ok, at)
	}

	if !j.FireSchedule() {
		t.Fatal("FireSchedule() = false, want true")
	}
	if j.State() != SUBMITTED {
		t.Fatalf("State() after FireSchedule = %v, want SUBMITTED", j.State())
	}
}

// TestFireScheduleRegressionEnqueueAfterSchedule guards against the bug
// where the scheduler called Submit() instead of FireSchedule() on a due
// job: Submit() treats SCHEDULE as already-pending and no-ops, so a
// scheduled job would never actually reach SUBMITTED and get enqueued.
func TestFireScheduleRegressionEnqueueAfterSchedule(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	j.Reschedule(time.Now())

	if got := j.Submit(); got != SubmitNoop {
		t.Fatalf("Submit() on a SCHEDULE job = %v, want SubmitNoop (this is why FireSchedule exists)", got)
	}
	if j.State() != SCHEDULE {
		t.Fatalf("State() after Submit() = %v, want still SCHEDULE", j.State())
	}

	if !j.FireSchedule() {
		t.Fatal("FireSchedule() = false, want true to actually enqueue the due job")
	}
	if j.State() != SUBMITTED {
		t.Fatalf("State() = %v, want SUBMITTED", j.State())
	}
}

func TestFireScheduleNoopsAfterRevoke(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	j.Reschedule(time.Now().Add(time.Hour))

	if got := j.BeginRevoke(); got != RevokeMarkedForRevocation {
		t.Fatalf("BeginRevoke() = %v, want RevokeMarkedForRevocation", got)
	}
	if j.State() != REVOKING {
		t.Fatalf("State() = %v, want REVOKING", j.State())
	}

	if j.FireSchedule() {
		t.Fatal("FireSchedule() = true after revoke, want false (no stale run)")
	}
}

func TestEndExecutionReenqueueScheduled(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	j.Submit()
	j.BeginExecution()
	j.Reschedule(time.Now().Add(time.Second))
	if got := j.EndExecution(nil); got != OutcomeReenqueueScheduled {
		t.Fatalf("EndExecution() = %v, want OutcomeReenqueueScheduled", got)
	}
	if j.State() != SUBMITTED {
		t.Fatalf("State() = %v, want SUBMITTED", j.State())
	}
}

func TestEndExecutionRevoked(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	j.Submit()
	j.BeginExecution()
	j.BeginRevoke()
	if got := j.EndExecution(nil); got != OutcomeRevoked {
		t.Fatalf("EndExecution() = %v, want OutcomeRevoked", got)
	}
	j.EndRevoke()
	if j.State() != IDLE {
		t.Fatalf("State() after EndRevoke = %v, want IDLE", j.State())
	}
}

func TestBeginRevokeAlreadyIdle(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	if got := j.BeginRevoke(); got != RevokeAlreadyIdle {
		t.Fatalf("BeginRevoke() = %v, want RevokeAlreadyIdle", got)
	}
}

func TestBeginExecutionFailsIfNotSubmitted(t *testing.T) {
	j := New("test.handler", nil, noopDispatcher{})
	if j.BeginExecution() {
		t.Fatal("BeginExecution() = true on an IDLE job, want false")
	}
}

func TestDispatchInvokesBoundDispatcher(t *testing.T) {
	var called bool
	d := dispatchFunc(func(j *Job) error {
		called = true
		return nil
	})
	j := New("test.handler", nil, d)
	if err := j.Dispatch(); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !called {
		t.Error("Dispatch() did not invoke the bound dispatcher")
	}
}

type dispatchFunc func(j *Job) error

func (f dispatchFunc) Dispatch(j *Job) error { return f(j) }
