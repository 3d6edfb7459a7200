package pool

import (
	"testing"
	"time"

	"github.com/teranos/corelib/job"
)

// TestTickerSchedulerFiresEnqueueOnceDue is a regression test for the bug
// where TickerScheduler built its timer on a resource.TickerResource whose
// Ready() handler is only ever invoked by a registered resource.Monitor:
// nothing drove the internal notify channel standalone, so ScheduleAt's
// enqueue callback was never called and scheduled jobs sat forever.
func TestTickerSchedulerFiresEnqueueOnceDue(t *testing.T) {
	s := NewTickerScheduler(10 * time.Millisecond)
	defer s.Stop()

	j := job.New("h", nil, nil)
	enqueued := make(chan *job.Job, 1)
	s.ScheduleAt(time.Now().Add(20*time.Millisecond), j, func(ready *job.Job) {
		enqueued <- ready
	})

	select {
	case got := <-enqueued:
		if got != j {
			t.Error("enqueue callback received a different job")
		}
	case <-time.After(time.Second):
		t.Fatal("ScheduleAt's enqueue callback was never invoked")
	}
}

func TestTickerSchedulerSkipsNotYetDueEntries(t *testing.T) {
	s := NewTickerScheduler(10 * time.Millisecond)
	defer s.Stop()

	enqueued := make(chan *job.Job, 1)
	j := job.New("h", nil, nil)
	s.ScheduleAt(time.Now().Add(time.Hour), j, func(ready *job.Job) {
		enqueued <- ready
	})

	select {
	case <-enqueued:
		t.Fatal("enqueue callback fired for an entry not yet due")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTickerSchedulerStopFlushesPendingEntries(t *testing.T) {
	s := NewTickerScheduler(time.Hour) // long enough that Stop must be what fires it

	enqueued := make(chan *job.Job, 1)
	j := job.New("h", nil, nil)
	s.ScheduleAt(time.Now().Add(time.Hour), j, func(ready *job.Job) {
		enqueued <- ready
	})

	s.Stop()

	select {
	case got := <-enqueued:
		if got != j {
			t.Error("Stop() flushed a different job than was pending")
		}
	case <-time.After(time.Second):
		t.Fatal("Stop() did not flush the still-pending entry")
	}
}

func TestTickerSchedulerMultipleEntriesFireIndependently(t *testing.T) {
	s := NewTickerScheduler(5 * time.Millisecond)
	defer s.Stop()

	enqueued := make(chan *job.Job, 2)
	j1 := job.New("first", nil, nil)
	j2 := job.New("second", nil, nil)
	s.ScheduleAt(time.Now().Add(10*time.Millisecond), j1, func(ready *job.Job) { enqueued <- ready })
	s.ScheduleAt(time.Now().Add(50*time.Millisecond), j2, func(ready *job.Job) { enqueued <- ready })

	seen := map[*job.Job]bool{}
	for i := 0; i < 2; i++ {
		select {
		case got := <-enqueued:
			seen[got] = true
		case <-time.After(time.Second):
			t.Fatalf("only %d/2 entries fired", i)
		}
	}
	if !seen[j1] || !seen[j2] {
		t.Error("not all scheduled entries fired")
	}
}
