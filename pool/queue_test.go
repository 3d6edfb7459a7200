package pool

import (
	"testing"
	"time"

	"github.com/teranos/corelib/job"
)

func TestQueuePostAndExtractFIFO(t *testing.T) {
	q := NewQueue(4)
	j1 := job.New("h", nil, nil)
	j2 := job.New("h", nil, nil)

	if !q.Post(j1) {
		t.Fatal("Post() = false, want true")
	}
	if !q.Post(j2) {
		t.Fatal("Post() = false, want true")
	}
	if got := q.Extract(); got != j1 {
		t.Error("Extract() did not return the first-posted job")
	}
	if got := q.Extract(); got != j2 {
		t.Error("Extract() did not return the second-posted job")
	}
}

func TestQueuePostDropsAtCapacity(t *testing.T) {
	q := NewQueue(1)
	j1 := job.New("h", nil, nil)
	j2 := job.New("h", nil, nil)

	if !q.Post(j1) {
		t.Fatal("first Post() = false, want true")
	}
	if q.Post(j2) {
		t.Fatal("Post() at capacity = true, want false (non-blocking drop)")
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestQueueInsertBlocksThenTimesOut(t *testing.T) {
	q := NewQueue(1)
	q.Post(job.New("h", nil, nil))

	start := time.Now()
	ok := q.Insert(job.New("h", nil, nil), 20*time.Millisecond)
	elapsed := time.Since(start)
	if ok {
		t.Fatal("Insert() = true, want false on timeout")
	}
	if elapsed < 15*time.Millisecond {
		t.Errorf("Insert() returned after %v, want roughly >= 20ms", elapsed)
	}
}

func TestQueueInsertUnblocksOnExtract(t *testing.T) {
	q := NewQueue(1)
	q.Post(job.New("h", nil, nil))

	done := make(chan bool, 1)
	j2 := job.New("h", nil, nil)
	go func() {
		done <- q.Insert(j2, time.Second)
	}()

	time.Sleep(10 * time.Millisecond)
	q.Extract() // frees a slot

	select {
	case ok := <-done:
		if !ok {
			t.Error("Insert() = false, want true once space freed")
		}
	case <-time.After(time.Second):
		t.Fatal("Insert() never unblocked after Extract freed capacity")
	}
}

func TestQueueExtractReturnsNilWhenClosedAndDrained(t *testing.T) {
	q := NewQueue(2)
	q.Close()
	if got := q.Extract(); got != nil {
		t.Errorf("Extract() on closed empty queue = %v, want nil", got)
	}
}

func TestQueueRevokeRemovesQueuedJob(t *testing.T) {
	q := NewQueue(4)
	j1 := job.New("h", nil, nil)
	j2 := job.New("h", nil, nil)
	q.Post(j1)
	q.Post(j2)

	if !q.Revoke(j1) {
		t.Fatal("Revoke() = false, want true")
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
	if got := q.Extract(); got != j2 {
		t.Error("remaining job after Revoke() was not j2")
	}
}

func TestQueueRevokeMissingReturnsFalse(t *testing.T) {
	q := NewQueue(4)
	if q.Revoke(job.New("h", nil, nil)) {
		t.Fatal("Revoke() of an unqueued job = true, want false")
	}
}
