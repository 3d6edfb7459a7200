package pool

import (
	"sync"
	"time"

	"github.com/teranos/corelib/job"
)

// Queue is the bounded FIFO job queue of §4.6.3: blocking Extract (workers),
// blocking timeout-bounded Insert, and a non-blocking Post used from
// goroutines (e.g. the resource monitor) that must never block.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	items    []*job.Job
	capacity int
	closed   bool
}

// NewQueue constructs a bounded FIFO of the given capacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	q := &Queue{capacity: capacity}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Post is a non-blocking enqueue: it drops the job (returning false) rather
// than blocking when the queue is at capacity. Used from contexts (the
// resource monitor goroutine) that must never block.
func (q *Queue) Post(j *job.Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || len(q.items) >= q.capacity {
		return false
	}
	q.items = append(q.items, j)
	q.notEmpty.Signal()
	return true
}

// Insert blocks until space is available or timeout elapses, returning
// false on timeout (back-pressure).
func (q *Queue) Insert(j *job.Job, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && len(q.items) >= q.capacity {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		timer := time.AfterFunc(remaining, func() { q.notFull.Broadcast() })
		q.notFull.Wait()
		timer.Stop()
	}
	if q.closed {
		return false
	}
	q.items = append(q.items, j)
	q.notEmpty.Signal()
	return true
}

// Extract blocks until a job is available, returning nil if the queue is
// closed and drained.
func (q *Queue) Extract() *job.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.closed {
			return nil
		}
		q.notEmpty.Wait()
	}
	j := q.items[0]
	q.items = q.items[1:]
	q.notFull.Signal()
	return j
}

// Revoke removes a queued job (identified by pointer identity) before it
// reaches a worker. Returns true if it was found and removed.
func (q *Queue) Revoke(target *job.Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, j := range q.items {
		if j == target {
			q.items = append(q.items[:i], q.items[i+1:]...)
			q.notFull.Signal()
			return true
		}
	}
	return false
}

// Len returns the current pending count under lock.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close marks the queue closed: blocked Extract calls return nil once
// drained, and Insert/Post stop accepting.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}
