package signal

import (
	"container/heap"
	"sync"
	"time"
)

// VirtualScheduler is a deterministic Scheduler for tests. Time only moves
// when AdvanceBy or AdvanceTo is called; due callbacks run synchronously on
// the advancing goroutine, ordered by deadline and, for equal deadlines, by
// registration order. Callbacks scheduled while advancing are run in the
// same pass when they fall inside the advanced window.
type VirtualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue virtualQueue
}

// NewVirtualScheduler returns a virtual scheduler positioned at the Unix
// epoch.
func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{
		now: time.Unix(0, 0),
	}
}

// Now reports the current virtual time.
func (s *VirtualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.now
}

// Schedule registers fn to run once delay has been advanced past.
func (s *VirtualScheduler) Schedule(delay time.Duration, fn func()) Timer {
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &virtualTimer{
		sched:    s,
		deadline: s.now.Add(delay),
		seq:      s.seq,
		fn:       fn,
	}
	heap.Push(&s.queue, t)

	return t
}

// AdvanceBy moves virtual time forward by d, running every due callback in
// order.
func (s *VirtualScheduler) AdvanceBy(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	s.advance(target)
}

// AdvanceTo moves virtual time forward to t. Moving backwards is a no-op.
func (s *VirtualScheduler) AdvanceTo(t time.Time) {
	s.advance(t)
}

// PendingCount reports how many callbacks are still scheduled. Useful for
// asserting that a teardown left no orphaned timers behind.
func (s *VirtualScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for _, t := range s.queue {
		if !t.stopped {
			n++
		}
	}

	return n
}

// advance runs due callbacks one at a time. The lock is released around each
// callback so that callbacks may schedule or cancel timers.
func (s *VirtualScheduler) advance(target time.Time) {
	for {
		s.mu.Lock()

		// Drop canceled timers sitting at the head of the queue.
		for len(s.queue) > 0 && s.queue[0].stopped {
			heap.Pop(&s.queue)
		}

		if len(s.queue) == 0 || s.queue[0].deadline.After(target) {
			if target.After(s.now) {
				s.now = target
			}

			s.mu.Unlock()

			return
		}

		t := heap.Pop(&s.queue).(*virtualTimer)
		if t.deadline.After(s.now) {
			s.now = t.deadline
		}

		s.mu.Unlock()

		t.fn()
	}
}

// virtualTimer is one scheduled callback in the virtual queue.
type virtualTimer struct {
	sched    *VirtualScheduler
	deadline time.Time
	seq      uint64
	fn       func()
	stopped  bool
}

// Stop cancels the callback. Safe to call after the callback has fired.
func (t *virtualTimer) Stop() {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()

	t.stopped = true
}

// virtualQueue orders timers by deadline, then registration order.
type virtualQueue []*virtualTimer

func (q virtualQueue) Len() int { return len(q) }

func (q virtualQueue) Less(i, j int) bool {
	if q[i].deadline.Equal(q[j].deadline) {
		return q[i].seq < q[j].seq
	}

	return q[i].deadline.Before(q[j].deadline)
}

func (q virtualQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *virtualQueue) Push(x any) { *q = append(*q, x.(*virtualTimer)) }

func (q *virtualQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]

	return x
}
