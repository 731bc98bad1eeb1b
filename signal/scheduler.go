package signal

import (
	"sync"
	"time"
)

// Timer is a handle to a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback if it has not fired yet.
	Stop()
}

// Scheduler is the injected time source used by all temporal operators. It
// must be able to report the current time and to run a callback once after a
// delay. A single scheduler instance may serve many subscriptions; each
// subscription keeps its timers independent through its own handles.
type Scheduler interface {
	// Now reports the scheduler's current time.
	Now() time.Time
	// Schedule runs fn once after delay and returns a cancellable handle.
	// A non-positive delay schedules fn for immediate execution.
	Schedule(delay time.Duration, fn func()) Timer
}

// systemScheduler backs operators with real wall-clock timers.
type systemScheduler struct{}

// NewSystemScheduler returns a scheduler backed by time.AfterFunc.
func NewSystemScheduler() Scheduler {
	return systemScheduler{}
}

// Now returns the current wall-clock time.
func (systemScheduler) Now() time.Time {
	return time.Now()
}

// Schedule runs fn once after delay on a timer goroutine.
func (systemScheduler) Schedule(delay time.Duration, fn func()) Timer {
	if delay < 0 {
		delay = 0
	}

	return systemTimer{timer: time.AfterFunc(delay, fn)}
}

// systemTimer wraps *time.Timer as a Timer handle.
type systemTimer struct {
	timer *time.Timer
}

// Stop cancels the underlying timer. A callback that is already running is
// not interrupted; operators guard against late firing themselves.
func (t systemTimer) Stop() {
	t.timer.Stop()
}

// timerSlot owns the single pending scheduled callback of one operator
// subscription. Scheduling a new callback always cancels the previous one,
// so no two timers of the same slot can overlap. A generation counter guards
// against a system timer that fires concurrently with its cancellation.
//
// All methods must be called with the owner's mutex held. The scheduled
// function is invoked with the owner's mutex held as well.
type timerSlot struct {
	mu      *sync.Mutex
	sched   Scheduler
	gen     uint64
	pending Timer
}

func newTimerSlot(mu *sync.Mutex, sched Scheduler) *timerSlot {
	return &timerSlot{
		mu:    mu,
		sched: sched,
	}
}

// set cancels any pending callback and schedules fn after delay.
func (s *timerSlot) set(delay time.Duration, fn func()) {
	s.cancel()

	s.gen++
	gen := s.gen

	s.pending = s.sched.Schedule(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		// A stale timer lost the race against cancel or a reschedule.
		if s.gen != gen {
			return
		}

		s.pending = nil

		fn()
	})
}

// cancel stops the pending callback, if any.
func (s *timerSlot) cancel() {
	s.gen++

	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
