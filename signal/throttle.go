package signal

import (
	"sync"
	"time"
)

// Throttle emits each source value only after it has stood for duration.
// Every incoming value cancels the pending emission and schedules a new one
// carrying the latest value, with one exception: without resetOnRepeat a
// value equal to the immediately preceding raw source value leaves the open
// window untouched, so duplicate input cannot restart the timer. With
// resetOnRepeat duplicates restart the window like any other value.
//
// This is the delayed-echo primitive behind PersistTrueFor and WhenTrueFor;
// it is not a generic debounce that drops values. Completion and errors pass
// through immediately, discarding any pending emission. A non-positive
// duration echoes the source without scheduling.
func Throttle(source Signal, duration time.Duration, scheduler Scheduler, resetOnRepeat bool) Signal {
	mustSource(source)
	mustScheduler(scheduler)

	if duration <= 0 {
		return source
	}

	return SignalFunc(func(out Observer) Subscription {
		op := &throttleOp{
			out:      out,
			duration: duration,
			reset:    resetOnRepeat,
		}
		op.slot = newTimerSlot(&op.mu, scheduler)

		upstream := source.Subscribe(Observer{
			Next:     op.onNext,
			Complete: op.onComplete,
			Error:    op.onError,
		})

		return newSubscription(func() {
			op.mu.Lock()
			op.done = true
			op.slot.cancel()
			op.mu.Unlock()

			upstream.Unsubscribe()
		})
	})
}

// throttleOp is the per-subscription state of one Throttle.
type throttleOp struct {
	mu       sync.Mutex
	out      Observer
	slot     *timerSlot
	duration time.Duration
	reset    bool
	hasLast  bool
	lastRaw  bool
	done     bool
}

func (op *throttleOp) onNext(v bool) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	// Duplicate input must not restart the open window.
	if !op.reset && op.hasLast && op.lastRaw == v {
		return
	}

	op.hasLast = true
	op.lastRaw = v

	op.slot.set(op.duration, func() {
		op.out.next(v)
	})
}

func (op *throttleOp) onComplete() {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.slot.cancel()
	op.out.complete()
}

func (op *throttleOp) onError(err error) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.slot.cancel()
	op.out.fail(err)
}
