package signal

import (
	"sync"
	"time"
)

// DelayTimer derives an "armed" signal from trigger: false until trigger
// reports true, then true until duration elapses without the timer being
// re-armed. A true on trigger while the timer is idle arms it and schedules
// the disarm; with resetOnRepeat a repeated true while running restarts the
// window, otherwise the original deadline stands. A false on trigger is
// ignored: disarming only ever happens through elapsed time.
//
// The output only carries actual flips, so it is distinct-until-changed by
// construction. Completion and errors from trigger pass through immediately
// and cancel the pending disarm. A non-positive duration degenerates to
// echoing trigger directly.
func DelayTimer(trigger Signal, duration time.Duration, scheduler Scheduler, resetOnRepeat bool) Signal {
	mustSource(trigger)
	mustScheduler(scheduler)

	if duration <= 0 {
		return trigger
	}

	return SignalFunc(func(out Observer) Subscription {
		op := &delayTimerOp{
			out:      out,
			duration: duration,
			reset:    resetOnRepeat,
		}
		op.slot = newTimerSlot(&op.mu, scheduler)

		upstream := trigger.Subscribe(Observer{
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

// delayTimerOp is the per-subscription state of one DelayTimer.
type delayTimerOp struct {
	mu       sync.Mutex
	out      Observer
	slot     *timerSlot
	duration time.Duration
	reset    bool
	armed    bool
	done     bool
}

func (op *delayTimerOp) onNext(v bool) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done || !v {
		return
	}

	if op.armed {
		if op.reset {
			op.slot.set(op.duration, op.disarm)
		}

		return
	}

	op.armed = true
	op.slot.set(op.duration, op.disarm)
	op.out.next(true)
}

// disarm runs when the scheduled window elapses. Called with op.mu held.
func (op *delayTimerOp) disarm() {
	if op.done {
		return
	}

	op.armed = false
	op.out.next(false)
}

func (op *delayTimerOp) onComplete() {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.slot.cancel()
	op.out.complete()
}

func (op *delayTimerOp) onError(err error) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.slot.cancel()
	op.out.fail(err)
}
