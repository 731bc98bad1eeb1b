package signal

import (
	"sync"
	"time"
)

// PersistTrueFor stretches the trailing edge of source: every true is
// forwarded immediately, while a false is held back for duration. If source
// turns true again before the hold elapses, the held false is discarded
// entirely; otherwise it surfaces when the hold elapses. The very first
// source value is forwarded immediately regardless of polarity, so an
// initial false is not delayed. The output is always collapsed to actual
// flips.
//
// WithResetOnRepeat makes a repeated false restart the open hold window; by
// default a repeat leaves the original deadline untouched. A non-positive
// duration returns source unchanged.
func PersistTrueFor(source Signal, duration time.Duration, scheduler Scheduler, opts ...Option) Signal {
	mustSource(source)
	mustScheduler(scheduler)

	if duration <= 0 {
		return source
	}

	cfg := defaultSettings(opts)

	return SignalFunc(func(out Observer) Subscription {
		op := &persistOp{
			out:      out,
			duration: duration,
			reset:    cfg.reset,
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

// PersistFalseFor is the mirror of PersistTrueFor: falses pass immediately
// and a true is held back for duration. Implemented by negating input and
// output around PersistTrueFor.
func PersistFalseFor(source Signal, duration time.Duration, scheduler Scheduler, opts ...Option) Signal {
	mustSource(source)

	return Not(PersistTrueFor(Not(source), duration, scheduler, opts...))
}

// persistOp is the per-subscription state of one PersistTrueFor.
type persistOp struct {
	mu       sync.Mutex
	out      Observer
	slot     *timerSlot
	duration time.Duration
	reset    bool
	started  bool
	lastRaw  bool
	hasOut   bool
	lastOut  bool
	done     bool
}

func (op *persistOp) onNext(v bool) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	if !op.started {
		op.started = true
		op.lastRaw = v
		op.emit(v)

		return
	}

	if v {
		op.lastRaw = true
		op.slot.cancel()
		op.emit(true)

		return
	}

	// A repeated false must not restart the open hold window.
	if !op.reset && !op.lastRaw {
		return
	}

	op.lastRaw = false
	op.slot.set(op.duration, op.holdElapsed)
}

// holdElapsed surfaces the held false. Called with op.mu held.
func (op *persistOp) holdElapsed() {
	if op.done {
		return
	}

	op.emit(false)
}

// emit pushes v downstream, collapsing repeated equal values.
func (op *persistOp) emit(v bool) {
	if op.hasOut && op.lastOut == v {
		return
	}

	op.hasOut = true
	op.lastOut = v
	op.out.next(v)
}

func (op *persistOp) onComplete() {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.slot.cancel()
	op.out.complete()
}

func (op *persistOp) onError(err error) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.slot.cancel()
	op.out.fail(err)
}

// WhenTrueFor confirms the leading edge of source: every false is forwarded
// immediately, while a true only surfaces after source has been true
// continuously for duration. A true that does not survive the confirmation
// window is discarded. An initial true is surfaced as an immediate synthetic
// false, since the result must start false until proven true. The output is
// always collapsed to actual flips.
//
// WithResetOnRepeat makes a repeated true restart the open confirmation
// window; by default a repeat leaves the original deadline untouched. A
// non-positive duration returns source unchanged.
func WhenTrueFor(source Signal, duration time.Duration, scheduler Scheduler, opts ...Option) Signal {
	mustSource(source)
	mustScheduler(scheduler)

	if duration <= 0 {
		return source
	}

	cfg := defaultSettings(opts)

	return SignalFunc(func(out Observer) Subscription {
		op := &confirmOp{
			out:      out,
			duration: duration,
			reset:    cfg.reset,
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

// WhenFalseFor is the mirror of WhenTrueFor: trues pass immediately and a
// false only surfaces after standing for duration. Implemented by negating
// input and output around WhenTrueFor.
func WhenFalseFor(source Signal, duration time.Duration, scheduler Scheduler, opts ...Option) Signal {
	mustSource(source)

	return Not(WhenTrueFor(Not(source), duration, scheduler, opts...))
}

// confirmOp is the per-subscription state of one WhenTrueFor.
type confirmOp struct {
	mu       sync.Mutex
	out      Observer
	slot     *timerSlot
	duration time.Duration
	reset    bool
	started  bool
	lastRaw  bool
	hasOut   bool
	lastOut  bool
	done     bool
}

func (op *confirmOp) onNext(v bool) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	if !op.started {
		op.started = true
		op.lastRaw = v

		// The result starts false either way; an initial true still has
		// to survive the confirmation window.
		op.emit(false)

		if v {
			op.slot.set(op.duration, op.confirmed)
		}

		return
	}

	if !v {
		op.lastRaw = false
		op.slot.cancel()
		op.emit(false)

		return
	}

	// A repeated true must not restart the open confirmation window.
	if !op.reset && op.lastRaw {
		return
	}

	op.lastRaw = true
	op.slot.set(op.duration, op.confirmed)
}

// confirmed surfaces the confirmed true. Called with op.mu held.
func (op *confirmOp) confirmed() {
	if op.done {
		return
	}

	op.emit(true)
}

// emit pushes v downstream, collapsing repeated equal values.
func (op *confirmOp) emit(v bool) {
	if op.hasOut && op.lastOut == v {
		return
	}

	op.hasOut = true
	op.lastOut = v
	op.out.next(v)
}

func (op *confirmOp) onComplete() {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.slot.cancel()
	op.out.complete()
}

func (op *confirmOp) onError(err error) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.slot.cancel()
	op.out.fail(err)
}
