package signal

import (
	"sync"
	"time"
)

// TrueForAtLeast guarantees that once source reports true, the result stays
// true for at least duration. A false arriving while the hold window is open
// is withheld and surfaces exactly when the window elapses; if source has
// returned to true by then, nothing surfaces. The very first source value is
// always emitted immediately, true or false, since no window can be open
// yet.
//
// WithResetOnRepeat makes a repeated true restart the open window.
// WithDistinctness picks the suppression policy; the default collapses the
// output. A non-positive duration returns source unchanged.
func TrueForAtLeast(source Signal, duration time.Duration, scheduler Scheduler, opts ...Option) Signal {
	mustSource(source)
	mustScheduler(scheduler)

	if duration <= 0 {
		return source
	}

	cfg := defaultSettings(opts)

	return SignalFunc(func(out Observer) Subscription {
		op := &holdOp{
			out:      out,
			duration: duration,
			cfg:      cfg,
			mode:     minimumHold,
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

// FalseForAtLeast is the mirror of TrueForAtLeast: once source reports
// false, the result stays false for at least duration. Implemented by
// negating input and output around TrueForAtLeast.
func FalseForAtLeast(source Signal, duration time.Duration, scheduler Scheduler, opts ...Option) Signal {
	mustSource(source)

	return Not(TrueForAtLeast(Not(source), duration, scheduler, opts...))
}

// LimitTrueDuration caps a continuous true at duration: when source has been
// true for duration without the window being re-armed, a synthetic false is
// injected exactly once, without waiting for a further source event. A
// genuine false from source always takes effect immediately, before or after
// the cap. The first true is forwarded before the window is armed, never
// withheld.
//
// WithResetOnRepeat makes a repeated true restart the cap window.
// WithDistinctness picks the suppression policy; the default collapses the
// output, so the genuine false following a synthetic one is swallowed. A
// non-positive duration returns source unchanged.
func LimitTrueDuration(source Signal, duration time.Duration, scheduler Scheduler, opts ...Option) Signal {
	mustSource(source)
	mustScheduler(scheduler)

	if duration <= 0 {
		return source
	}

	cfg := defaultSettings(opts)

	return SignalFunc(func(out Observer) Subscription {
		op := &holdOp{
			out:      out,
			duration: duration,
			cfg:      cfg,
			mode:     maximumHold,
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

// LimitFalseDuration is the mirror of LimitTrueDuration: a continuous false
// is capped at duration by injecting a synthetic true. Implemented by
// negating input and output around LimitTrueDuration.
func LimitFalseDuration(source Signal, duration time.Duration, scheduler Scheduler, opts ...Option) Signal {
	mustSource(source)

	return Not(LimitTrueDuration(Not(source), duration, scheduler, opts...))
}

// holdMode selects which of the two hold state machines a holdOp runs.
type holdMode int

const (
	minimumHold holdMode = iota
	maximumHold
)

// holdOp is the shared per-subscription state machine behind TrueForAtLeast
// and LimitTrueDuration. Both combine the latest source value with the
// armed/idle state of an embedded delay timer; they differ only in the
// emission rule, so each event is evaluated with an explicit origin instead
// of inferring it from a previous combined tuple.
type holdOp struct {
	mu       sync.Mutex
	out      Observer
	slot     *timerSlot
	duration time.Duration
	cfg      settings
	mode     holdMode

	started bool
	lastRaw bool
	src     bool
	armed   bool
	hasOut  bool
	lastOut bool
	done    bool
}

// holdOrigin tags whether an evaluation was caused by a source transition or
// by the embedded timer elapsing.
type holdOrigin int

const (
	sourceChanged holdOrigin = iota
	timerChanged
)

func (op *holdOp) onNext(v bool) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	// Input-distinct drops duplicate raw values before they reach the
	// timer or the combiner, so a repeat can neither re-arm nor reset.
	if op.cfg.distinctness == InputDistinct && op.started && v == op.lastRaw {
		return
	}

	op.started = true
	op.lastRaw = v
	op.src = v

	// Arm or reset the embedded delay timer. Only true arms; false never
	// disarms, the window closes through elapsed time alone.
	if v {
		if !op.armed {
			op.armed = true
			op.slot.set(op.duration, op.elapse)
		} else if op.cfg.reset {
			op.slot.set(op.duration, op.elapse)
		}
	}

	op.evaluate(sourceChanged)
}

// elapse runs when the hold window closes. Called with op.mu held.
func (op *holdOp) elapse() {
	if op.done {
		return
	}

	op.armed = false
	op.evaluate(timerChanged)
}

// evaluate applies the per-mode emission rule to the current combined state.
func (op *holdOp) evaluate(origin holdOrigin) {
	if !op.started {
		return
	}

	switch op.mode {
	case minimumHold:
		// A false is withheld while the window is open; everything else
		// reflects the source.
		if !op.src && op.armed {
			return
		}

		op.emit(op.src)
	case maximumHold:
		// The result tracks source directly; the window elapsing while
		// source is still true injects a synthetic false.
		if origin == timerChanged {
			if op.src {
				op.emit(false)
			}

			return
		}

		op.emit(op.src)
	}
}

// emit pushes v downstream subject to the distinctness policy.
func (op *holdOp) emit(v bool) {
	if op.cfg.distinctness == OutputDistinct && op.hasOut && op.lastOut == v {
		return
	}

	op.hasOut = true
	op.lastOut = v
	op.out.next(v)
}

func (op *holdOp) onComplete() {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.slot.cancel()
	op.out.complete()
}

func (op *holdOp) onError(err error) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.slot.cancel()
	op.out.fail(err)
}
