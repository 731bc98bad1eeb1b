package signal

import "sync"

// Not inverts every value of source. Completion and errors pass through.
func Not(source Signal) Signal {
	mustSource(source)

	return SignalFunc(func(out Observer) Subscription {
		return source.Subscribe(Observer{
			Next: func(v bool) {
				out.next(!v)
			},
			Complete: out.complete,
			Error:    out.fail,
		})
	})
}

// DistinctUntilChanged suppresses values equal to the immediately preceding
// emitted value.
func DistinctUntilChanged(source Signal) Signal {
	mustSource(source)

	return SignalFunc(func(out Observer) Subscription {
		var (
			mu      sync.Mutex
			hasLast bool
			last    bool
		)

		return source.Subscribe(Observer{
			Next: func(v bool) {
				mu.Lock()

				if hasLast && last == v {
					mu.Unlock()

					return
				}

				hasLast = true
				last = v
				mu.Unlock()

				out.next(v)
			},
			Complete: out.complete,
			Error:    out.fail,
		})
	})
}

// And emits whether all inputs are currently true.
func And(inputs ...Signal) Signal {
	return combineLatest(inputs, func(values []bool) bool {
		for _, v := range values {
			if !v {
				return false
			}
		}

		return true
	})
}

// Or emits whether any input is currently true.
func Or(inputs ...Signal) Signal {
	return combineLatest(inputs, func(values []bool) bool {
		for _, v := range values {
			if v {
				return true
			}
		}

		return false
	})
}

// Xor emits whether an odd number of inputs are currently true.
func Xor(inputs ...Signal) Signal {
	return combineLatest(inputs, func(values []bool) bool {
		odd := false

		for _, v := range values {
			if v {
				odd = !odd
			}
		}

		return odd
	})
}

// Nand is the negation of And.
func Nand(inputs ...Signal) Signal {
	return Not(And(inputs...))
}

// Nor is the negation of Or.
func Nor(inputs ...Signal) Signal {
	return Not(Or(inputs...))
}

// Xnor is the negation of Xor.
func Xnor(inputs ...Signal) Signal {
	return Not(Xor(inputs...))
}

// combineLatest applies combine to the latest values of all inputs on every
// event from any of them, once every input has produced at least one value.
// An error from any input propagates immediately; the combination completes
// once all inputs have completed.
func combineLatest(inputs []Signal, combine func(values []bool) bool) Signal {
	if len(inputs) == 0 {
		panic("signal: no inputs")
	}

	for _, in := range inputs {
		mustSource(in)
	}

	return SignalFunc(func(out Observer) Subscription {
		op := &combineOp{
			out:     out,
			combine: combine,
			values:  make([]bool, len(inputs)),
			seen:    make([]bool, len(inputs)),
		}

		subs := make([]Subscription, len(inputs))
		for i, in := range inputs {
			i := i
			subs[i] = in.Subscribe(Observer{
				Next: func(v bool) {
					op.onNext(i, v)
				},
				Complete: op.onComplete,
				Error:    op.onError,
			})
		}

		return newSubscription(func() {
			op.mu.Lock()
			op.done = true
			op.mu.Unlock()

			for _, s := range subs {
				s.Unsubscribe()
			}
		})
	})
}

// combineOp is the per-subscription state of one combineLatest.
type combineOp struct {
	mu        sync.Mutex
	out       Observer
	combine   func(values []bool) bool
	values    []bool
	seen      []bool
	nseen     int
	completed int
	done      bool
}

func (op *combineOp) onNext(i int, v bool) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	if !op.seen[i] {
		op.seen[i] = true
		op.nseen++
	}

	op.values[i] = v

	if op.nseen == len(op.values) {
		op.out.next(op.combine(op.values))
	}
}

func (op *combineOp) onComplete() {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.completed++
	if op.completed < len(op.values) {
		return
	}

	op.done = true
	op.out.complete()
}

func (op *combineOp) onError(err error) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.done {
		return
	}

	op.done = true
	op.out.fail(err)
}
