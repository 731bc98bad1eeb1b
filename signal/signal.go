package signal

import "sync"

// Observer receives notifications from a Signal. Any callback may be nil, in
// which case the corresponding notification is dropped.
type Observer struct {
	// Next is called for every boolean value the signal produces.
	Next func(value bool)
	// Complete is called at most once, after the final value.
	Complete func()
	// Error is called at most once and terminates the sequence.
	Error func(err error)
}

// next delivers a value if the callback is set.
func (o Observer) next(v bool) {
	if o.Next != nil {
		o.Next(v)
	}
}

// complete delivers completion if the callback is set.
func (o Observer) complete() {
	if o.Complete != nil {
		o.Complete()
	}
}

// fail delivers an error if the callback is set.
func (o Observer) fail(err error) {
	if o.Error != nil {
		o.Error(err)
	}
}

// Signal is a push-based, ordered sequence of boolean values terminated by at
// most one completion or error. Subscribing may trigger synchronous
// emissions. Signals are not implicitly shared: every subscription owns its
// own operator state, and multiple subscribers to the same operator result
// cause independent re-evaluation of the upstream chain.
type Signal interface {
	// Subscribe attaches the observer and returns a handle that tears the
	// subscription down, canceling any pending internal timers.
	Subscribe(o Observer) Subscription
}

// SignalFunc adapts a subscribe function to the Signal interface.
type SignalFunc func(o Observer) Subscription

// Subscribe calls f.
func (f SignalFunc) Subscribe(o Observer) Subscription {
	return f(o)
}

// Subscription controls the lifetime of one subscription.
type Subscription interface {
	// Unsubscribe tears the subscription down. It is idempotent.
	Unsubscribe()
}

// subscription invokes its cancel function exactly once.
type subscription struct {
	once   sync.Once
	cancel func()
}

// newSubscription wraps cancel in an idempotent Subscription. A nil cancel
// yields a no-op subscription.
func newSubscription(cancel func()) Subscription {
	return &subscription{cancel: cancel}
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// mustSource panics when the provided source signal is nil. Operators fail
// fast at call time, before any subscription happens.
func mustSource(s Signal) {
	if s == nil {
		panic("signal: nil source")
	}
}

// mustScheduler panics when the provided scheduler is nil.
func mustScheduler(s Scheduler) {
	if s == nil {
		panic("signal: nil scheduler")
	}
}

// Just returns a signal that synchronously emits the given values on
// subscription and then completes.
func Just(values ...bool) Signal {
	return SignalFunc(func(o Observer) Subscription {
		for _, v := range values {
			o.next(v)
		}
		o.complete()

		return newSubscription(nil)
	})
}

// FromChan returns a signal that forwards values received on ch. The signal
// completes when ch is closed. Each subscription spawns one forwarding
// goroutine which stops on unsubscribe.
func FromChan(ch <-chan bool) Signal {
	if ch == nil {
		panic("signal: nil channel")
	}

	return SignalFunc(func(o Observer) Subscription {
		quit := make(chan struct{})

		go func() {
			for {
				select {
				case v, ok := <-ch:
					if !ok {
						o.complete()

						return
					}

					o.next(v)
				case <-quit:
					return
				}
			}
		}()

		return newSubscription(func() {
			close(quit)
		})
	})
}
