package signal

// SubscribeValues attaches fn as the value callback of source, ignoring
// completion and errors.
func SubscribeValues(source Signal, fn func(value bool)) Subscription {
	mustSource(source)

	return source.Subscribe(Observer{Next: fn})
}

// SubscribeOnTrue invokes fn for every true that source emits.
func SubscribeOnTrue(source Signal, fn func()) Subscription {
	mustSource(source)

	return source.Subscribe(Observer{
		Next: func(v bool) {
			if v {
				fn()
			}
		},
	})
}

// SubscribeOnFalse invokes fn for every false that source emits.
func SubscribeOnFalse(source Signal, fn func()) Subscription {
	mustSource(source)

	return source.Subscribe(Observer{
		Next: func(v bool) {
			if !v {
				fn()
			}
		},
	})
}
