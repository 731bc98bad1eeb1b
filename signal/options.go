package signal

// Distinctness controls where an operator suppresses repeated equal values.
// It applies to the hold operators (TrueForAtLeast, FalseForAtLeast,
// LimitTrueDuration, LimitFalseDuration). The persist and confirm operators
// always collapse their output and ignore this policy.
type Distinctness int

const (
	// OutputDistinct suppresses a result value equal to the immediately
	// prior emitted result value. This is the default.
	OutputDistinct Distinctness = iota
	// InputDistinct suppresses consecutive equal raw source values before
	// the operator combines them with its timer, but always emits the
	// combination result even when it equals the prior output.
	InputDistinct
	// NotDistinct applies no suppression at any stage.
	NotDistinct
)

// String returns the policy name.
func (d Distinctness) String() string {
	switch d {
	case OutputDistinct:
		return "output-distinct"
	case InputDistinct:
		return "input-distinct"
	case NotDistinct:
		return "not-distinct"
	default:
		return "unknown"
	}
}

// settings collects the optional policies of an operator call.
type settings struct {
	distinctness Distinctness
	reset        bool
}

// defaultSettings applies the documented per-operator defaults: collapse the
// output, keep the original deadline on repeated triggering values.
func defaultSettings(opts []Option) settings {
	s := settings{
		distinctness: OutputDistinct,
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// Option configures optional operator policies.
type Option func(*settings)

// WithDistinctness selects the suppression policy for repeated equal values.
func WithDistinctness(d Distinctness) Option {
	return func(s *settings) {
		s.distinctness = d
	}
}

// WithResetOnRepeat makes a repeat of the triggering value restart an open
// timer or debounce window, extending the deadline by the full duration from
// that repeat. Without it a repeat is ignored and the original deadline
// stands.
func WithResetOnRepeat() Option {
	return func(s *settings) {
		s.reset = true
	}
}
