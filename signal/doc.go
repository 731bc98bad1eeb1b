// Package signal provides temporal-conditioning operators over push-based
// boolean signals.
//
// A Signal is an ordered, potentially infinite sequence of boolean values
// terminated by at most one completion or error. Operators such as
// TrueForAtLeast, LimitTrueDuration, PersistTrueFor and WhenTrueFor derive a
// new Signal whose transitions are delayed, held, extended or suppressed
// according to elapsed time, which is what automation logic usually wants
// from raw inputs like motion sensors, buttons and door contacts.
//
// Time is always injected through a Scheduler. NewSystemScheduler backs
// operators with real timers; NewVirtualScheduler provides deterministic
// virtual time for tests.
package signal
