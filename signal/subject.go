package signal

import "sync"

// Subject is a multicasting push source: values fed through Next are
// forwarded to every current subscriber in subscription order. After
// Complete or Error the subject is terminal; later values are dropped and
// late subscribers receive the terminal notification immediately.
type Subject struct {
	mu        sync.Mutex
	observers []subjectEntry
	nextID    int
	completed bool
	err       error
}

// subjectEntry pairs a subscriber with the id used to remove it.
type subjectEntry struct {
	id  int
	obs Observer
}

// NewSubject returns an empty, non-terminal subject.
func NewSubject() *Subject {
	return &Subject{}
}

// Subscribe attaches the observer. If the subject already terminated, the
// terminal notification is delivered synchronously and the returned
// subscription is a no-op.
func (s *Subject) Subscribe(o Observer) Subscription {
	s.mu.Lock()

	if s.completed {
		s.mu.Unlock()
		o.complete()

		return newSubscription(nil)
	}

	if s.err != nil {
		err := s.err
		s.mu.Unlock()
		o.fail(err)

		return newSubscription(nil)
	}

	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, subjectEntry{id: id, obs: o})
	s.mu.Unlock()

	return newSubscription(func() {
		s.remove(id)
	})
}

// Next forwards v to all current subscribers. Dropped once terminal.
func (s *Subject) Next(v bool) {
	for _, e := range s.snapshot() {
		e.obs.next(v)
	}
}

// Complete terminates the subject and notifies all subscribers.
func (s *Subject) Complete() {
	s.mu.Lock()

	if s.terminalLocked() {
		s.mu.Unlock()

		return
	}

	s.completed = true
	observers := s.observers
	s.observers = nil
	s.mu.Unlock()

	for _, e := range observers {
		e.obs.complete()
	}
}

// Error terminates the subject with err and notifies all subscribers. A nil
// err is treated as completion.
func (s *Subject) Error(err error) {
	if err == nil {
		s.Complete()

		return
	}

	s.mu.Lock()

	if s.terminalLocked() {
		s.mu.Unlock()

		return
	}

	s.err = err
	observers := s.observers
	s.observers = nil
	s.mu.Unlock()

	for _, e := range observers {
		e.obs.fail(err)
	}
}

// HasObservers reports whether anyone is currently subscribed.
func (s *Subject) HasObservers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.observers) > 0
}

// snapshot copies the subscriber list so notifications run outside the lock.
// Returns nil once terminal.
func (s *Subject) snapshot() []subjectEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminalLocked() {
		return nil
	}

	observers := make([]subjectEntry, len(s.observers))
	copy(observers, s.observers)

	return observers
}

func (s *Subject) terminalLocked() bool {
	return s.completed || s.err != nil
}

func (s *Subject) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.observers {
		if e.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)

			return
		}
	}
}
