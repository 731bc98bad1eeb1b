package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSubjectMulticast delivers each value to all subscribers in
// subscription order.
func TestSubjectMulticast(t *testing.T) {
	t.Parallel()

	src := NewSubject()

	var order []string

	src.Subscribe(Observer{Next: func(v bool) {
		order = append(order, "first")
	}})
	src.Subscribe(Observer{Next: func(v bool) {
		order = append(order, "second")
	}})

	src.Next(true)

	require.Equal(t, []string{"first", "second"}, order)
}

// TestSubjectTerminalLatching drops values after termination and notifies
// late subscribers synchronously.
func TestSubjectTerminalLatching(t *testing.T) {
	t.Parallel()

	src := NewSubject()
	rec := new(recorder)

	src.Subscribe(rec.observer())
	src.Next(true)
	src.Complete()
	src.Next(false)
	src.Error(errUpstream)

	require.Equal(t, []bool{true}, rec.values)
	require.True(t, rec.completed)
	require.NoError(t, rec.err)

	late := new(recorder)
	src.Subscribe(late.observer())
	require.True(t, late.completed)

	failed := NewSubject()
	failed.Error(errUpstream)

	late = new(recorder)
	failed.Subscribe(late.observer())
	require.ErrorIs(t, late.err, errUpstream)
}

// TestSubjectUnsubscribe stops delivery to the removed subscriber only.
func TestSubjectUnsubscribe(t *testing.T) {
	t.Parallel()

	src := NewSubject()
	first := new(recorder)
	second := new(recorder)

	sub := src.Subscribe(first.observer())
	src.Subscribe(second.observer())

	src.Next(true)
	sub.Unsubscribe()
	src.Next(false)

	require.Equal(t, []bool{true}, first.values)
	require.Equal(t, []bool{true, false}, second.values)
}

// TestSubjectNilErrorCompletes treats a nil error as completion.
func TestSubjectNilErrorCompletes(t *testing.T) {
	t.Parallel()

	src := NewSubject()
	rec := new(recorder)

	src.Subscribe(rec.observer())
	src.Error(nil)

	require.True(t, rec.completed)
	require.NoError(t, rec.err)
}
