package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestVirtualSchedulerOrdering runs due callbacks by deadline, breaking ties
// in registration order.
func TestVirtualSchedulerOrdering(t *testing.T) {
	t.Parallel()

	sched := NewVirtualScheduler()

	var order []string

	sched.Schedule(2*time.Second, func() { order = append(order, "b1") })
	sched.Schedule(time.Second, func() { order = append(order, "a") })
	sched.Schedule(2*time.Second, func() { order = append(order, "b2") })

	sched.AdvanceBy(3 * time.Second)

	require.Equal(t, []string{"a", "b1", "b2"}, order)
	require.Zero(t, sched.PendingCount())
}

// TestVirtualSchedulerNestedScheduling runs callbacks scheduled during an
// advance when they fall inside the advanced window.
func TestVirtualSchedulerNestedScheduling(t *testing.T) {
	t.Parallel()

	sched := NewVirtualScheduler()

	var order []string

	sched.Schedule(time.Second, func() {
		order = append(order, "outer")
		sched.Schedule(time.Second, func() {
			order = append(order, "inner")
		})
	})

	sched.AdvanceBy(2 * time.Second)

	require.Equal(t, []string{"outer", "inner"}, order)
}

// TestVirtualSchedulerStop cancels a pending callback.
func TestVirtualSchedulerStop(t *testing.T) {
	t.Parallel()

	sched := NewVirtualScheduler()

	fired := false
	timer := sched.Schedule(time.Second, func() { fired = true })
	timer.Stop()

	sched.AdvanceBy(2 * time.Second)

	require.False(t, fired)
	require.Zero(t, sched.PendingCount())
}

// TestVirtualSchedulerNow advances the clock even with nothing scheduled.
func TestVirtualSchedulerNow(t *testing.T) {
	t.Parallel()

	sched := NewVirtualScheduler()
	start := sched.Now()

	sched.AdvanceBy(5 * time.Second)
	require.Equal(t, start.Add(5*time.Second), sched.Now())

	// Moving backwards is a no-op.
	sched.AdvanceTo(start)
	require.Equal(t, start.Add(5*time.Second), sched.Now())
}

// TestVirtualSchedulerImmediate runs non-positive delays on the next advance,
// even a zero-length one.
func TestVirtualSchedulerImmediate(t *testing.T) {
	t.Parallel()

	sched := NewVirtualScheduler()

	fired := false
	sched.Schedule(-time.Second, func() { fired = true })

	sched.AdvanceBy(0)
	require.True(t, fired)
}
