package monitor

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/signal-hold/internal/config"
	"github.com/oshokin/signal-hold/internal/repository/state"
	"github.com/oshokin/signal-hold/internal/sink/mqtt"
	"github.com/oshokin/signal-hold/internal/source/gpio"
	"github.com/oshokin/signal-hold/signal"
)

// TestServiceConfirmedTransition drives a confirmation pipeline on virtual
// time: a sample must stand true for confirm_for before the derived state
// turns on, and dropping the sample turns it off again.
func TestServiceConfirmedTransition(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		PollInterval: 100 * time.Millisecond,
		Inputs: []config.Input{
			{Name: "motion", Pin: 17, ConfirmFor: 2 * time.Second},
		},
	}

	vs := signal.NewVirtualScheduler()
	pub := mqtt.NewFakePublisher()
	svc := NewService(cfg, gpio.NewFakeReader(nil), pub, vs)

	svc.Start(context.Background())

	require.NoError(t, svc.Sample([]bool{true}))
	vs.AdvanceBy(2 * time.Second)
	require.NoError(t, svc.Sample([]bool{false}))

	events := pub.Events()
	require.Len(t, events, 3)
	require.Equal(t, "motion", events[0].Input)
	require.False(t, events[0].State) // unconfirmed at first sight
	require.True(t, events[1].State)  // confirmed after the window
	require.False(t, events[2].State)

	require.NoError(t, svc.Close())
	require.True(t, pub.Closed())
}

// TestServiceInvert flips the raw reading before conditioning.
func TestServiceInvert(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		PollInterval: 100 * time.Millisecond,
		Inputs: []config.Input{
			{Name: "door", Pin: 27, Invert: true},
		},
	}

	vs := signal.NewVirtualScheduler()
	pub := mqtt.NewFakePublisher()
	svc := NewService(cfg, gpio.NewFakeReader(nil), pub, vs)

	svc.Start(context.Background())

	require.NoError(t, svc.Sample([]bool{false}))
	require.NoError(t, svc.Sample([]bool{true}))

	events := pub.Events()
	require.Len(t, events, 2)
	require.True(t, events[0].State)
	require.False(t, events[1].State)
}

// TestServiceTrailingHold keeps the derived state on for hold_for after the
// input drops.
func TestServiceTrailingHold(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		PollInterval: 100 * time.Millisecond,
		Inputs: []config.Input{
			{Name: "presence", Pin: 4, HoldFor: 5 * time.Second},
		},
	}

	vs := signal.NewVirtualScheduler()
	pub := mqtt.NewFakePublisher()
	svc := NewService(cfg, gpio.NewFakeReader(nil), pub, vs)

	svc.Start(context.Background())

	require.NoError(t, svc.Sample([]bool{true}))
	require.NoError(t, svc.Sample([]bool{false}))

	// Still held.
	vs.AdvanceBy(4 * time.Second)
	require.Len(t, pub.Events(), 1)
	require.True(t, pub.Events()[0].State)

	vs.AdvanceBy(time.Second)

	events := pub.Events()
	require.Len(t, events, 2)
	require.False(t, events[1].State)
}

// TestServiceSampleLengthMismatch rejects readings that do not match the
// configured inputs.
func TestServiceSampleLengthMismatch(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		PollInterval: 100 * time.Millisecond,
		Inputs:       []config.Input{{Name: "motion", Pin: 17}},
	}

	svc := NewService(cfg, gpio.NewFakeReader(nil), nil, signal.NewVirtualScheduler())
	require.Error(t, svc.Sample([]bool{true, false}))
}

// TestServiceRunStopsOnContextCancel terminates the polling loop.
func TestServiceRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		PollInterval: time.Millisecond,
		Inputs:       []config.Input{{Name: "motion", Pin: 17}},
	}

	reader := gpio.NewFakeReader([][]bool{{false}, {true}})
	pub := mqtt.NewFakePublisher()
	svc := NewService(cfg, reader, pub, signal.NewSystemScheduler())

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)

	done := make(chan error, 1)
	go func() {
		done <- svc.Run(ctx)
	}()

	// Let a few samples through, then stop.
	time.Sleep(20 * time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	require.NoError(t, svc.Close())
	require.True(t, reader.Closed())
}

// TestServicePersistsSnapshot writes the conditioned states to the
// repository after every transition.
func TestServicePersistsSnapshot(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		PollInterval: 100 * time.Millisecond,
		Inputs: []config.Input{
			{Name: "motion", Pin: 17},
			{Name: "door", Pin: 27},
		},
	}

	vs := signal.NewVirtualScheduler()
	svc := NewService(cfg, gpio.NewFakeReader(nil), nil, vs)

	repo := state.NewFileRepository(filepath.Join(t.TempDir(), "snapshot.json"))
	svc.SetRepository(repo)

	svc.Start(context.Background())

	require.NoError(t, svc.Sample([]bool{true, false}))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.True(t, got.Inputs["motion"].State)
	require.False(t, got.Inputs["door"].State)
}

// TestPipelinePassThrough leaves the signal untouched when every duration
// is zero.
func TestPipelinePassThrough(t *testing.T) {
	t.Parallel()

	vs := signal.NewVirtualScheduler()
	subject := signal.NewSubject()
	out := Pipeline(subject, config.Input{Name: "raw", Pin: 1}, vs)

	var got []bool

	sub := signal.SubscribeValues(out, func(v bool) {
		got = append(got, v)
	})
	defer sub.Unsubscribe()

	subject.Next(true)
	subject.Next(false)
	subject.Next(true)

	require.Equal(t, []bool{true, false, true}, got)
	require.Zero(t, vs.PendingCount())
}
