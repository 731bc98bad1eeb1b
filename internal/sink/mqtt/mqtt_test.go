package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestFormatPayload renders the expected JSON shape.
func TestFormatPayload(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	data, err := FormatPayload(Event{Timestamp: ts, Input: "motion", State: true})
	require.NoError(t, err)

	var got Payload
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "2025-06-01T12:30:00Z", got.Signal.Timestamp)
	require.Equal(t, "motion", got.Signal.Input)
	require.Equal(t, "on", got.Signal.State)

	data, err = FormatPayload(Event{Timestamp: ts, Input: "motion", State: false})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "off", got.Signal.State)
}

// TestFakePublisherRecords collects events and honors the configured error.
func TestFakePublisherRecords(t *testing.T) {
	t.Parallel()

	f := NewFakePublisher()

	require.NoError(t, f.Publish(Event{Input: "door", State: true}))
	require.NoError(t, f.Publish(Event{Input: "door", State: false}))
	require.Len(t, f.Events(), 2)

	boom := errors.New("broker down")
	f.PublishError = boom
	require.ErrorIs(t, f.Publish(Event{Input: "door", State: true}), boom)
	require.Len(t, f.Events(), 2)

	require.False(t, f.Closed())
	require.NoError(t, f.Close())
	require.True(t, f.Closed())
}
