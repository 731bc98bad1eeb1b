// Package mqtt publishes input state transitions to an MQTT broker,
// with a fake implementation for testing.
package mqtt

import (
	"encoding/json"
	"time"
)

// Publisher publishes transition events to a broker.
type Publisher interface {
	// Publish sends a transition event.
	// A failed publish is reported but must not crash the process.
	Publish(event Event) error

	// Close disconnects from the broker.
	Close() error
}

// Event is one transition of a conditioned input.
type Event struct {
	// Timestamp is when the transition was observed.
	Timestamp time.Time
	// Input is the configured name of the input.
	Input string
	// State is the conditioned boolean state after the transition.
	State bool
}

// Payload is the JSON structure published to the broker.
type Payload struct {
	Signal SignalPayload `json:"signal"`
}

// SignalPayload carries the transition details.
type SignalPayload struct {
	Timestamp string `json:"timestamp"`
	Input     string `json:"input"`
	State     string `json:"state"`
}

// FormatPayload creates the JSON payload for a transition event.
func FormatPayload(event Event) ([]byte, error) {
	state := "off"
	if event.State {
		state = "on"
	}

	payload := Payload{
		Signal: SignalPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Input:     event.Input,
			State:     state,
		},
	}

	return json.Marshal(payload)
}
