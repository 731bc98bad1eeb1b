package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSaveLoadRoundtrip saves a config and loads it back unchanged.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	want := &Config{
		LogLevel:     "debug",
		Broker:       "tcp://127.0.0.1:1883",
		Topic:        "home/presence",
		PollInterval: 50 * time.Millisecond,
		Inputs: []Input{
			{
				Name:       "motion",
				Pin:        17,
				ConfirmFor: 2 * time.Second,
				HoldFor:    30 * time.Second,
			},
			{
				Name:   "door",
				Pin:    27,
				Invert: true,
				MinOn:  time.Second,
				MaxOn:  time.Minute,
			},
		},
	}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestLoadAppliesDefaults fills in topic and poll interval when omitted.
func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	require.NoError(t, Save(path, &Config{
		Inputs: []Input{{Name: "motion", Pin: 17}},
	}))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultTopic, got.Topic)
	require.Equal(t, DefaultPollInterval, got.PollInterval)
}

// TestLoadMissingFile surfaces the underlying read error.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// TestValidate rejects nil configs, empty input lists and duplicates.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)
	require.ErrorIs(t, Validate(&Config{}), errNoInputs)

	err := Validate(&Config{Inputs: []Input{{Pin: 4}}})
	require.ErrorContains(t, err, "name must be provided")

	err = Validate(&Config{Inputs: []Input{
		{Name: "a", Pin: 4},
		{Name: "a", Pin: 5},
	}})
	require.ErrorContains(t, err, "duplicate name")

	err = Validate(&Config{Inputs: []Input{
		{Name: "a", Pin: 4},
		{Name: "b", Pin: 4},
	}})
	require.ErrorContains(t, err, "already in use")

	err = Validate(&Config{Inputs: []Input{{Name: "a", Pin: -1}}})
	require.ErrorContains(t, err, "non-negative")
}

// TestSaveNilConfig refuses to write a nil config.
func TestSaveNilConfig(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Save(filepath.Join(t.TempDir(), "x.yaml"), nil), errConfigIsNotSet)
}
