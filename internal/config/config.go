package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the signal-monitor binary.
type Config struct {
	// LogLevel is the minimum level for console logging (debug..fatal).
	LogLevel string `yaml:"log_level"`
	// Broker is the MQTT broker URL (e.g. tcp://127.0.0.1:1883).
	// When empty, transitions are only logged.
	Broker string `yaml:"broker"`
	// Topic is the MQTT topic transitions are published to.
	Topic string `yaml:"topic"`
	// PollInterval is how often GPIO inputs are sampled.
	PollInterval time.Duration `yaml:"poll_interval"`
	// StateFile is where the last known conditioned states are persisted.
	// When empty, no snapshot is written.
	StateFile string `yaml:"state_file"`
	// Inputs lists the monitored boolean inputs and their conditioning.
	Inputs []Input `yaml:"inputs"`
}

// Input describes one monitored boolean input and the temporal conditioning
// applied to it. Zero durations disable the corresponding stage.
type Input struct {
	// Name identifies the input in log output and MQTT payloads.
	Name string `yaml:"name"`
	// Pin is the GPIO line offset to sample (BCM numbering).
	Pin int `yaml:"pin"`
	// Invert flips the raw reading before conditioning.
	Invert bool `yaml:"invert"`
	// ConfirmFor requires the input to stand true this long before the
	// derived state turns true.
	ConfirmFor time.Duration `yaml:"confirm_for"`
	// HoldFor keeps the derived state true this long after the input
	// returns to false.
	HoldFor time.Duration `yaml:"hold_for"`
	// MinOn guarantees a minimum true duration of the derived state.
	MinOn time.Duration `yaml:"min_on"`
	// MaxOn caps a continuous true of the derived state.
	MaxOn time.Duration `yaml:"max_on"`
	// ResetOnRepeat makes repeated equal samples restart open windows.
	ResetOnRepeat bool `yaml:"reset_on_repeat"`
}

const (
	// DefaultConfigFilename is the default filename for monitor settings.
	DefaultConfigFilename = "signal-monitor.yaml"

	// DefaultTopic is the default MQTT topic for transition events.
	DefaultTopic = "automation/signals/events"

	// DefaultPollInterval is the default GPIO sampling interval.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNoInputs is returned when no inputs are configured.
	errNoInputs = errors.New("at least one input must be configured")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills in
// defaults. Non-positive conditioning durations are not errors: they mean
// the corresponding stage is skipped.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if len(cfg.Inputs) == 0 {
		return errNoInputs
	}

	names := make(map[string]struct{}, len(cfg.Inputs))
	pins := make(map[int]struct{}, len(cfg.Inputs))

	for i, in := range cfg.Inputs {
		if in.Name == "" {
			return fmt.Errorf("input %d: name must be provided", i)
		}

		if _, ok := names[in.Name]; ok {
			return fmt.Errorf("input %q: duplicate name", in.Name)
		}

		names[in.Name] = struct{}{}

		if in.Pin < 0 {
			return fmt.Errorf("input %q: pin must be non-negative", in.Name)
		}

		if _, ok := pins[in.Pin]; ok {
			return fmt.Errorf("input %q: pin %d already in use", in.Name, in.Pin)
		}

		pins[in.Pin] = struct{}{}
	}

	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	return nil
}
