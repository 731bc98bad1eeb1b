package monitor

import (
	"context"
	"fmt"

	"github.com/oshokin/signal-hold/internal/config"
	"github.com/oshokin/signal-hold/internal/logger"
	"github.com/oshokin/signal-hold/internal/repository/state"
	"github.com/oshokin/signal-hold/internal/sink/mqtt"
	"github.com/oshokin/signal-hold/internal/source/gpio"
	"github.com/oshokin/signal-hold/signal"
)

// Options controls the signal-monitor process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Chip overrides the GPIO character device name.
	Chip string
	// FakeGPIO replaces the hardware reader with a fake that reads all
	// inputs as false. Useful for development away from the hardware.
	FakeGPIO bool
}

// Run starts the monitor and blocks until the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "signal-monitor")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	pins := make([]int, 0, len(settings.Inputs))
	for _, in := range settings.Inputs {
		pins = append(pins, in.Pin)
	}

	var reader gpio.Reader

	if opts.FakeGPIO {
		reader = gpio.NewFakeReader([][]bool{make([]bool, len(pins))})
	} else {
		reader, err = gpio.NewRealReader(opts.Chip, pins)
		if err != nil {
			return fmt.Errorf("open gpio: %w", err)
		}
	}

	var publisher mqtt.Publisher

	if settings.Broker != "" {
		publisher, err = mqtt.NewRealPublisher(settings.Broker, "", settings.Topic)
		if err != nil {
			reader.Close()

			return fmt.Errorf("connect to broker: %w", err)
		}
	}

	svc := NewService(settings, reader, publisher, signal.NewSystemScheduler())
	defer svc.Close()

	if settings.StateFile != "" {
		svc.SetRepository(state.NewFileRepository(settings.StateFile))
	}

	svc.Start(ctx)

	logger.InfoKV(ctx, "Signal monitor started",
		"inputs", len(settings.Inputs),
		"poll_interval", settings.PollInterval,
		"broker", settings.Broker)

	return svc.Run(ctx)
}
