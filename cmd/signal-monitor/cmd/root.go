package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/signal-hold/internal/config"
	"github.com/oshokin/signal-hold/internal/service/monitor"
	"github.com/oshokin/signal-hold/internal/source/gpio"
	"github.com/oshokin/signal-hold/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// chip is the GPIO character device to sample.
	chip string
	// fakeGPIO replaces the hardware reader with a fake for development.
	fakeGPIO bool

	// rootCmd represents the base command for running the monitor.
	rootCmd = &cobra.Command{
		Use:   "signal-monitor",
		Short: "Monitor GPIO inputs and publish conditioned transitions.",
		Long: `Samples the configured GPIO inputs, conditions each one with
confirmation, trailing-hold, minimum and maximum on-time windows, and
publishes the derived transitions to an MQTT broker.

Inputs, windows and broker settings come from the configuration file.
When no broker is configured, transitions are only logged.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &monitor.Options{
				ConfigPath: configPath,
				Chip:       chip,
				FakeGPIO:   fakeGPIO,
			}

			return monitor.Run(ctx, options)
		},
	}
)

// Execute runs the signal-monitor CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&chip, "chip", gpio.DefaultChip, "GPIO character device to sample")
	rootCmd.Flags().BoolVar(&fakeGPIO, "fake-gpio", false, "replace the hardware reader with a fake (all inputs read false)")
}
