// Package gpio reads boolean inputs from Linux GPIO lines.
// The real implementation uses the GPIO character device;
// the fake implementation replays scripted samples for tests.
package gpio

// Reader samples the configured GPIO lines.
type Reader interface {
	// Read returns one logical value per configured pin,
	// in the order the pins were requested.
	Read() ([]bool, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultChip is the GPIO character device of the Raspberry Pi.
const DefaultChip = "gpiochip0"
