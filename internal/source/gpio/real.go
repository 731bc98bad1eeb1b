//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader samples GPIO lines through the Linux GPIO character device.
type RealReader struct {
	chip  *gpiocdev.Chip
	lines []*gpiocdev.Line
}

// NewRealReader opens the chip and requests the provided line offsets
// as inputs with pull-down, matching Raspberry Pi boot defaults.
func NewRealReader(chipName string, pins []int) (*RealReader, error) {
	if chipName == "" {
		chipName = DefaultChip
	}

	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %q: %w", chipName, err)
	}

	lines := make([]*gpiocdev.Line, 0, len(pins))

	for _, pin := range pins {
		line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
		if err != nil {
			for _, l := range lines {
				l.Close()
			}

			chip.Close()

			return nil, fmt.Errorf("request pin %d: %w", pin, err)
		}

		lines = append(lines, line)
	}

	return &RealReader{chip: chip, lines: lines}, nil
}

// Read returns the logical value of every requested line.
// A raw value of 1 means logical true.
func (r *RealReader) Read() ([]bool, error) {
	values := make([]bool, len(r.lines))

	for i, line := range r.lines {
		raw, err := line.Value()
		if err != nil {
			return nil, fmt.Errorf("read pin %d: %w", line.Offset(), err)
		}

		values[i] = raw != 0
	}

	return values, nil
}

// Close releases all requested lines and the chip.
// Lines are reconfigured to input with pull-down first so external
// hardware sees the same state as after a reboot.
func (r *RealReader) Close() error {
	var errs []error

	for _, line := range r.lines {
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", line.Offset(), err))
		}

		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", line.Offset(), err))
		}
	}

	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}

	return nil
}
