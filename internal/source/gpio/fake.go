package gpio

import (
	"errors"
	"sync"
)

// FakeReader is a test double that replays scripted samples.
// Once the script is exhausted, the last sample repeats.
type FakeReader struct {
	mu      sync.Mutex
	samples [][]bool
	index   int
	closed  bool

	// ReadError, if set, is returned by Read.
	ReadError error
}

// NewFakeReader creates a FakeReader with the given samples.
// Each sample holds one value per configured pin.
func NewFakeReader(samples [][]bool) *FakeReader {
	return &FakeReader{samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeReader) Read() ([]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ReadError != nil {
		return nil, f.ReadError
	}

	if len(f.samples) == 0 {
		return nil, errors.New("no samples configured")
	}

	sample := f.samples[f.index]
	if f.index < len(f.samples)-1 {
		f.index++
	}

	out := make([]bool, len(sample))
	copy(out, sample)

	return out, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true

	return nil
}

// Closed reports whether Close was called.
func (f *FakeReader) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}
