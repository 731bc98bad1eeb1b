package gpio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFakeReaderReplaysSamples walks the script and repeats the last entry.
func TestFakeReaderReplaysSamples(t *testing.T) {
	t.Parallel()

	r := NewFakeReader([][]bool{
		{false, false},
		{true, false},
		{true, true},
	})

	for _, want := range [][]bool{
		{false, false},
		{true, false},
		{true, true},
		{true, true}, // script exhausted, last sample repeats
	} {
		got, err := r.Read()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// TestFakeReaderErrors surfaces the configured error and rejects empty scripts.
func TestFakeReaderErrors(t *testing.T) {
	t.Parallel()

	r := NewFakeReader(nil)
	_, err := r.Read()
	require.Error(t, err)

	boom := errors.New("boom")
	r = NewFakeReader([][]bool{{true}})
	r.ReadError = boom

	_, err = r.Read()
	require.ErrorIs(t, err, boom)
}

// TestFakeReaderClose tracks the closed state.
func TestFakeReaderClose(t *testing.T) {
	t.Parallel()

	r := NewFakeReader([][]bool{{true}})
	require.False(t, r.Closed())
	require.NoError(t, r.Close())
	require.True(t, r.Closed())
}
