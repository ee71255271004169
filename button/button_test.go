package button

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDebouncerSingleTriggerPerPress(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(3)

	// Noise shorter than the guard interval is ignored.
	noise := []bool{true, false, true, false, false, true, true, false}
	var now uint32
	for _, level := range noise {
		require.False(t, d.Update(level, now))
		now++
	}

	// Held for five units, then released.
	triggers := 0
	for i := 0; i < 5; i++ {
		if d.Update(true, now) {
			triggers++
		}
		now++
	}
	require.True(t, d.Held())
	if d.Update(false, now) {
		triggers++
	}
	now++

	// Idle afterwards.
	for i := 0; i < 5; i++ {
		if d.Update(false, now) {
			triggers++
		}
		now++
	}

	require.Equal(t, 1, triggers)
}

func TestDebouncerWaitsForRelease(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(50)

	require.False(t, d.Update(true, 0))
	require.False(t, d.Update(true, 60))
	require.False(t, d.Update(true, 5000))
	require.True(t, d.Update(false, 5010))
	require.False(t, d.Update(false, 5020))
}

func TestDebouncerAcrossCounterWrap(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(50)
	start := ^uint32(0) - 10

	require.False(t, d.Update(true, start))
	require.False(t, d.Update(true, start+30)) // wrapped, 30ms held
	require.False(t, d.Held())
	require.False(t, d.Update(true, start+60))
	require.True(t, d.Held())
	require.True(t, d.Update(false, start+70))
}

func TestNew(t *testing.T) {
	t.Parallel()

	in, err := New(Config{})
	require.NoError(t, err)
	require.False(t, in.Pressed())
	require.NoError(t, in.Release())

	_, err = New(Config{Type: "joystick"})
	require.Error(t, err)
}
