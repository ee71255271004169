package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestReadingHelpers(t *testing.T) {
	t.Parallel()

	r := Reading{Year: 2025, Month: time.March, Day: 9, Hour: 7, Minute: 30, Second: 5}
	require.Equal(t, 450, r.MinuteOfDay())
	require.Equal(t, "07:30", r.HHMM())
	require.Equal(t, "2025-03-09 07:30:05", r.String())
}

func TestSystemUsesFixedOffset(t *testing.T) {
	t.Parallel()

	s := NewSystem(1)
	s.now = func() time.Time {
		return time.Date(2025, time.July, 1, 23, 45, 0, 0, time.UTC)
	}

	r, err := s.Now()
	require.NoError(t, err)
	require.Equal(t, Reading{Year: 2025, Month: time.July, Day: 2, Hour: 0, Minute: 45}, r)
}

func TestNewUnknownType(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Type: "gps"}, 1)
	require.Error(t, err)

	src, err := New(Config{}, 1)
	require.NoError(t, err)
	require.IsType(t, &System{}, src)
}

func TestDS3231Now(t *testing.T) {
	t.Parallel()

	bus := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: DS3231Addr, W: []byte{regStatus}, R: []byte{0x00}},
		{Addr: DS3231Addr, W: []byte{regSeconds}, R: []byte{0x05, 0x30, 0x07, 0x04, 0x21, 0x06, 0x24}},
	}}

	rtc, err := NewDS3231(bus, DS3231Addr)
	require.NoError(t, err)

	r, err := rtc.Now()
	require.NoError(t, err)
	require.Equal(t, Reading{Year: 2024, Month: time.June, Day: 21, Hour: 7, Minute: 30, Second: 5}, r)
	require.NoError(t, bus.Close())
}

func TestDS3231OscillatorStopped(t *testing.T) {
	t.Parallel()

	bus := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: DS3231Addr, W: []byte{regStatus}, R: []byte{statusOSF}},
	}}

	_, err := NewDS3231(bus, DS3231Addr)
	require.Error(t, err)
}

func TestDS3231Missing(t *testing.T) {
	t.Parallel()

	bus := &i2ctest.Playback{DontPanic: true}

	_, err := NewDS3231(bus, DS3231Addr)
	require.Error(t, err)
}

func TestDecodeTwelveHourMode(t *testing.T) {
	t.Parallel()

	// 0x40 = 12h mode, 0x20 = PM, hour 6 -> 18.
	r := decodeTime([]byte{0x00, 0x15, 0x40 | 0x20 | 0x06, 0x01, 0x01, 0x01, 0x25})
	require.Equal(t, 18, r.Hour)

	// 12 AM is midnight.
	r = decodeTime([]byte{0x00, 0x00, 0x40 | 0x12, 0x01, 0x01, 0x01, 0x25})
	require.Equal(t, 0, r.Hour)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	ts := time.Date(2031, time.November, 27, 19, 8, 42, 0, time.UTC)
	require.Equal(t, FromTime(ts), decodeTime(encodeTime(ts)))
}
