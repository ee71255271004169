package solar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var prague = Location{Latitude: 50.0755, Longitude: 14.4378, UTCOffset: 1}

func TestComputeAgainstPublishedTable(t *testing.T) {
	t.Parallel()

	p := New(prague)

	// Published Prague times converted to CET (UTC+1).
	cases := []struct {
		name            string
		month           time.Month
		day             int
		sunrise, sunset int
	}{
		{"summer solstice", time.June, 21, 3*60 + 52, 20*60 + 15},
		{"winter solstice", time.December, 21, 7*60 + 59, 16*60 + 2},
		{"spring equinox", time.March, 20, 6*60 + 3, 18*60 + 13},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := p.Compute(2024, tc.month, tc.day)
			require.InDelta(t, tc.sunrise, w.Sunrise, 6)
			require.InDelta(t, tc.sunset, w.Sunset, 6)
			require.Less(t, w.Sunrise, w.Sunset)
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	t.Parallel()

	p := New(prague)
	require.Equal(t, p.Compute(2025, time.May, 4), p.Compute(2025, time.May, 4))
}

func TestTable(t *testing.T) {
	t.Parallel()

	p := New(prague)

	feb := p.Table(2024, time.February)
	require.Len(t, feb, 29)
	require.Equal(t, 1, feb[0].Day)
	require.Equal(t, p.Compute(2024, time.February, 29), feb[28].Window)

	// Days lengthen through spring.
	for i := 1; i < len(feb); i++ {
		require.LessOrEqual(t, feb[i].Sunrise, feb[i-1].Sunrise)
		require.GreaterOrEqual(t, feb[i].Sunset, feb[i-1].Sunset)
	}
}

func TestIsDaytimeBoundaries(t *testing.T) {
	t.Parallel()

	w := Window{Sunrise: 420, Sunset: 1080}

	cases := map[int]bool{
		0:    false,
		419:  false,
		420:  false,
		421:  true,
		450:  true,
		1079: true,
		1080: false,
		1439: false,
	}
	for minute, want := range cases {
		require.Equal(t, want, w.IsDaytime(minute), "minute %d", minute)
	}
}

func TestMinutesUntilChange(t *testing.T) {
	t.Parallel()

	w := Window{Sunrise: 420, Sunset: 1080}

	require.Equal(t, 630, w.MinutesUntilChange(450, 430))
	require.Equal(t, 120, w.MinutesUntilChange(300, 430))
	require.Equal(t, 0, w.MinutesUntilChange(420, 430))
	require.Equal(t, 770, w.MinutesUntilChange(1100, 430))
	require.Equal(t, 790, w.MinutesUntilChange(1080, 430))
}

func TestClamp(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Clamp(-15))
	require.Equal(t, 700, Clamp(700))
	require.Equal(t, 1439, Clamp(1500))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	require.Equal(t, "07:05", FormatMinutes(425))
	require.Equal(t, "00:00", FormatMinutes(0))
	require.Equal(t, "23:59", FormatMinutes(1439))
	require.Equal(t, "12h 50m", FormatDuration(770))
}
