// Package solar computes the daily daylight window for a fixed site.
//
// Everything here is a pure function of the site and the calendar date, so
// the results can be checked against published sunrise/sunset tables.
package solar

import (
	"fmt"
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// MinutesPerDay is the length of the minute-of-day domain.
const MinutesPerDay = 24 * 60

// Location is the fixed geographic site. UTCOffset is the standard-time
// offset in hours that the real-time clock is kept in.
type Location struct {
	Latitude  float64
	Longitude float64
	UTCOffset int
}

// Window holds sunrise and sunset as minutes since local midnight.
type Window struct {
	Sunrise int
	Sunset  int
}

// Day is one row of a daylight table.
type Day struct {
	Day int
	Window
}

// Provider computes daylight windows for one Location.
type Provider struct {
	loc  Location
	zone *time.Location
}

// New creates a Provider for loc.
func New(loc Location) *Provider {
	return &Provider{
		loc:  loc,
		zone: time.FixedZone(fmt.Sprintf("UTC%+d", loc.UTCOffset), loc.UTCOffset*3600),
	}
}

// Location returns the site the provider was built for.
func (p *Provider) Location() Location {
	return p.loc
}

// Compute returns the daylight window for the given date.
func (p *Provider) Compute(year int, month time.Month, day int) Window {
	rise, set := sunrise.SunriseSunset(p.loc.Latitude, p.loc.Longitude, year, month, day)
	midnight := time.Date(year, month, day, 0, 0, 0, 0, p.zone)

	return Window{
		Sunrise: minuteOfDay(rise, midnight),
		Sunset:  minuteOfDay(set, midnight),
	}
}

// Table returns the daylight window for every day of a month.
func (p *Provider) Table(year int, month time.Month) []Day {
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	table := make([]Day, 0, days)
	for d := 1; d <= days; d++ {
		table = append(table, Day{Day: d, Window: p.Compute(year, month, d)})
	}
	return table
}

func minuteOfDay(t, midnight time.Time) int {
	return Clamp(int(math.Round(t.Sub(midnight).Minutes())))
}

// Clamp limits m to [0, MinutesPerDay-1].
func Clamp(m int) int {
	if m < 0 {
		return 0
	}
	if m > MinutesPerDay-1 {
		return MinutesPerDay - 1
	}
	return m
}

// IsDaytime reports whether minute lies strictly between sunrise and sunset.
// The sunrise and sunset minutes themselves count as night.
func (w Window) IsDaytime(minute int) bool {
	return minute > w.Sunrise && minute < w.Sunset
}

// MinutesUntilChange returns the minutes until the next sunrise or sunset.
// nextSunrise is used once today's sunset has been reached.
func (w Window) MinutesUntilChange(minute, nextSunrise int) int {
	switch {
	case w.IsDaytime(minute):
		return w.Sunset - minute
	case minute <= w.Sunrise:
		return w.Sunrise - minute
	default:
		return (MinutesPerDay - minute) + nextSunrise
	}
}

// FormatMinutes renders a minute-of-day as HH:MM.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatDuration renders a minute count as "Xh Ym".
func FormatDuration(m int) string {
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}
