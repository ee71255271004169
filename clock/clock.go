// Package clock provides the wall-clock time source for the controller.
package clock

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Reading is one snapshot of the real-time clock.
type Reading struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// MinuteOfDay returns hour*60 + minute.
func (r Reading) MinuteOfDay() int {
	return r.Hour*60 + r.Minute
}

// HHMM renders the reading as HH:MM.
func (r Reading) HHMM() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// String implements fmt.Stringer.
func (r Reading) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		r.Year, int(r.Month), r.Day, r.Hour, r.Minute, r.Second)
}

// FromTime converts t to a Reading in t's location.
func FromTime(t time.Time) Reading {
	return Reading{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Source is a wall-clock time source.
type Source interface {
	Now() (Reading, error)
}

// Config selects the time source.
type Config struct {
	Type string `yaml:"type"` // "system" or "ds3231"
	Bus  string `yaml:"bus"`  // I2C bus name for ds3231, e.g. "1"
	Addr uint16 `yaml:"addr"` // I2C address, defaults to 0x68
}

// New creates a Source. utcOffset is the fixed standard-time offset in hours
// the site keeps its clock in.
func New(cfg Config, utcOffset int) (Source, error) {
	switch cfg.Type {
	case "ds3231", "rtc":
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("init periph host: %w", err)
		}
		bus, err := i2creg.Open(cfg.Bus)
		if err != nil {
			return nil, fmt.Errorf("open i2c bus %q: %w", cfg.Bus, err)
		}
		addr := cfg.Addr
		if addr == 0 {
			addr = DS3231Addr
		}
		rtc, err := NewDS3231(bus, addr)
		if err != nil {
			bus.Close()
			return nil, err
		}
		return rtc, nil
	case "system", "":
		return NewSystem(utcOffset), nil
	default:
		return nil, fmt.Errorf("unknown clock type %q", cfg.Type)
	}
}

// System reads the host clock in a fixed UTC offset.
type System struct {
	zone *time.Location
	now  func() time.Time
}

// NewSystem creates a System source for the given offset in hours.
func NewSystem(utcOffset int) *System {
	return &System{
		zone: time.FixedZone(fmt.Sprintf("UTC%+d", utcOffset), utcOffset*3600),
		now:  time.Now,
	}
}

// Now implements Source.
func (s *System) Now() (Reading, error) {
	return FromTime(s.now().In(s.zone)), nil
}
