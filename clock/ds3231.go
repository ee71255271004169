package clock

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// DS3231Addr is the fixed I2C address of the DS3231.
const DS3231Addr = 0x68

const (
	regSeconds = 0x00
	regStatus  = 0x0F

	statusOSF = 0x80 // oscillator stopped flag
)

// DS3231 reads time from a DS3231 real-time clock kept in local standard time.
type DS3231 struct {
	dev i2c.Dev
	bus i2c.Bus
}

// NewDS3231 probes the RTC on bus. The probe failing means the module is
// missing or unpowered.
func NewDS3231(bus i2c.Bus, addr uint16) (*DS3231, error) {
	d := &DS3231{dev: i2c.Dev{Bus: bus, Addr: addr}, bus: bus}

	status := make([]byte, 1)
	if err := d.dev.Tx([]byte{regStatus}, status); err != nil {
		return nil, fmt.Errorf("probe ds3231: %w", err)
	}
	if status[0]&statusOSF != 0 {
		return nil, fmt.Errorf("ds3231 oscillator stopped, time is invalid")
	}
	return d, nil
}

// Now implements Source.
func (d *DS3231) Now() (Reading, error) {
	raw := make([]byte, 7)
	if err := d.dev.Tx([]byte{regSeconds}, raw); err != nil {
		return Reading{}, fmt.Errorf("read ds3231: %w", err)
	}
	return decodeTime(raw), nil
}

// Set writes t (already in the site's standard time) to the RTC and clears
// the oscillator stopped flag.
func (d *DS3231) Set(t time.Time) error {
	if _, err := d.dev.Write(append([]byte{regSeconds}, encodeTime(t)...)); err != nil {
		return fmt.Errorf("write ds3231: %w", err)
	}
	if _, err := d.dev.Write([]byte{regStatus, 0x00}); err != nil {
		return fmt.Errorf("clear ds3231 status: %w", err)
	}
	return nil
}

// Release closes the bus if it is closable.
func (d *DS3231) Release() error {
	if c, ok := d.bus.(i2c.BusCloser); ok {
		return c.Close()
	}
	return nil
}

func decodeTime(raw []byte) Reading {
	hour := raw[2]
	var h int
	if hour&0x40 != 0 {
		// 12 hour mode, bit 5 is PM.
		h = bcd(hour & 0x1F)
		if h == 12 {
			h = 0
		}
		if hour&0x20 != 0 {
			h += 12
		}
	} else {
		h = bcd(hour & 0x3F)
	}

	year := 2000 + bcd(raw[6])
	if raw[5]&0x80 != 0 {
		year += 100
	}

	return Reading{
		Year:   year,
		Month:  time.Month(bcd(raw[5] & 0x1F)),
		Day:    bcd(raw[4] & 0x3F),
		Hour:   h,
		Minute: bcd(raw[1] & 0x7F),
		Second: bcd(raw[0] & 0x7F),
	}
}

func encodeTime(t time.Time) []byte {
	return []byte{
		toBCD(t.Second()),
		toBCD(t.Minute()),
		toBCD(t.Hour()),
		byte(t.Weekday()) + 1,
		toBCD(t.Day()),
		toBCD(int(t.Month())),
		toBCD(t.Year() % 100),
	}
}

func bcd(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

func toBCD(v int) byte {
	return byte(v/10)<<4 | byte(v%10)
}
