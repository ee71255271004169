package door

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// RpioCoils drives the stepper inputs through /dev/gpiomem.
type RpioCoils struct {
	pins [coilCount]rpio.Pin
}

// NewRpioCoils maps GPIO memory and sets pins as outputs, all low.
func NewRpioCoils(pins []int) (*RpioCoils, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpiomem: %w", err)
	}

	c := &RpioCoils{}
	for i, p := range pins {
		c.pins[i] = rpio.Pin(p)
		c.pins[i].Output()
		c.pins[i].Low()
	}
	return c, nil
}

// Set implements Coils.Set.
func (c *RpioCoils) Set(levels [coilCount]bool) error {
	for i, high := range levels {
		if high {
			c.pins[i].High()
		} else {
			c.pins[i].Low()
		}
	}
	return nil
}

// Close implements Coils.Close.
func (c *RpioCoils) Close() error {
	return rpio.Close()
}
