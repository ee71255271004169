package door

import (
	"fmt"

	"github.com/hjkoskel/govattu"
)

// VattuCoils drives the stepper inputs through BCM2835 GPIO registers.
type VattuCoils struct {
	hw   govattu.Vattu
	pins [coilCount]uint8
}

// NewVattuCoils claims pins as outputs, all low.
func NewVattuCoils(pins []int) (*VattuCoils, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	c := &VattuCoils{hw: hw}
	for i, p := range pins {
		c.pins[i] = uint8(p)
		hw.PinMode(c.pins[i], govattu.ALToutput)
		hw.PinClear(c.pins[i])
	}
	return c, nil
}

// Set implements Coils.Set.
func (c *VattuCoils) Set(levels [coilCount]bool) error {
	for i, high := range levels {
		if high {
			c.hw.PinSet(c.pins[i])
		} else {
			c.hw.PinClear(c.pins[i])
		}
	}
	return nil
}

// Close implements Coils.Close.
func (c *VattuCoils) Close() error {
	return c.hw.Close()
}
