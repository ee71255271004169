//go:build linux

package door

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevCoils drives the stepper inputs through the GPIO character device.
type CdevCoils struct {
	lines  *gpiocdev.Lines
	values []int
}

// NewCdevCoils requests pins on chip as outputs, all low.
func NewCdevCoils(chip string, pins []int) (*CdevCoils, error) {
	lines, err := gpiocdev.RequestLines(chip, pins,
		gpiocdev.WithConsumer("coopdoor"),
		gpiocdev.AsOutput(0, 0, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("request lines %v on %s: %w", pins, chip, err)
	}
	return &CdevCoils{lines: lines, values: make([]int, coilCount)}, nil
}

// Set implements Coils.Set.
func (c *CdevCoils) Set(levels [coilCount]bool) error {
	for i, high := range levels {
		c.values[i] = 0
		if high {
			c.values[i] = 1
		}
	}
	return c.lines.SetValues(c.values)
}

// Close implements Coils.Close.
func (c *CdevCoils) Close() error {
	return c.lines.Close()
}
