//go:build linux

package button

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIO reads the button from a GPIO character device line.
type GPIO struct {
	line *gpiocdev.Line
}

// NewGPIO requests the button line as an input. Active low lines get the
// internal pull-up.
func NewGPIO(chip string, pin int, activeHigh bool) (*GPIO, error) {
	opts := []gpiocdev.LineReqOption{
		gpiocdev.WithConsumer("coopdoor-button"),
		gpiocdev.AsInput,
	}
	if !activeHigh {
		opts = append(opts, gpiocdev.AsActiveLow, gpiocdev.WithPullUp)
	}

	line, err := gpiocdev.RequestLine(chip, pin, opts...)
	if err != nil {
		return nil, fmt.Errorf("request button line %d on %s: %w", pin, chip, err)
	}
	return &GPIO{line: line}, nil
}

// Pressed implements Input.Pressed. A read error counts as released.
func (g *GPIO) Pressed() bool {
	v, err := g.line.Value()
	return err == nil && v == 1
}

// Release implements Input.Release.
func (g *GPIO) Release() error {
	return g.line.Close()
}
