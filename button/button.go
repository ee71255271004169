// Package button reads the manual override push button.
package button

import "fmt"

// Input is a momentary push button sampled by the control loop.
type Input interface {
	// Pressed returns the current (undebounced) button level.
	Pressed() bool

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for the manual input.
type Config struct {
	Type       string `yaml:"type"`        // "gpio", "keyboard", "none"
	Chip       string `yaml:"chip"`        // gpio chip, default "gpiochip0"
	Pin        int    `yaml:"pin"`         // gpio line offset
	ActiveHigh bool   `yaml:"active_high"` // default is active low with pull-up
	Device     string `yaml:"device"`      // evdev device for "keyboard", e.g. "/dev/input/event0"
}

// New creates an Input based on the provided configuration.
func New(cfg Config) (Input, error) {
	switch cfg.Type {
	case "gpio":
		if cfg.Chip == "" {
			cfg.Chip = "gpiochip0"
		}
		return NewGPIO(cfg.Chip, cfg.Pin, cfg.ActiveHigh)
	case "keyboard":
		return NewKeyboard(cfg.Device)
	case "none", "":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown button type %q", cfg.Type)
	}
}

// Noop is an Input that is never pressed.
type Noop struct{}

// Pressed implements Input.Pressed.
func (Noop) Pressed() bool { return false }

// Release implements Input.Release.
func (Noop) Release() error { return nil }
