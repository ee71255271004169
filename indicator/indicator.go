package indicator

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"coopdoor/video"
)

// Indicator is the interface for status outputs (LCD, LEDs, neopixels, etc).
type Indicator interface {
	// Show displays two lines of status text, at most Width characters each.
	Show(line1, line2 string)

	// Backlight switches the display backlight.
	Backlight(on bool)

	// Daylight shows whether the controller currently considers it day.
	Daylight(day bool)

	// Fault shows a fatal error. The controller halts afterwards.
	Fault(msg string)

	// Shutdown sets the indicator to shutdown state.
	Shutdown()

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for indicator implementations.
type Config struct {
	// Character LCD on a PCF8574 I2C backpack (empty bus = not configured)
	LCD LCDConfig `yaml:"lcd"`

	// GPIO LED pins (nil = not configured)
	BacklightPin *uint8 `yaml:"backlight_pin"`
	DayPin       *uint8 `yaml:"day_pin"`
	FaultPin     *uint8 `yaml:"fault_pin"`

	// Neopixel pipe path (empty = not configured)
	NeopixelPipe string `yaml:"neopixel_pipe"`

	// Video framebuffer display (true = enabled)
	VideoEnabled bool `yaml:"video_enabled"`

	// Mirror display text to the log
	Log bool `yaml:"log"`
}

// LCDConfig locates the character LCD.
type LCDConfig struct {
	Bus  string `yaml:"bus"`  // I2C bus name, e.g. "1"
	Addr uint16 `yaml:"addr"` // PCF8574 address, defaults to 0x27
}

// New creates an Indicator based on the provided configuration.
// Returns a Multi indicator if more than one output is configured.
func New(cfg Config) (Indicator, error) {
	var openers []opener

	if cfg.LCD.Bus != "" {
		openers = append(openers, func() (Indicator, error) {
			return openLCD(cfg.LCD)
		})
	}

	// GPIO indicator if any pins configured
	if cfg.BacklightPin != nil || cfg.DayPin != nil || cfg.FaultPin != nil {
		openers = append(openers, func() (Indicator, error) {
			return NewGPIO(cfg.BacklightPin, cfg.DayPin, cfg.FaultPin)
		})
	}

	// Neopixel indicator if pipe configured
	if cfg.NeopixelPipe != "" {
		openers = append(openers, func() (Indicator, error) {
			return NewNeopixel(cfg.NeopixelPipe)
		})
	}

	// Video indicator if enabled
	if cfg.VideoEnabled {
		openers = append(openers, func() (Indicator, error) {
			if !video.ScreenSupported() {
				return nil, video.ErrScreenNotCompiled
			}
			return NewVideo()
		})
	}

	if cfg.Log {
		openers = append(openers, func() (Indicator, error) {
			return NewLog(), nil
		})
	}

	return open(openers)
}

type opener func() (Indicator, error)

// open runs openers in order. If one fails, the outputs already opened are
// released before the error is returned.
func open(openers []opener) (Indicator, error) {
	var indicators []Indicator
	for _, o := range openers {
		ind, err := o()
		if err != nil {
			if rerr := NewMulti(indicators...).Release(); rerr != nil {
				err = errors.Join(err, fmt.Errorf("release indicators: %w", rerr))
			}
			return nil, err
		}
		indicators = append(indicators, ind)
	}

	switch len(indicators) {
	case 0:
		return &Noop{}, nil
	case 1:
		return indicators[0], nil
	}
	return NewMulti(indicators...), nil
}

func openLCD(cfg LCDConfig) (*LCD, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.Bus, err)
	}
	addr := cfg.Addr
	if addr == 0 {
		addr = LCDAddr
	}
	lcd, err := NewLCD(bus, addr)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return lcd, nil
}
