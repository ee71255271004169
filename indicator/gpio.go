package indicator

import (
	"fmt"

	"github.com/hjkoskel/govattu"
)

// GPIO implements Indicator using discrete GPIO pins: the LCD backlight
// driver, a day LED and a fault LED.
type GPIO struct {
	hw           govattu.Vattu
	backlightPin *uint8
	dayPin       *uint8
	faultPin     *uint8
}

// NewGPIO creates a new GPIO-based indicator.
func NewGPIO(backlightPin, dayPin, faultPin *uint8) (*GPIO, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	g := &GPIO{
		hw:           hw,
		backlightPin: backlightPin,
		dayPin:       dayPin,
		faultPin:     faultPin,
	}

	// Initialize all pins as outputs, start off
	for _, pin := range g.pins() {
		hw.PinMode(*pin, govattu.ALToutput)
		hw.PinClear(*pin)
	}

	return g, nil
}

// Show implements Indicator.Show. LEDs carry no text.
func (g *GPIO) Show(line1, line2 string) {}

// Backlight implements Indicator.Backlight.
func (g *GPIO) Backlight(on bool) {
	g.set(g.backlightPin, on)
}

// Daylight implements Indicator.Daylight.
func (g *GPIO) Daylight(day bool) {
	g.set(g.dayPin, day)
}

// Fault implements Indicator.Fault.
func (g *GPIO) Fault(msg string) {
	g.set(g.faultPin, true)
	g.set(g.backlightPin, true)
}

// Shutdown implements Indicator.Shutdown.
func (g *GPIO) Shutdown() {
	g.allOff()
}

// Release implements Indicator.Release.
func (g *GPIO) Release() error {
	g.allOff()
	return g.hw.Close()
}

func (g *GPIO) set(pin *uint8, on bool) {
	if pin == nil {
		return
	}
	if on {
		g.hw.PinSet(*pin)
	} else {
		g.hw.PinClear(*pin)
	}
}

func (g *GPIO) pins() []*uint8 {
	var pins []*uint8
	for _, p := range []*uint8{g.backlightPin, g.dayPin, g.faultPin} {
		if p != nil {
			pins = append(pins, p)
		}
	}
	return pins
}

func (g *GPIO) allOff() {
	for _, pin := range g.pins() {
		g.hw.PinClear(*pin)
	}
}
