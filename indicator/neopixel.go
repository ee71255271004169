package indicator

import (
	"fmt"
	"os"
)

// Neopixel command strings for the external neopixel tool.
const (
	neoDay        = "@3 !150000 402000"
	neoNight      = "@3 !150000 000810"
	neoFault      = "@2 !10000 ff"
	neoBacklight  = "@1 !50000 8000"
	neoTerminated = "@0 010101"
)

// Neopixel implements Indicator using an external neopixel tool via named pipe.
type Neopixel struct {
	pipe       *os.File
	idleString string
}

// NewNeopixel creates a new Neopixel indicator.
func NewNeopixel(pipePath string) (*Neopixel, error) {
	f, err := os.OpenFile(pipePath, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open neopixel pipe %s: %w", pipePath, err)
	}

	n := &Neopixel{
		pipe:       f,
		idleString: neoNight,
	}
	return n, nil
}

// Show implements Indicator.Show.
func (n *Neopixel) Show(line1, line2 string) {}

// Backlight flashes while the display is lit and falls back to the day or
// night pattern afterwards.
func (n *Neopixel) Backlight(on bool) {
	if on {
		n.write(neoBacklight)
		return
	}
	n.write(n.idleString)
}

// Daylight implements Indicator.Daylight.
func (n *Neopixel) Daylight(day bool) {
	n.idleString = neoNight
	if day {
		n.idleString = neoDay
	}
	n.write(n.idleString)
}

// Fault implements Indicator.Fault.
func (n *Neopixel) Fault(msg string) {
	n.write(neoFault)
}

// Shutdown implements Indicator.Shutdown.
func (n *Neopixel) Shutdown() {
	n.write(neoTerminated)
}

// Release implements Indicator.Release.
func (n *Neopixel) Release() error {
	if n.pipe == nil {
		return nil
	}
	return n.pipe.Close()
}

func (n *Neopixel) write(s string) {
	if n.pipe != nil {
		n.pipe.Write([]byte(s))
	}
}
