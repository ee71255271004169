package indicator

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// LCDAddr is the usual address of a PCF8574 LCD backpack.
const LCDAddr = 0x27

// PCF8574 port bits on the common backpack wiring.
const (
	pinRS        = 0x01
	pinEnable    = 0x04
	pinBacklight = 0x08
)

// HD44780 commands.
const (
	cmdClear       = 0x01
	cmdEntryMode   = 0x06 // increment, no shift
	cmdDisplayOn   = 0x0C // display on, cursor off, blink off
	cmdFunctionSet = 0x28 // 4-bit bus, 2 lines, 5x8 font
	cmdSetDDRAM    = 0x80
)

var rowOffsets = [2]byte{0x00, 0x40}

// expander is the write side of the I2C port expander.
type expander interface {
	Write(b []byte) (int, error)
}

// LCD implements Indicator on a 16x2 HD44780 character display driven in
// 4-bit mode through a PCF8574 I2C port expander.
type LCD struct {
	port      expander
	bus       i2c.Bus
	backlight byte
	sleep     func(time.Duration)
	err       error
}

// NewLCD initializes the display on bus.
func NewLCD(bus i2c.Bus, addr uint16) (*LCD, error) {
	l := newLCD(&i2c.Dev{Bus: bus, Addr: addr}, time.Sleep)
	l.bus = bus
	if err := l.init(); err != nil {
		return nil, fmt.Errorf("init lcd at %#x: %w", addr, err)
	}
	return l, nil
}

func newLCD(port expander, sleep func(time.Duration)) *LCD {
	return &LCD{port: port, backlight: pinBacklight, sleep: sleep}
}

// init runs the HD44780 reset-by-instruction sequence into 4-bit mode.
func (l *LCD) init() error {
	l.sleep(50 * time.Millisecond)
	l.expanderWrite(l.backlight)

	l.writeNibble(0x30)
	l.sleep(4500 * time.Microsecond)
	l.writeNibble(0x30)
	l.sleep(4500 * time.Microsecond)
	l.writeNibble(0x30)
	l.sleep(150 * time.Microsecond)
	l.writeNibble(0x20)

	l.command(cmdFunctionSet)
	l.command(cmdDisplayOn)
	l.clear()
	l.command(cmdEntryMode)

	return l.takeErr()
}

// Show implements Indicator.Show. Lines are padded so stale characters
// from a longer previous text are overwritten without a clear.
func (l *LCD) Show(line1, line2 string) {
	l.print(0, line1)
	l.print(1, line2)
	l.logErr()
}

// Backlight implements Indicator.Backlight.
func (l *LCD) Backlight(on bool) {
	l.backlight = 0
	if on {
		l.backlight = pinBacklight
	}
	l.expanderWrite(0)
	l.logErr()
}

// Daylight implements Indicator.Daylight. The text already says it.
func (l *LCD) Daylight(day bool) {}

// Fault implements Indicator.Fault.
func (l *LCD) Fault(msg string) {
	l.backlight = pinBacklight
	l.clear()
	l.print(0, "ERROR")
	l.print(1, msg)
	l.logErr()
}

// Shutdown implements Indicator.Shutdown.
func (l *LCD) Shutdown() {
	l.clear()
	l.backlight = 0
	l.expanderWrite(0)
	l.logErr()
}

// Release implements Indicator.Release.
func (l *LCD) Release() error {
	if c, ok := l.bus.(i2c.BusCloser); ok {
		return c.Close()
	}
	return nil
}

func (l *LCD) print(row int, text string) {
	l.command(cmdSetDDRAM | rowOffsets[row])
	for _, r := range Fit(text) {
		if r < 0x20 || r > 0x7E {
			r = '?'
		}
		l.send(byte(r), pinRS)
	}
}

func (l *LCD) clear() {
	l.command(cmdClear)
	l.sleep(2 * time.Millisecond)
}

func (l *LCD) command(b byte) {
	l.send(b, 0)
}

func (l *LCD) send(b, mode byte) {
	l.writeNibble(b&0xF0 | mode)
	l.writeNibble(b<<4 | mode)
}

func (l *LCD) writeNibble(v byte) {
	l.expanderWrite(v)
	l.expanderWrite(v | pinEnable)
	l.sleep(time.Microsecond)
	l.expanderWrite(v &^ pinEnable)
	l.sleep(50 * time.Microsecond)
}

// expanderWrite keeps the first error of a sequence; callers check it once.
func (l *LCD) expanderWrite(v byte) {
	if l.err != nil {
		return
	}
	if _, err := l.port.Write([]byte{v | l.backlight}); err != nil {
		l.err = err
	}
}

func (l *LCD) takeErr() error {
	err := l.err
	l.err = nil
	return err
}

func (l *LCD) logErr() {
	if err := l.takeErr(); err != nil {
		lcdLog().Warnw("lcd write failed", "error", err)
	}
}
