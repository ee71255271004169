package store

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// AT24CAddr is the EEPROM address on the common DS3231 breakout (A0-A2 high).
const AT24CAddr = 0x57

// at24cWriteCycle is the self-timed write cycle of the AT24C32.
const at24cWriteCycle = 10 * time.Millisecond

// AT24C is an AT24C32/64 I2C EEPROM with 16-bit word addresses.
type AT24C struct {
	dev  i2c.Dev
	size int64
}

// NewAT24C creates an EEPROM device. size is the capacity in bytes.
func NewAT24C(bus i2c.Bus, addr uint16, size int64) *AT24C {
	return &AT24C{dev: i2c.Dev{Bus: bus, Addr: addr}, size: size}
}

// ReadAt implements io.ReaderAt with a random read.
func (e *AT24C) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > e.size {
		return 0, fmt.Errorf("eeprom read out of range: %d+%d", off, len(p))
	}
	if err := e.dev.Tx([]byte{byte(off >> 8), byte(off)}, p); err != nil {
		return 0, fmt.Errorf("eeprom read: %w", err)
	}
	return len(p), nil
}

// WriteAt implements io.WriterAt, one byte write per cell.
func (e *AT24C) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > e.size {
		return 0, fmt.Errorf("eeprom write out of range: %d+%d", off, len(p))
	}
	for i, b := range p {
		a := off + int64(i)
		if _, err := e.dev.Write([]byte{byte(a >> 8), byte(a), b}); err != nil {
			return i, fmt.Errorf("eeprom write: %w", err)
		}
		time.Sleep(at24cWriteCycle)
	}
	return len(p), nil
}
