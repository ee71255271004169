package store

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Config selects the backing device of the state cell.
type Config struct {
	Type   string `yaml:"type"`   // "file", "at24c32" or "memory"
	Path   string `yaml:"path"`   // image file for "file"
	Bus    string `yaml:"bus"`    // I2C bus for "at24c32"
	Addr   uint16 `yaml:"addr"`   // I2C address, defaults to 0x57
	Offset int64  `yaml:"offset"` // cell address
}

// DefaultPath is the image file used when none is configured.
const DefaultPath = "/var/lib/coopdoor/eeprom.bin"

const (
	at24c32Size = 4096
	memorySize  = 16
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open creates the Store described by cfg. The returned closer releases the
// underlying device.
func Open(cfg Config) (*Store, io.Closer, error) {
	if cfg.Offset < 0 {
		return nil, nil, fmt.Errorf("negative store offset %d", cfg.Offset)
	}

	switch cfg.Type {
	case "at24c32", "eeprom":
		if _, err := host.Init(); err != nil {
			return nil, nil, fmt.Errorf("init periph host: %w", err)
		}
		bus, err := i2creg.Open(cfg.Bus)
		if err != nil {
			return nil, nil, fmt.Errorf("open i2c bus %q: %w", cfg.Bus, err)
		}
		addr := cfg.Addr
		if addr == 0 {
			addr = AT24CAddr
		}
		return New(NewAT24C(bus, addr, at24c32Size), cfg.Offset), bus, nil
	case "memory":
		return New(NewMemory(int(max(cfg.Offset+1, memorySize))), cfg.Offset), nopCloser{}, nil
	case "file", "":
		path := cfg.Path
		if path == "" {
			path = DefaultPath
		}
		f, err := OpenFile(path)
		if err != nil {
			return nil, nil, err
		}
		return New(f, cfg.Offset), f, nil
	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}
