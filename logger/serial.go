package logger

import (
	"fmt"

	"github.com/tarm/serial"
	"go.uber.org/zap/zapcore"
)

// SerialConfig describes the optional serial console log sink.
type SerialConfig struct {
	Device string `yaml:"device"` // e.g. "/dev/ttyAMA0"; empty disables it
	Baud   int    `yaml:"baud"`
}

// SerialSink is a zap WriteSyncer backed by a serial port.
type SerialSink struct {
	port *serial.Port
}

// OpenSerial opens the serial console. Returns nil if no device is configured.
func OpenSerial(cfg SerialConfig) (*SerialSink, error) {
	if cfg.Device == "" {
		return nil, nil
	}
	if cfg.Baud == 0 {
		cfg.Baud = 9600
	}

	port, err := serial.OpenPort(&serial.Config{Name: cfg.Device, Baud: cfg.Baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Device, err)
	}
	return &SerialSink{port: port}, nil
}

// Write implements io.Writer.
func (s *SerialSink) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// Sync implements zapcore.WriteSyncer.
func (s *SerialSink) Sync() error {
	return s.port.Flush()
}

// Close closes the port.
func (s *SerialSink) Close() error {
	return s.port.Close()
}

var _ zapcore.WriteSyncer = (*SerialSink)(nil)
