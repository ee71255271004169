// Package store keeps the door position in a single durable byte so it
// survives power loss.
package store

import (
	"errors"
	"fmt"
	"io"
)

// Cell values. Anything other than ValueOpen reads back as closed, which
// covers erased media (0xFF) and a first boot.
const (
	ValueClosed byte = 0
	ValueOpen   byte = 1
)

// Device is byte-addressable durable storage.
type Device interface {
	io.ReaderAt
	io.WriterAt
}

// Store persists the door position at a fixed address of a Device.
type Store struct {
	dev  Device
	addr int64
}

// New creates a Store for the cell at addr.
func New(dev Device, addr int64) *Store {
	return &Store{dev: dev, addr: addr}
}

// Load returns true if the stored position is open.
func (s *Store) Load() (bool, error) {
	v, err := s.read()
	if err != nil {
		return false, err
	}
	return v == ValueOpen, nil
}

// Save stores the position. The physical write is skipped when the cell
// already holds the value.
func (s *Store) Save(isOpen bool) error {
	want := ValueClosed
	if isOpen {
		want = ValueOpen
	}

	if cur, err := s.read(); err == nil && cur == want {
		return nil
	}

	if _, err := s.dev.WriteAt([]byte{want}, s.addr); err != nil {
		return fmt.Errorf("write state cell: %w", err)
	}
	return nil
}

// read returns the raw cell. A cell past the end of the device reads as erased.
func (s *Store) read() (byte, error) {
	buf := make([]byte, 1)
	if _, err := s.dev.ReadAt(buf, s.addr); err != nil {
		if errors.Is(err, io.EOF) {
			return 0xFF, nil
		}
		return 0, fmt.Errorf("read state cell: %w", err)
	}
	return buf[0], nil
}
