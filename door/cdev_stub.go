//go:build !linux

package door

import "errors"

// ErrNotSupported is returned for drivers that need Linux.
var ErrNotSupported = errors.New("gpiocdev stepper driver not supported on this platform")

// CdevCoils is a stub for non-linux platforms.
type CdevCoils struct{}

// NewCdevCoils returns an error on non-linux platforms.
func NewCdevCoils(chip string, pins []int) (*CdevCoils, error) {
	return nil, ErrNotSupported
}

func (c *CdevCoils) Set(levels [coilCount]bool) error { return ErrNotSupported }
func (c *CdevCoils) Close() error                     { return nil }
