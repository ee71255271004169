//go:build !linux

package button

import "errors"

// ErrNotSupported is returned for inputs that need Linux.
var ErrNotSupported = errors.New("gpio button not supported on this platform")

// GPIO is a stub for non-linux platforms.
type GPIO struct{}

// NewGPIO returns an error on non-linux platforms.
func NewGPIO(chip string, pin int, activeHigh bool) (*GPIO, error) {
	return nil, ErrNotSupported
}

func (g *GPIO) Pressed() bool  { return false }
func (g *GPIO) Release() error { return nil }
