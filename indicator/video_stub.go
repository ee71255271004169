//go:build !screen

package indicator

import (
	"coopdoor/video"
)

// NewVideo returns an error when screen support is not compiled in.
func NewVideo() (*VideoIndicator, error) {
	return nil, video.ErrScreenNotCompiled
}

// VideoIndicator is a stub when screen support is not compiled in.
type VideoIndicator struct{}

func (vi *VideoIndicator) Show(line1, line2 string) {}
func (vi *VideoIndicator) Backlight(on bool)        {}
func (vi *VideoIndicator) Daylight(day bool)        {}
func (vi *VideoIndicator) Fault(msg string)         {}
func (vi *VideoIndicator) Shutdown()                {}
func (vi *VideoIndicator) Release() error           { return nil }
