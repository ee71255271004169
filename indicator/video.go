//go:build screen

package indicator

import (
	"coopdoor/video"
)

// VideoIndicator wraps the video.Video type to implement Indicator.
type VideoIndicator struct {
	v *video.Video
}

// NewVideo creates a new video-based indicator.
func NewVideo() (*VideoIndicator, error) {
	v, err := video.New()
	if err != nil {
		return nil, err
	}
	return &VideoIndicator{v: v}, nil
}

// Show implements Indicator.Show.
func (vi *VideoIndicator) Show(line1, line2 string) {
	vi.v.Show(line1, line2)
}

// Backlight implements Indicator.Backlight.
func (vi *VideoIndicator) Backlight(on bool) {
	vi.v.Backlight(on)
}

// Daylight implements Indicator.Daylight.
func (vi *VideoIndicator) Daylight(day bool) {
	vi.v.Daylight(day)
}

// Fault implements Indicator.Fault.
func (vi *VideoIndicator) Fault(msg string) {
	vi.v.Fault(msg)
}

// Shutdown implements Indicator.Shutdown.
func (vi *VideoIndicator) Shutdown() {
	vi.v.Shutdown()
}

// Release implements Indicator.Release.
func (vi *VideoIndicator) Release() error {
	return vi.v.Release()
}
