//go:build !screen

package video

// ScreenSupported returns whether screen support is compiled in.
func ScreenSupported() bool {
	return false
}

// Video is a stub when screen support is not compiled in.
type Video struct{}

// New returns an error when screen support is not compiled in.
func New() (*Video, error) {
	return nil, ErrScreenNotCompiled
}

func (v *Video) Show(line1, line2 string) {}
func (v *Video) Backlight(on bool)        {}
func (v *Video) Daylight(day bool)        {}
func (v *Video) Fault(msg string)         {}
func (v *Video) Shutdown()                {}
func (v *Video) Release() error           { return nil }
