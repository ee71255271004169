package indicator

// Noop implements Indicator but does nothing.
// Used when no indicators are configured.
type Noop struct{}

// Show implements Indicator.Show.
func (n *Noop) Show(line1, line2 string) {}

// Backlight implements Indicator.Backlight.
func (n *Noop) Backlight(on bool) {}

// Daylight implements Indicator.Daylight.
func (n *Noop) Daylight(day bool) {}

// Fault implements Indicator.Fault.
func (n *Noop) Fault(msg string) {}

// Shutdown implements Indicator.Shutdown.
func (n *Noop) Shutdown() {}

// Release implements Indicator.Release.
func (n *Noop) Release() error {
	return nil
}
