package indicator

// Multi combines multiple Indicator implementations.
type Multi struct {
	indicators []Indicator
}

// NewMulti combines indicators into one.
func NewMulti(indicators ...Indicator) *Multi {
	return &Multi{indicators: indicators}
}

// Show implements Indicator.Show.
func (m *Multi) Show(line1, line2 string) {
	for _, ind := range m.indicators {
		ind.Show(line1, line2)
	}
}

// Backlight implements Indicator.Backlight.
func (m *Multi) Backlight(on bool) {
	for _, ind := range m.indicators {
		ind.Backlight(on)
	}
}

// Daylight implements Indicator.Daylight.
func (m *Multi) Daylight(day bool) {
	for _, ind := range m.indicators {
		ind.Daylight(day)
	}
}

// Fault implements Indicator.Fault.
func (m *Multi) Fault(msg string) {
	for _, ind := range m.indicators {
		ind.Fault(msg)
	}
}

// Shutdown implements Indicator.Shutdown.
func (m *Multi) Shutdown() {
	for _, ind := range m.indicators {
		ind.Shutdown()
	}
}

// Release implements Indicator.Release.
func (m *Multi) Release() error {
	var lastErr error
	for _, ind := range m.indicators {
		if err := ind.Release(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
