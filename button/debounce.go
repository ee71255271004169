package button

type debounceState int

const (
	stateIdle debounceState = iota
	statePressing
	stateHeld
)

// Debouncer turns raw button samples into one trigger per press. A press
// must stay down for the guard interval to count; the trigger fires on
// release. Times are wrapping millisecond counters.
type Debouncer struct {
	guard uint32
	state debounceState
	since uint32
}

// NewDebouncer creates a Debouncer with the given guard interval.
func NewDebouncer(guard uint32) *Debouncer {
	return &Debouncer{guard: guard}
}

// Update feeds one sample taken at now and reports whether a press completed.
func (d *Debouncer) Update(pressed bool, now uint32) bool {
	switch d.state {
	case stateIdle:
		if pressed {
			d.state = statePressing
			d.since = now
		}
	case statePressing:
		if !pressed {
			d.state = stateIdle
			return false
		}
		if now-d.since >= d.guard {
			d.state = stateHeld
		}
	case stateHeld:
		if !pressed {
			d.state = stateIdle
			return true
		}
	}
	return false
}

// Held reports whether a valid press is waiting for release.
func (d *Debouncer) Held() bool {
	return d.state == stateHeld
}
