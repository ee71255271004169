package controller

import "time"

// Schedule fires at a fixed interval on a wrapping millisecond counter.
// A schedule that never ran, or was reset, is due immediately.
type Schedule struct {
	interval uint32
	last     uint32
	ran      bool
}

// NewSchedule creates a Schedule firing every interval.
func NewSchedule(interval time.Duration) *Schedule {
	return &Schedule{interval: millis(interval)}
}

// Due reports whether the schedule should fire at now, and if so records now
// as the last run.
func (s *Schedule) Due(now uint32) bool {
	if s.ran && now-s.last < s.interval {
		return false
	}
	s.Mark(now)
	return true
}

// Mark records now as the last run without asking.
func (s *Schedule) Mark(now uint32) {
	s.last = now
	s.ran = true
}

// Reset makes the schedule due on the next check.
func (s *Schedule) Reset() {
	s.ran = false
}
