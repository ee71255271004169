// Package controller decides between day and night and keeps the door in step
// with that decision.
package controller

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"coopdoor/clock"
	"coopdoor/logger"
	"coopdoor/solar"
)

// Solar computes the daylight window for a date.
type Solar interface {
	Compute(year int, month time.Month, day int) solar.Window
}

// Door is the actuator as seen by the controller.
type Door interface {
	IsOpen() bool
	Open() error
	Close() error
}

// Display receives the status text.
type Display interface {
	Show(line1, line2 string)
	Daylight(day bool)
}

// Action is the door command an evaluation issued.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionClose
)

func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "open"
	case ActionClose:
		return "close"
	default:
		return "none"
	}
}

// Status is everything one evaluation computed.
type Status struct {
	Now                clock.Reading
	Window             solar.Window
	CurrentMinutes     int
	IsDaytime          bool
	DoorOpen           bool
	MinutesUntilChange int

	Action Action
	// Edge is set when the day/night flag flipped during the evaluation.
	// An action without an edge is a correction.
	Edge bool
}

func (s Status) Time() string    { return s.Now.HHMM() }
func (s Status) Sunrise() string { return solar.FormatMinutes(s.Window.Sunrise) }
func (s Status) Sunset() string  { return solar.FormatMinutes(s.Window.Sunset) }

// Lines returns the two display lines for s.
func (s Status) Lines() (string, string) {
	if s.IsDaytime {
		return s.Time() + " OPEN", "Sunset " + s.Sunset()
	}
	return s.Time() + " CLOSED", "Sunrise " + s.Sunrise()
}

// Controller owns the day/night flag. It is not safe for concurrent use; the
// Runner calls it from its loop only.
type Controller struct {
	clock   clock.Source
	solar   Solar
	door    Door
	display Display

	isDaytime bool
	lines     [2]string

	log *zap.SugaredLogger
}

// New creates a Controller. The day/night flag starts false.
func New(clk clock.Source, sol Solar, door Door, display Display) *Controller {
	return &Controller{
		clock:   clk,
		solar:   sol,
		door:    door,
		display: display,
		log:     logger.Named("controller"),
	}
}

// IsDaytime returns the day/night flag.
func (c *Controller) IsDaytime() bool {
	return c.isDaytime
}

// Evaluate reads the clock, decides between day and night and commands the
// door on a transition, or corrects it when it disagrees with the flag. The
// display is updated even when the door command fails.
func (c *Controller) Evaluate() (Status, error) {
	st, err := c.observe()
	if err != nil {
		return st, err
	}

	st.Action, st.Edge = plan(st.IsDaytime, c.isDaytime, c.door.IsOpen())
	if st.Edge {
		c.isDaytime = st.IsDaytime
	}

	var doorErr error
	switch st.Action {
	case ActionOpen:
		doorErr = c.door.Open()
	case ActionClose:
		doorErr = c.door.Close()
	}
	if doorErr != nil {
		doorErr = fmt.Errorf("%s door: %w", st.Action, doorErr)
	}
	st.DoorOpen = c.door.IsOpen()

	line1, line2 := st.Lines()
	c.lines = [2]string{line1, line2}
	c.display.Show(line1, line2)
	c.display.Daylight(st.IsDaytime)

	c.log.Infow("evaluated",
		"time", st.Time(),
		"sunrise", st.Sunrise(),
		"sunset", st.Sunset(),
		"daytime", st.IsDaytime,
		"door_open", st.DoorOpen,
		"action", st.Action.String(),
		"edge", st.Edge,
		"until_change", solar.FormatDuration(st.MinutesUntilChange),
	)

	return st, doorErr
}

// Preview computes the status and the action Evaluate would take, without
// touching the door, the flag or the display.
func (c *Controller) Preview() (Status, error) {
	st, err := c.observe()
	if err != nil {
		return st, err
	}
	st.Action, st.Edge = plan(st.IsDaytime, c.isDaytime, c.door.IsOpen())
	st.DoorOpen = c.door.IsOpen()
	return st, nil
}

// RefreshClock rewrites the time at the start of the first line, leaving the
// rest of the display as the last evaluation left it.
func (c *Controller) RefreshClock() error {
	if c.lines[0] == "" {
		return nil
	}
	now, err := c.clock.Now()
	if err != nil {
		return fmt.Errorf("read clock: %w", err)
	}
	hhmm := now.HHMM()
	line1 := c.lines[0]
	if len(line1) >= len(hhmm) {
		line1 = hhmm + line1[len(hhmm):]
	} else {
		line1 = hhmm
	}
	c.lines[0] = line1
	c.display.Show(c.lines[0], c.lines[1])
	return nil
}

// observe takes one clock reading and computes today's window from it.
func (c *Controller) observe() (Status, error) {
	now, err := c.clock.Now()
	if err != nil {
		return Status{}, fmt.Errorf("read clock: %w", err)
	}

	w := c.solar.Compute(now.Year, now.Month, now.Day)
	m := now.MinuteOfDay()

	// After sunset the countdown runs to today's sunrise, which is within a
	// few minutes of tomorrow's; MinutesUntilChange is exact given
	// tomorrow's window. The countdown is only shown, never acted on.
	return Status{
		Now:                now,
		Window:             w,
		CurrentMinutes:     m,
		IsDaytime:          w.IsDaytime(m),
		MinutesUntilChange: w.MinutesUntilChange(m, w.Sunrise),
	}, nil
}

// plan decides the door command. A change of the flag is an edge and drives
// the door to match; otherwise a door that disagrees with the flag is
// corrected.
func plan(newIsDaytime, isDaytime, doorOpen bool) (Action, bool) {
	if newIsDaytime != isDaytime {
		if newIsDaytime {
			return ActionOpen, true
		}
		return ActionClose, true
	}
	switch {
	case newIsDaytime && !doorOpen:
		return ActionOpen, false
	case !newIsDaytime && doorOpen:
		return ActionClose, false
	}
	return ActionNone, false
}
