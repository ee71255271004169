package door

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"coopdoor/logger"
)

// StateStore persists the door position across power loss.
type StateStore interface {
	Load() (bool, error)
	Save(isOpen bool) error
}

// Door is the hatch actuator. It trusts the step count for position: there
// is no end-stop feedback, so a stalled or skipped move goes unnoticed.
type Door struct {
	motor  Motor
	state  StateStore
	steps  int
	isOpen bool
	log    *zap.SugaredLogger
}

// New creates a Door that drives motor steps steps per full travel. The
// initial position is loaded once from state; an unreadable store counts as
// closed.
func New(motor Motor, state StateStore, steps int) *Door {
	d := &Door{
		motor: motor,
		state: state,
		steps: steps,
		log:   logger.Named("door"),
	}

	open, err := state.Load()
	if err != nil {
		d.log.Warnw("could not load door state, assuming closed", "error", err)
		open = false
	}
	d.isOpen = open
	d.log.Infow("loaded door state", "open", open)

	return d
}

// IsOpen reports the believed door position.
func (d *Door) IsOpen() bool {
	return d.isOpen
}

// Open raises the hatch. It does nothing if the door is already open.
func (d *Door) Open() error {
	if d.isOpen {
		return nil
	}
	d.log.Infow("opening door", "steps", d.steps)
	return d.move(d.steps, true)
}

// Close lowers the hatch. It does nothing if the door is already closed.
func (d *Door) Close() error {
	if !d.isOpen {
		return nil
	}
	d.log.Infow("closing door", "steps", -d.steps)
	return d.move(-d.steps, false)
}

// move runs the full travel, then flips the flag, powers the coils down and
// writes the new position through to the store, in that order. A motion
// error leaves the flag unchanged.
func (d *Door) move(steps int, open bool) error {
	if err := d.motor.Step(steps); err != nil {
		return fmt.Errorf("step motor: %w", err)
	}
	d.isOpen = open

	var errs []error
	if err := d.motor.PowerOff(); err != nil {
		errs = append(errs, fmt.Errorf("power off motor: %w", err))
	}
	if err := d.state.Save(open); err != nil {
		errs = append(errs, fmt.Errorf("save door state: %w", err))
	} else {
		d.log.Infow("door state saved", "open", open)
	}
	return errors.Join(errs...)
}

// Release releases the motor hardware.
func (d *Door) Release() error {
	return d.motor.Release()
}
