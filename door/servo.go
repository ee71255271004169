package door

import (
	"fmt"
	"time"

	"github.com/hjkoskel/govattu"
)

// Servo drives a hatch hinged on an RC servo. Any positive step count sweeps
// to the open position and any negative one to the closed position.
type Servo struct {
	hw       govattu.Vattu
	pin      uint8
	openPos  int
	closePos int
	pos      int
}

// NewServo sets pin up for PWM0 and parks the servo in the closed position.
func NewServo(pin uint8, openPos, closePos int) (*Servo, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	hw.PinMode(pin, govattu.ALT5) // ALT5 for PWM0
	hw.PwmSetMode(true, true, false, false)
	hw.PwmSetClock(19)
	hw.Pwm0SetRange(20000)

	s := &Servo{
		hw:       hw,
		pin:      pin,
		openPos:  openPos,
		closePos: closePos,
		pos:      closePos,
	}
	return s, nil
}

// Step implements Motor.Step.
func (s *Servo) Step(n int) error {
	switch {
	case n > 0:
		s.moveTo(s.openPos)
	case n < 0:
		s.moveTo(s.closePos)
	}
	return nil
}

// PowerOff stops the PWM pulses so the servo stops holding.
func (s *Servo) PowerOff() error {
	s.hw.Pwm0Set(0)
	return nil
}

// Release implements Motor.Release.
func (s *Servo) Release() error {
	s.PowerOff()
	return s.hw.Close()
}

func (s *Servo) moveTo(to int) {
	inc := 1
	if to < s.pos {
		inc = -1
	}
	for i := s.pos; i != to; i += inc {
		s.hw.Pwm0Set(uint32(i))
		time.Sleep(2 * time.Millisecond)
	}
	s.hw.Pwm0Set(uint32(to))
	s.pos = to
}
