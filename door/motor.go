// Package door drives the hatch motor and keeps its position.
package door

import (
	"errors"
	"fmt"
	"time"
)

// Motor moves the hatch mechanism. Step blocks until the move is complete.
type Motor interface {
	// Step moves n steps; positive opens, negative closes.
	Step(n int) error

	// PowerOff de-energizes the windings to cut idle current.
	PowerOff() error

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for the hatch motor.
type Config struct {
	Type       string `yaml:"type"`        // "stepper", "servo", "none"
	Driver     string `yaml:"driver"`      // stepper pin driver: "govattu", "gpiocdev", "rpio"
	Chip       string `yaml:"chip"`        // gpiocdev chip, default "gpiochip0"
	Pins       []int  `yaml:"pins"`        // stepper coil pins in sequence order (IN1, IN3, IN2, IN4)
	Pin        *int   `yaml:"pin"`         // servo PWM pin
	ServoOpen  int    `yaml:"servo_open"`  // PWM value for open position
	ServoClose int    `yaml:"servo_close"` // PWM value for closed position
}

// NewMotor creates a Motor based on the provided configuration. stepsPerRev
// and rpm set the stepper speed.
func NewMotor(cfg Config, stepsPerRev, rpm int) (Motor, error) {
	switch cfg.Type {
	case "stepper":
		if len(cfg.Pins) != coilCount {
			return nil, fmt.Errorf("stepper needs %d pins, got %d", coilCount, len(cfg.Pins))
		}
		coils, err := newCoils(cfg)
		if err != nil {
			return nil, err
		}
		return NewStepper(coils, stepsPerRev, rpm), nil
	case "servo":
		if cfg.Pin == nil {
			return nil, fmt.Errorf("servo needs a pin")
		}
		return NewServo(uint8(*cfg.Pin), cfg.ServoOpen, cfg.ServoClose)
	case "none", "":
		return &Sim{}, nil
	default:
		return nil, fmt.Errorf("unknown motor type %q", cfg.Type)
	}
}

func newCoils(cfg Config) (Coils, error) {
	switch cfg.Driver {
	case "govattu", "":
		return NewVattuCoils(cfg.Pins)
	case "gpiocdev", "cdev":
		chip := cfg.Chip
		if chip == "" {
			chip = "gpiochip0"
		}
		return NewCdevCoils(chip, cfg.Pins)
	case "rpio":
		return NewRpioCoils(cfg.Pins)
	default:
		return nil, fmt.Errorf("unknown stepper driver %q", cfg.Driver)
	}
}

const coilCount = 4

// Coils sets the four stepper driver inputs.
type Coils interface {
	Set(levels [coilCount]bool) error
	Close() error
}

// fullStep is the 4-phase full-step sequence for a unipolar motor on a
// ULN2003 board wired IN1, IN3, IN2, IN4.
var fullStep = [4][coilCount]bool{
	{true, false, true, false},
	{false, true, true, false},
	{false, true, false, true},
	{true, false, false, true},
}

// Stepper drives a 4-coil stepper one full step at a time.
type Stepper struct {
	coils Coils
	delay time.Duration
	phase int
	sleep func(time.Duration)
}

// NewStepper creates a Stepper turning at rpm for a motor with stepsPerRev
// steps per revolution.
func NewStepper(coils Coils, stepsPerRev, rpm int) *Stepper {
	delay := time.Minute / time.Duration(stepsPerRev*rpm)
	return &Stepper{coils: coils, delay: delay, sleep: time.Sleep}
}

// Step implements Motor.Step.
func (s *Stepper) Step(n int) error {
	dir := 1
	if n < 0 {
		dir, n = -1, -n
	}
	for i := 0; i < n; i++ {
		s.phase = (s.phase + dir + len(fullStep)) % len(fullStep)
		if err := s.coils.Set(fullStep[s.phase]); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		s.sleep(s.delay)
	}
	return nil
}

// PowerOff implements Motor.PowerOff.
func (s *Stepper) PowerOff() error {
	return s.coils.Set([coilCount]bool{})
}

// Release implements Motor.Release.
func (s *Stepper) Release() error {
	var errs []error
	if err := s.PowerOff(); err != nil {
		errs = append(errs, fmt.Errorf("power off coils: %w", err))
	}
	if err := s.coils.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close coils: %w", err))
	}
	return errors.Join(errs...)
}
