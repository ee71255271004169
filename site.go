package main

import "time"

// Site location. The clock keeps standard time all year.
const (
	Latitude  = 50.0755
	Longitude = 14.4378
	UTCOffset = 1
)

// Hatch mechanics: a 28BYJ-48 geared stepper on a ULN2003 driver.
const (
	DoorSteps          = 6144
	StepsPerRevolution = 2048
	MotorRPM           = 10
)

// Loop timing.
const (
	EvaluateInterval = 30 * time.Minute
	ClockRefresh     = 60 * time.Second
	BacklightHold    = 30 * time.Second
	DebounceGuard    = 50 * time.Millisecond
	LoopDelay        = 10 * time.Millisecond
)
