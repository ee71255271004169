package controller

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"coopdoor/button"
	"coopdoor/logger"
)

// Timing holds the loop intervals.
type Timing struct {
	EvaluateInterval time.Duration
	ClockRefresh     time.Duration
	BacklightHold    time.Duration
	DebounceGuard    time.Duration
	LoopDelay        time.Duration
}

// Backlight switches the display backlight.
type Backlight interface {
	Backlight(on bool)
}

type request int

const (
	requestPress request = iota
	requestEvaluate
)

// Runner is the control loop. Everything it owns is touched from Step only;
// other goroutines reach it through Press, Trigger and SetPin.
type Runner struct {
	ctrl      *Controller
	input     button.Input
	debounce  *button.Debouncer
	backlight Backlight

	eval    *Schedule
	refresh *Schedule
	timing  Timing

	hold  uint32
	litAt uint32
	lit   bool

	pin      atomic.Bool
	requests chan request

	log *zap.SugaredLogger
}

// NewRunner creates a Runner driving ctrl.
func NewRunner(ctrl *Controller, input button.Input, backlight Backlight, timing Timing) *Runner {
	return &Runner{
		ctrl:      ctrl,
		input:     input,
		debounce:  button.NewDebouncer(millis(timing.DebounceGuard)),
		backlight: backlight,
		eval:      NewSchedule(timing.EvaluateInterval),
		refresh:   NewSchedule(timing.ClockRefresh),
		timing:    timing,
		hold:      millis(timing.BacklightHold),
		requests:  make(chan request, 8),
		log:       logger.Named("runner"),
	}
}

// Press injects a complete, already debounced manual press.
func (r *Runner) Press() {
	r.send(requestPress)
}

// Trigger forces an evaluation on the next pass.
func (r *Runner) Trigger() {
	r.send(requestEvaluate)
}

// SetPin overrides the raw button level; it is OR-ed with the input and
// debounced like it.
func (r *Runner) SetPin(pressed bool) {
	r.pin.Store(pressed)
}

func (r *Runner) send(req request) {
	select {
	case r.requests <- req:
	default:
		r.log.Warnw("request dropped, loop busy", "request", req)
	}
}

// Step runs one pass of the loop at the millisecond counter value now.
func (r *Runner) Step(now uint32) {
	manual := r.debounce.Update(r.input.Pressed() || r.pin.Load(), now)

drain:
	for {
		select {
		case req := <-r.requests:
			switch req {
			case requestPress:
				manual = true
			case requestEvaluate:
				r.eval.Reset()
			}
		default:
			break drain
		}
	}

	if manual {
		r.log.Infow("manual input")
		r.lightUp(now)
		r.eval.Reset()
	}

	if r.eval.Due(now) {
		if _, err := r.ctrl.Evaluate(); err != nil {
			r.log.Errorw("evaluation failed", "error", err)
		}
		r.refresh.Mark(now)
	} else if r.refresh.Due(now) {
		if err := r.ctrl.RefreshClock(); err != nil {
			r.log.Errorw("clock refresh failed", "error", err)
		}
	}

	if r.lit && now-r.litAt >= r.hold {
		r.lit = false
		r.backlight.Backlight(false)
	}
}

func (r *Runner) lightUp(now uint32) {
	r.litAt = now
	if !r.lit {
		r.lit = true
		r.backlight.Backlight(true)
	}
}

// Run calls Step every LoopDelay until ctx is done. The backlight starts lit
// for one hold period. A door move in progress is never interrupted; ctx is
// only checked between passes.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()
	clock := func() uint32 { return uint32(time.Since(start).Milliseconds()) }

	delay := r.timing.LoopDelay
	if delay <= 0 {
		delay = 10 * time.Millisecond
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	r.lightUp(clock())
	for {
		r.Step(clock())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func millis(d time.Duration) uint32 {
	return uint32(d / time.Millisecond)
}
