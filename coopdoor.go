package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coopdoor/button"
	"coopdoor/clock"
	"coopdoor/controller"
	"coopdoor/door"
	"coopdoor/eventpipe"
	"coopdoor/indicator"
	"coopdoor/logger"
	"coopdoor/solar"
	"coopdoor/store"
)

var myBuild string

var (
	cfgFile  string
	logLevel string
)

// App holds the application state and dependencies.
type App struct {
	cfg       *Config
	log       *zap.SugaredLogger
	serial    *logger.SerialSink
	indicator indicator.Indicator
	clock     clock.Source
	solar     *solar.Provider
	store     *store.Store
	storeDev  io.Closer
	door      *door.Door
	input     button.Input
	pipe      *eventpipe.EventPipe
}

var rootCmd = &cobra.Command{
	Use:   "coopdoor",
	Short: "Open the coop hatch at sunrise and close it at sunset.",
	Long: `Runs the hatch controller: reads the real-time clock, computes sunrise and
sunset for the compiled-in location, and drives the door to match. Door position
survives power loss in a one-byte EEPROM cell.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.Run(ctx)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log_level from the config file")

	rootCmd.AddCommand(tableCmd, statusCmd, openCmd, closeCmd, versionCmd)

	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// newApp loads the config and sets up logging. Hardware is opened by the
// init* methods each command needs.
func newApp() (*App, error) {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, solar: solar.New(siteLocation())}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	lvl, ok := logger.ParseLogLevel(level)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	logger.SetLevel(lvl)

	app.serial, err = logger.OpenSerial(cfg.SerialLog)
	if err != nil {
		return nil, fmt.Errorf("init serial log: %w", err)
	}
	if app.serial != nil {
		logger.SetLogger(logger.New(nil, app.serial))
	}
	app.log = logger.Named("coopdoor")

	return app, nil
}

func siteLocation() solar.Location {
	return solar.Location{Latitude: Latitude, Longitude: Longitude, UTCOffset: UTCOffset}
}

func (app *App) initIndicator() error {
	var err error
	app.indicator, err = indicator.New(app.cfg.Indicator)
	if err != nil {
		return fmt.Errorf("init indicator: %w", err)
	}
	return nil
}

func (app *App) initClock() error {
	var err error
	app.clock, err = clock.New(app.cfg.Clock, UTCOffset)
	if err != nil {
		return fmt.Errorf("init clock: %w", err)
	}
	return nil
}

// initDoor opens the state cell and, withMotor, the hatch motor. Without it
// the door can report its position but never moves hardware.
func (app *App) initDoor(withMotor bool) error {
	var err error
	app.store, app.storeDev, err = store.Open(app.cfg.Store)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	var motor door.Motor = &door.Sim{}
	if withMotor {
		motor, err = door.NewMotor(app.cfg.Door, StepsPerRevolution, MotorRPM)
		if err != nil {
			return fmt.Errorf("init door: %w", err)
		}
	}
	app.door = door.New(motor, app.store, DoorSteps)
	return nil
}

func (app *App) initButton() error {
	var err error
	app.input, err = button.New(app.cfg.Button)
	if err != nil {
		return fmt.Errorf("init button: %w", err)
	}
	return nil
}

// initPipe forwards simulated input to runner.
func (app *App) initPipe(runner *controller.Runner) error {
	var err error
	app.pipe, err = eventpipe.New(app.cfg.EventPipe, func(e eventpipe.Event) {
		switch e.Type {
		case eventpipe.EventButton:
			runner.Press()
		case eventpipe.EventEvaluate:
			runner.Trigger()
		case eventpipe.EventPin:
			runner.SetPin(e.Pressed)
		}
	})
	if err != nil {
		return fmt.Errorf("init event pipe: %w", err)
	}
	if app.pipe != nil {
		go app.pipe.Start()
	}
	return nil
}

// Run starts the controller and blocks until ctx is done. A clock that
// cannot be opened is fatal: the fault stays on the display until the
// process is signalled.
func (app *App) Run(ctx context.Context) error {
	app.log.Infow("starting", "build", buildVersion(),
		"latitude", Latitude, "longitude", Longitude, "utc_offset", UTCOffset)

	if err := app.initIndicator(); err != nil {
		return err
	}
	app.indicator.Backlight(true)
	app.indicator.Show("Starting...", "")

	if err := app.initClock(); err != nil {
		app.indicator.Fault("RTC not found")
		app.log.Errorw("clock unavailable, halted", "error", err)
		<-ctx.Done()
		return err
	}

	if err := app.initDoor(true); err != nil {
		return err
	}

	if err := app.initButton(); err != nil {
		return err
	}

	ctrl := controller.New(app.clock, app.solar, app.door, app.indicator)
	runner := controller.NewRunner(ctrl, app.input, app.indicator, controller.Timing{
		EvaluateInterval: EvaluateInterval,
		ClockRefresh:     ClockRefresh,
		BacklightHold:    BacklightHold,
		DebounceGuard:    DebounceGuard,
		LoopDelay:        LoopDelay,
	})
	if err := app.initPipe(runner); err != nil {
		return err
	}

	err := runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		app.log.Infow("shutting down")
		return nil
	}
	return err
}

// Close releases whatever was opened. Failures are logged; shutdown carries on.
func (app *App) Close() {
	if app.pipe != nil {
		if err := app.pipe.Close(); err != nil {
			app.log.Warnw("close event pipe", "error", err)
		}
	}
	if app.input != nil {
		if err := app.input.Release(); err != nil {
			app.log.Warnw("release button", "error", err)
		}
	}
	if app.door != nil {
		if err := app.door.Release(); err != nil {
			app.log.Warnw("release door", "error", err)
		}
	}
	if app.storeDev != nil {
		if err := app.storeDev.Close(); err != nil {
			app.log.Warnw("close store", "error", err)
		}
	}
	if r, ok := app.clock.(interface{ Release() error }); ok {
		if err := r.Release(); err != nil {
			app.log.Warnw("release clock", "error", err)
		}
	}
	if app.indicator != nil {
		app.indicator.Shutdown()
		if err := app.indicator.Release(); err != nil {
			app.log.Warnw("release indicator", "error", err)
		}
	}
	if app.serial != nil {
		logger.Sync()
		if err := app.serial.Close(); err != nil {
			app.log.Warnw("close serial log", "error", err)
		}
	}
}
