package indicator

import (
	"go.uber.org/zap"

	"coopdoor/logger"
)

// Log mirrors display output to the log, for running without hardware.
type Log struct {
	log *zap.SugaredLogger
}

// NewLog creates a Log indicator.
func NewLog() *Log {
	return &Log{log: logger.Named("display")}
}

// Show implements Indicator.Show.
func (l *Log) Show(line1, line2 string) {
	l.log.Debugf("[%s] [%s]", Fit(line1), Fit(line2))
}

// Backlight implements Indicator.Backlight.
func (l *Log) Backlight(on bool) {
	l.log.Debugw("backlight", "on", on)
}

// Daylight implements Indicator.Daylight.
func (l *Log) Daylight(day bool) {
	l.log.Debugw("daylight", "day", day)
}

// Fault implements Indicator.Fault.
func (l *Log) Fault(msg string) {
	l.log.Errorw("fault", "message", msg)
}

// Shutdown implements Indicator.Shutdown.
func (l *Log) Shutdown() {}

// Release implements Indicator.Release.
func (l *Log) Release() error {
	return nil
}

func lcdLog() *zap.SugaredLogger {
	return logger.Named("lcd")
}
