package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"coopdoor/clock"
	"coopdoor/indicator"
	"coopdoor/logger"
)

type failingInput struct{}

func (failingInput) Pressed() bool  { return false }
func (failingInput) Release() error { return errors.New("line busy") }

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("eeprom nack") }

type failingClock struct{}

func (failingClock) Now() (clock.Reading, error) { return clock.Reading{}, nil }
func (failingClock) Release() error              { return errors.New("rtc gone") }

type failingIndicator struct {
	indicator.Noop
	shutdown bool
}

func (f *failingIndicator) Shutdown()      { f.shutdown = true }
func (f *failingIndicator) Release() error { return errors.New("lcd nack") }

func TestAppCloseLogsReleaseErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ind := &failingIndicator{}
	app := &App{
		log:       logger.New(zapcore.DebugLevel, zapcore.AddSync(&buf)),
		input:     failingInput{},
		storeDev:  failingCloser{},
		clock:     failingClock{},
		indicator: ind,
	}

	app.Close()

	out := buf.String()
	require.True(t, ind.shutdown)
	for _, want := range []string{
		"release button", "line busy",
		"close store", "eeprom nack",
		"release clock", "rtc gone",
		"release indicator", "lcd nack",
	} {
		require.Contains(t, out, want)
	}
}
