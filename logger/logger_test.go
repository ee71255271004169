package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got, s)
	}

	_, ok := ParseLogLevel("verbose")
	require.False(t, ok)
}

func TestNewWritesToExtraSinks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(zapcore.InfoLevel, zapcore.AddSync(&buf)).Named("door")

	l.Debugw("hidden")
	l.Infow("door opened", "steps", 6144)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "door opened")
	require.Contains(t, out, "door")
	require.Contains(t, out, "6144")
}

func TestSetLevelFiltersSharedLoggers(t *testing.T) {
	// Changes the shared level; not parallel.
	defer SetLevel(zapcore.InfoLevel)

	var buf bytes.Buffer
	l := New(nil, zapcore.AddSync(&buf))

	SetLevel(zapcore.WarnLevel)
	l.Infow("door state saved")
	l.Warnw("lcd write failed")

	SetLevel(zapcore.DebugLevel)
	l.Debugw("backlight", "on", true)

	out := buf.String()
	require.NotContains(t, out, "door state saved")
	require.Contains(t, out, "lcd write failed")
	require.Contains(t, out, "backlight")
}

func TestOpenSerialDisabled(t *testing.T) {
	t.Parallel()

	s, err := OpenSerial(SerialConfig{})
	require.NoError(t, err)
	require.Nil(t, s)
}
