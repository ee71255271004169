package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coopdoor/clock"
	"coopdoor/controller"
	"coopdoor/solar"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "coopdoor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
log_level: debug
serial_log:
  device: /dev/ttyAMA0
clock:
  type: ds3231
  bus: "1"
store:
  type: at24c32
  bus: "1"
  addr: 0x57
door:
  type: stepper
  driver: gpiocdev
  pins: [17, 22, 18, 23]
indicator:
  lcd:
    bus: "1"
  day_pin: 24
button:
  type: gpio
  pin: 27
event_pipe:
  path: /tmp/coopdoor-events
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "/dev/ttyAMA0", cfg.SerialLog.Device)
	require.Equal(t, "ds3231", cfg.Clock.Type)
	require.Equal(t, uint16(0x57), cfg.Store.Addr)
	require.Equal(t, []int{17, 22, 18, 23}, cfg.Door.Pins)
	require.Equal(t, "1", cfg.Indicator.LCD.Bus)
	require.NotNil(t, cfg.Indicator.DayPin)
	require.Equal(t, uint8(24), *cfg.Indicator.DayPin)
	require.Nil(t, cfg.Indicator.FaultPin)
	require.Equal(t, 27, cfg.Button.Pin)
	require.Equal(t, "/tmp/coopdoor-events", cfg.EventPipe.Path)
}

func TestLoadConfigShippedFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig("coopdoor.yaml")
	require.NoError(t, err)
	require.Equal(t, "at24c32", cfg.Store.Type)
	require.Len(t, cfg.Door.Pins, 4)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "open config")

	_, err = LoadConfig(writeConfig(t, "door: [not, a, map]\n"))
	require.ErrorContains(t, err, "decode config")

	_, err = LoadConfig(writeConfig(t, "log_level: chatty\n"))
	require.ErrorContains(t, err, "log_level")
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writeTable(&buf, solar.New(siteLocation()), 2024, time.June)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2+30)
	require.True(t, strings.HasPrefix(lines[0], "June 2024"))
	require.True(t, strings.HasPrefix(strings.TrimSpace(lines[2]), "1 "))
	require.True(t, strings.HasPrefix(strings.TrimSpace(lines[31]), "30 "))
}

func TestWriteStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writeStatus(&buf, controller.Status{
		Now:                clock.Reading{Year: 2024, Month: time.March, Day: 20, Hour: 18, Minute: 20},
		Window:             solar.Window{Sunrise: 430, Sunset: 1080},
		CurrentMinutes:     1100,
		DoorOpen:           true,
		MinutesUntilChange: 770,
		Action:             controller.ActionClose,
	})

	out := buf.String()
	require.Contains(t, out, "2024-03-20 18:20:00")
	require.Contains(t, out, "Sunrise:      07:10")
	require.Contains(t, out, "Sunset:       18:00")
	require.Contains(t, out, "Phase:        night")
	require.Contains(t, out, "Door:         open")
	require.Contains(t, out, "Next change:  12h 50m")
	require.Contains(t, out, "Pending:      close")
}

func TestSiteConstants(t *testing.T) {
	t.Parallel()

	// Three full revolutions of the output shaft.
	require.Equal(t, 3*StepsPerRevolution, DoorSteps)
	require.Less(t, ClockRefresh, EvaluateInterval)
	require.Less(t, DebounceGuard, BacklightHold)
}
