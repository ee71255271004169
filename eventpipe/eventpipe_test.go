package eventpipe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want Event
	}{
		{"button", Event{Type: EventButton}},
		{"PRESS", Event{Type: EventButton}},
		{"eval", Event{Type: EventEvaluate}},
		{"pin button 1", Event{Type: EventPin, Pin: PinButton, Pressed: true}},
		{"pin btn1 true", Event{Type: EventPin, Pin: PinButton, Pressed: true}},
		{"pin button 0", Event{Type: EventPin, Pin: PinButton}},
	}

	for _, tt := range tests {
		got, err := parseLine(tt.line)
		require.NoError(t, err, tt.line)
		require.Equal(t, tt.want, got, tt.line)
	}
}

func TestParseLineErrors(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", "rfid 1234", "pin button", "pin door 1"} {
		_, err := parseLine(line)
		require.Error(t, err, line)
	}
}

func TestNewDisabled(t *testing.T) {
	t.Parallel()

	ep, err := New(Config{}, nil)
	require.NoError(t, err)
	require.Nil(t, ep)
}

func TestPipeDeliversEvents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "events")
	events := make(chan Event, 4)

	ep, err := New(Config{Path: path}, func(e Event) { events <- e })
	require.NoError(t, err)
	go ep.Start()

	w, err := os.OpenFile(path, os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = w.WriteString("# comment\nbutton\nbogus\neval\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	for _, want := range []EventType{EventButton, EventEvaluate} {
		select {
		case e := <-events:
			require.Equal(t, want, e.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
		}
	}

	// Close removes the pipe. Start stays blocked in open until another
	// writer appears, which is how the process leaves it at exit.
	require.NoError(t, ep.Close())
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
