// Package eventpipe reads simulated input events from a named pipe, so the
// controller can be exercised on a bench without buttons wired up.
package eventpipe

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"coopdoor/logger"
)

// Config holds configuration for the event pipe.
type Config struct {
	Path string `yaml:"path"` // Path to named pipe (e.g., "/tmp/coopdoor-events")
}

// EventType identifies a pipe command.
type EventType int

const (
	// EventButton is a complete manual press.
	EventButton EventType = iota
	// EventEvaluate forces a day/night evaluation.
	EventEvaluate
	// EventPin sets the raw level of a named input.
	EventPin
)

// Event is one parsed pipe command.
type Event struct {
	Type    EventType
	Pin     string
	Pressed bool
}

// EventHandler is called when an event is received from the pipe.
type EventHandler func(Event)

// EventPipe listens for events on a named pipe.
type EventPipe struct {
	path    string
	handler EventHandler
	ctx     context.Context
	cancel  context.CancelFunc
	log     *zap.SugaredLogger
}

// New creates a new EventPipe. Returns nil if path is empty.
func New(cfg Config, handler EventHandler) (*EventPipe, error) {
	if cfg.Path == "" {
		return nil, nil
	}

	// Remove existing pipe if it exists
	os.Remove(cfg.Path)

	if err := syscall.Mkfifo(cfg.Path, 0666); err != nil {
		return nil, fmt.Errorf("create named pipe %s: %w", cfg.Path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &EventPipe{
		path:    cfg.Path,
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
		log:     logger.Named("eventpipe"),
	}, nil
}

// Start begins listening for events on the pipe.
// This should be called as a goroutine.
func (ep *EventPipe) Start() {
	ep.log.Infow("listening", "path", ep.path)

	for {
		select {
		case <-ep.ctx.Done():
			return
		default:
		}

		// Blocks until a writer connects.
		file, err := os.OpenFile(ep.path, os.O_RDONLY, 0)
		if err != nil {
			if ep.ctx.Err() != nil {
				return
			}
			ep.log.Warnw("open failed", "error", err)
			continue
		}

		ep.consume(file)
		file.Close()
		// Writer closed the pipe, loop back to wait for next writer
	}
}

func (ep *EventPipe) consume(file *os.File) {
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if ep.ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		event, err := parseLine(line)
		if err != nil {
			ep.log.Warnw("parse failed", "line", line, "error", err)
			continue
		}

		if ep.handler != nil {
			ep.handler(event)
		}
	}
}

// Close stops the event pipe listener and removes the pipe.
func (ep *EventPipe) Close() error {
	ep.cancel()
	return os.Remove(ep.path)
}

// parseLine parses a command line into an Event.
// Command format:
//
//	button                 - Manual press (backlight + re-evaluation)
//	press                  - Alias for button
//	eval                   - Force a day/night evaluation
//	pin <name> <0|1>       - Raw input level (0=released, 1=pressed)
func parseLine(line string) (Event, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Event{}, fmt.Errorf("empty command")
	}

	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "button", "press":
		return Event{Type: EventButton}, nil

	case "eval", "evaluate":
		return Event{Type: EventEvaluate}, nil

	case "pin":
		if len(parts) < 3 {
			return Event{}, fmt.Errorf("pin requires <name> <0|1>")
		}
		name, err := parsePinName(parts[1])
		if err != nil {
			return Event{}, err
		}
		pressed := parts[2] == "1" || strings.ToLower(parts[2]) == "true"
		return Event{Type: EventPin, Pin: name, Pressed: pressed}, nil

	default:
		return Event{}, fmt.Errorf("unknown command: %s", cmd)
	}
}

// PinButton is the only input the controller reads.
const PinButton = "button"

func parsePinName(name string) (string, error) {
	switch strings.ToLower(name) {
	case "button", "btn", "button1", "btn1":
		return PinButton, nil
	default:
		return "", fmt.Errorf("unknown pin: %s", name)
	}
}
