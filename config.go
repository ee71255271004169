package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"coopdoor/button"
	"coopdoor/clock"
	"coopdoor/door"
	"coopdoor/eventpipe"
	"coopdoor/indicator"
	"coopdoor/logger"
	"coopdoor/store"
)

// DefaultConfigFile is read when --config is not given.
const DefaultConfigFile = "coopdoor.yaml"

// Config is the main configuration structure for coopdoor. Location and
// timing are compiled in; see site.go.
type Config struct {
	// Logging
	LogLevel  string              `yaml:"log_level"`
	SerialLog logger.SerialConfig `yaml:"serial_log"`

	// Real-time clock
	Clock clock.Config `yaml:"clock"`

	// Door position cell
	Store store.Config `yaml:"store"`

	// Hatch motor
	Door door.Config `yaml:"door"`

	// Display and status lights
	Indicator indicator.Config `yaml:"indicator"`

	// Manual override button
	Button button.Config `yaml:"button"`

	// Simulated input pipe
	EventPipe eventpipe.Config `yaml:"event_pipe"`
}

// LoadConfig reads and validates the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return nil, fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	return &cfg, nil
}
