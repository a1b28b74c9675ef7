package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Timer     TimerConfig     `toml:"timer"`
	Tick      TickConfig      `toml:"tick"`
	Scenario  ScenarioConfig  `toml:"scenario"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
}

type TimerConfig struct {
	RegenIntervalSeconds int  `toml:"regen_interval_seconds"` // countdown length started on each observed heal
	StaleCleanupTicks    int  `toml:"stale_cleanup_ticks"`    // drop live timers unseen this long (floor 20)
	DeadPersistTicks     int  `toml:"dead_persist_ticks"`     // declared; paused timers are currently kept indefinitely
	ShowOnlyWhenActive   bool `toml:"show_only_when_active"`  // declared; not consulted by the overlay
	IndexUnseenTicks     int  `toml:"index_unseen_ticks"`     // drop index bindings unseen this long (floor 20)
}

type TickConfig struct {
	Rate time.Duration `toml:"rate"` // wall-clock pulse cadence; 0 replays as fast as possible
}

type ScenarioConfig struct {
	Path string `toml:"path"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // empty disables Lua overrides
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// MinCleanupTicks is the floor applied to both cleanup thresholds.
const MinCleanupTicks = 20

// StaleThreshold returns the effective timer staleness bound.
func (c TimerConfig) StaleThreshold() int {
	return max(MinCleanupTicks, c.StaleCleanupTicks)
}

// IndexThreshold returns the effective index binding staleness bound.
func (c TimerConfig) IndexThreshold() int {
	return max(MinCleanupTicks, c.IndexUnseenTicks)
}

// Load reads a TOML file over the defaults. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config { return defaults() }

func (c *Config) validate() error {
	if c.Timer.RegenIntervalSeconds <= 0 {
		return fmt.Errorf("timer.regen_interval_seconds must be positive, got %d", c.Timer.RegenIntervalSeconds)
	}
	if c.Tick.Rate < 0 {
		return fmt.Errorf("tick.rate must not be negative, got %s", c.Tick.Rate)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Timer: TimerConfig{
			RegenIntervalSeconds: 60,
			StaleCleanupTicks:    400,  // ~4 minutes
			DeadPersistTicks:     2000, // ~20 minutes
			ShowOnlyWhenActive:   true,
			IndexUnseenTicks:     100,
		},
		Tick: TickConfig{
			Rate: 600 * time.Millisecond,
		},
		Scenario: ScenarioConfig{
			Path: "data/yaml/scenario.yaml",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
