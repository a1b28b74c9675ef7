package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Event kinds accepted in a scenario file.
const (
	KindSpawned = "spawned"
	KindDamaged = "damaged"
	KindDied    = "died"
)

// ErrUnknownEventKind is returned by Validate for an unrecognised event kind.
var ErrUnknownEventKind = errors.New("unknown event kind")

// EntityEntry is one NPC as the host reports it. X/Y are omitted when the
// host had no location for the NPC.
type EntityEntry struct {
	Index       int32  `yaml:"index"`
	NpcID       int32  `yaml:"npc_id"`
	Plane       int    `yaml:"plane"`
	X           *int32 `yaml:"x,omitempty"`
	Y           *int32 `yaml:"y,omitempty"`
	HealthRatio *int   `yaml:"health_ratio,omitempty"` // omitted = unknown (-1)
}

// EventEntry is one host notification recorded before a pulse.
type EventEntry struct {
	EntityEntry `yaml:",inline"`
	Kind        string `yaml:"kind"`
	Actor       string `yaml:"actor,omitempty"` // "player" marks an untracked actor
	Amount      int    `yaml:"amount,omitempty"`
}

// Tracked reports whether the event's actor is an NPC.
func (e EventEntry) Tracked() bool { return e.Actor != "player" }

// PulseEntry is what happened between two pulses plus the NPC list sampled
// on the pulse. Repeat > 1 replays the same visible list for that many
// pulses with no further events.
type PulseEntry struct {
	Events  []EventEntry  `yaml:"events,omitempty"`
	Visible []EntityEntry `yaml:"visible,omitempty"`
	Repeat  int           `yaml:"repeat,omitempty"`
}

// Scenario is a recorded host session.
type Scenario struct {
	Name   string       `yaml:"name"`
	Pulses []PulseEntry `yaml:"pulses"`
}

// TotalPulses counts pulses with repeats expanded.
func (s *Scenario) TotalPulses() int {
	n := 0
	for _, p := range s.Pulses {
		n += max(1, p.Repeat)
	}
	return n
}

// Validate checks every event kind and repeat count.
func (s *Scenario) Validate() error {
	for i, p := range s.Pulses {
		if p.Repeat < 0 {
			return fmt.Errorf("pulse %d: negative repeat %d", i, p.Repeat)
		}
		for j, ev := range p.Events {
			switch ev.Kind {
			case KindSpawned, KindDamaged, KindDied:
			default:
				return fmt.Errorf("pulse %d event %d: %w %q", i, j, ErrUnknownEventKind, ev.Kind)
			}
		}
	}
	return nil
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validate scenario: %w", err)
	}
	return &s, nil
}
