package system

import (
	"time"

	"github.com/l1jgo/regentimer/internal/config"
	coresys "github.com/l1jgo/regentimer/internal/core/system"
	"github.com/l1jgo/regentimer/internal/host"
	"github.com/l1jgo/regentimer/internal/world"
	"go.uber.org/zap"
)

// IntervalFunc returns the full regen interval in seconds for an NPC kind.
type IntervalFunc func(npcID int32) int

// FixedInterval ignores the kind and always returns seconds.
func FixedInterval(seconds int) IntervalFunc {
	return func(int32) int { return seconds }
}

// RegenSystem simulates NPC regen countdowns from the host's NPC list.
// Phase 1 (Update) — runs once per pulse.
//
// NPCs regenerate on a fixed cycle the client cannot see. The only signal is
// the health bar going up between two samples; that heal marks the start of
// a cycle, so the countdown is reset to the full interval on every heal and
// otherwise wraps around forever.
type RegenSystem struct {
	world    *world.State
	host     host.Host
	cfg      config.TimerConfig
	interval IntervalFunc
	log      *zap.Logger
}

func NewRegenSystem(ws *world.State, h host.Host, cfg config.TimerConfig, interval IntervalFunc, log *zap.Logger) *RegenSystem {
	if interval == nil {
		interval = FixedInterval(cfg.RegenIntervalSeconds)
	}
	return &RegenSystem{world: ws, host: h, cfg: cfg, interval: interval, log: log}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *RegenSystem) Update(_ time.Duration) {
	pulse := s.world.AdvancePulse()
	npcs := s.host.VisibleEntities()

	// Bind every loaded NPC first. Existing bindings are kept even if the
	// NPC has moved off its spawn tile.
	for i := range npcs {
		n := &npcs[i]
		s.world.Resolve(n.Index, n.KindID, n.Plane, n.Pos)
	}

	for i := range npcs {
		s.tickNpc(&npcs[i], pulse)
	}

	if removed := s.world.Timers.Sweep(pulse, s.cfg.StaleThreshold()); removed > 0 {
		s.log.Debug("stale regen timers removed",
			zap.Int("pulse", pulse),
			zap.Int("removed", removed),
			zap.Int("remaining", s.world.Timers.Len()))
	}
}

// tickNpc samples one NPC: heal detection, then countdown.
func (s *RegenSystem) tickNpc(n *host.Entity, pulse int) {
	key, ok := s.world.Resolver.Lookup(n.Index)
	if !ok {
		return
	}
	t, ok := s.world.Timers.Get(key)
	if !ok {
		return
	}

	t.LastSeenPulse = pulse
	if t.State == world.StatePausedDead {
		return
	}

	full := world.SecondsToUnits(s.interval(n.KindID))

	if ratio := n.HealthRatio; ratio >= 0 {
		if t.LastHealthRatio >= 0 && ratio > t.LastHealthRatio {
			// Start on first heal, reset on subsequent heals
			if t.State != world.StateRunning {
				s.log.Debug("regen timer started",
					zap.Int32("index", n.Index),
					zap.Int32("npc_id", n.KindID),
					zap.Int("units", full))
			}
			t.State = world.StateRunning
			t.RemainingUnits = full
		}
		t.LastHealthRatio = ratio
	}

	if t.State != world.StateRunning {
		return
	}
	if t.RemainingUnits > 0 {
		t.RemainingUnits--
	}
	// Hitting zero loops back to the full interval; the cycle never ends.
	if t.RemainingUnits <= 0 {
		t.RemainingUnits = full
	}
}
