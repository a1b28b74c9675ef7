package system

import (
	"time"

	"github.com/l1jgo/regentimer/internal/config"
	coresys "github.com/l1jgo/regentimer/internal/core/system"
	"github.com/l1jgo/regentimer/internal/host"
	"github.com/l1jgo/regentimer/internal/world"
	"go.uber.org/zap"
)

// Renderer draws a countdown above an NPC. Implemented outside the tracker.
type Renderer interface {
	RenderCountdown(npc host.Entity, d world.Display)
}

// OverlaySystem hands the countdown of every loaded NPC to the renderer.
// Phase 2 (Output).
type OverlaySystem struct {
	world    *world.State
	host     host.Host
	renderer Renderer
	cfg      config.TimerConfig
}

func NewOverlaySystem(ws *world.State, h host.Host, r Renderer, cfg config.TimerConfig) *OverlaySystem {
	return &OverlaySystem{world: ws, host: h, renderer: r, cfg: cfg}
}

func (s *OverlaySystem) Phase() coresys.Phase { return coresys.PhaseOutput }

// Update draws every displayable countdown. cfg.ShowOnlyWhenActive is not
// consulted: idle and waiting timers are never drawn either way.
func (s *OverlaySystem) Update(_ time.Duration) {
	for _, npc := range s.host.VisibleEntities() {
		d, ok := s.world.LookupDisplay(npc.Index)
		if !ok {
			continue
		}
		s.renderer.RenderCountdown(npc, d)
	}
}

// LogRenderer writes countdowns to a zap logger instead of a scene.
type LogRenderer struct {
	Log *zap.Logger
}

func (r LogRenderer) RenderCountdown(npc host.Entity, d world.Display) {
	color := "red"
	if d.Urgent {
		color = "green"
	}
	r.Log.Info("regen countdown",
		zap.Int32("index", npc.Index),
		zap.Int32("npc_id", npc.KindID),
		zap.Int("seconds", d.Seconds),
		zap.String("color", color))
}
