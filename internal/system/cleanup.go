package system

import (
	"time"

	coresys "github.com/l1jgo/regentimer/internal/core/system"
	"github.com/l1jgo/regentimer/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem bounds the index binding map. RegenSystem's visibility scan
// refreshes every loaded index; bindings unseen for longer than the
// threshold are dropped here. The timers behind them are left to the
// timer sweep.
// Phase 3 (Cleanup).
type CleanupSystem struct {
	world     *world.State
	threshold int
	log       *zap.Logger
}

func NewCleanupSystem(ws *world.State, threshold int, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: ws, threshold: threshold, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	pulse := s.world.Pulse()
	if removed := s.world.Resolver.Sweep(pulse, s.threshold); removed > 0 {
		s.log.Debug("index bindings released",
			zap.Int("pulse", pulse),
			zap.Int("removed", removed),
			zap.Int("bound", s.world.Resolver.Len()))
	}
}
