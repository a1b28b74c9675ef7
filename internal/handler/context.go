package handler

import (
	"github.com/l1jgo/regentimer/internal/core/event"
	"github.com/l1jgo/regentimer/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all event handlers.
type Deps struct {
	World *world.State
	Log   *zap.Logger
}

// Dispatch routes one host event to its handler. Unknown event types cannot
// occur; the Event interface is sealed.
func Dispatch(ev event.Event, deps *Deps) {
	switch e := ev.(type) {
	case event.NpcSpawned:
		HandleNpcSpawned(e, deps)
	case event.NpcDamaged:
		HandleNpcDamaged(e, deps)
	case event.NpcDied:
		HandleNpcDied(e, deps)
	}
}
