package system

import (
	"time"

	"github.com/l1jgo/regentimer/internal/core/event"
	coresys "github.com/l1jgo/regentimer/internal/core/system"
	"github.com/l1jgo/regentimer/internal/handler"
)

// InputSystem delivers the host events queued since the previous pulse.
// Phase 0 (Input) — events see the pulse counter before it is advanced.
type InputSystem struct {
	bus  *event.Bus
	deps *handler.Deps
}

func NewInputSystem(bus *event.Bus, deps *handler.Deps) *InputSystem {
	return &InputSystem{bus: bus, deps: deps}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.Drain(func(ev event.Event) {
		handler.Dispatch(ev, s.deps)
	})
}
