// Package host adapts an external game client to the tracker: it supplies
// the NPC list sampled on each pulse and pushes spawn, damage and death
// notifications onto the event bus.
package host

import "github.com/l1jgo/regentimer/internal/world"

// Entity is one NPC as currently loaded by the host.
type Entity struct {
	Index       int32
	KindID      int32
	Plane       int
	Pos         world.Position
	HealthRatio int // world.HealthUnknown when the health bar is hidden
}

// Host is the query surface the pulse systems read from.
type Host interface {
	// VisibleEntities returns the NPCs loaded for the current pulse. The
	// slice is only valid until the next call.
	VisibleEntities() []Entity
}

