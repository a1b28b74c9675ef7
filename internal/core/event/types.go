package event

import "github.com/l1jgo/regentimer/internal/world"

// Event is the closed set of host notifications the tracker consumes.
type Event interface {
	event()
}

// NpcSpawned fires when an NPC appears in the loaded scene, including a
// respawn into a slot whose previous occupant died.
type NpcSpawned struct {
	Index       int32
	KindID      int32
	Plane       int
	Pos         world.Position
	HealthRatio int
}

// NpcDamaged fires on every hitsplat. Tracked is false when the actor is
// not an NPC.
type NpcDamaged struct {
	Tracked     bool
	Index       int32
	KindID      int32
	Plane       int
	Pos         world.Position
	HealthRatio int
	Amount      int
}

// NpcDied fires when an actor's death animation starts.
type NpcDied struct {
	Tracked bool
	Index   int32
	KindID  int32
	Plane   int
	Pos     world.Position
}

func (NpcSpawned) event() {}
func (NpcDamaged) event() {}
func (NpcDied) event()    {}
