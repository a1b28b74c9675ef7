package handler

import (
	"github.com/l1jgo/regentimer/internal/core/event"
	"github.com/l1jgo/regentimer/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// spawnSlot logs the fields packed into key.
func spawnSlot(key world.SpawnKey) zap.Field {
	return zap.Object("spawn", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddUint64("key", uint64(key))
		enc.AddInt32("npc_id", key.KindID())
		enc.AddInt("plane", key.Plane())
		enc.AddInt32("tile_x", key.TileX())
		enc.AddInt32("tile_y", key.TileY())
		return nil
	}))
}

// HandleNpcDamaged arms a timer on the first hit against a spawn slot.
// The countdown itself only starts once a heal is observed during a pulse.
func HandleNpcDamaged(e event.NpcDamaged, deps *Deps) {
	if !e.Tracked || e.Amount <= 0 {
		return
	}
	ws := deps.World
	key := ws.Resolve(e.Index, e.KindID, e.Plane, e.Pos)
	if !key.Valid() {
		return
	}

	t := ws.Timers.GetOrCreate(key)
	if t.State == world.StateIdle {
		t.State = world.StateWaitingForFirstHeal
		deps.Log.Debug("regen timer armed",
			zap.Int32("index", e.Index),
			spawnSlot(key))
	}
	t.LastHealthRatio = e.HealthRatio
	t.LastSeenPulse = ws.Pulse()
}

// HandleNpcDied freezes the slot's timer. Death never removes a timer; the
// remaining units are kept for the respawn.
func HandleNpcDied(e event.NpcDied, deps *Deps) {
	if !e.Tracked {
		return
	}
	ws := deps.World
	key := ws.Resolve(e.Index, e.KindID, e.Plane, e.Pos)
	if !key.Valid() {
		return
	}

	t, ok := ws.Timers.Get(key)
	if !ok {
		return
	}
	t.State = world.StatePausedDead
	t.LastSeenPulse = ws.Pulse()
	deps.Log.Debug("regen timer paused",
		zap.Int32("index", e.Index),
		spawnSlot(key),
		zap.Int("remaining_units", t.RemainingUnits))
}

// HandleNpcSpawned starts a new lifetime for the index, rebinding it to the
// slot it spawned on, and resumes a paused timer with the units it was frozen
// at.
func HandleNpcSpawned(e event.NpcSpawned, deps *Deps) {
	ws := deps.World
	key := ws.Bind(e.Index, e.KindID, e.Plane, e.Pos)
	if !key.Valid() {
		return
	}

	t, ok := ws.Timers.Get(key)
	if !ok {
		return
	}
	if t.State == world.StatePausedDead {
		t.State = world.StateRunning
		deps.Log.Debug("regen timer resumed",
			zap.Int32("index", e.Index),
			spawnSlot(key),
			zap.Int("remaining_units", t.RemainingUnits))
	}
	t.LastHealthRatio = e.HealthRatio
	t.LastSeenPulse = ws.Pulse()
}
