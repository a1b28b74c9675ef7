package handler

import (
	"testing"

	"github.com/l1jgo/regentimer/internal/core/event"
	"github.com/l1jgo/regentimer/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const goblin = int32(2042)

func newDeps() *Deps {
	return &Deps{World: world.NewState(), Log: zap.NewNop()}
}

func hit(index int32, ratio, amount int) event.NpcDamaged {
	return event.NpcDamaged{
		Tracked: true, Index: index, KindID: goblin,
		Pos: world.At(3200, 3200), HealthRatio: ratio, Amount: amount,
	}
}

func timerFor(t *testing.T, deps *Deps, index int32) *world.RegenTimer {
	t.Helper()
	key, ok := deps.World.Resolver.Lookup(index)
	require.True(t, ok, "index %d not bound", index)
	tm, ok := deps.World.Timers.Get(key)
	require.True(t, ok, "no timer for index %d", index)
	return tm
}

func TestHandleNpcDamaged_ArmsWaitingTimer(t *testing.T) {
	deps := newDeps()
	deps.World.AdvancePulse()

	Dispatch(hit(5, 40, 5), deps)

	tm := timerFor(t, deps, 5)
	assert.Equal(t, world.StateWaitingForFirstHeal, tm.State)
	assert.Equal(t, 40, tm.LastHealthRatio)
	assert.Equal(t, 1, tm.LastSeenPulse)
	assert.Zero(t, tm.RemainingUnits)
}

func TestHandleNpcDamaged_IgnoresZeroAndUntracked(t *testing.T) {
	deps := newDeps()

	Dispatch(hit(5, 40, 0), deps)
	Dispatch(hit(5, 40, -2), deps)
	untracked := hit(6, 40, 5)
	untracked.Tracked = false
	Dispatch(untracked, deps)

	assert.Equal(t, 0, deps.World.Timers.Len())
	assert.Equal(t, 0, deps.World.Resolver.Len())
}

func TestHandleNpcDamaged_UnknownPositionTracksNothing(t *testing.T) {
	deps := newDeps()
	e := hit(5, 40, 5)
	e.Pos = world.Position{}

	Dispatch(e, deps)

	assert.Equal(t, 0, deps.World.Timers.Len())
}

func TestHandleNpcDamaged_DoesNotRestartRunningTimer(t *testing.T) {
	deps := newDeps()
	Dispatch(hit(5, 40, 5), deps)
	tm := timerFor(t, deps, 5)
	tm.State = world.StateRunning
	tm.RemainingUnits = 42

	Dispatch(hit(5, 30, 5), deps)

	assert.Equal(t, world.StateRunning, tm.State)
	assert.Equal(t, 42, tm.RemainingUnits)
	assert.Equal(t, 30, tm.LastHealthRatio)
}

func TestHandleNpcDied_FreezesExactUnits(t *testing.T) {
	deps := newDeps()
	Dispatch(hit(5, 40, 5), deps)
	tm := timerFor(t, deps, 5)
	tm.State = world.StateRunning
	tm.RemainingUnits = 10

	Dispatch(event.NpcDied{Tracked: true, Index: 5, KindID: goblin, Pos: world.At(3201, 3199)}, deps)

	assert.Equal(t, world.StatePausedDead, tm.State)
	assert.Equal(t, 10, tm.RemainingUnits)
}

func TestHandleNpcDied_NoTimerIsNoop(t *testing.T) {
	deps := newDeps()

	Dispatch(event.NpcDied{Tracked: true, Index: 5, KindID: goblin, Pos: world.At(1, 1)}, deps)

	assert.Equal(t, 0, deps.World.Timers.Len())
}

func TestHandleNpcSpawned_ResumesFrozenUnits(t *testing.T) {
	deps := newDeps()
	Dispatch(hit(5, 40, 5), deps)
	tm := timerFor(t, deps, 5)
	tm.State = world.StateRunning
	tm.RemainingUnits = 10
	Dispatch(event.NpcDied{Tracked: true, Index: 5, KindID: goblin, Pos: world.At(3200, 3200)}, deps)

	deps.World.AdvancePulse()
	Dispatch(event.NpcSpawned{Index: 5, KindID: goblin, Pos: world.At(3200, 3200), HealthRatio: 100}, deps)

	assert.Equal(t, world.StateRunning, tm.State)
	assert.Equal(t, 10, tm.RemainingUnits)
	assert.Equal(t, 100, tm.LastHealthRatio)
	assert.Equal(t, 1, tm.LastSeenPulse)
}

func TestHandleNpcSpawned_NewIndexSameSlotFindsTimer(t *testing.T) {
	deps := newDeps()
	Dispatch(hit(5, 40, 5), deps)
	tm := timerFor(t, deps, 5)
	tm.State = world.StatePausedDead
	tm.RemainingUnits = 7

	// The respawned NPC gets a fresh index but appears on the same tile.
	Dispatch(event.NpcSpawned{Index: 77, KindID: goblin, Pos: world.At(3200, 3200), HealthRatio: 100}, deps)

	assert.Same(t, tm, timerFor(t, deps, 77))
	assert.Equal(t, world.StateRunning, tm.State)
	assert.Equal(t, 7, tm.RemainingUnits)
}

func TestHandleNpcSpawned_WaitingTimerStaysWaiting(t *testing.T) {
	deps := newDeps()
	Dispatch(hit(5, 40, 5), deps)

	Dispatch(event.NpcSpawned{Index: 5, KindID: goblin, Pos: world.At(3200, 3200), HealthRatio: 90}, deps)

	tm := timerFor(t, deps, 5)
	assert.Equal(t, world.StateWaitingForFirstHeal, tm.State)
	assert.Equal(t, 90, tm.LastHealthRatio)
}

func TestHandleNpcSpawned_ReusedIndexGetsOwnSlot(t *testing.T) {
	deps := newDeps()
	ws := deps.World
	slotA := world.At(3200, 3200)
	slotB := world.At(3300, 3300)

	Dispatch(event.NpcSpawned{Index: 5, KindID: goblin, Pos: slotA, HealthRatio: 100}, deps)
	Dispatch(hit(5, 40, 5), deps)
	a := timerFor(t, deps, 5)
	a.State = world.StateRunning
	a.RemainingUnits = 10
	Dispatch(event.NpcDied{Tracked: true, Index: 5, KindID: goblin, Pos: slotA}, deps)

	// The host hands index 5 to another goblin on a different tile.
	ws.AdvancePulse()
	Dispatch(event.NpcSpawned{Index: 5, KindID: goblin, Pos: slotB, HealthRatio: 100}, deps)

	keyB, ok := ws.Resolver.Lookup(5)
	require.True(t, ok)
	assert.Equal(t, world.MakeSpawnKey(goblin, 0, slotB), keyB)
	_, ok = ws.Timers.Get(keyB)
	assert.False(t, ok, "new lifetime must not inherit a timer")
	_, ok = ws.LookupDisplay(5)
	assert.False(t, ok)

	assert.Equal(t, world.StatePausedDead, a.State)
	assert.Equal(t, 10, a.RemainingUnits)

	// Damage and death under the reused index stay on B's slot.
	Dispatch(hit(5, 80, 5), deps)
	Dispatch(event.NpcDied{Tracked: true, Index: 5, KindID: goblin, Pos: slotB}, deps)
	assert.Equal(t, world.StatePausedDead, a.State)
	assert.Equal(t, 10, a.RemainingUnits)

	// A comes back on its own tile.
	Dispatch(event.NpcSpawned{Index: 8, KindID: goblin, Pos: slotA, HealthRatio: 100}, deps)
	assert.Same(t, a, timerFor(t, deps, 8))
	assert.Equal(t, world.StateRunning, a.State)
	assert.Equal(t, 10, a.RemainingUnits)
}

func TestHandleNpcSpawned_UnknownPositionDropsOldBinding(t *testing.T) {
	deps := newDeps()
	Dispatch(hit(5, 40, 5), deps)
	tm := timerFor(t, deps, 5)

	Dispatch(event.NpcSpawned{Index: 5, KindID: goblin, HealthRatio: 100}, deps)

	_, ok := deps.World.Resolver.Lookup(5)
	assert.False(t, ok)
	assert.Equal(t, world.StateWaitingForFirstHeal, tm.State)
	assert.Equal(t, 1, deps.World.Timers.Len())
}

func TestHandleNpcDamaged_LogsSpawnSlot(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	deps := &Deps{World: world.NewState(), Log: zap.New(core)}

	Dispatch(event.NpcDamaged{
		Tracked: true, Index: 5, KindID: goblin, Plane: 1,
		Pos: world.At(3200, 3210), HealthRatio: 40, Amount: 3,
	}, deps)

	entries := logs.FilterMessage("regen timer armed").All()
	require.Len(t, entries, 1)
	spawn, ok := entries[0].ContextMap()["spawn"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, uint64(world.MakeSpawnKey(goblin, 1, world.At(3200, 3210))), spawn["key"])
	assert.Equal(t, goblin, spawn["npc_id"])
	assert.Equal(t, 1, spawn["plane"])
	assert.Equal(t, int32(3200), spawn["tile_x"])
	assert.Equal(t, int32(3210), spawn["tile_y"])
}
