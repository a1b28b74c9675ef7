package world

import "github.com/l1jgo/regentimer/internal/core/ecs"

// HealthUnknown is the health ratio reported when the host cannot see the
// NPC's health bar.
const HealthUnknown = -1

// TimerState is the lifecycle stage of a regen timer.
type TimerState uint8

const (
	StateIdle                TimerState = iota // tracked, never damaged
	StateWaitingForFirstHeal                   // armed by damage, waiting to observe a heal
	StateRunning                               // counting down to the next regen
	StatePausedDead                            // frozen until the spawn slot respawns
)

func (s TimerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaitingForFirstHeal:
		return "waiting_for_first_heal"
	case StateRunning:
		return "running"
	case StatePausedDead:
		return "paused_dead"
	default:
		return "unknown"
	}
}

// RegenTimer is the per-spawn-slot countdown record.
type RegenTimer struct {
	State           TimerState
	RemainingUnits  int // pulses until the next regen; meaningful only while running
	LastSeenPulse   int
	LastHealthRatio int // HealthUnknown until observed
}

func newRegenTimer() *RegenTimer {
	return &RegenTimer{State: StateIdle, LastHealthRatio: HealthUnknown}
}

// TimerStore is the sole owner of timer records, keyed by spawn key.
// Not safe for concurrent use; the game loop serializes all access.
type TimerStore struct {
	timers *ecs.PtrComponentStore[SpawnKey, RegenTimer]
}

func NewTimerStore() *TimerStore {
	return &TimerStore{timers: ecs.NewPtrComponentStore[SpawnKey, RegenTimer](128)}
}

// Get returns the timer for key, or false if none is tracked.
func (s *TimerStore) Get(key SpawnKey) (*RegenTimer, bool) {
	return s.timers.Get(key)
}

// GetOrCreate returns the timer for key, creating an idle one if needed.
func (s *TimerStore) GetOrCreate(key SpawnKey) *RegenTimer {
	t, _ := s.timers.GetOrCreate(key, newRegenTimer)
	return t
}

func (s *TimerStore) Remove(key SpawnKey) {
	s.timers.Remove(key)
}

func (s *TimerStore) Each(fn func(SpawnKey, *RegenTimer)) {
	s.timers.Each(fn)
}

func (s *TimerStore) Len() int { return s.timers.Len() }

// Sweep removes timers not seen for more than threshold pulses. Paused-dead
// timers are kept regardless of age so a respawn can resume them.
func (s *TimerStore) Sweep(pulse, threshold int) int {
	return s.timers.RemoveIf(func(_ SpawnKey, t *RegenTimer) bool {
		if t.State == StatePausedDead {
			return false
		}
		return pulse-t.LastSeenPulse > threshold
	})
}

func (s *TimerStore) Reset() { s.timers.Clear() }
