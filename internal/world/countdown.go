package world

import "time"

const (
	// PulseDuration is the fixed length of one host pulse.
	PulseDuration = 600 * time.Millisecond

	// GreenThresholdSeconds is the urgency boundary: at or below it the
	// countdown is drawn green (regen imminent).
	GreenThresholdSeconds = 18
)

const pulseMillis = int(PulseDuration / time.Millisecond)

// SecondsToUnits converts a configured interval to whole pulses, rounding up.
// Kept in integer milliseconds so 60s is exactly 100 pulses.
func SecondsToUnits(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return (seconds*1000 + pulseMillis - 1) / pulseMillis
}

// RemainingDisplaySeconds converts the timer's remaining pulses to whole
// seconds, rounding up and clamped at zero.
func RemainingDisplaySeconds(t *RegenTimer) int {
	if t.RemainingUnits <= 0 {
		return 0
	}
	return (t.RemainingUnits*pulseMillis + 999) / 1000
}

// IsUrgent reports whether seconds is within the green threshold.
func IsUrgent(seconds int) bool {
	return seconds <= GreenThresholdSeconds
}

// Displayable reports whether the timer has a countdown worth drawing.
// Idle and waiting timers have none.
func Displayable(t *RegenTimer) bool {
	return t.State == StateRunning || t.State == StatePausedDead
}

// Display is what the overlay draws above an NPC.
type Display struct {
	Seconds int
	Urgent  bool
}

// LookupDisplay returns the countdown for the NPC currently at index, or
// false if it has no binding, no timer, or nothing to show.
func (s *State) LookupDisplay(index int32) (Display, bool) {
	key, ok := s.Resolver.Lookup(index)
	if !ok || !key.Valid() {
		return Display{}, false
	}
	t, ok := s.Timers.Get(key)
	if !ok || !Displayable(t) {
		return Display{}, false
	}
	secs := RemainingDisplaySeconds(t)
	return Display{Seconds: secs, Urgent: IsUrgent(secs)}, true
}
