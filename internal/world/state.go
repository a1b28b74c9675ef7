package world

// State is the in-memory tracking state for one session. It owns the index
// resolver, the timer store and the pulse counter.
// Accessed only from the game loop goroutine — no locks needed.
type State struct {
	Resolver *Resolver
	Timers   *TimerStore

	pulse int
}

func NewState() *State {
	return &State{
		Resolver: NewResolver(),
		Timers:   NewTimerStore(),
	}
}

// Pulse returns the number of pulses simulated since the last reset.
func (s *State) Pulse() int { return s.pulse }

// AdvancePulse increments the pulse counter and returns the new value.
func (s *State) AdvancePulse() int {
	s.pulse++
	return s.pulse
}

// Resolve binds (or looks up) index using the current pulse.
func (s *State) Resolve(index, kindID int32, plane int, pos Position) SpawnKey {
	return s.Resolver.Resolve(index, kindID, plane, pos, s.pulse)
}

// Bind rebinds index for a fresh spawn using the current pulse.
func (s *State) Bind(index, kindID int32, plane int, pos Position) SpawnKey {
	return s.Resolver.Bind(index, kindID, plane, pos, s.pulse)
}

// Reset clears every binding and timer and rewinds the pulse counter.
// Called on session start and stop.
func (s *State) Reset() {
	s.Resolver.Reset()
	s.Timers.Reset()
	s.pulse = 0
}
