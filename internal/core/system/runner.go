package system

import (
	"cmp"
	"slices"
	"time"
)

// Runner executes systems in phase order each pulse. Systems sharing a phase
// keep their registration order, which decides which of them sees the
// other's writes first within a pulse: an Update system registered after
// Regen reads the countdown Regen just advanced.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

// Register adds s. Order is resolved lazily on the next Tick.
func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs one pulse: every registered system, once, with dt.
func (r *Runner) Tick(dt time.Duration) {
	if !r.sorted {
		slices.SortStableFunc(r.systems, func(a, b System) int {
			return cmp.Compare(a.Phase(), b.Phase())
		})
		r.sorted = true
	}
	for _, s := range r.systems {
		s.Update(dt)
	}
}
