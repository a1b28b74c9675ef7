package host

import (
	"context"
	"time"

	"github.com/l1jgo/regentimer/internal/core/event"
	"github.com/l1jgo/regentimer/internal/data"
	"github.com/l1jgo/regentimer/internal/world"
)

// Frame is everything the host reports for one pulse: the notifications
// that arrived since the previous pulse and the NPC list sampled on it.
type Frame struct {
	Events  []event.Event
	Visible []Entity
}

// Replay iterates a recorded scenario frame by frame.
type Replay struct {
	scenario *data.Scenario
	entry    int // index into scenario.Pulses
	repeat   int // pulses already played from the current entry
}

func NewReplay(s *data.Scenario) *Replay {
	return &Replay{scenario: s}
}

// Next returns the frame for the next pulse, or false once the scenario is
// exhausted. Repeated pulses share the visible list and carry no events.
func (r *Replay) Next() (Frame, bool) {
	if r.entry >= len(r.scenario.Pulses) {
		return Frame{}, false
	}
	p := &r.scenario.Pulses[r.entry]
	var f Frame
	if r.repeat == 0 {
		f.Events = make([]event.Event, 0, len(p.Events))
		for _, ev := range p.Events {
			f.Events = append(f.Events, toEvent(ev))
		}
	}
	f.Visible = make([]Entity, 0, len(p.Visible))
	for _, e := range p.Visible {
		f.Visible = append(f.Visible, toEntity(e))
	}
	r.repeat++
	if r.repeat >= max(1, p.Repeat) {
		r.entry++
		r.repeat = 0
	}
	return f, true
}

// Stream sends every frame of r to out, one per rate (as fast as the
// receiver accepts when rate is 0), then closes out.
func Stream(ctx context.Context, r *Replay, rate time.Duration, out chan<- Frame) error {
	defer close(out)

	var tick <-chan time.Time
	if rate > 0 {
		t := time.NewTicker(rate)
		defer t.Stop()
		tick = t.C
	}
	for {
		f, ok := r.Next()
		if !ok {
			return nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- f:
		}
	}
}

// Feed is the game-loop side of a host: Apply queues a frame's events on
// the bus and exposes its NPC list until the next Apply.
type Feed struct {
	bus     *event.Bus
	visible []Entity
}

func NewFeed(bus *event.Bus) *Feed {
	return &Feed{bus: bus}
}

func (f *Feed) Apply(fr Frame) {
	for _, ev := range fr.Events {
		f.bus.Emit(ev)
	}
	f.visible = fr.Visible
}

func (f *Feed) VisibleEntities() []Entity { return f.visible }

func toEntity(e data.EntityEntry) Entity {
	return Entity{
		Index:       e.Index,
		KindID:      e.NpcID,
		Plane:       e.Plane,
		Pos:         toPosition(e),
		HealthRatio: toRatio(e),
	}
}

func toEvent(ev data.EventEntry) event.Event {
	e := ev.EntityEntry
	switch ev.Kind {
	case data.KindDamaged:
		return event.NpcDamaged{
			Tracked: ev.Tracked(), Index: e.Index, KindID: e.NpcID, Plane: e.Plane,
			Pos: toPosition(e), HealthRatio: toRatio(e), Amount: ev.Amount,
		}
	case data.KindDied:
		return event.NpcDied{
			Tracked: ev.Tracked(), Index: e.Index, KindID: e.NpcID, Plane: e.Plane,
			Pos: toPosition(e),
		}
	default: // data.KindSpawned; Validate rejects anything else
		return event.NpcSpawned{
			Index: e.Index, KindID: e.NpcID, Plane: e.Plane,
			Pos: toPosition(e), HealthRatio: toRatio(e),
		}
	}
}

func toPosition(e data.EntityEntry) world.Position {
	if e.X == nil || e.Y == nil {
		return world.Position{}
	}
	return world.At(*e.X, *e.Y)
}

func toRatio(e data.EntityEntry) int {
	if e.HealthRatio == nil {
		return world.HealthUnknown
	}
	return *e.HealthRatio
}
