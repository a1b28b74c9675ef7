package world

import "github.com/l1jgo/regentimer/internal/core/ecs"

// SpawnKey identifies one spawn slot: NPC kind, plane and spawn tile packed
// into a single uint64. Zero is the "no identity" sentinel.
//
// Layout (MSB → LSB):
//
//	63..48  kind id  (16 bits)
//	47..46  plane    (2 bits)
//	45..32  tile x   (14 bits)
//	31..18  tile y   (14 bits)
//	17..0   unused
//
// Tiles collide modulo 16384; only NPCs loaded at the same time need
// distinct keys.
type SpawnKey uint64

const (
	kindBits  = 16
	planeBits = 2
	tileBits  = 14

	kindShift  = 48
	planeShift = 46
	xShift     = 32
	yShift     = 18

	kindMask  = 1<<kindBits - 1
	planeMask = 1<<planeBits - 1
	tileMask  = 1<<tileBits - 1
)

// Valid reports whether k is a real identity rather than the sentinel.
func (k SpawnKey) Valid() bool { return k != 0 }

func (k SpawnKey) KindID() int32 { return int32(uint64(k) >> kindShift & kindMask) }
func (k SpawnKey) Plane() int    { return int(uint64(k) >> planeShift & planeMask) }
func (k SpawnKey) TileX() int32  { return int32(uint64(k) >> xShift & tileMask) }
func (k SpawnKey) TileY() int32  { return int32(uint64(k) >> yShift & tileMask) }

// Position is a world tile. Known is false when the host could not report a
// location (entity not yet placed, or already despawned).
type Position struct {
	X     int32
	Y     int32
	Known bool
}

// At builds a known position.
func At(x, y int32) Position { return Position{X: x, Y: y, Known: true} }

// MakeSpawnKey derives the persistent key for an entity first observed at pos.
// Unknown positions yield the zero sentinel.
func MakeSpawnKey(kindID int32, plane int, pos Position) SpawnKey {
	if !pos.Known {
		return 0
	}
	var k uint64
	k |= uint64(uint32(kindID)&kindMask) << kindShift
	k |= uint64(uint32(plane)&planeMask) << planeShift
	k |= uint64(uint32(pos.X)&tileMask) << xShift
	k |= uint64(uint32(pos.Y)&tileMask) << yShift
	return SpawnKey(k)
}

// binding is the index → key association for one entity lifetime.
type binding struct {
	key      SpawnKey
	lastSeen int // pulse of the last Resolve/Bind/Touch
}

// Resolver maps the host's ephemeral NPC index to the spawn key computed the
// first time that index was seen. The key is never recomputed while the
// binding lives, so a timer follows an NPC that wanders off its spawn tile.
// Accessed only from the game loop goroutine — no locks needed.
type Resolver struct {
	bindings *ecs.PtrComponentStore[int32, binding]
}

func NewResolver() *Resolver {
	return &Resolver{bindings: ecs.NewPtrComponentStore[int32, binding](256)}
}

// Resolve returns the key bound to index, binding a freshly derived key if
// there is none. An existing binding is never replaced, even when the entity
// moved or reports another kind. The sentinel is returned but never bound, so
// a later observation with a known position can still bind the index.
func (r *Resolver) Resolve(index, kindID int32, plane int, pos Position, pulse int) SpawnKey {
	if b, ok := r.bindings.Get(index); ok {
		b.lastSeen = pulse
		return b.key
	}
	key := MakeSpawnKey(kindID, plane, pos)
	if !key.Valid() {
		return key
	}
	r.bindings.Set(index, &binding{key: key, lastSeen: pulse})
	return key
}

// Bind starts a new lifetime for index: the key is derived from the spawn
// position and replaces any earlier binding. A spawn without a known position
// only drops the old binding.
func (r *Resolver) Bind(index, kindID int32, plane int, pos Position, pulse int) SpawnKey {
	key := MakeSpawnKey(kindID, plane, pos)
	if !key.Valid() {
		r.Unbind(index)
		return key
	}
	r.bindings.Set(index, &binding{key: key, lastSeen: pulse})
	return key
}

// Lookup returns the key bound to index without creating a binding.
func (r *Resolver) Lookup(index int32) (SpawnKey, bool) {
	b, ok := r.bindings.Get(index)
	if !ok {
		return 0, false
	}
	return b.key, true
}

// Touch marks index as observed at pulse. Unbound indices are ignored.
func (r *Resolver) Touch(index int32, pulse int) {
	if b, ok := r.bindings.Get(index); ok {
		b.lastSeen = pulse
	}
}

// Unbind forgets index. The timer for its key is left alone.
func (r *Resolver) Unbind(index int32) {
	r.bindings.Remove(index)
}

// Sweep unbinds every index not observed for more than unseen pulses and
// returns how many were dropped.
func (r *Resolver) Sweep(pulse, unseen int) int {
	return r.bindings.RemoveIf(func(_ int32, b *binding) bool {
		return pulse-b.lastSeen > unseen
	})
}

func (r *Resolver) Len() int { return r.bindings.Len() }

func (r *Resolver) Reset() { r.bindings.Clear() }
