package event

import "sync"

// Bus is a double-buffered event queue. Events emitted during pulse N are
// delivered at the start of pulse N+1, in emission order. SwapBuffers() is
// called at pulse start by InputSystem.
type Bus struct {
	mu    sync.Mutex // protects back; hosts may emit from their own goroutine
	front []Event
	back  []Event
}

func NewBus() *Bus {
	return &Bus{
		front: make([]Event, 0, 64),
		back:  make([]Event, 0, 64),
	}
}

// Emit queues an event into the back buffer (delivered next pulse).
func (b *Bus) Emit(ev Event) {
	b.mu.Lock()
	b.back = append(b.back, ev)
	b.mu.Unlock()
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.mu.Lock()
	b.front, b.back = b.back, b.front[:0]
	b.mu.Unlock()
}

// Drain delivers every front-buffer event to fn and empties the front buffer.
// Game loop goroutine only.
func (b *Bus) Drain(fn func(Event)) int {
	n := len(b.front)
	for _, ev := range b.front {
		fn(ev)
	}
	clear(b.front)
	b.front = b.front[:0]
	return n
}

// Pending returns the number of events waiting for the next swap.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.back)
}

// Reset drops everything queued in both buffers.
func (b *Bus) Reset() {
	b.mu.Lock()
	clear(b.back)
	b.back = b.back[:0]
	b.mu.Unlock()
	clear(b.front)
	b.front = b.front[:0]
}
