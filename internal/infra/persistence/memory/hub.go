package memory

import "sync"

// hub wakes every subscriber of a collection after a write. Signals coalesce:
// a subscriber re-reads the full result set, so one pending wake-up is enough.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan struct{})}
}

func (h *hub) subscribe() (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan struct{}, 1)
	h.subs[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

func (h *hub) broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs)
}
