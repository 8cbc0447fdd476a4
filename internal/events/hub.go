package events

import (
	"context"
	"sync"
)

// Handler is a subscriber callback. Handlers run synchronously on the
// publisher's goroutine, so they must only schedule work, never block on it.
type Handler func(ctx context.Context, ev Event)

// Hub is the registration table from event kind to subscriber callbacks.
// It is populated during an explicit startup phase; nothing subscribes as a
// side effect of package import.
type Hub struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]Handler
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[int]Handler),
	}
}

// Subscribe registers fn for one event kind and returns its teardown func.
func (h *Hub) Subscribe(kind string, fn Handler) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[kind] == nil {
		h.subs[kind] = make(map[int]Handler)
	}
	id := h.next
	h.next++
	h.subs[kind][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[kind], id)
	}
}

// Publish invokes every handler subscribed to ev.Type. Handler panics are
// not recovered; a subscriber that can fail must guard itself.
func (h *Hub) Publish(ctx context.Context, ev Event) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs[ev.Type]))
	for _, fn := range h.subs[ev.Type] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(ctx, ev)
	}
}

// Reset drops every subscription. Tests use it as an explicit teardown step.
func (h *Hub) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = make(map[string]map[int]Handler)
}

func (h *Hub) SubscriberCount(kind string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[kind])
}
