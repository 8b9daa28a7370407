// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/pixie/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed; Dispatch stops there.
type Handler func(e Event) bool

// SubscriptionID identifies a subscription for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	nextID   SubscriptionID
	handlers map[Type][]subscription
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe adds a handler for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++ // IDs start at 1; zero is never handed out
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: m.nextID, handler: handler})
	logger.DebugTagf("event", "Handler %d subscribed to %v", m.nextID, eventType)
	return m.nextID
}

// Unsubscribe removes a handler. Unknown ids are ignored.
func (m *Manager) Unsubscribe(id SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for t, subs := range m.handlers {
		for i, s := range subs {
			if s.id == id {
				// Full slice expression so a dispatch holding the old
				// slice never sees it rewritten.
				m.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch sends an event to all handlers registered for its type,
// synchronously and in subscription order.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	e := Event{Type: eventType, Data: data}

	m.mu.RLock()
	// Copy so a handler may unsubscribe itself during dispatch.
	subs := make([]subscription, len(m.handlers[eventType]))
	copy(subs, m.handlers[eventType])
	m.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	logger.DebugTagf("event", "Dispatching %v to %d handler(s)", eventType, len(subs))
	for _, s := range subs {
		if s.handler(e) {
			// Handler consumed the event; later subscribers don't see it.
			break
		}
	}
}
