// Package event implements the typed notification bus the controller publishes to.
package event

import (
	"sync"

	"github.com/bethropolis/scribe/internal/logger"
)

// Handler is the function signature for subscribers. The return value reports
// whether the event was consumed; dispatch currently ignores it.
type Handler func(e Event) bool

// Manager handles subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new notification manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler for a specific notification type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
}

// Dispatch sends an event to all registered handlers for its type.
// Handlers run synchronously on the caller's goroutine.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	ev := Event{Type: eventType, Data: data}

	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	logger.Debugf("event: dispatching type %v to %d handler(s)", eventType, len(handlers))

	// Copy so a handler subscribing during dispatch cannot mutate the slice
	// under iteration.
	handlersCopy := make([]Handler, len(handlers))
	copy(handlersCopy, handlers)

	for _, handler := range handlersCopy {
		handler(ev)
	}
}
