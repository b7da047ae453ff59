package tui

import (
	"sync"

	"github.com/bethropolis/scribe/internal/editable"
)

// InputSource adapts the polled tcell event loop to the controller's bound
// event source. The application loop translates tcell events and emits them
// here; the controller binds and unbinds its handler through the
// editable.Source interface.
type InputSource struct {
	mu      sync.Mutex
	handler func(editable.InputEvent)
}

// NewInputSource creates an unbound source.
func NewInputSource() *InputSource {
	return &InputSource{}
}

// Bind attaches the handler all emitted events are delivered to.
func (s *InputSource) Bind(handler func(editable.InputEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

// Unbind detaches everything previously bound.
func (s *InputSource) Unbind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = nil
}

// Emit delivers an input event to the bound handler, if any.
func (s *InputSource) Emit(ev editable.InputEvent) {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler != nil {
		handler(ev)
	}
}
