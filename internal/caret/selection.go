package caret

import "sync"

// SelectionProvider is the host selection facility: it exposes the live
// caret/selection range for the codec to read and set.
type SelectionProvider interface {
	// Current returns the live range; ok is false when no selection exists.
	Current() (Range, bool)
	// Set replaces the live range.
	Set(rng Range)
	// Clear removes the selection entirely.
	Clear()
}

// DocSelection is an in-memory SelectionProvider covering a single document.
// The terminal front end and tests use it in place of a browser selection.
type DocSelection struct {
	mu  sync.Mutex
	rng Range
	has bool
}

// NewDocSelection creates an empty selection.
func NewDocSelection() *DocSelection {
	return &DocSelection{}
}

// Current returns the live range, if any.
func (s *DocSelection) Current() (Range, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng, s.has
}

// Set replaces the live range.
func (s *DocSelection) Set(rng Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rng
	s.has = rng.StartNode != nil
}

// Clear removes the selection.
func (s *DocSelection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = Range{}
	s.has = false
}
