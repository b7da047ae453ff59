package history

import (
	"sync"

	"github.com/bethropolis/scribe/internal/logger"
)

// DefaultCapacity bounds the stack when no capacity is configured.
const DefaultCapacity = 100

// AddOptions controls how a snapshot is appended.
type AddOptions struct {
	// Stay appends without advancing the cursor index past its current
	// position. Used to preserve redo-ability when capturing the live,
	// not-yet-recorded state just before the first undo of a sequence: the
	// appended snapshot stays ahead of the cursor and remains reachable by
	// stepping forward.
	Stay bool
}

// Stack is a bounded ordered sequence of snapshots with a cursor index. The
// state is purely the (sequence, index) pair.
type Stack struct {
	mu       sync.Mutex
	snaps    []Snapshot
	index    int // index of the current snapshot; -1 when empty
	capacity int
}

// NewStack creates an empty stack with the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{
		snaps:    make([]Snapshot, 0, capacity),
		index:    -1,
		capacity: capacity,
	}
}

// Seed creates a stack pre-populated from a caller-provided sequence, with the
// cursor at the tail.
func Seed(snaps []Snapshot, capacity int) *Stack {
	s := NewStack(capacity)
	s.snaps = append(s.snaps, snaps...)
	s.index = len(s.snaps) - 1
	s.evictLocked()
	return s
}

// Add appends a snapshot. If the cursor is not at the tail, everything after
// it is truncated first: a new branch permanently invalidates the redo path.
func (s *Stack) Add(snap Snapshot, opts AddOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Truncate the redo path when the cursor sits before the tail.
	if s.index < len(s.snaps)-1 {
		s.snaps = s.snaps[:s.index+1]
	}

	s.snaps = append(s.snaps, snap)
	if !opts.Stay {
		s.index = len(s.snaps) - 1
	} else if s.index < 0 {
		// A Stay add into an empty stack still needs a valid cursor.
		s.index = 0
	}

	s.evictLocked()

	logger.Debugf("history: added snapshot (stay=%v). index=%d count=%d", opts.Stay, s.index, len(s.snaps))
}

// evictLocked drops the oldest entries when over capacity, shifting the cursor
// down by the eviction count so its relative position is preserved.
func (s *Stack) evictLocked() {
	if len(s.snaps) <= s.capacity {
		return
	}
	evicted := len(s.snaps) - s.capacity
	s.snaps = s.snaps[evicted:]
	s.index -= evicted
	if s.index < 0 {
		s.index = 0
	}
}

// StepBack moves the cursor one snapshot back and returns it. ok is false
// when no earlier snapshot exists; the cursor is left unchanged.
func (s *Stack) StepBack() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index <= 0 {
		return Snapshot{}, false
	}
	s.index--
	logger.Debugf("history: stepped back to index %d", s.index)
	return s.snaps[s.index], true
}

// StepForward moves the cursor one snapshot forward and returns it. ok is
// false when no later snapshot exists.
func (s *Stack) StepForward() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index >= len(s.snaps)-1 {
		return Snapshot{}, false
	}
	s.index++
	logger.Debugf("history: stepped forward to index %d", s.index)
	return s.snaps[s.index], true
}

// SetCapacity updates the bound and evicts immediately when the stack already
// exceeds it.
func (s *Stack) SetCapacity(n int) {
	if n <= 0 {
		n = DefaultCapacity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capacity = n
	s.evictLocked()
}

// CanStepBack reports whether an earlier snapshot exists.
func (s *Stack) CanStepBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index > 0
}

// CanStepForward reports whether a later snapshot exists.
func (s *Stack) CanStepForward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index < len(s.snaps)-1
}

// Len returns the number of retained snapshots.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snaps)
}

// Current returns the snapshot under the cursor.
func (s *Stack) Current() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < 0 || s.index >= len(s.snaps) {
		return Snapshot{}, false
	}
	return s.snaps[s.index], true
}

// Clear resets the stack.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = s.snaps[:0]
	s.index = -1
}
