package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func snap(content string) Snapshot {
	return NewSnapshot(content, 0, 0)
}

func TestNewSnapshotNormalization(t *testing.T) {
	s := NewSnapshot("x", 5, 2)
	assert.Equal(t, 5, s.SelStart)
	assert.Equal(t, 5, s.SelEnd, "end below start collapses to start")

	s = NewSnapshot("x", -3, 7)
	assert.False(t, s.HasSelection())
	assert.Equal(t, NoSelection, s.SelEnd)

	s = NewSnapshot("x", 2, 6)
	assert.True(t, s.HasSelection())
	assert.Equal(t, 2, s.SelStart)
	assert.Equal(t, 6, s.SelEnd)
}

func TestEmptyStack(t *testing.T) {
	s := NewStack(10)
	assert.False(t, s.CanStepBack())
	assert.False(t, s.CanStepForward())

	_, ok := s.StepBack()
	assert.False(t, ok)
	_, ok = s.StepForward()
	assert.False(t, ok)
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestAddAndStep(t *testing.T) {
	s := NewStack(10)
	s.Add(snap("a"), AddOptions{})
	s.Add(snap("ab"), AddOptions{})
	s.Add(snap("abc"), AddOptions{})

	require.Equal(t, 3, s.Len())
	assert.True(t, s.CanStepBack())
	assert.False(t, s.CanStepForward())

	got, ok := s.StepBack()
	require.True(t, ok)
	assert.Equal(t, "ab", got.Content)

	got, ok = s.StepBack()
	require.True(t, ok)
	assert.Equal(t, "a", got.Content)

	_, ok = s.StepBack()
	assert.False(t, ok, "index at 0 cannot step back further")

	got, ok = s.StepForward()
	require.True(t, ok)
	assert.Equal(t, "ab", got.Content)
}

func TestAddTruncatesRedoPath(t *testing.T) {
	s := NewStack(10)
	s.Add(snap("a"), AddOptions{})
	s.Add(snap("b"), AddOptions{})
	s.Add(snap("c"), AddOptions{})

	_, ok := s.StepBack()
	require.True(t, ok)
	_, ok = s.StepBack()
	require.True(t, ok)

	s.Add(snap("d"), AddOptions{})
	assert.Equal(t, 2, s.Len(), "forward entries are discarded")

	_, ok = s.StepForward()
	assert.False(t, ok, "redo path is permanently lost")

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "d", got.Content)
}

func TestCapacityEviction(t *testing.T) {
	s := NewStack(3)
	for i := 0; i < 5; i++ {
		s.Add(snap(fmt.Sprintf("s%d", i)), AddOptions{})
	}
	assert.Equal(t, 3, s.Len())

	// Oldest entries were evicted: stepping back to the floor lands on s2.
	var last Snapshot
	for {
		got, ok := s.StepBack()
		if !ok {
			break
		}
		last = got
	}
	assert.Equal(t, "s2", last.Content)
}

func TestStayAddKeepsLiveStateRedoable(t *testing.T) {
	s := NewStack(10)
	s.Add(snap("a"), AddOptions{})
	s.Add(snap("ab"), AddOptions{})

	// Live state recorded just before the first undo of a sequence.
	s.Add(snap("ab-live"), AddOptions{Stay: true})

	got, ok := s.StepBack()
	require.True(t, ok)
	assert.Equal(t, "a", got.Content)

	got, ok = s.StepForward()
	require.True(t, ok)
	assert.Equal(t, "ab", got.Content)

	got, ok = s.StepForward()
	require.True(t, ok)
	assert.Equal(t, "ab-live", got.Content, "redo returns to the captured live state")
}

func TestSetCapacityEvictsImmediately(t *testing.T) {
	s := NewStack(10)
	for i := 0; i < 6; i++ {
		s.Add(snap(fmt.Sprintf("s%d", i)), AddOptions{})
	}
	s.SetCapacity(2)
	assert.Equal(t, 2, s.Len())

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "s5", got.Content, "cursor keeps its relative position")
}

func TestSeed(t *testing.T) {
	s := Seed([]Snapshot{snap("x"), snap("y")}, 10)
	assert.Equal(t, 2, s.Len())
	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "y", got.Content)
	assert.True(t, s.CanStepBack())
	assert.False(t, s.CanStepForward())
}

// Property: for any sequence of adds within capacity, k steps back followed by
// k steps forward returns to the original tail snapshot.
func TestStepRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "n")
		s := NewStack(100)
		for i := 0; i < n; i++ {
			s.Add(snap(fmt.Sprintf("s%d", i)), AddOptions{})
		}
		tail, ok := s.Current()
		require.True(t, ok)

		k := rapid.IntRange(0, n-1).Draw(t, "k")
		for i := 0; i < k; i++ {
			_, ok := s.StepBack()
			require.True(t, ok)
		}
		for i := 0; i < k; i++ {
			_, ok := s.StepForward()
			require.True(t, ok)
		}

		got, ok := s.Current()
		require.True(t, ok)
		require.Equal(t, tail, got)
	})
}

// Property: length never exceeds capacity, and undo/redo availability tracks
// the cursor index exactly.
func TestInvariantsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 20).Draw(t, "capacity")
		s := NewStack(capacity)

		ops := rapid.SliceOfN(rapid.IntRange(0, 2), 1, 100).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				s.Add(snap("c"), AddOptions{})
			case 1:
				s.StepBack()
			case 2:
				s.StepForward()
			}
			require.LessOrEqual(t, s.Len(), capacity)
		}
	})
}
