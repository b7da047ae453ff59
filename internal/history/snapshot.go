// Package history provides the bounded undo/redo stack of content snapshots.
package history

// NoSelection marks an absent selection offset in a snapshot.
const NoSelection = -1

// Snapshot records editor state at one point in time: the serialized content
// of the editable region plus the caret/selection as grapheme offsets into its
// flattened text. Immutable once created.
type Snapshot struct {
	Content  string
	SelStart int
	SelEnd   int
}

// NewSnapshot builds a snapshot, normalizing the selection offsets so that
// SelEnd >= SelStart and a collapsed caret carries equal offsets.
func NewSnapshot(content string, selStart, selEnd int) Snapshot {
	if selStart < 0 {
		selStart, selEnd = NoSelection, NoSelection
	} else if selEnd < selStart {
		selEnd = selStart
	}
	return Snapshot{Content: content, SelStart: selStart, SelEnd: selEnd}
}

// HasSelection reports whether the snapshot carries caret information.
func (s Snapshot) HasSelection() bool {
	return s.SelStart != NoSelection
}
