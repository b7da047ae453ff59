package event

// Type identifies the kind of notification.
type Type int

// Notifications emitted by the editable controller.
const (
	TypeUnknown Type = iota

	TypeEnable       // Editing was enabled on the bound element
	TypeDisable      // Editing was disabled
	TypeChange       // Content or caret changed
	TypeState        // Command/undo/redo state may have changed
	TypeSave         // Debounced autosave fired; carries the serialized content
	TypeAddToHistory // A snapshot was pushed onto the history stack
	TypeSelection    // The selection changed
)

// Event is the structure passed through the notification bus.
type Event struct {
	Type Type
	Data interface{}
}

// SaveData carries the serialized content handed to save listeners.
type SaveData struct {
	Content string
}

// ChangeData carries the serialized content after a change.
type ChangeData struct {
	Content string
}

// AddToHistoryData describes the snapshot that was recorded.
type AddToHistoryData struct {
	Content  string
	SelStart int
	SelEnd   int
}

// StateData reports undo/redo availability at emit time.
type StateData struct {
	CanUndo bool
	CanRedo bool
}
