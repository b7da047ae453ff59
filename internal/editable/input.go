package editable

// InputKind identifies an input event delivered by the bound event source.
type InputKind int

const (
	KindUnknown InputKind = iota

	KindKeyDown  // Raw key went down; carries Key for deletion keys
	KindKeyPress // A character key was pressed, before the host mutates content
	KindKeyUp    // Key released
	KindClick    // Pointer click inside the element
	KindFocus    // Element gained focus
	KindBlur     // Element lost focus
	KindSelect   // Selection changed
	KindInput    // Content changed; fired after the host mutated the element
	KindPaste    // Paste requested
	KindCut      // Cut requested
)

// Key names the raw keys the controller cares about on key-down. Hosts do not
// reliably fire a content-changed signal for deletions, so back-delete and
// forward-delete are watched here and routed through the key-press path.
type Key int

const (
	KeyNone Key = iota
	KeyBackspace
	KeyDelete
)

// InputEvent is a single input event from the source. Hosts deliver KeyPress
// before applying the corresponding content mutation and Input after it, so
// the coalescing snapshot captures the pre-edit state.
type InputEvent struct {
	Kind InputKind
	Key  Key  // Set for KindKeyDown
	Rune rune // The typed character for KindKeyPress, when known
}

// Source is the external event source: it binds a fixed set of input-event
// types to a handler and supports full unbinding of everything bound.
type Source interface {
	Bind(handler func(InputEvent))
	Unbind()
}
