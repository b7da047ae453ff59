// Package clipboard implements cut/copy/paste for an editable fragment,
// backed by the system clipboard.
package clipboard

import (
	"fmt"

	sysclip "github.com/atotto/clipboard"
	"github.com/bethropolis/scribe/internal/caret"
	"github.com/bethropolis/scribe/internal/dom"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/utils"
	"golang.org/x/net/html"
)

// Manager handles clipboard operations against a bound fragment.
type Manager struct {
	root *html.Node
	sel  caret.SelectionProvider

	// Seams over the system clipboard so tests can run headless.
	readAll  func() (string, error)
	writeAll func(string) error
}

// NewManager creates a clipboard manager for the given fragment and selection.
func NewManager(root *html.Node, sel caret.SelectionProvider) *Manager {
	return &Manager{
		root:     root,
		sel:      sel,
		readAll:  sysclip.ReadAll,
		writeAll: sysclip.WriteAll,
	}
}

// SetBackend replaces the clipboard read/write functions. Embedding hosts can
// route to their own clipboard; tests use it to run headless.
func (m *Manager) SetBackend(read func() (string, error), write func(string) error) {
	if read != nil {
		m.readAll = read
	}
	if write != nil {
		m.writeAll = write
	}
}

// selectedOffsets resolves the current selection into global offsets.
func (m *Manager) selectedOffsets() (start, end int, ok bool) {
	rng, ok := m.sel.Current()
	if !ok {
		return 0, 0, false
	}
	start, end, ok = caret.Capture(m.root, rng)
	if !ok || start == end {
		return 0, 0, false
	}
	return start, end, true
}

// Copy places the selected flattened text on the clipboard.
func (m *Manager) Copy() (bool, error) {
	start, end, ok := m.selectedOffsets()
	if !ok {
		return false, nil
	}
	text := selectionText(m.root, start, end)
	if err := m.writeAll(text); err != nil {
		return false, fmt.Errorf("clipboard: write failed: %w", err)
	}
	logger.Debugf("clipboard: copied %d graphemes", end-start)
	return true, nil
}

// Cut copies the selected text, deletes the range from the fragment and
// collapses the selection at the deletion point.
func (m *Manager) Cut() (bool, error) {
	start, end, ok := m.selectedOffsets()
	if !ok {
		return false, nil
	}
	text := selectionText(m.root, start, end)
	if err := m.writeAll(text); err != nil {
		return false, fmt.Errorf("clipboard: write failed: %w", err)
	}
	dom.DeleteRange(m.root, start, end)
	if rng, ok := caret.Restore(m.root, start, start); ok {
		m.sel.Set(rng)
	} else {
		m.sel.Clear()
	}
	logger.Debugf("clipboard: cut %d graphemes", end-start)
	return true, nil
}

// Paste inserts the clipboard content at the caret, replacing any active
// selection first. The caret ends up after the pasted text.
func (m *Manager) Paste() (bool, error) {
	content, err := m.readAll()
	if err != nil {
		return false, fmt.Errorf("clipboard: read failed: %w", err)
	}
	if content == "" {
		return false, nil
	}

	rng, ok := m.sel.Current()
	if !ok {
		return false, nil
	}
	start, end, ok := caret.Capture(m.root, rng)
	if !ok {
		return false, nil
	}

	if end > start {
		dom.DeleteRange(m.root, start, end)
	}
	if !dom.InsertText(m.root, start, content) {
		return false, nil
	}

	after := start + utils.GraphemeCount(content)
	if rng, ok := caret.Restore(m.root, after, after); ok {
		m.sel.Set(rng)
	}
	logger.Debugf("clipboard: pasted %d bytes", len(content))
	return true, nil
}

func selectionText(root *html.Node, start, end int) string {
	return utils.SliceGraphemes(dom.FlatText(root), start, end)
}
