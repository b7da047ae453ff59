// Package tui manages the terminal screen for the demo front end.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes a new TUI instance.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tui: creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("tui: initializing screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault)
	return &TUI{screen: s}, nil
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes pending changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// SetCell draws a single rune with a style.
func (t *TUI) SetCell(x, y int, r rune, style tcell.Style) {
	t.screen.SetContent(x, y, r, nil, style)
}
