// Package app wires the editable controller, the fragment tree and the
// terminal front end into a running editing session.
package app

import (
	"fmt"
	"os"
	"sync"

	"github.com/bethropolis/scribe/internal/caret"
	"github.com/bethropolis/scribe/internal/config"
	"github.com/bethropolis/scribe/internal/dom"
	"github.com/bethropolis/scribe/internal/editable"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/tui"
	"github.com/bethropolis/scribe/internal/utils"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/net/html"
)

const defaultMarkup = "<p>Start typing.</p>"

// App owns the editing session state.
type App struct {
	cfg      *config.Config
	filePath string

	root   *html.Node
	sel    *caret.DocSelection
	ctrl   *editable.Controller
	source *tui.InputSource
	screen *tui.TUI

	// caretPos and anchor are global grapheme offsets into the flattened
	// text; anchor < 0 means no selection is being extended.
	caretPos int
	anchor   int

	// status is written by notification handlers, which the autosave timer
	// goroutine may run, and read by the drawing loop.
	statusMu sync.Mutex
	status   string
}

// NewApp loads the fragment and builds the controller.
func NewApp(filePath string, cfg *config.Config) (*App, error) {
	markup := defaultMarkup
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			markup = string(data)
		case os.IsNotExist(err):
			logger.Infof("app: %s does not exist yet, starting empty", filePath)
		default:
			return nil, fmt.Errorf("app: reading %s: %w", filePath, err)
		}
	}

	root, err := dom.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("app: parsing fragment: %w", err)
	}

	sel := caret.NewDocSelection()
	ctrl, err := editable.New(root, sel, editable.Options{
		Capacity:      cfg.Editor.HistoryCapacity,
		AutosaveDelay: cfg.Editor.ParsedAutosaveDelay(),
		SaveOnCommand: cfg.Editor.SaveOnCommand,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		filePath: filePath,
		root:     root,
		sel:      sel,
		ctrl:     ctrl,
		source:   tui.NewInputSource(),
		anchor:   -1,
	}
	ctrl.SetSource(a.source)

	ctrl.Events().Subscribe(event.TypeSave, a.handleSave)
	ctrl.Events().Subscribe(event.TypeState, a.handleState)

	// Seed history with the loaded state so the first edit can be undone.
	a.setCaret(0)
	ctrl.AddToHistory()
	ctrl.Enable()
	return a, nil
}

// handleSave persists the serialized content on autosave notifications.
func (a *App) handleSave(e event.Event) bool {
	if a.filePath == "" {
		return false
	}
	data, ok := e.Data.(event.SaveData)
	if !ok {
		return false
	}
	if err := os.WriteFile(a.filePath, []byte(data.Content), 0o644); err != nil {
		logger.Errorf("app: autosave to %s failed: %v", a.filePath, err)
		a.setStatus("autosave failed")
		return false
	}
	logger.Debugf("app: autosaved %d bytes to %s", len(data.Content), a.filePath)
	a.setStatus("saved")
	return false
}

// handleState refreshes the status line with undo/redo availability.
func (a *App) handleState(e event.Event) bool {
	if data, ok := e.Data.(event.StateData); ok {
		a.setStatus(fmt.Sprintf("undo:%v redo:%v", data.CanUndo, data.CanRedo))
	}
	return false
}

func (a *App) setStatus(s string) {
	a.statusMu.Lock()
	a.status = s
	a.statusMu.Unlock()
}

func (a *App) currentStatus() string {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	return a.status
}

// Run drives the terminal event loop until quit.
func (a *App) Run() error {
	screen, err := tui.New()
	if err != nil {
		return err
	}
	a.screen = screen
	defer screen.Close()

	for {
		a.draw()
		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventResize:
			continue
		case *tcell.EventKey:
			if quit := a.handleKey(tev); quit {
				return nil
			}
		}
	}
}

// handleKey translates a tcell key event into controller input events and
// host-side content mutations. Returns true to quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		return true

	case tcell.KeyCtrlZ:
		a.ctrl.Undo()
		a.syncCaretFromSelection()

	case tcell.KeyCtrlY:
		a.ctrl.Redo()
		a.syncCaretFromSelection()

	case tcell.KeyCtrlB:
		a.ctrl.Execute("bold", "")
		a.syncCaretFromSelection()

	case tcell.KeyCtrlU:
		a.ctrl.Execute("underline", "")
		a.syncCaretFromSelection()

	case tcell.KeyCtrlV:
		a.source.Emit(editable.InputEvent{Kind: editable.KindPaste})
		a.syncCaretFromSelection()
		a.source.Emit(editable.InputEvent{Kind: editable.KindInput})

	case tcell.KeyCtrlX:
		a.source.Emit(editable.InputEvent{Kind: editable.KindCut})
		a.syncCaretFromSelection()
		a.source.Emit(editable.InputEvent{Kind: editable.KindInput})

	case tcell.KeyCtrlE:
		a.ctrl.Toggle()

	case tcell.KeyLeft:
		a.moveCaret(-1, ev.Modifiers()&tcell.ModShift != 0)

	case tcell.KeyRight:
		a.moveCaret(1, ev.Modifiers()&tcell.ModShift != 0)

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.source.Emit(editable.InputEvent{Kind: editable.KindKeyDown, Key: editable.KeyBackspace})
		a.deleteAtCaret(-1)

	case tcell.KeyDelete:
		a.source.Emit(editable.InputEvent{Kind: editable.KindKeyDown, Key: editable.KeyDelete})
		a.deleteAtCaret(1)

	case tcell.KeyEnter:
		a.typeText("\n")

	case tcell.KeyRune:
		a.typeText(string(ev.Rune()))
	}
	return false
}

// typeText runs the host side of a key press: key-press event first, then the
// mutation, then the content-changed signal.
func (a *App) typeText(s string) {
	r := []rune(s)
	var first rune
	if len(r) > 0 {
		first = r[0]
	}
	a.source.Emit(editable.InputEvent{Kind: editable.KindKeyPress, Rune: first})

	if dom.InsertText(a.root, a.caretPos, s) {
		a.setCaret(a.caretPos + utils.GraphemeCount(s))
		a.source.Emit(editable.InputEvent{Kind: editable.KindInput})
	}
}

// deleteAtCaret removes the selection, or one grapheme before/after the caret.
func (a *App) deleteAtCaret(dir int) {
	start, end := a.caretPos, a.caretPos
	if a.anchor >= 0 && a.anchor != a.caretPos {
		start, end = a.anchor, a.caretPos
		if start > end {
			start, end = end, start
		}
	} else if dir < 0 {
		start = a.caretPos - 1
	} else {
		end = a.caretPos + 1
	}
	if start < 0 {
		start = 0
	}

	if dom.DeleteRange(a.root, start, end) {
		a.anchor = -1
		a.setCaret(start)
		a.source.Emit(editable.InputEvent{Kind: editable.KindInput})
	}
}

// moveCaret shifts the caret, optionally extending a selection.
func (a *App) moveCaret(delta int, extend bool) {
	if extend && a.anchor < 0 {
		a.anchor = a.caretPos
	}
	if !extend {
		a.anchor = -1
	}

	pos := a.caretPos + delta
	if pos < 0 {
		pos = 0
	}
	if max := dom.FlatLen(a.root); pos > max {
		pos = max
	}
	a.setCaret(pos)
	a.source.Emit(editable.InputEvent{Kind: editable.KindSelect})
}

// setCaret places the live selection at the given offsets.
func (a *App) setCaret(pos int) {
	a.caretPos = pos
	start, end := pos, pos
	if a.anchor >= 0 {
		start, end = a.anchor, pos
		if start > end {
			start, end = end, start
		}
	}
	if rng, ok := caret.Restore(a.root, start, end); ok {
		a.sel.Set(rng)
	} else {
		a.sel.Clear()
	}
}

// syncCaretFromSelection re-derives the linear caret position after the
// controller moved the selection (undo/redo/paste/format).
func (a *App) syncCaretFromSelection() {
	rng, ok := a.sel.Current()
	if !ok {
		return
	}
	if _, end, ok := caret.Capture(a.root, rng); ok {
		a.caretPos = end
		a.anchor = -1
	}
}

// draw renders the flattened text, the selection and the status line.
func (a *App) draw() {
	a.screen.Clear()

	selStart, selEnd := a.caretPos, a.caretPos
	if rng, ok := a.sel.Current(); ok {
		if s, e, ok := caret.Capture(a.root, rng); ok {
			selStart, selEnd = s, e
		}
	}

	a.screen.DrawText(dom.FlatText(a.root), selStart, selEnd)

	state := "editing"
	if !a.ctrl.Enabled() {
		state = "read-only"
	}
	name := a.filePath
	if name == "" {
		name = "[no file]"
	}
	a.screen.DrawStatus(fmt.Sprintf(" %s | %s | %s ", name, state, a.currentStatus()))
	a.screen.Show()
}
