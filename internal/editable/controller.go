// Package editable orchestrates in-place editing of a single element: it
// translates raw input events into history operations and exposes
// undo/redo/content/command operations with notifications.
package editable

import (
	"errors"
	"sync"
	"time"

	"github.com/bethropolis/scribe/internal/caret"
	"github.com/bethropolis/scribe/internal/clipboard"
	"github.com/bethropolis/scribe/internal/command"
	"github.com/bethropolis/scribe/internal/dom"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/history"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/utils"
	"golang.org/x/net/html"
)

// DefaultAutosaveDelay is the idle window after the last content change
// before a save notification fires.
const DefaultAutosaveDelay = 500 * time.Millisecond

// ErrNoElement is returned when no target element is supplied.
var ErrNoElement = errors.New("editable: no target element")

// Options configures a controller at construction.
type Options struct {
	// Capacity bounds the history stack. Zero means history.DefaultCapacity.
	Capacity int

	// AutosaveDelay is the debounce idle window. Zero means the default.
	AutosaveDelay time.Duration

	// SaveOnCommand makes Execute, paste and cut emit a save notification
	// immediately, in addition to the debounced autosave. Both behaviors were
	// observed in the wild; the policy is configurable rather than fixed.
	SaveOnCommand bool

	// Seed pre-populates the history stack.
	Seed []history.Snapshot
}

// Controller binds an editable element to history, caret tracking, commands
// and autosave. The element is borrowed: the controller mutates its content
// and editable attribute but does not manage its existence.
type Controller struct {
	mu     sync.Mutex
	root   *html.Node
	sel    caret.SelectionProvider
	cmd    command.Commander
	clip   *clipboard.Manager
	stack  *history.Stack
	events *event.Manager
	source Source

	saver         utils.Debouncer
	autosaveDelay time.Duration
	saveOnCommand bool

	enabled bool

	// recorded marks that a snapshot was already taken for the current burst
	// of input; cleared when the autosave debouncer fires.
	recorded bool

	// freshUndo marks that the next undo starts a fresh undo sequence, so the
	// live state must be captured as a Stay entry before stepping back.
	freshUndo bool
}

// New creates a controller bound to root. The selection provider may be nil,
// in which case an in-memory document selection is used.
func New(root *html.Node, sel caret.SelectionProvider, opts Options) (*Controller, error) {
	if root == nil {
		return nil, ErrNoElement
	}
	if sel == nil {
		sel = caret.NewDocSelection()
	}

	delay := opts.AutosaveDelay
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}

	var stack *history.Stack
	if len(opts.Seed) > 0 {
		stack = history.Seed(opts.Seed, opts.Capacity)
	} else {
		stack = history.NewStack(opts.Capacity)
	}

	c := &Controller{
		root:          root,
		sel:           sel,
		stack:         stack,
		events:        event.NewManager(),
		autosaveDelay: delay,
		saveOnCommand: opts.SaveOnCommand,
	}
	c.cmd = command.NewFragmentCommander(sel)
	c.clip = clipboard.NewManager(root, sel)
	return c, nil
}

// SetSource attaches the external event source. Rebinding while enabled
// unbinds the previous source first.
func (c *Controller) SetSource(s Source) *Controller {
	c.mu.Lock()
	prev := c.source
	enabled := c.enabled
	c.source = s
	c.mu.Unlock()

	if enabled {
		if prev != nil {
			prev.Unbind()
		}
		if s != nil {
			s.Bind(c.HandleInput)
		}
	}
	return c
}

// SetCommander replaces the host command facility.
func (c *Controller) SetCommander(cmd command.Commander) *Controller {
	c.mu.Lock()
	c.cmd = cmd
	c.mu.Unlock()
	return c
}

// Events exposes the notification bus for subscription.
func (c *Controller) Events() *event.Manager {
	return c.events
}

// Selection exposes the bound selection provider.
func (c *Controller) Selection() caret.SelectionProvider {
	return c.sel
}

// Clipboard exposes the clipboard manager bound to the element.
func (c *Controller) Clipboard() *clipboard.Manager {
	return c.clip
}

// Enabled reports whether editing is currently enabled.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Enable turns on the editable affordance, binds the input source and emits
// an enable notification. Idempotent.
func (c *Controller) Enable() *Controller {
	c.mu.Lock()
	if c.enabled {
		c.mu.Unlock()
		return c
	}
	c.enabled = true
	src := c.source
	setEditableAttr(c.root, true)
	c.mu.Unlock()

	if src != nil {
		src.Bind(c.HandleInput)
	}
	c.events.Dispatch(event.TypeEnable, nil)
	return c
}

// Disable removes the editable affordance, unbinds the input source and emits
// a disable notification. Idempotent.
func (c *Controller) Disable() *Controller {
	c.mu.Lock()
	if !c.enabled {
		c.mu.Unlock()
		return c
	}
	c.enabled = false
	// The pending autosave is cancelled below, so the coalescing flag would
	// otherwise never clear and the first burst after re-enabling would go
	// unsnapshotted.
	c.recorded = false
	src := c.source
	setEditableAttr(c.root, false)
	c.mu.Unlock()

	if src != nil {
		src.Unbind()
	}
	c.saver.Cancel()
	c.events.Dispatch(event.TypeDisable, nil)
	return c
}

// Toggle flips between enabled and disabled.
func (c *Controller) Toggle() *Controller {
	if c.Enabled() {
		return c.Disable()
	}
	return c.Enable()
}

// Contents returns the serialized content of the bound element.
func (c *Controller) Contents() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dom.Render(c.root)
}

// SetContents replaces the element's content entirely.
func (c *Controller) SetContents(markup string) *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := dom.SetContents(c.root, markup); err != nil {
		logger.Warnf("editable: set contents: %v", err)
	}
	return c
}

// Execute delegates a named formatting command to the host command facility,
// then emits change and state notifications.
func (c *Controller) Execute(name, value string) *Controller {
	c.mu.Lock()
	cmd := c.cmd
	c.mu.Unlock()

	if cmd == nil {
		logger.Warnf("editable: execute %q with no commander bound", name)
		return c
	}
	if err := cmd.Exec(name, value); err != nil {
		logger.Warnf("editable: execute %q: %v", name, err)
		return c
	}

	c.emitChange()
	c.emitState()
	if c.saveOnCommand {
		c.emitSave()
	}
	return c
}

// State answers "undo"/"redo" queries from the history stack and delegates
// anything else to the host command facility.
func (c *Controller) State(query string) bool {
	switch query {
	case "undo":
		return c.stack.CanStepBack()
	case "redo":
		return c.stack.CanStepForward()
	}
	c.mu.Lock()
	cmd := c.cmd
	c.mu.Unlock()
	if cmd == nil {
		return false
	}
	return cmd.QueryState(query)
}

// Undo steps back in history, replaces the element's content with the
// retrieved snapshot and restores the caret. On the first undo of a fresh
// sequence the live state is first captured as a Stay entry so redo can
// return to it. Silent no-op when nothing can be undone.
func (c *Controller) Undo() *Controller {
	c.mu.Lock()
	if c.freshUndo {
		c.stack.Add(c.liveSnapshotLocked(), history.AddOptions{Stay: true})
		c.freshUndo = false
	}
	snap, ok := c.stack.StepBack()
	c.mu.Unlock()

	if !ok {
		return c
	}
	c.apply(snap)
	c.emitChange()
	c.emitState()
	return c
}

// Redo steps forward in history, replacing content and caret from the
// retrieved snapshot. Silent no-op when nothing can be redone.
func (c *Controller) Redo() *Controller {
	snap, ok := c.stack.StepForward()
	if !ok {
		return c
	}
	c.apply(snap)
	c.emitChange()
	c.emitState()
	return c
}

// AddToHistory snapshots the current content and caret and pushes it onto the
// history stack.
func (c *Controller) AddToHistory() *Controller {
	c.mu.Lock()
	snap := c.liveSnapshotLocked()
	c.stack.Add(snap, history.AddOptions{})
	c.freshUndo = true
	c.mu.Unlock()

	c.events.Dispatch(event.TypeAddToHistory, event.AddToHistoryData{
		Content:  snap.Content,
		SelStart: snap.SelStart,
		SelEnd:   snap.SelEnd,
	})
	return c
}

// HandleInput is the handler the event source delivers input events to.
func (c *Controller) HandleInput(ev InputEvent) {
	if !c.Enabled() {
		return
	}

	switch ev.Kind {
	case KindSelect:
		c.events.Dispatch(event.TypeSelection, nil)
		c.emitChange()
		c.emitState()

	case KindFocus, KindBlur, KindKeyUp, KindClick:
		c.emitChange()
		c.emitState()

	case KindKeyDown:
		// Deletions do not reliably produce a content-changed signal, so the
		// key-press path is synthesized for them here.
		if ev.Key == KeyBackspace || ev.Key == KeyDelete {
			c.keyPress()
		}

	case KindKeyPress:
		c.keyPress()

	case KindInput:
		c.contentChanged()

	case KindPaste:
		c.AddToHistory()
		if _, err := c.clip.Paste(); err != nil {
			logger.Warnf("editable: paste: %v", err)
		}
		c.afterClipboard()

	case KindCut:
		c.AddToHistory()
		if _, err := c.clip.Cut(); err != nil {
			logger.Warnf("editable: cut: %v", err)
		}
		c.afterClipboard()
	}
}

// keyPress records one snapshot per input burst, before the host applies the
// mutation for the key.
func (c *Controller) keyPress() {
	c.mu.Lock()
	already := c.recorded
	c.recorded = true
	c.mu.Unlock()

	if already {
		return
	}
	c.AddToHistory()
	c.emitChange()
}

// contentChanged reacts to a content-changed signal: emits change and kicks
// the debounced autosave. When the idle window elapses the coalescing flag is
// cleared and a save notification fires. The content is serialized here, on
// the signaling goroutine; the timer callback must not touch the tree, which
// the host may be mutating by the time it fires.
func (c *Controller) contentChanged() {
	content := c.Contents()
	c.events.Dispatch(event.TypeChange, event.ChangeData{Content: content})
	c.saver.Debounce(c.autosaveDelay, func() {
		c.mu.Lock()
		c.recorded = false
		c.mu.Unlock()
		c.events.Dispatch(event.TypeSave, event.SaveData{Content: content})
	})
}

func (c *Controller) afterClipboard() {
	c.emitChange()
	if c.saveOnCommand {
		c.emitSave()
	}
}

// apply replaces the element's content from a snapshot and restores the caret
// from its stored offsets. Caret misses degrade to "no cursor change".
func (c *Controller) apply(snap history.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := dom.SetContents(c.root, snap.Content); err != nil {
		logger.Errorf("editable: applying snapshot: %v", err)
		return
	}
	if !snap.HasSelection() {
		return
	}
	if rng, ok := caret.Restore(c.root, snap.SelStart, snap.SelEnd); ok {
		c.sel.Set(rng)
	} else {
		logger.Debugf("editable: snapshot caret %d..%d out of range, leaving selection", snap.SelStart, snap.SelEnd)
	}
}

// liveSnapshotLocked captures the current content and caret. Caller holds mu.
func (c *Controller) liveSnapshotLocked() history.Snapshot {
	content := dom.Render(c.root)
	start, end := history.NoSelection, history.NoSelection
	if rng, ok := c.sel.Current(); ok {
		if s, e, ok := caret.Capture(c.root, rng); ok {
			start, end = s, e
		}
	}
	return history.NewSnapshot(content, start, end)
}

func (c *Controller) emitChange() {
	c.events.Dispatch(event.TypeChange, event.ChangeData{Content: c.Contents()})
}

func (c *Controller) emitState() {
	c.events.Dispatch(event.TypeState, event.StateData{
		CanUndo: c.stack.CanStepBack(),
		CanRedo: c.stack.CanStepForward(),
	})
}

func (c *Controller) emitSave() {
	c.events.Dispatch(event.TypeSave, event.SaveData{Content: c.Contents()})
}

// setEditableAttr toggles the contenteditable attribute on the element.
func setEditableAttr(root *html.Node, on bool) {
	for i, a := range root.Attr {
		if a.Key == "contenteditable" {
			if on {
				root.Attr[i].Val = "true"
			} else {
				root.Attr = append(root.Attr[:i], root.Attr[i+1:]...)
			}
			return
		}
	}
	if on {
		root.Attr = append(root.Attr, html.Attribute{Key: "contenteditable", Val: "true"})
	}
}
