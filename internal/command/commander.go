// Package command implements the host rich-text command facility: named
// formatting commands executed against the current selection.
package command

import (
	"fmt"
	"strings"

	"github.com/bethropolis/scribe/internal/caret"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/utils"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Commander executes a named formatting command with an optional value against
// the current selection, and queries whether a named command's state is active.
type Commander interface {
	Exec(name, value string) error
	QueryState(name string) bool
}

// commandTags maps command names to the wrapping element they produce.
var commandTags = map[string]string{
	"bold":          "b",
	"italic":        "i",
	"underline":     "u",
	"strikethrough": "s",
	"createlink":    "a",
}

// FragmentCommander applies formatting commands directly to the fragment tree
// behind an editable region, using the host selection facility to locate the
// target range.
type FragmentCommander struct {
	sel caret.SelectionProvider
}

// NewFragmentCommander creates a commander bound to a selection provider.
func NewFragmentCommander(sel caret.SelectionProvider) *FragmentCommander {
	return &FragmentCommander{sel: sel}
}

// Exec runs a named command. Wrapping commands require a non-collapsed
// selection inside a single text node; "removeformat" unwraps the nearest
// formatting ancestor of the caret.
func (c *FragmentCommander) Exec(name, value string) error {
	name = strings.ToLower(name)

	if name == "removeformat" {
		return c.removeFormat()
	}

	tag, ok := commandTags[name]
	if !ok {
		return fmt.Errorf("command: unknown command %q", name)
	}

	rng, ok := c.sel.Current()
	if !ok {
		return fmt.Errorf("command: %s: no selection", name)
	}
	if rng.Collapsed() {
		logger.Debugf("command: %s with collapsed selection, nothing to wrap", name)
		return nil
	}
	if rng.StartNode != rng.EndNode {
		return fmt.Errorf("command: %s: selection spans multiple text nodes", name)
	}

	return c.wrap(rng, tag, value)
}

// wrap splits the selected portion out of its text node and encloses it in a
// new element, leaving the selection on the wrapped text.
func (c *FragmentCommander) wrap(rng caret.Range, tag, value string) error {
	node := rng.StartNode
	parent := node.Parent
	if parent == nil {
		return fmt.Errorf("command: selection node is detached")
	}

	b1 := utils.GraphemeIndexToByteOffset(node.Data, rng.StartOffset)
	b2 := utils.GraphemeIndexToByteOffset(node.Data, rng.EndOffset)
	if b1 < 0 || b2 < 0 || b1 > b2 {
		return fmt.Errorf("command: selection offsets out of range")
	}

	before := node.Data[:b1]
	mid := node.Data[b1:b2]
	after := node.Data[b2:]

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if tag == "a" && value != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "href", Val: value})
	}
	midText := &html.Node{Type: html.TextNode, Data: mid}
	el.AppendChild(midText)

	parent.InsertBefore(el, node.NextSibling)
	if after != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: after}, el.NextSibling)
	}
	if before != "" {
		node.Data = before
	} else {
		parent.RemoveChild(node)
	}

	c.sel.Set(caret.Range{
		StartNode: midText,
		EndNode:   midText,
		EndOffset: utils.GraphemeCount(mid),
	})
	return nil
}

// removeFormat unwraps the nearest formatting ancestor of the selection start.
func (c *FragmentCommander) removeFormat() error {
	rng, ok := c.sel.Current()
	if !ok {
		return fmt.Errorf("command: removeformat: no selection")
	}

	el := formattingAncestor(rng.StartNode)
	if el == nil || el.Parent == nil {
		return nil
	}

	parent := el.Parent
	for el.FirstChild != nil {
		child := el.FirstChild
		el.RemoveChild(child)
		parent.InsertBefore(child, el)
	}
	parent.RemoveChild(el)
	return nil
}

// QueryState reports whether the selection start sits inside an element
// produced by the named command.
func (c *FragmentCommander) QueryState(name string) bool {
	tag, ok := commandTags[strings.ToLower(name)]
	if !ok {
		return false
	}
	rng, ok := c.sel.Current()
	if !ok {
		return false
	}
	for n := rng.StartNode; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == tag {
			return true
		}
	}
	return false
}

// formattingAncestor finds the closest enclosing formatting element.
func formattingAncestor(n *html.Node) *html.Node {
	tags := make(map[string]bool, len(commandTags))
	for _, t := range commandTags {
		tags[t] = true
	}
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && tags[n.Data] {
			return n
		}
	}
	return nil
}
