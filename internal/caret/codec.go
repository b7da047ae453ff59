// Package caret converts between live selection ranges inside an element tree
// and linear grapheme offsets into the tree's flattened text.
package caret

import (
	"github.com/bethropolis/scribe/internal/dom"
	"github.com/bethropolis/scribe/internal/utils"
	"golang.org/x/net/html"
)

// Range is a live caret or selection: boundary text nodes plus local grapheme
// offsets within each node's text. A collapsed caret has equal boundaries.
type Range struct {
	StartNode   *html.Node
	StartOffset int
	EndNode     *html.Node
	EndOffset   int
}

// Collapsed reports whether the range is a caret rather than a selection.
func (r Range) Collapsed() bool {
	return r.StartNode == r.EndNode && r.StartOffset == r.EndOffset
}

// Caret builds a collapsed range at the given node and local offset.
func Caret(n *html.Node, offset int) Range {
	return Range{StartNode: n, StartOffset: offset, EndNode: n, EndOffset: offset}
}

// Capture walks the text nodes of root in document order, accumulating
// grapheme lengths, and returns the range's boundaries as offsets from the
// start of root's flattened text. ok is false when the range's nodes do not
// belong to root's tree.
func Capture(root *html.Node, rng Range) (start, end int, ok bool) {
	if root == nil || rng.StartNode == nil {
		return 0, 0, false
	}
	endNode := rng.EndNode
	endOffset := rng.EndOffset
	if endNode == nil {
		endNode = rng.StartNode
		endOffset = rng.StartOffset
	}

	cum := 0
	foundStart := false
	foundEnd := false
	dom.WalkText(root, func(n *html.Node) bool {
		if n == rng.StartNode {
			start = cum + rng.StartOffset
			foundStart = true
		}
		if n == endNode {
			end = cum + endOffset
			foundEnd = true
		}
		if foundStart && foundEnd {
			return true
		}
		cum += utils.GraphemeCount(n.Data)
		return false
	})

	if !foundStart || !foundEnd {
		return 0, 0, false
	}
	if end < start {
		start, end = end, start
	}
	return start, end, true
}

// Restore walks the text nodes of root in document order and places a range at
// the given global grapheme offsets. The first node whose text extends past a
// target offset wins, so an offset sitting exactly on a node boundary resolves
// to the start of the next node encountered. An offset equal to the total text
// length lands at the end of the last text node; an offset beyond it yields
// ok=false and the caller should leave the selection unchanged.
func Restore(root *html.Node, start, end int) (Range, bool) {
	if root == nil || start < 0 || end < start {
		return Range{}, false
	}

	var rng Range
	foundStart := false
	foundEnd := false
	cum := 0
	var last *html.Node
	var lastLen int

	dom.WalkText(root, func(n *html.Node) bool {
		l := utils.GraphemeCount(n.Data)
		if !foundStart && cum+l > start {
			rng.StartNode = n
			rng.StartOffset = start - cum
			foundStart = true
		}
		if !foundEnd && cum+l > end {
			rng.EndNode = n
			rng.EndOffset = end - cum
			foundEnd = true
		}
		cum += l
		last = n
		lastLen = l
		if foundStart && foundEnd {
			return true
		}
		return false
	})

	// Offsets at exactly the total length settle at the end of the last node.
	if last != nil {
		if !foundStart && start == cum {
			rng.StartNode = last
			rng.StartOffset = lastLen
			foundStart = true
		}
		if !foundEnd && end == cum {
			rng.EndNode = last
			rng.EndOffset = lastLen
			foundEnd = true
		}
	}

	if !foundStart || !foundEnd {
		return Range{}, false
	}
	return rng, true
}
