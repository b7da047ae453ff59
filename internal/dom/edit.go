package dom

import (
	"github.com/bethropolis/scribe/internal/utils"
	"golang.org/x/net/html"
)

// InsertText inserts s at the given grapheme offset into the flattened text of
// root, splicing it into the text node that covers the offset. An offset past
// the total text length is a silent no-op. Returns whether text was inserted.
func InsertText(root *html.Node, at int, s string) bool {
	if root == nil || s == "" || at < 0 {
		return false
	}

	cum := 0
	var last *html.Node
	inserted := false

	WalkText(root, func(n *html.Node) bool {
		l := utils.GraphemeCount(n.Data)
		if cum+l > at {
			b := utils.GraphemeIndexToByteOffset(n.Data, at-cum)
			n.Data = n.Data[:b] + s + n.Data[b:]
			inserted = true
			return true
		}
		cum += l
		last = n
		return false
	})
	if inserted {
		return true
	}

	// Offset lands exactly at the end of the flattened text.
	if at == cum {
		if last != nil {
			last.Data += s
			return true
		}
		root.AppendChild(&html.Node{Type: html.TextNode, Data: s})
		return true
	}
	return false
}

// DeleteRange removes the grapheme range [start, end) from the flattened text
// of root, trimming every text node the range overlaps. Text nodes left empty
// are detached. Out-of-range portions are ignored. Returns whether any text
// was removed.
func DeleteRange(root *html.Node, start, end int) bool {
	if root == nil || start < 0 || end <= start {
		return false
	}

	cum := 0
	deleted := false
	var emptied []*html.Node

	WalkText(root, func(n *html.Node) bool {
		l := utils.GraphemeCount(n.Data)
		lo := start - cum
		hi := end - cum
		cum += l

		if hi <= 0 {
			return true // node is past the range
		}
		if lo >= l {
			return false // node is before the range
		}
		if lo < 0 {
			lo = 0
		}
		if hi > l {
			hi = l
		}

		from := utils.GraphemeIndexToByteOffset(n.Data, lo)
		to := utils.GraphemeIndexToByteOffset(n.Data, hi)
		n.Data = n.Data[:from] + n.Data[to:]
		deleted = true
		if n.Data == "" {
			emptied = append(emptied, n)
		}
		return false
	})

	for _, n := range emptied {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	return deleted
}
