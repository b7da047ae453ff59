package dom

import (
	"strings"

	"github.com/bethropolis/scribe/internal/utils"
	"golang.org/x/net/html"
)

// FlatText returns the concatenation, in document order, of all text node
// contents under root.
func FlatText(root *html.Node) string {
	var sb strings.Builder
	WalkText(root, func(n *html.Node) bool {
		sb.WriteString(n.Data)
		return false
	})
	return sb.String()
}

// FlatLen returns the length of the flattened text in grapheme clusters.
func FlatLen(root *html.Node) int {
	total := 0
	WalkText(root, func(n *html.Node) bool {
		total += utils.GraphemeCount(n.Data)
		return false
	})
	return total
}
