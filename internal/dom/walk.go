package dom

import "golang.org/x/net/html"

// WalkFunc is called for each text node in document order. Returning true
// stops the traversal.
type WalkFunc func(n *html.Node) bool

// WalkText visits every text node under root in document order using an
// explicit stack. Container nodes are descended into but never visited
// themselves; only text-bearing leaves count. Returns true if the walk was
// stopped early by fn.
func WalkText(root *html.Node, fn WalkFunc) bool {
	if root == nil {
		return false
	}

	var stack []*html.Node
	// Push children in reverse so pops come off in document order.
	for c := root.LastChild; c != nil; c = c.PrevSibling {
		stack = append(stack, c)
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type == html.TextNode {
			if fn(n) {
				return true
			}
			continue
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return false
}
