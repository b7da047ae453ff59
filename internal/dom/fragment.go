// Package dom holds the parsed element tree an editable region is bound to.
// Content crosses the package boundary as a serialized markup string; inside,
// it is an x/net/html node tree so callers can address individual text nodes.
package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a markup fragment and returns a container element holding the
// fragment's nodes as children. The container itself is not part of the
// serialized form.
func Parse(markup string) (*html.Node, error) {
	root := newContainer()
	if err := parseInto(root, markup); err != nil {
		return nil, err
	}
	return root, nil
}

// Render serializes the children of root back into a markup string.
func Render(root *html.Node) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return sb.String()
		}
	}
	return sb.String()
}

// SetContents replaces all children of root with the parsed form of markup.
func SetContents(root *html.Node, markup string) error {
	if root == nil {
		return fmt.Errorf("dom: nil root")
	}
	for root.FirstChild != nil {
		root.RemoveChild(root.FirstChild)
	}
	return parseInto(root, markup)
}

func newContainer() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
}

func parseInto(root *html.Node, markup string) error {
	ctx := newContainer()
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return fmt.Errorf("dom: parsing fragment: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return nil
}
