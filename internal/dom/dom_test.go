package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func mustParse(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := Parse(markup)
	require.NoError(t, err)
	return root
}

func TestParseRenderRoundTrip(t *testing.T) {
	markup := "<p>hello <b>world</b></p>"
	root := mustParse(t, markup)
	assert.Equal(t, markup, Render(root))
}

func TestFlatText(t *testing.T) {
	root := mustParse(t, "<p>ab<b>cd</b></p><p>ef</p>")
	assert.Equal(t, "abcdef", FlatText(root))
	assert.Equal(t, 6, FlatLen(root))
}

func TestFlatTextEmpty(t *testing.T) {
	root := mustParse(t, "<p></p>")
	assert.Equal(t, "", FlatText(root))
	assert.Equal(t, 0, FlatLen(root))
}

func TestWalkTextEarlyExit(t *testing.T) {
	root := mustParse(t, "a<b>b</b>c")
	var visited []string
	stopped := WalkText(root, func(n *html.Node) bool {
		visited = append(visited, n.Data)
		return len(visited) == 2
	})
	assert.True(t, stopped)
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestSetContents(t *testing.T) {
	root := mustParse(t, "<p>old</p>")
	require.NoError(t, SetContents(root, "<i>new</i>"))
	assert.Equal(t, "<i>new</i>", Render(root))
}

func TestInsertTextMidNode(t *testing.T) {
	root := mustParse(t, "ab<b>cd</b>")
	require.True(t, InsertText(root, 3, "X"))
	assert.Equal(t, "abcXd", FlatText(root))
}

func TestInsertTextAtBoundary(t *testing.T) {
	root := mustParse(t, "ab<b>cd</b>")
	// Offset 2 sits on the boundary; the covering node is the next one.
	require.True(t, InsertText(root, 2, "X"))
	assert.Equal(t, "ab<b>Xcd</b>", Render(root))
}

func TestInsertTextAtEnd(t *testing.T) {
	root := mustParse(t, "ab")
	require.True(t, InsertText(root, 2, "c"))
	assert.Equal(t, "abc", FlatText(root))
}

func TestInsertTextIntoEmptyTree(t *testing.T) {
	root := mustParse(t, "")
	require.True(t, InsertText(root, 0, "hi"))
	assert.Equal(t, "hi", FlatText(root))
}

func TestInsertTextBeyondLength(t *testing.T) {
	root := mustParse(t, "ab")
	assert.False(t, InsertText(root, 5, "X"), "offset past the text is a no-op")
	assert.Equal(t, "ab", FlatText(root))
}

func TestDeleteRangeWithinNode(t *testing.T) {
	root := mustParse(t, "abcdef")
	require.True(t, DeleteRange(root, 1, 3))
	assert.Equal(t, "adef", FlatText(root))
}

func TestDeleteRangeAcrossNodes(t *testing.T) {
	root := mustParse(t, "ab<b>cd</b>ef")
	require.True(t, DeleteRange(root, 1, 5))
	assert.Equal(t, "af", FlatText(root))
	// The fully covered bold text node is detached.
	assert.Equal(t, "a<b></b>f", Render(root))
}

func TestDeleteRangeClampsEnd(t *testing.T) {
	root := mustParse(t, "abc")
	require.True(t, DeleteRange(root, 1, 99))
	assert.Equal(t, "a", FlatText(root))
}

func TestDeleteRangeNoop(t *testing.T) {
	root := mustParse(t, "abc")
	assert.False(t, DeleteRange(root, 2, 2))
	assert.False(t, DeleteRange(root, -1, 1))
	assert.Equal(t, "abc", FlatText(root))
}

func TestGraphemeAwareEditing(t *testing.T) {
	// Family emoji is one grapheme cluster spanning several runes.
	root := mustParse(t, "a\U0001F469\u200D\U0001F469\u200D\U0001F466b")
	assert.Equal(t, 3, FlatLen(root))

	require.True(t, DeleteRange(root, 1, 2))
	assert.Equal(t, "ab", FlatText(root))
}
