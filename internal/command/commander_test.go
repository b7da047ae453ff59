package command

import (
	"testing"

	"github.com/bethropolis/scribe/internal/caret"
	"github.com/bethropolis/scribe/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func setup(t *testing.T, markup string, start, end int) (*html.Node, *caret.DocSelection, *FragmentCommander) {
	t.Helper()
	root, err := dom.Parse(markup)
	require.NoError(t, err)

	sel := caret.NewDocSelection()
	rng, ok := caret.Restore(root, start, end)
	require.True(t, ok)
	sel.Set(rng)

	return root, sel, NewFragmentCommander(sel)
}

func TestExecBoldWrapsSelection(t *testing.T) {
	root, sel, cmd := setup(t, "hello world", 6, 11)

	require.NoError(t, cmd.Exec("bold", ""))
	assert.Equal(t, "hello <b>world</b>", dom.Render(root))

	// Selection moves onto the wrapped text.
	rng, ok := sel.Current()
	require.True(t, ok)
	start, end, ok := caret.Capture(root, rng)
	require.True(t, ok)
	assert.Equal(t, 6, start)
	assert.Equal(t, 11, end)
}

func TestExecWrapMidNode(t *testing.T) {
	root, _, cmd := setup(t, "abcdef", 2, 4)

	require.NoError(t, cmd.Exec("italic", ""))
	assert.Equal(t, "ab<i>cd</i>ef", dom.Render(root))
}

func TestExecCreateLink(t *testing.T) {
	root, _, cmd := setup(t, "go here", 3, 7)

	require.NoError(t, cmd.Exec("createlink", "https://example.com"))
	assert.Equal(t, `go <a href="https://example.com">here</a>`, dom.Render(root))
}

func TestExecUnknownCommand(t *testing.T) {
	_, _, cmd := setup(t, "abc", 0, 1)
	assert.Error(t, cmd.Exec("sparkle", ""))
}

func TestExecCollapsedSelectionIsNoop(t *testing.T) {
	root, _, cmd := setup(t, "abc", 1, 1)
	require.NoError(t, cmd.Exec("bold", ""))
	assert.Equal(t, "abc", dom.Render(root))
}

func TestExecNoSelection(t *testing.T) {
	sel := caret.NewDocSelection()
	cmd := NewFragmentCommander(sel)
	assert.Error(t, cmd.Exec("bold", ""))
}

func TestExecAcrossNodes(t *testing.T) {
	_, _, cmd := setup(t, "ab<b>cd</b>", 1, 3)
	assert.Error(t, cmd.Exec("italic", ""), "cross-node wrapping is not supported")
}

func TestQueryState(t *testing.T) {
	root, sel, cmd := setup(t, "a<b>bc</b>d", 0, 0)

	// Caret inside the bold run.
	rng, ok := caret.Restore(root, 2, 2)
	require.True(t, ok)
	sel.Set(rng)
	assert.True(t, cmd.QueryState("bold"))
	assert.False(t, cmd.QueryState("italic"))

	// Caret outside it. Offset 0 is covered by the leading text node.
	rng, ok = caret.Restore(root, 0, 0)
	require.True(t, ok)
	sel.Set(rng)
	assert.False(t, cmd.QueryState("bold"))
}

func TestRemoveFormat(t *testing.T) {
	root, sel, cmd := setup(t, "a<b>bc</b>d", 0, 0)

	rng, ok := caret.Restore(root, 2, 2)
	require.True(t, ok)
	sel.Set(rng)

	require.NoError(t, cmd.Exec("removeformat", ""))
	assert.Equal(t, "abcd", dom.Render(root))
}
