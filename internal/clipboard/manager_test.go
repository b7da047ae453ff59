package clipboard

import (
	"testing"

	"github.com/bethropolis/scribe/internal/caret"
	"github.com/bethropolis/scribe/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type fakeClip struct {
	content string
}

func (f *fakeClip) read() (string, error) { return f.content, nil }
func (f *fakeClip) write(s string) error  { f.content = s; return nil }

func setup(t *testing.T, markup string, start, end int) (*html.Node, *caret.DocSelection, *Manager, *fakeClip) {
	t.Helper()
	root, err := dom.Parse(markup)
	require.NoError(t, err)

	sel := caret.NewDocSelection()
	rng, ok := caret.Restore(root, start, end)
	require.True(t, ok)
	sel.Set(rng)

	clip := &fakeClip{}
	m := NewManager(root, sel)
	m.SetBackend(clip.read, clip.write)
	return root, sel, m, clip
}

func TestCopy(t *testing.T) {
	_, _, m, clip := setup(t, "ab<b>cd</b>ef", 1, 5)

	ok, err := m.Copy()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bcde", clip.content)
}

func TestCopyWithoutSelection(t *testing.T) {
	_, _, m, clip := setup(t, "abc", 1, 1)

	ok, err := m.Copy()
	require.NoError(t, err)
	assert.False(t, ok, "collapsed caret copies nothing")
	assert.Equal(t, "", clip.content)
}

func TestCut(t *testing.T) {
	root, sel, m, clip := setup(t, "ab<b>cd</b>ef", 1, 5)

	ok, err := m.Cut()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bcde", clip.content)
	assert.Equal(t, "af", dom.FlatText(root))

	// Caret collapses at the deletion point.
	rng, ok2 := sel.Current()
	require.True(t, ok2)
	start, end, ok2 := caret.Capture(root, rng)
	require.True(t, ok2)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)
}

func TestPasteAtCaret(t *testing.T) {
	root, sel, m, clip := setup(t, "ad", 1, 1)
	clip.content = "bc"

	ok, err := m.Paste()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abcd", dom.FlatText(root))

	rng, ok2 := sel.Current()
	require.True(t, ok2)
	_, end, ok2 := caret.Capture(root, rng)
	require.True(t, ok2)
	assert.Equal(t, 3, end)
}

func TestPasteReplacesSelection(t *testing.T) {
	root, _, m, clip := setup(t, "aXYd", 1, 3)
	clip.content = "bc"

	ok, err := m.Paste()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abcd", dom.FlatText(root))
}

func TestPasteEmptyClipboard(t *testing.T) {
	root, _, m, _ := setup(t, "ab", 1, 1)

	ok, err := m.Paste()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "ab", dom.FlatText(root))
}
