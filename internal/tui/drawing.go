package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// DrawText renders text starting at the top-left, wrapping at the screen
// width, highlighting the grapheme range [selStart, selEnd) and showing the
// caret cell in reverse video. A collapsed caret has selStart == selEnd.
func (t *TUI) DrawText(text string, selStart, selEnd int) {
	width, height := t.Size()
	if width <= 0 || height <= 0 {
		return
	}

	normal := tcell.StyleDefault
	selected := tcell.StyleDefault.Reverse(true)

	x, y := 0, 0
	idx := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if y >= height-1 {
			break
		}
		style := normal
		if idx >= selStart && idx < selEnd {
			style = selected
		}
		if selStart == selEnd && idx == selStart {
			style = selected
		}

		runes := gr.Runes()
		r := ' '
		if len(runes) > 0 {
			r = runes[0]
		}
		if r == '\n' {
			x, y = 0, y+1
			idx++
			continue
		}
		t.SetCell(x, y, r, style)
		x++
		if x >= width {
			x, y = 0, y+1
		}
		idx++
	}

	// Caret sitting at the very end of the text.
	if selStart == selEnd && idx == selStart && y < height-1 {
		t.SetCell(x, y, ' ', selected)
	}
}

// DrawStatus renders a status line on the bottom row.
func (t *TUI) DrawStatus(status string) {
	width, height := t.Size()
	if height <= 0 {
		return
	}
	y := height - 1
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		t.SetCell(x, y, r, style)
		x++
	}
	for ; x < width; x++ {
		t.SetCell(x, y, ' ', style)
	}
}
