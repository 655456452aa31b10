package render

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/krunch/core"
)

// TextWidth returns the column width of s as drawn by DrawText
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// DrawText writes s one grapheme cluster per cell starting at (x, y) and returns the covered rectangle.
// Wide clusters take two cells; the second holds a zero rune
func DrawText(s Surface, x, y int, text string, fg, bg core.RGB) core.Rect {
	if td, ok := s.(textDrawer); ok {
		return td.DrawText(x, y, text, fg, bg)
	}
	return drawText(s.Set, x, y, text, fg, bg)
}

// textDrawer is implemented by surfaces that track a text run as one region
type textDrawer interface {
	DrawText(x, y int, text string, fg, bg core.RGB) core.Rect
}

func drawText(set func(x, y int, c Cell), x, y int, text string, fg, bg core.RGB) core.Rect {
	start := x
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		w := runewidth.StringWidth(g.Str())
		if w == 0 {
			continue
		}
		c := Cell{Rune: runes[0], Fg: fg, Bg: bg}
		if len(runes) > 1 {
			c.Comb = runes[1:]
		}
		set(x, y, c)
		for i := 1; i < w; i++ {
			set(x+i, y, Cell{Fg: fg, Bg: bg})
		}
		x += w
	}
	return core.RectXYWH(start, y, x-start, 1)
}
