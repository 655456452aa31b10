package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/krunch/core"
)

// Display is the visible surface. tcell.Screen satisfies it
type Display interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
	Size() (width, height int)
}

// Color converts to a tcell true color
func Color(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style builds the tcell style for a cell
func Style(fg, bg core.RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(Color(fg)).Background(Color(bg))
}

// presenter copies back-buffer regions onto the display
type presenter struct {
	src     *Buffer
	display Display
	cells   int
}

// CopyRect writes every cell of r from the composed buffer to the display
func (p *presenter) CopyRect(r core.Rect) {
	r = r.Intersect(p.src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := p.src.Get(x, y)
			if c.Rune == 0 {
				continue
			}
			p.display.SetContent(x, y, c.Rune, c.Comb, Style(c.Fg, c.Bg))
			p.cells++
		}
	}
}
