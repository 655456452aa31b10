package scene

import (
	"fmt"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/parameter"
	"github.com/lixenwraith/krunch/render"
)

// statusKeys are the registry metrics appended to the status line
var statusKeys = []string{"grid.cells", "grid.columns", "grid.pruned", "render.rects", "loop.phase"}

// StatusText formats the update counter, the ping-pong state, the curve color and grid counters
func (d *Demo) StatusText() string {
	pong := d.pong
	text := fmt.Sprintf("%-14s%-36s%-24s%s",
		fmt.Sprintf("Update:%d", d.updates),
		fmt.Sprintf("dir:%v side:%v pong:%4d,%4d", b2i(pong.Dir), b2i(pong.Side), pong.Offset.X, pong.Offset.Y),
		fmt.Sprintf("color:%d", d.curve.Intensity()),
		d.reg.Line(statusKeys...),
	)
	if d.reg.Bools.Has("loop.paused") && d.reg.Bools.Get("loop.paused").Load() {
		text += parameter.PauseText
	}
	return text
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// StatusLine repaints the status row every frame
type StatusLine struct {
	demo *Demo
	fg   core.RGB
	bg   core.RGB
}

// NewStatusLine creates the renderer for d's status text
func NewStatusLine(d *Demo) *StatusLine {
	return &StatusLine{
		demo: d,
		fg:   core.Hex(parameter.StatusForeground),
		bg:   core.Hex(parameter.StatusBackground),
	}
}

// Render implements render.SystemRenderer
func (s *StatusLine) Render(ctx render.Context, c *render.Canvas) {
	row := core.RectXYWH(0, parameter.StatusRow, ctx.Width, 1)
	c.Fill(row, s.bg)
	c.DrawText(1, parameter.StatusRow, s.demo.StatusText(), s.fg, s.bg)
}
