package render

import (
	"github.com/lixenwraith/krunch/core"
)

// Invalidator receives the rectangles a paint operation touched
type Invalidator interface {
	Insert(r core.Rect)
}

// Canvas is the Surface renderers paint into during a frame.
// Every write lands in the back buffer and reports its rectangle as dirty
type Canvas struct {
	buf *Buffer
	inv Invalidator
}

// NewCanvas wraps buf, reporting writes to inv
func NewCanvas(buf *Buffer, inv Invalidator) *Canvas {
	return &Canvas{buf: buf, inv: inv}
}

// Bounds returns the composed surface rectangle
func (c *Canvas) Bounds() core.Rect {
	return c.buf.Bounds()
}

// Fill blanks r to bg and marks it dirty
func (c *Canvas) Fill(r core.Rect, bg core.RGB) {
	c.buf.Fill(r, bg)
	c.inv.Insert(r)
}

// Set writes one cell and marks it dirty
func (c *Canvas) Set(x, y int, cell Cell) {
	c.buf.Set(x, y, cell)
	c.inv.Insert(core.RectXYWH(x, y, 1, 1))
}

// DrawText writes a text run and marks its extent dirty as one rectangle
func (c *Canvas) DrawText(x, y int, text string, fg, bg core.RGB) core.Rect {
	r := drawText(c.buf.Set, x, y, text, fg, bg)
	c.inv.Insert(r)
	return r
}

// Buffer exposes the underlying back buffer for read access
func (c *Canvas) Buffer() *Buffer {
	return c.buf
}
