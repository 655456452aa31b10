package render

import (
	"slices"

	"github.com/lixenwraith/krunch/core"
)

// DoubleBuffer holds the presented (front) and composed (back) frames.
// The front buffer always mirrors what the display shows
type DoubleBuffer struct {
	bufs  [2]*Buffer
	front int
	// carry holds the rectangles presented last frame; the back buffer lags the front by exactly these
	carry []core.Rect
}

// NewDoubleBuffer allocates both buffers cleared to bg
func NewDoubleBuffer(width, height int, bg core.RGB) *DoubleBuffer {
	return &DoubleBuffer{
		bufs: [2]*Buffer{NewBuffer(width, height, bg), NewBuffer(width, height, bg)},
	}
}

// Front returns the last presented frame
func (d *DoubleBuffer) Front() *Buffer {
	return d.bufs[d.front]
}

// Back returns the frame being composed
func (d *DoubleBuffer) Back() *Buffer {
	return d.bufs[d.front^1]
}

// Prepare brings the back buffer level with the front before composing
func (d *DoubleBuffer) Prepare() {
	back, front := d.Back(), d.Front()
	for _, r := range d.carry {
		back.CopyFrom(front, r)
	}
	d.carry = d.carry[:0]
}

// Swap makes the back buffer the front after presented was copied to the display
func (d *DoubleBuffer) Swap(presented []core.Rect) {
	d.front ^= 1
	d.carry = append(d.carry[:0], presented...)
}

// Resize reallocates both buffers cleared to bg
func (d *DoubleBuffer) Resize(width, height int, bg core.RGB) {
	for _, b := range d.bufs {
		b.Resize(width, height, bg)
	}
	d.carry = d.carry[:0]
}

// Pending returns the rectangles the back buffer still has to catch up on
func (d *DoubleBuffer) Pending() []core.Rect {
	return slices.Clone(d.carry)
}
