package render

import (
	"github.com/lixenwraith/krunch/core"
)

// Cell is one character position of a composed frame
// Rune 0 marks the trailing half of a wide glyph and is never presented on its own
type Cell struct {
	Rune rune
	Comb []rune
	Fg   core.RGB
	Bg   core.RGB
}

// Surface is the paint target handed to grid cells and occupants
type Surface interface {
	Bounds() core.Rect
	Fill(r core.Rect, bg core.RGB)
	Set(x, y int, c Cell)
}

// Buffer is a width*height cell array in row-major order
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer cleared to bg
func NewBuffer(width, height int, bg core.RGB) *Buffer {
	b := &Buffer{}
	b.Resize(width, height, bg)
	return b
}

// Resize adjusts buffer dimensions, reallocating only if capacity is insufficient, and clears to bg
func (b *Buffer) Resize(width, height int, bg core.RGB) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear(bg)
}

// Clear resets all cells to blanks on bg using exponential copy
func (b *Buffer) Clear(bg core.RGB) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: bg, Bg: bg}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Width returns the column count
func (b *Buffer) Width() int { return b.width }

// Height returns the row count
func (b *Buffer) Height() int { return b.height }

// Bounds returns the buffer rectangle anchored at the origin
func (b *Buffer) Bounds() core.Rect {
	return core.RectXYWH(0, 0, b.width, b.height)
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y); out-of-range reads return the zero Cell
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set writes one cell, ignoring out-of-range coordinates
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}

// Fill blanks every cell of r (clipped) to bg
func (b *Buffer) Fill(r core.Rect, bg core.RGB) {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return
	}
	blank := Cell{Rune: ' ', Fg: bg, Bg: bg}
	row := b.cells[r.Min.Y*b.width+r.Min.X : r.Min.Y*b.width+r.Max.X]
	for i := range row {
		row[i] = blank
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		copy(b.cells[y*b.width+r.Min.X:y*b.width+r.Max.X], row)
	}
}

// CopyFrom copies the region r of src into the same region of b. Both buffers must share dimensions
func (b *Buffer) CopyFrom(src *Buffer, r core.Rect) {
	r = r.Intersect(b.Bounds()).Intersect(src.Bounds())
	if r.Empty() || b.width != src.width {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		lo, hi := y*b.width+r.Min.X, y*b.width+r.Max.X
		copy(b.cells[lo:hi], src.cells[lo:hi])
	}
}

// Equal reports whether both buffers hold identical content inside r
func (b *Buffer) Equal(other *Buffer, r core.Rect) bool {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c, o := b.Get(x, y), other.Get(x, y)
			if c.Rune != o.Rune || c.Fg != o.Fg || c.Bg != o.Bg {
				return false
			}
		}
	}
	return true
}
