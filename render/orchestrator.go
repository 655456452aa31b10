package render

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/dirty"
	"github.com/lixenwraith/krunch/status"
)

type rendererEntry struct {
	renderer SystemRenderer
	priority Priority
	index    int // registration order for stable sort
}

// Compositor owns the buffer pair and the dirty tracker and drives one frame at a time:
// prepare back buffer, paint, reduce, present dirty regions, swap
type Compositor struct {
	display    Display
	buffers    *DoubleBuffer
	tracker    *dirty.Tracker
	background core.RGB
	renderers  []rendererEntry
	regCount   int
	frame      uint64

	statFrames *atomic.Int64
	statRects  *atomic.Int64
	statCells  *atomic.Int64
	statBroken *atomic.Int64
}

// NewCompositor sizes both buffers to the display. reg may be nil
func NewCompositor(display Display, tracker *dirty.Tracker, background core.RGB, reg *status.Registry) *Compositor {
	if reg == nil {
		reg = status.NewRegistry()
	}
	w, h := display.Size()
	tracker.SetBounds(core.RectXYWH(0, 0, w, h))
	return &Compositor{
		display:    display,
		buffers:    NewDoubleBuffer(w, h, background),
		tracker:    tracker,
		background: background,
		renderers:  make([]rendererEntry, 0, 8),
		statFrames: reg.Ints.Get("render.frames"),
		statRects:  reg.Ints.Get("render.rects"),
		statCells:  reg.Ints.Get("render.cells"),
		statBroken: reg.Ints.Get("render.invariant"),
	}
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (c *Compositor) Register(r SystemRenderer, priority Priority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    c.regCount,
	}
	c.regCount++

	pos := len(c.renderers)
	for i, e := range c.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	c.renderers = append(c.renderers, rendererEntry{})
	copy(c.renderers[pos+1:], c.renderers[pos:])
	c.renderers[pos] = entry
}

// Tracker returns the dirty-region tracker; simulation code inserts into it directly
func (c *Compositor) Tracker() *dirty.Tracker {
	return c.tracker
}

// Front returns the last presented frame
func (c *Compositor) Front() *Buffer {
	return c.buffers.Front()
}

// Size returns the surface dimensions
func (c *Compositor) Size() (int, int) {
	b := c.buffers.Front()
	return b.Width(), b.Height()
}

// Frame returns the number of frames rendered
func (c *Compositor) Frame() uint64 {
	return c.frame
}

// OnExpose marks the whole surface for the next present
func (c *Compositor) OnExpose() {
	c.tracker.Expose()
}

// Resize reallocates the buffers, asks incremental renderers for a full repaint and exposes
func (c *Compositor) Resize(width, height int) {
	c.buffers.Resize(width, height, c.background)
	c.tracker.SetBounds(core.RectXYWH(0, 0, width, height))
	for _, e := range c.renderers {
		if inv, ok := e.renderer.(Invalidatable); ok {
			inv.InvalidateAll()
		}
	}
	c.tracker.Expose()
}

// RenderFrame composes and presents one frame and returns the rectangles copied to the display
func (c *Compositor) RenderFrame(ctx Context) []core.Rect {
	c.Compose(ctx)
	return c.Present()
}

// Compose brings the back buffer up to date and runs every visible renderer into it
func (c *Compositor) Compose(ctx Context) {
	c.buffers.Prepare()

	back := c.buffers.Back()
	ctx.Frame = c.frame
	ctx.Width, ctx.Height = back.Width(), back.Height()
	canvas := NewCanvas(back, c.tracker)

	for _, entry := range c.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.renderer.Render(ctx, canvas)
	}
}

// Present merges the dirty set, copies exactly those regions to the display, swaps buffers
// and clears the tracker. Returns the rectangles presented
func (c *Compositor) Present() []core.Rect {
	c.tracker.Reduce()
	if err := c.tracker.Verify(); err != nil {
		c.statBroken.Add(1)
		log.Printf("render: frame %d: %v", c.frame, err)
	}
	presented := c.tracker.Rects()
	if len(presented) > 0 {
		p := &presenter{src: c.buffers.Back(), display: c.display}
		c.tracker.Present(p)
		c.display.Show()
		c.statCells.Add(int64(p.cells))
	}

	c.buffers.Swap(presented)
	c.tracker.Clear()
	c.frame++

	c.statFrames.Store(int64(c.frame))
	c.statRects.Store(int64(len(presented)))
	return presented
}
