// Package card implements labelled boxes that live in grid cells and move between them
package card

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/grid"
	"github.com/lixenwraith/krunch/parameter"
	"github.com/lixenwraith/krunch/render"
)

// Card is a movable labelled box. Its id comes from the owning grid
type Card struct {
	id    uint64
	label string
	text  string
	at    core.Point
	grid  *grid.Grid
	fg    core.RGB
	bg    core.RGB

	placed bool
	glide  *glide
}

// Option configures a Card
type Option func(*Card)

// WithColors sets the label and box colors
func WithColors(fg, bg core.RGB) Option {
	return func(c *Card) {
		c.fg = fg
		c.bg = bg
	}
}

// New creates a card and places it in the cell at `at`
func New(g *grid.Grid, label string, at core.Point, opts ...Option) (*Card, error) {
	c := &Card{
		id:    g.NextID(),
		label: label,
		at:    at,
		grid:  g,
		fg:    core.Hex(parameter.CardForeground),
		bg:    core.Hex(parameter.CardBackground),
	}
	c.text = fmt.Sprintf("%d) %s", c.id, label)
	for _, opt := range opts {
		opt(c)
	}
	if err := g.AddOccupant(at, c); err != nil {
		return nil, fmt.Errorf("place card %q: %w", label, err)
	}
	c.placed = true
	return c, nil
}

// ID returns the grid-unique identifier
func (c *Card) ID() uint64 { return c.id }

// Label returns the caller-supplied label
func (c *Card) Label() string { return c.label }

// Text returns the rendered caption "<id>) <label>"
func (c *Card) Text() string { return c.text }

// At returns the card's current cell
func (c *Card) At() core.Point { return c.at }

// Footprint is the box centred on at: caption width plus a one-column margin each side, three rows tall
func (c *Card) Footprint(at core.Point) core.Rect {
	w := render.TextWidth(c.text) + 2*parameter.CardPadding
	return core.RectXYWH(at.X-w/2, at.Y-parameter.CardHeight/2, w, parameter.CardHeight)
}

// Paint draws the box and caption
func (c *Card) Paint(s render.Surface, at core.Point) {
	fp := c.Footprint(at)
	s.Fill(fp, c.bg)
	render.DrawText(s, fp.Min.X+parameter.CardPadding, at.Y, c.text, c.fg, c.bg)
}

// Cover repaints the whole footprint with bg
func (c *Card) Cover(s render.Surface, at core.Point, bg core.RGB) {
	s.Fill(c.Footprint(at), bg)
}

// MoveTo leaves the current cell and joins the cell at p. Moving to the current cell is a no-op
func (c *Card) MoveTo(p core.Point) error {
	if !c.placed {
		return fmt.Errorf("move disposed card %d", c.id)
	}
	if p == c.at {
		return nil
	}
	c.grid.RemoveOccupant(c.at, c)
	if err := c.grid.AddOccupant(p, c); err != nil {
		c.placed = false
		return fmt.Errorf("move card %d to %v: %w", c.id, p, err)
	}
	c.at = p
	return nil
}

// Dispose removes the card from its cell; the vacated footprint is covered on the next paint
func (c *Card) Dispose() {
	if !c.placed {
		return
	}
	c.grid.RemoveOccupant(c.at, c)
	c.placed = false
	c.glide = nil
}

type glide struct {
	x, y *gween.Tween
}

// GlideTo starts a tweened move to p lasting the given seconds. Step drives it
func (c *Card) GlideTo(p core.Point, seconds float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.OutQuad
	}
	c.glide = &glide{
		x: gween.New(float32(c.at.X), float32(p.X), seconds, fn),
		y: gween.New(float32(c.at.Y), float32(p.Y), seconds, fn),
	}
}

// Stop cancels a glide in progress, leaving the card where it is
func (c *Card) Stop() {
	c.glide = nil
}

// Gliding reports whether a glide is in progress
func (c *Card) Gliding() bool {
	return c.glide != nil
}

// Step advances the glide by dt seconds, moving the card to the rounded tween position.
// Returns true when the glide finished during this step
func (c *Card) Step(dt float32) (bool, error) {
	if c.glide == nil {
		return false, nil
	}
	x, doneX := c.glide.x.Update(dt)
	y, doneY := c.glide.y.Update(dt)
	p := core.Pt(int(math.Round(float64(x))), int(math.Round(float64(y))))
	if err := c.MoveTo(p); err != nil {
		c.glide = nil
		return false, err
	}
	if doneX && doneY {
		c.glide = nil
		return true, nil
	}
	return false, nil
}
