package grid

import (
	"slices"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/render"
)

// State is a cell lifecycle stage
type State uint8

const (
	// Active cells paint their occupants or their fill color
	Active State = iota
	// Fading cells paint the fade color once more and expire on the next advance
	Fading
	// Expired cells are pruned on the next advance and never reused
	Expired
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Fading:
		return "fading"
	default:
		return "expired"
	}
}

// Occupant is anything that lives in a cell and knows how to draw and erase itself
type Occupant interface {
	ID() uint64
	Footprint(at core.Point) core.Rect
	Paint(s render.Surface, at core.Point)
	Cover(s render.Surface, at core.Point, bg core.RGB)
}

// Cell is one occupied or colored grid coordinate
type Cell struct {
	grid      *Grid
	at        core.Point
	color     core.RGB
	state     State
	occupants map[uint64]Occupant

	deactivate bool // Remove was requested while occupied
	dirty      bool // queued for the next paint
	faded      bool // fade color has been painted since entering Fading
}

func newCell(g *Grid, at core.Point) *Cell {
	return &Cell{
		grid:      g,
		at:        at,
		color:     g.fill,
		occupants: make(map[uint64]Occupant),
	}
}

// At returns the cell coordinate
func (c *Cell) At() core.Point { return c.at }

// Color returns the fill color painted when the cell has no occupants
func (c *Cell) Color() core.RGB { return c.color }

// State returns the lifecycle stage
func (c *Cell) State() State { return c.state }

// Active reports whether the cell has not expired
func (c *Cell) Active() bool { return c.state != Expired }

// Deactivating reports whether Remove was called while occupants were present
func (c *Cell) Deactivating() bool { return c.deactivate }

// Len returns the occupant count
func (c *Cell) Len() int { return len(c.occupants) }

// Has reports whether id occupies the cell
func (c *Cell) Has(id uint64) bool {
	_, ok := c.occupants[id]
	return ok
}

// Occupants returns occupant ids in ascending order
func (c *Cell) Occupants() []uint64 {
	ids := make([]uint64, 0, len(c.occupants))
	for id := range c.occupants {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Rect is the area the cell fill covers
func (c *Cell) Rect() core.Rect {
	return core.RectAround(c.at, c.grid.radius.X, c.grid.radius.Y)
}

// Bounds covers the cell fill and every occupant footprint
func (c *Cell) Bounds() core.Rect {
	r := c.Rect()
	for _, o := range c.occupants {
		r = r.Union(o.Footprint(c.at))
	}
	return r
}

// Remove requests deactivation. An empty cell starts fading now;
// an occupied one fades when its last occupant leaves
func (c *Cell) Remove() {
	if c.state != Active {
		return
	}
	if len(c.occupants) > 0 {
		c.deactivate = true
		return
	}
	c.fade()
}

// Advance steps the lifecycle and reports whether the cell was active on entry.
// Fading becomes Expired; an Expired cell reports false and its parent prunes it
func (c *Cell) Advance() bool {
	switch c.state {
	case Fading:
		c.state = Expired
		return true
	case Expired:
		return false
	default:
		return true
	}
}

func (c *Cell) fade() {
	c.state = Fading
	c.faded = false
	c.grid.inv.Insert(c.Rect())
	c.grid.markDirty(c)
}

func (c *Cell) revive() {
	if c.state == Fading {
		c.state = Active
		c.faded = false
	}
}

func (c *Cell) setColor(col core.RGB) {
	c.revive()
	if c.color == col {
		return
	}
	c.color = col
	c.grid.markDirty(c)
}

func (c *Cell) addOccupant(o Occupant) {
	c.revive()
	c.occupants[o.ID()] = o
	c.grid.markDirty(c)
}

// removeOccupant detaches o and reports whether the cell became empty
func (c *Cell) removeOccupant(o Occupant) bool {
	if _, ok := c.occupants[o.ID()]; !ok {
		return false
	}
	delete(c.occupants, o.ID())
	if len(c.occupants) > 0 {
		c.grid.markDirty(c)
		return false
	}
	c.deactivate = false
	c.fade()
	return true
}

// paint draws the cell for its current state
func (c *Cell) paint(s render.Surface) {
	switch c.state {
	case Fading:
		s.Fill(c.Rect(), c.grid.fadeColor)
		c.faded = true
	case Active:
		if len(c.occupants) == 0 {
			s.Fill(c.Rect(), c.color)
			return
		}
		for _, id := range c.Occupants() {
			c.occupants[id].Paint(s, c.at)
		}
	}
}
