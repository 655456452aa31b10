// Package grid is the sparse occupancy grid: columns keyed by X hold cells keyed by Y.
// Columns and cells are created on first use and pruned once they expire or empty out
package grid

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/parameter"
	"github.com/lixenwraith/krunch/render"
	"github.com/lixenwraith/krunch/status"
)

// Column holds the cells sharing one X coordinate
type Column struct {
	x     int
	cells map[int]*Cell
}

// X returns the column coordinate
func (c *Column) X() int { return c.x }

// Len returns the number of cells in the column
func (c *Column) Len() int { return len(c.cells) }

// Cell returns the cell at row y
func (c *Column) Cell(y int) (*Cell, bool) {
	cell, ok := c.cells[y]
	return cell, ok
}

type coverRequest struct {
	occupant Occupant
	at       core.Point
}

// Grid owns every cell. Not safe for concurrent use
type Grid struct {
	columns  map[int]*Column
	occupied map[core.Point]*Cell
	pending  []*Cell
	covers   []coverRequest
	erase    []core.Rect

	inv    render.Invalidator
	nextID uint64

	background core.RGB
	fadeColor  core.RGB
	fill       core.RGB
	radius     core.Point

	cells  int
	pruned int64
	cover  int64

	statColumns *atomic.Int64
	statCells   *atomic.Int64
	statPruned  *atomic.Int64
	statCovers  *atomic.Int64
}

// Option configures a Grid
type Option func(*Grid)

// WithBackground sets the color covers paint over vacated footprints
func WithBackground(c core.RGB) Option { return func(g *Grid) { g.background = c } }

// WithFadeColor sets the color a fading cell paints
func WithFadeColor(c core.RGB) Option { return func(g *Grid) { g.fadeColor = c } }

// WithFill sets the default color of a freshly created cell
func WithFill(c core.RGB) Option { return func(g *Grid) { g.fill = c } }

// WithRadius sets how many columns and rows a cell fill extends on each side of its coordinate
func WithRadius(rx, ry int) Option {
	return func(g *Grid) { g.radius = core.Pt(max(rx, 0), max(ry, 0)) }
}

// WithRegistry publishes grid counters to reg
func WithRegistry(reg *status.Registry) Option {
	return func(g *Grid) {
		g.statColumns = reg.Ints.Get("grid.columns")
		g.statCells = reg.Ints.Get("grid.cells")
		g.statPruned = reg.Ints.Get("grid.pruned")
		g.statCovers = reg.Ints.Get("grid.covers")
	}
}

// New creates an empty grid reporting dirty rectangles to inv
func New(inv render.Invalidator, opts ...Option) *Grid {
	g := &Grid{
		columns:    make(map[int]*Column),
		occupied:   make(map[core.Point]*Cell),
		inv:        inv,
		background: core.Hex(parameter.Background),
		fadeColor:  core.Hex(parameter.FadeColor),
		fill:       core.Hex(parameter.CellFill),
		radius:     core.Pt(parameter.CellRadiusX, parameter.CellRadiusY),
	}
	WithRegistry(status.NewRegistry())(g)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NextID returns the next occupant id. Ids start at 1 and never repeat within a grid
func (g *Grid) NextID() uint64 {
	g.nextID++
	return g.nextID
}

// Background returns the cover color
func (g *Grid) Background() core.RGB { return g.background }

// Lookup returns the cell at p without creating it
func (g *Grid) Lookup(p core.Point) (*Cell, bool) {
	col, ok := g.columns[p.X]
	if !ok {
		return nil, false
	}
	return col.Cell(p.Y)
}

// Column returns the column at x without creating it
func (g *Grid) Column(x int) (*Column, bool) {
	col, ok := g.columns[x]
	return col, ok
}

// CellAt returns the cell at p, creating its column and cell on demand.
// An expired cell is replaced by a fresh one rather than reused
func (g *Grid) CellAt(p core.Point) (*Cell, error) {
	col, ok := g.columns[p.X]
	if !ok {
		col = &Column{x: p.X, cells: make(map[int]*Cell)}
		g.columns[p.X] = col
	}

	cell, ok := col.cells[p.Y]
	if ok && cell.state != Expired {
		return cell, nil
	}
	if !ok {
		g.cells++
	}

	cell = newCell(g, p)
	col.cells[p.Y] = cell
	if got, ok := g.Lookup(p); !ok || got != cell {
		return nil, fmt.Errorf("cannot create cell at %v: %w", p, core.ErrStructural)
	}
	g.markDirty(cell)
	return cell, nil
}

// MustCellAt is CellAt for callers that treat structural failure as fatal
func (g *Grid) MustCellAt(p core.Point) *Cell {
	cell, err := g.CellAt(p)
	if err != nil {
		panic(err)
	}
	return cell
}

// SetColor sets the fill color of the cell at p, creating it if needed. A fading cell becomes active again
func (g *Grid) SetColor(p core.Point, c core.RGB) error {
	cell, err := g.CellAt(p)
	if err != nil {
		return err
	}
	cell.setColor(c)
	return nil
}

// Remove requests deactivation of the cell at p. Missing cells are ignored
func (g *Grid) Remove(p core.Point) {
	if cell, ok := g.Lookup(p); ok {
		cell.Remove()
	}
}

// AddOccupant places o in the cell at p
func (g *Grid) AddOccupant(p core.Point, o Occupant) error {
	cell, err := g.CellAt(p)
	if err != nil {
		return fmt.Errorf("add occupant %d: %w", o.ID(), err)
	}
	cell.addOccupant(o)
	g.occupied[p] = cell
	g.inv.Insert(o.Footprint(p))
	return nil
}

// RemoveOccupant detaches o from the cell at p and queues a cover of its footprint.
// Reports false if o was not there
func (g *Grid) RemoveOccupant(p core.Point, o Occupant) bool {
	cell, ok := g.Lookup(p)
	if !ok || !cell.Has(o.ID()) {
		return false
	}
	if cell.removeOccupant(o) {
		delete(g.occupied, p)
	}
	g.covers = append(g.covers, coverRequest{occupant: o, at: p})
	g.cover++
	g.inv.Insert(o.Footprint(p))
	return true
}

// Advance runs one lifecycle step over every cell and prunes expired cells and empty columns.
// Counters are published every rate ticks; rate 0 publishes on every call
func (g *Grid) Advance(tick, rate uint64) {
	for x, col := range g.columns {
		for y, cell := range col.cells {
			if cell.Advance() {
				continue
			}
			delete(col.cells, y)
			g.cells--
			g.pruned++
			if !cell.faded {
				g.erase = append(g.erase, cell.Rect())
			}
		}
		if len(col.cells) == 0 {
			delete(g.columns, x)
		}
	}

	if rate == 0 || tick%rate == 0 {
		g.publish()
	}
}

func (g *Grid) publish() {
	g.statColumns.Store(int64(len(g.columns)))
	g.statCells.Store(int64(g.cells))
	g.statPruned.Store(g.pruned)
	g.statCovers.Store(g.cover)
}

// Len returns the number of live cells, expired ones awaiting pruning included
func (g *Grid) Len() int { return g.cells }

// Columns returns the number of columns
func (g *Grid) Columns() int { return len(g.columns) }

// Walk visits every cell in coordinate order
func (g *Grid) Walk(fn func(c *Cell)) {
	xs := make([]int, 0, len(g.columns))
	for x := range g.columns {
		xs = append(xs, x)
	}
	slices.Sort(xs)
	for _, x := range xs {
		col := g.columns[x]
		ys := make([]int, 0, len(col.cells))
		for y := range col.cells {
			ys = append(ys, y)
		}
		slices.Sort(ys)
		for _, y := range ys {
			fn(col.cells[y])
		}
	}
}

func (g *Grid) markDirty(c *Cell) {
	if c.dirty {
		return
	}
	c.dirty = true
	g.pending = append(g.pending, c)
}

// InvalidateAll queues every cell for repaint
func (g *Grid) InvalidateAll() {
	for _, col := range g.columns {
		for _, cell := range col.cells {
			if cell.state != Expired {
				g.markDirty(cell)
			}
		}
	}
}

// markDamaged queues every cell whose painted area overlaps r
func (g *Grid) markDamaged(r core.Rect) {
	// Probe coordinates directly for small areas, scan every cell otherwise
	if r.Inset(-1).Area() < g.cells {
		for x := r.Min.X - g.radius.X; x < r.Max.X+g.radius.X; x++ {
			col, ok := g.columns[x]
			if !ok {
				continue
			}
			for y := r.Min.Y - g.radius.Y; y < r.Max.Y+g.radius.Y; y++ {
				if cell, ok := col.cells[y]; ok && cell.state != Expired && cell.Rect().Overlaps(r) {
					g.markDirty(cell)
				}
			}
		}
	} else {
		for _, col := range g.columns {
			for _, cell := range col.cells {
				if cell.state != Expired && cell.Rect().Overlaps(r) {
					g.markDirty(cell)
				}
			}
		}
	}
	for _, cell := range g.occupied {
		if cell.Bounds().Overlaps(r) {
			g.markDirty(cell)
		}
	}
}

// Paint runs queued covers and erases, then repaints every changed cell.
// Empty cells paint before occupied ones so occupants stay on top
func (g *Grid) Paint(s render.Surface) {
	for _, cv := range g.covers {
		cv.occupant.Cover(s, cv.at, g.background)
		g.markDamaged(cv.occupant.Footprint(cv.at))
	}
	g.covers = g.covers[:0]

	for _, r := range g.erase {
		s.Fill(r, g.fadeColor)
		g.markDamaged(r)
	}
	g.erase = g.erase[:0]

	// Occupants drawn over a repainted cell must redraw; repeat until no new occupied cell joins
	for i := 0; i < len(g.pending); i++ {
		r := g.pending[i].Bounds()
		for _, cell := range g.occupied {
			if !cell.dirty && cell.Bounds().Overlaps(r) {
				g.markDirty(cell)
			}
		}
	}

	slices.SortFunc(g.pending, func(a, b *Cell) int {
		ao, bo := len(a.occupants) > 0, len(b.occupants) > 0
		switch {
		case ao != bo && !ao:
			return -1
		case ao != bo:
			return 1
		case a.at.Less(b.at):
			return -1
		case b.at.Less(a.at):
			return 1
		default:
			return 0
		}
	})

	for _, cell := range g.pending {
		cell.dirty = false
		if cell.state == Expired {
			continue
		}
		cell.paint(s)
	}
	g.pending = g.pending[:0]
}

// Render adapts Paint to the compositor
func (g *Grid) Render(_ render.Context, c *render.Canvas) {
	g.Paint(c)
}
