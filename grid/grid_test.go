package grid

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/dirty"
	"github.com/lixenwraith/krunch/render"
	"github.com/lixenwraith/krunch/status"
)

var (
	testBg   = core.Hex(0x101010)
	testFade = core.Hex(0x202020)
	testFill = core.Hex(0x00ff00)
	cardFg   = core.Hex(0xff0000)
)

// stubOccupant spans one column either side of its cell
type stubOccupant struct {
	id uint64
}

func (s *stubOccupant) ID() uint64 { return s.id }

func (s *stubOccupant) Footprint(at core.Point) core.Rect {
	return core.RectAround(at, 1, 0)
}

func (s *stubOccupant) Paint(surf render.Surface, at core.Point) {
	surf.Fill(s.Footprint(at), cardFg)
}

func (s *stubOccupant) Cover(surf render.Surface, at core.Point, bg core.RGB) {
	surf.Fill(s.Footprint(at), bg)
}

type fixture struct {
	grid    *Grid
	tracker *dirty.Tracker
	buf     *render.Buffer
	canvas  *render.Canvas
	reg     *status.Registry
}

func newFixture() *fixture {
	tr := dirty.New(core.RectXYWH(0, 0, 40, 20), dirty.ModeRects)
	buf := render.NewBuffer(40, 20, testBg)
	reg := status.NewRegistry()
	g := New(tr, WithBackground(testBg), WithFadeColor(testFade), WithFill(testFill), WithRegistry(reg))
	return &fixture{grid: g, tracker: tr, buf: buf, canvas: render.NewCanvas(buf, tr), reg: reg}
}

func (f *fixture) paint() {
	f.grid.Paint(f.canvas)
}

func TestCardLifecycleScenario(t *testing.T) {
	f := newFixture()
	g := f.grid
	p := core.Pt(5, 5)

	card := &stubOccupant{id: g.NextID()}
	if card.id != 1 {
		t.Fatalf("Expected first id 1, got %d", card.id)
	}
	if err := g.AddOccupant(p, card); err != nil {
		t.Fatalf("AddOccupant: %v", err)
	}

	if _, ok := g.Column(5); !ok {
		t.Fatal("Expected column x=5 to exist")
	}
	cell, ok := g.Lookup(p)
	if !ok {
		t.Fatal("Expected cell (5,5) to exist")
	}
	if cell.State() != Active || !cell.Has(1) || cell.Len() != 1 {
		t.Fatalf("Expected active cell holding {1}, got state=%v occupants=%v", cell.State(), cell.Occupants())
	}

	if !g.RemoveOccupant(p, card) {
		t.Fatal("RemoveOccupant reported card missing")
	}
	if cell.State() != Fading {
		t.Errorf("Expected fading after last occupant left, got %v", cell.State())
	}
	if len(g.covers) != 1 {
		t.Errorf("Expected one queued cover, got %d", len(g.covers))
	}

	g.Advance(1, 0)
	if cell.State() != Expired {
		t.Errorf("Expected expired after first advance, got %v", cell.State())
	}
	if _, ok := g.Lookup(p); !ok {
		t.Error("Cell must survive the first advance")
	}

	g.Advance(2, 0)
	if _, ok := g.Lookup(p); ok {
		t.Error("Expected cell pruned after second advance")
	}
	if _, ok := g.Column(5); ok {
		t.Error("Expected empty column pruned")
	}
	if g.Len() != 0 || g.Columns() != 0 {
		t.Errorf("Expected empty grid, got %d cells in %d columns", g.Len(), g.Columns())
	}
}

func TestCellAtAfterPruneIsFresh(t *testing.T) {
	f := newFixture()
	g := f.grid
	p := core.Pt(5, 5)

	old := g.MustCellAt(p)
	old.Remove()
	g.Advance(1, 0)
	g.Advance(2, 0)

	fresh, err := g.CellAt(p)
	if err != nil {
		t.Fatalf("CellAt: %v", err)
	}
	if fresh == old {
		t.Fatal("Expected a new cell after pruning")
	}
	if fresh.State() != Active || fresh.Len() != 0 || fresh.Color() != testFill {
		t.Errorf("Expected fresh active empty cell with default fill, got %v %d %v", fresh.State(), fresh.Len(), fresh.Color())
	}
}

func TestCellAtReplacesExpiredInPlace(t *testing.T) {
	f := newFixture()
	g := f.grid
	p := core.Pt(3, 3)

	old := g.MustCellAt(p)
	old.Remove()
	g.Advance(1, 0)
	if old.State() != Expired {
		t.Fatalf("Expected expired, got %v", old.State())
	}

	fresh := g.MustCellAt(p)
	if fresh == old || fresh.State() != Active {
		t.Error("Expected an expired cell to be replaced, never reactivated")
	}
	if g.Len() != 1 {
		t.Errorf("Expected replacement to keep one cell, got %d", g.Len())
	}
	g.Advance(2, 0)
	if got, ok := g.Lookup(p); !ok || got != fresh {
		t.Error("Expected the replacement cell to survive advance")
	}
}

func TestRemoveOccupiedCellDefers(t *testing.T) {
	f := newFixture()
	g := f.grid
	p := core.Pt(2, 2)
	card := &stubOccupant{id: g.NextID()}
	g.AddOccupant(p, card)

	cell, _ := g.Lookup(p)
	cell.Remove()
	if cell.State() != Active || !cell.Deactivating() {
		t.Fatalf("Expected occupied cell to stay active with pending request, got %v", cell.State())
	}
	for tick := uint64(0); tick < 5; tick++ {
		g.Advance(tick, 0)
	}
	if _, ok := g.Lookup(p); !ok {
		t.Fatal("An occupied cell must never be pruned")
	}

	g.RemoveOccupant(p, card)
	if cell.State() != Fading {
		t.Errorf("Expected fading once emptied, got %v", cell.State())
	}
}

func TestOccupantRevivesFadingCell(t *testing.T) {
	f := newFixture()
	g := f.grid
	p := core.Pt(4, 4)
	a := &stubOccupant{id: g.NextID()}
	b := &stubOccupant{id: g.NextID()}

	g.AddOccupant(p, a)
	g.RemoveOccupant(p, a)
	cell, _ := g.Lookup(p)
	if cell.State() != Fading {
		t.Fatalf("Expected fading, got %v", cell.State())
	}

	g.AddOccupant(p, b)
	if cell.State() != Active {
		t.Errorf("Expected occupant arrival to revive the cell, got %v", cell.State())
	}
	g.Advance(1, 0)
	g.Advance(2, 0)
	if got, ok := g.Lookup(p); !ok || got != cell {
		t.Error("Revived cell must not be pruned")
	}
}

func TestRemoveOccupantNotPresent(t *testing.T) {
	f := newFixture()
	g := f.grid
	if g.RemoveOccupant(core.Pt(1, 1), &stubOccupant{id: 9}) {
		t.Error("Expected false for missing cell")
	}
	g.AddOccupant(core.Pt(1, 1), &stubOccupant{id: 1})
	if g.RemoveOccupant(core.Pt(1, 1), &stubOccupant{id: 9}) {
		t.Error("Expected false for absent occupant")
	}
}

func TestNextIDMonotonic(t *testing.T) {
	g := New(dirty.New(core.Rect{}, dirty.ModeRects))
	var last uint64
	for i := 0; i < 100; i++ {
		id := g.NextID()
		if id <= last {
			t.Fatalf("Id %d not greater than %d", id, last)
		}
		last = id
	}
}

func TestFadeInsertsDirtyRect(t *testing.T) {
	f := newFixture()
	g := f.grid
	cell := g.MustCellAt(core.Pt(7, 7))
	f.paint()
	f.tracker.Clear()

	cell.Remove()
	rects := f.tracker.Rects()
	if len(rects) != 1 || rects[0] != cell.Rect() {
		t.Errorf("Expected fade to enqueue the cell rect, got %v", rects)
	}
}

func TestPaintOnlyChangedCells(t *testing.T) {
	f := newFixture()
	g := f.grid
	g.SetColor(core.Pt(1, 1), core.Hex(0x0000ff))
	g.SetColor(core.Pt(10, 5), core.Hex(0x00ffff))

	f.paint()
	if f.buf.Get(1, 1).Bg != core.Hex(0x0000ff) {
		t.Error("Expected first cell painted")
	}
	f.tracker.Clear()

	f.paint()
	if f.tracker.Len() != 0 {
		t.Errorf("Expected idle paint to touch nothing, got %v", f.tracker.Rects())
	}

	g.SetColor(core.Pt(10, 5), core.Hex(0xffffff))
	f.paint()
	rects := f.tracker.Rects()
	if len(rects) != 1 || rects[0] != core.RectXYWH(10, 5, 1, 1) {
		t.Errorf("Expected only the recolored cell, got %v", rects)
	}
}

func TestFadingCellPaintsFadeColor(t *testing.T) {
	f := newFixture()
	g := f.grid
	p := core.Pt(6, 6)
	g.SetColor(p, core.Hex(0xabcdef))
	f.paint()

	g.Remove(p)
	f.paint()
	if got := f.buf.Get(6, 6).Bg; got != testFade {
		t.Errorf("Expected fade color %v, got %v", testFade, got)
	}
}

func TestPruneBeforePaintErases(t *testing.T) {
	f := newFixture()
	g := f.grid
	p := core.Pt(8, 3)
	g.SetColor(p, core.Hex(0xabcdef))
	f.paint()

	g.Remove(p)
	g.Advance(1, 0)
	g.Advance(2, 0)
	f.paint()
	if got := f.buf.Get(8, 3).Bg; got != testFade {
		t.Errorf("Expected pruned cell erased to fade color, got %v", got)
	}
}

func TestCoverRepaintsCellsUnderneath(t *testing.T) {
	f := newFixture()
	g := f.grid
	under := core.Pt(11, 4)
	g.SetColor(under, core.Hex(0x0000ff))

	card := &stubOccupant{id: g.NextID()}
	g.AddOccupant(core.Pt(10, 4), card)
	f.paint()
	if got := f.buf.Get(11, 4).Bg; got != cardFg {
		t.Fatalf("Expected card drawn over the colored cell, got %v", got)
	}

	g.RemoveOccupant(core.Pt(10, 4), card)
	f.paint()
	if got := f.buf.Get(11, 4).Bg; got != core.Hex(0x0000ff) {
		t.Errorf("Expected colored cell restored after cover, got %v", got)
	}
	if got := f.buf.Get(9, 4).Bg; got != testBg {
		t.Errorf("Expected vacated footprint covered with background, got %v", got)
	}
}

func TestRecolorUnderCardKeepsCardOnTop(t *testing.T) {
	f := newFixture()
	g := f.grid
	g.AddOccupant(core.Pt(10, 4), &stubOccupant{id: g.NextID()})
	f.paint()

	g.SetColor(core.Pt(11, 4), core.Hex(0x0000ff))
	f.paint()
	if got := f.buf.Get(11, 4).Bg; got != cardFg {
		t.Errorf("Expected card to repaint over recolored neighbor, got %v", got)
	}
}

func TestInvalidateAllRepaints(t *testing.T) {
	f := newFixture()
	g := f.grid
	g.SetColor(core.Pt(1, 1), core.Hex(0x0000ff))
	g.SetColor(core.Pt(2, 9), core.Hex(0x0000ff))
	f.paint()

	f.buf.Clear(testBg)
	f.tracker.Clear()
	g.InvalidateAll()
	f.paint()
	if f.buf.Get(2, 9).Bg != core.Hex(0x0000ff) {
		t.Error("Expected full repaint after InvalidateAll")
	}
	if f.tracker.Len() != 2 {
		t.Errorf("Expected 2 dirty rects, got %d", f.tracker.Len())
	}
}

func TestAdvancePublishesAtRate(t *testing.T) {
	f := newFixture()
	g := f.grid
	g.MustCellAt(core.Pt(1, 1))
	g.MustCellAt(core.Pt(1, 2))
	g.MustCellAt(core.Pt(3, 2))

	cells := f.reg.Ints.Get("grid.cells")
	g.Advance(1, 50)
	if cells.Load() != 0 {
		t.Errorf("Expected no publish off-rate, got %d", cells.Load())
	}
	g.Advance(50, 50)
	if cells.Load() != 3 {
		t.Errorf("Expected 3 cells published, got %d", cells.Load())
	}
	if got := f.reg.Ints.Get("grid.columns").Load(); got != 2 {
		t.Errorf("Expected 2 columns published, got %d", got)
	}
}

func TestWalkOrdered(t *testing.T) {
	f := newFixture()
	g := f.grid
	for _, p := range []core.Point{{X: 5, Y: 1}, {X: 1, Y: 7}, {X: 1, Y: 2}, {X: 3, Y: 0}} {
		g.MustCellAt(p)
	}
	var seen []core.Point
	g.Walk(func(c *Cell) { seen = append(seen, c.At()) })
	for i := 1; i < len(seen); i++ {
		if !seen[i-1].Less(seen[i]) {
			t.Errorf("Walk out of order: %v then %v", seen[i-1], seen[i])
		}
	}
}

// Random add/remove/advance sequences must keep occupied cells active and
// prune emptied cells exactly two advances after the last departure
func TestLifecycleProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f := newFixture()
	g := f.grid

	type placed struct {
		occ *stubOccupant
		at  core.Point
	}
	var live []placed
	emptiedAt := make(map[core.Point]int)
	tick := 0

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(4); {
		case op == 0 || len(live) == 0:
			p := core.Pt(rng.Intn(8), rng.Intn(8))
			o := &stubOccupant{id: g.NextID()}
			if err := g.AddOccupant(p, o); err != nil {
				t.Fatalf("AddOccupant: %v", err)
			}
			live = append(live, placed{o, p})
			delete(emptiedAt, p)
		case op == 1:
			i := rng.Intn(len(live))
			pl := live[i]
			live = append(live[:i], live[i+1:]...)
			g.RemoveOccupant(pl.at, pl.occ)
			if cell, _ := g.Lookup(pl.at); cell.Len() == 0 {
				emptiedAt[pl.at] = tick
			}
		case op == 2:
			tick++
			g.Advance(uint64(tick), 0)
		default:
			f.paint()
		}

		for _, pl := range live {
			cell, ok := g.Lookup(pl.at)
			if !ok || !cell.Has(pl.occ.id) || cell.State() != Active {
				t.Fatalf("step %d: occupant %d at %v lost or inactive", step, pl.occ.id, pl.at)
			}
		}
		for p, at := range emptiedAt {
			_, ok := g.Lookup(p)
			switch elapsed := tick - at; {
			case elapsed < 2 && !ok:
				t.Fatalf("step %d: cell %v pruned after %d advances", step, p, elapsed)
			case elapsed >= 2 && ok:
				t.Fatalf("step %d: cell %v survived %d advances", step, p, elapsed)
			case elapsed >= 2:
				delete(emptiedAt, p)
			}
		}
	}
}
