package dirty

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/lixenwraith/krunch/core"
)

type recordingCopier struct {
	rects []core.Rect
}

func (c *recordingCopier) CopyRect(r core.Rect) {
	c.rects = append(c.rects, r)
}

func TestInsertDropsDuplicates(t *testing.T) {
	tr := New(core.Rect{}, ModeRects)
	r := core.NewRect(core.Pt(1, 1), core.Pt(3, 3))
	tr.Insert(r)
	tr.Insert(r)
	if tr.Len() != 1 {
		t.Errorf("Expected 1 entry after duplicate insert, got %d", tr.Len())
	}
}

func TestInsertIgnoresEmpty(t *testing.T) {
	tr := New(core.Rect{}, ModeRects)
	tr.Insert(core.Rect{})
	tr.Insert(core.NewRect(core.Pt(4, 4), core.Pt(4, 9)))
	if tr.Len() != 0 {
		t.Errorf("Expected empty rectangles to be ignored, got %d entries", tr.Len())
	}
}

func TestInsertKeepsOrder(t *testing.T) {
	tr := New(core.Rect{}, ModeRects)
	tr.Insert(core.NewRect(core.Pt(20, 0), core.Pt(21, 1)))
	tr.Insert(core.NewRect(core.Pt(0, 5), core.Pt(1, 6)))
	tr.Insert(core.NewRect(core.Pt(0, 0), core.Pt(1, 1)))

	rects := tr.Rects()
	for i := 1; i < len(rects); i++ {
		if !rects[i-1].Less(rects[i]) {
			t.Errorf("Entries out of order at %d: %v then %v", i, rects[i-1], rects[i])
		}
	}
}

func TestInsertClipsToBounds(t *testing.T) {
	tr := New(core.NewRect(core.Pt(0, 0), core.Pt(10, 10)), ModeRects)
	tr.Insert(core.NewRect(core.Pt(8, 8), core.Pt(14, 14)))
	tr.Insert(core.NewRect(core.Pt(20, 20), core.Pt(24, 24)))

	rects := tr.Rects()
	if len(rects) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(rects))
	}
	if rects[0] != core.NewRect(core.Pt(8, 8), core.Pt(10, 10)) {
		t.Errorf("Expected clipped rect, got %v", rects[0])
	}
}

func TestReduceMergesTouching(t *testing.T) {
	tr := New(core.Rect{}, ModeRects)
	tr.Insert(core.NewRect(core.Pt(0, 0), core.Pt(2, 2)))
	tr.Insert(core.NewRect(core.Pt(2, 0), core.Pt(4, 2)))
	tr.Reduce()

	rects := tr.Rects()
	if len(rects) != 1 {
		t.Fatalf("Expected 1 entry after reduce, got %d: %v", len(rects), rects)
	}
	if want := core.NewRect(core.Pt(0, 0), core.Pt(4, 2)); rects[0] != want {
		t.Errorf("Expected %v, got %v", want, rects[0])
	}
}

func TestReduceKeepsSeparated(t *testing.T) {
	tr := New(core.Rect{}, ModeRects)
	a := core.NewRect(core.Pt(0, 0), core.Pt(2, 2))
	b := core.NewRect(core.Pt(10, 10), core.Pt(12, 12))
	tr.Insert(a)
	tr.Insert(b)
	tr.Reduce()
	if tr.Len() != 2 {
		t.Errorf("Expected disjoint rectangles to survive, got %d entries", tr.Len())
	}
}

func TestReduceChains(t *testing.T) {
	// a touches b, b touches c, a does not touch c: one union must result
	tr := New(core.Rect{}, ModeRects)
	tr.Insert(core.NewRect(core.Pt(0, 0), core.Pt(2, 1)))
	tr.Insert(core.NewRect(core.Pt(10, 0), core.Pt(12, 1)))
	tr.Insert(core.NewRect(core.Pt(2, 0), core.Pt(10, 1)))
	tr.Reduce()

	rects := tr.Rects()
	if len(rects) != 1 || rects[0] != core.NewRect(core.Pt(0, 0), core.Pt(12, 1)) {
		t.Errorf("Expected a single chained union, got %v", rects)
	}
}

func TestReduceIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tr := New(core.Rect{}, ModeRects)
	for i := 0; i < 200; i++ {
		x, y := rng.Intn(100), rng.Intn(40)
		tr.Insert(core.RectXYWH(x, y, 1+rng.Intn(4), 1+rng.Intn(3)))
	}

	tr.Reduce()
	first := tr.Rects()
	if err := tr.Verify(); err != nil {
		t.Fatalf("Verify after reduce: %v", err)
	}

	tr.Reduce()
	second := tr.Rects()
	if len(first) != len(second) {
		t.Fatalf("Second reduce changed entry count: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Second reduce changed entry %d: %v -> %v", i, first[i], second[i])
		}
	}
}

func TestReducePreservesCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := New(core.Rect{}, ModeRects)
	var inserted []core.Rect
	for i := 0; i < 60; i++ {
		r := core.RectXYWH(rng.Intn(50), rng.Intn(20), 1+rng.Intn(3), 1+rng.Intn(3))
		inserted = append(inserted, r)
		tr.Insert(r)
	}
	tr.Reduce()

	for _, r := range inserted {
		covered := false
		for _, e := range tr.Rects() {
			if e.Intersect(r) == r {
				covered = true
				break
			}
		}
		if !covered {
			t.Errorf("Inserted %v is not covered by any reduced entry", r)
		}
	}
}

func TestExposeAndClear(t *testing.T) {
	bounds := core.NewRect(core.Pt(0, 0), core.Pt(80, 24))
	tr := New(bounds, ModeRects)
	tr.Insert(core.RectXYWH(1, 1, 2, 2))
	tr.Insert(core.RectXYWH(40, 10, 2, 2))

	tr.Expose()
	rects := tr.Rects()
	if len(rects) != 1 || rects[0] != bounds {
		t.Errorf("Expected single full-surface entry after expose, got %v", rects)
	}

	tr.Clear()
	if tr.Len() != 0 {
		t.Errorf("Expected empty tracker after clear, got %d", tr.Len())
	}
}

func TestPresentCopiesEveryEntry(t *testing.T) {
	tr := New(core.Rect{}, ModeRects)
	tr.Insert(core.RectXYWH(10, 0, 1, 1))
	tr.Insert(core.RectXYWH(0, 0, 1, 1))

	var c recordingCopier
	if n := tr.Present(&c); n != 2 {
		t.Errorf("Expected 2 copies, got %d", n)
	}
	if len(c.rects) != 2 || c.rects[0] != core.RectXYWH(0, 0, 1, 1) {
		t.Errorf("Expected copies in set order, got %v", c.rects)
	}
}

func TestBoundsModeUnionsEverything(t *testing.T) {
	tr := New(core.Rect{}, ModeBounds)
	tr.Insert(core.RectXYWH(0, 0, 1, 1))
	tr.Insert(core.RectXYWH(30, 10, 2, 2))
	tr.Insert(core.RectXYWH(5, 20, 1, 1))

	rects := tr.Rects()
	if len(rects) != 1 {
		t.Fatalf("Expected one bounding entry, got %d", len(rects))
	}
	if want := core.NewRect(core.Pt(0, 0), core.Pt(32, 21)); rects[0] != want {
		t.Errorf("Expected %v, got %v", want, rects[0])
	}
	if err := tr.Verify(); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestSetModeCollapses(t *testing.T) {
	tr := New(core.Rect{}, ModeRects)
	tr.Insert(core.RectXYWH(0, 0, 1, 1))
	tr.Insert(core.RectXYWH(9, 9, 1, 1))
	tr.SetMode(ModeBounds)
	if tr.Len() != 1 {
		t.Errorf("Expected switch to bounds mode to collapse entries, got %d", tr.Len())
	}
}

func TestVerifyReportsTouching(t *testing.T) {
	tr := New(core.Rect{}, ModeRects)
	tr.Insert(core.RectXYWH(0, 0, 2, 2))
	tr.Insert(core.RectXYWH(2, 0, 2, 2))
	if err := tr.Verify(); !errors.Is(err, core.ErrInvariant) {
		t.Errorf("Expected ErrInvariant before reduce, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("bounds"); err != nil || m != ModeBounds {
		t.Errorf("ParseMode(bounds) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeRects {
		t.Errorf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMode("tiles"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}
