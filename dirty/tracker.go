// Package dirty accumulates the surface rectangles that changed since the last
// present and merges them so each region is copied to the screen once.
package dirty

import (
	"fmt"
	"slices"
	"sort"

	"github.com/lixenwraith/krunch/core"
)

// Mode selects how inserted rectangles are kept
type Mode uint8

const (
	// ModeRects keeps every rectangle until Reduce merges touching ones
	ModeRects Mode = iota
	// ModeBounds collapses all pending rectangles into their bounding box on every insert
	ModeBounds
)

func (m Mode) String() string {
	switch m {
	case ModeRects:
		return "rects"
	case ModeBounds:
		return "bounds"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode maps a config string to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "rects":
		return ModeRects, nil
	case "bounds":
		return ModeBounds, nil
	default:
		return ModeRects, fmt.Errorf("unknown dirty mode %q", s)
	}
}

// Copier copies one sub-rectangle of the composed buffer to the visible surface
type Copier interface {
	CopyRect(r core.Rect)
}

// Tracker is an ordered set of dirty rectangles. Not safe for concurrent use;
// the render loop is its only owner
type Tracker struct {
	entries []core.Rect // sorted by Rect.Less, no duplicates
	bounds  core.Rect
	mode    Mode
}

// New creates a tracker clipping to bounds. An empty bounds disables clipping
func New(bounds core.Rect, mode Mode) *Tracker {
	return &Tracker{
		entries: make([]core.Rect, 0, 64),
		bounds:  bounds,
		mode:    mode,
	}
}

// SetBounds updates the surface rectangle used by Expose and for clipping
func (t *Tracker) SetBounds(r core.Rect) {
	t.bounds = r
}

// Bounds returns the surface rectangle
func (t *Tracker) Bounds() core.Rect {
	return t.bounds
}

// Mode returns the current insertion mode
func (t *Tracker) Mode() Mode {
	return t.mode
}

// SetMode switches insertion mode. Switching to ModeBounds collapses pending entries
func (t *Tracker) SetMode(m Mode) {
	t.mode = m
	if m == ModeBounds && len(t.entries) > 1 {
		u := t.entries[0]
		for _, e := range t.entries[1:] {
			u = u.Union(e)
		}
		t.entries = append(t.entries[:0], u)
	}
}

// Insert adds r to the set. Empty rectangles and exact duplicates are ignored
func (t *Tracker) Insert(r core.Rect) {
	if !t.bounds.Empty() {
		r = r.Intersect(t.bounds)
	}
	if r.Empty() {
		return
	}

	if t.mode == ModeBounds {
		for _, e := range t.entries {
			r = r.Union(e)
		}
		t.entries = append(t.entries[:0], r)
		return
	}

	i := sort.Search(len(t.entries), func(i int) bool { return !t.entries[i].Less(r) })
	if i < len(t.entries) && t.entries[i] == r {
		return
	}
	t.entries = slices.Insert(t.entries, i, r)
}

// Reduce replaces every pair of touching or overlapping entries with their union
// until no pair touches. Calling it twice is the same as calling it once
func (t *Tracker) Reduce() {
	for {
		merged := false
		for i := 0; i < len(t.entries); i++ {
			for j := i + 1; j < len(t.entries); j++ {
				// Sorted by Min.X: nothing further right can reach entry i
				if t.entries[j].Min.X > t.entries[i].Max.X {
					break
				}
				if !t.entries[i].Touches(t.entries[j]) {
					continue
				}
				t.entries[i] = t.entries[i].Union(t.entries[j])
				t.entries = slices.Delete(t.entries, j, j+1)
				merged = true
				j = i
			}
		}
		if !merged {
			return
		}
		slices.SortFunc(t.entries, compareRect)
		t.entries = slices.Compact(t.entries)
	}
}

// Verify returns a wrapped core.ErrInvariant if two entries still touch or the order is broken
func (t *Tracker) Verify() error {
	for i := range t.entries {
		if i > 0 && !t.entries[i-1].Less(t.entries[i]) {
			return fmt.Errorf("entries %v and %v out of order: %w", t.entries[i-1], t.entries[i], core.ErrInvariant)
		}
		for j := i + 1; j < len(t.entries); j++ {
			if t.entries[i].Touches(t.entries[j]) {
				return fmt.Errorf("entries %v and %v touch after reduce: %w", t.entries[i], t.entries[j], core.ErrInvariant)
			}
		}
	}
	if t.mode == ModeBounds && len(t.entries) > 1 {
		return fmt.Errorf("bounds mode holds %d entries: %w", len(t.entries), core.ErrInvariant)
	}
	return nil
}

// Present hands every entry to c in set order and returns the number copied
func (t *Tracker) Present(c Copier) int {
	for _, r := range t.entries {
		c.CopyRect(r)
	}
	return len(t.entries)
}

// Expose discards all entries and marks the full surface dirty
func (t *Tracker) Expose() {
	t.entries = t.entries[:0]
	if !t.bounds.Empty() {
		t.entries = append(t.entries, t.bounds)
	}
}

// Clear empties the set
func (t *Tracker) Clear() {
	t.entries = t.entries[:0]
}

// Len returns the number of entries
func (t *Tracker) Len() int {
	return len(t.entries)
}

// Rects returns a copy of the entries in set order
func (t *Tracker) Rects() []core.Rect {
	return slices.Clone(t.entries)
}

// Area returns the summed pixel area of all entries
func (t *Tracker) Area() int {
	n := 0
	for _, r := range t.entries {
		n += r.Area()
	}
	return n
}

func compareRect(a, b core.Rect) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
