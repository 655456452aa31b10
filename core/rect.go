package core

import (
	"fmt"
	"image"
)

// Rect is a half-open pixel rectangle: it covers Min.X <= x < Max.X and Min.Y <= y < Max.Y
// A well-formed Rect always has Min <= Max on both axes
type Rect struct {
	Min, Max Point
}

// NewRect builds a Rect from two corners in any order
func NewRect(a, b Point) Rect {
	if a.X > b.X {
		a.X, b.X = b.X, a.X
	}
	if a.Y > b.Y {
		a.Y, b.Y = b.Y, a.Y
	}
	return Rect{Min: a, Max: b}
}

// RectXYWH builds a Rect from an origin and a size
func RectXYWH(x, y, w, h int) Rect {
	return NewRect(Pt(x, y), Pt(x+w, y+h))
}

// RectAround returns the rectangle spanning rx columns and ry rows on each side of p, p included
func RectAround(p Point, rx, ry int) Rect {
	return Rect{
		Min: Point{p.X - rx, p.Y - ry},
		Max: Point{p.X + rx + 1, p.Y + ry + 1},
	}
}

// Dx returns the width
func (r Rect) Dx() int { return r.Max.X - r.Min.X }

// Dy returns the height
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

// Empty reports whether the rectangle covers no pixel
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Union returns the smallest rectangle covering both r and s. Empty operands are ignored
func (r Rect) Union(s Rect) Rect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	return Rect{
		Min: Point{min(r.Min.X, s.Min.X), min(r.Min.Y, s.Min.Y)},
		Max: Point{max(r.Max.X, s.Max.X), max(r.Max.Y, s.Max.Y)},
	}
}

// Intersect returns the common area, or the zero Rect when disjoint
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		Min: Point{max(r.Min.X, s.Min.X), max(r.Min.Y, s.Min.Y)},
		Max: Point{min(r.Max.X, s.Max.X), min(r.Max.Y, s.Max.Y)},
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Overlaps reports whether r and s share at least one pixel
func (r Rect) Overlaps(s Rect) bool {
	return !r.Empty() && !s.Empty() &&
		r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// Inset shrinks r by n on every side; a negative n grows it
func (r Rect) Inset(n int) Rect {
	return Rect{
		Min: Point{r.Min.X + n, r.Min.Y + n},
		Max: Point{r.Max.X - n, r.Max.Y - n},
	}
}

// Touches reports whether r and s overlap or have pixels that are 8-neighbors of each other
func (r Rect) Touches(s Rect) bool {
	if r.Empty() || s.Empty() {
		return false
	}
	return r.Inset(-1).Overlaps(s)
}

// Less orders rectangles by Min, then Max
func (r Rect) Less(s Rect) bool {
	if r.Min != s.Min {
		return r.Min.Less(s.Min)
	}
	return r.Max.Less(s.Max)
}

// Area returns the pixel count
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Dx() * r.Dy()
}

// Image converts r to the standard library rectangle type
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

func (r Rect) String() string {
	return fmt.Sprintf("%v-%v", r.Min, r.Max)
}
