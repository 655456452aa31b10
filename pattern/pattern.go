package pattern

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/lixenwraith/krunch/core"
)

// Kind selects a generator
type Kind uint8

const (
	KindLines Kind = iota
	KindCircles
	KindSine
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindLines:
		return "lines"
	case KindCircles:
		return "circles"
	case KindSine:
		return "sine"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Result is the output of any pattern generator: a set of grid points inside a Width x Height area
type Result struct {
	Kind   Kind
	Points []core.Point
	Width  int
	Height int
}

// Generate runs the generator for kind over a w x h area.
// Points falling outside the area are dropped and duplicates removed
func Generate(kind Kind, rng *rand.Rand, w, h int) Result {
	res := Result{Kind: kind, Width: w, Height: h}
	if w <= 0 || h <= 0 {
		return res
	}

	switch kind {
	case KindLines:
		res.Points = lines(rng, w, h)
	case KindCircles:
		res.Points = circles(rng, w, h)
	case KindSine:
		res.Points = sine(rng, w, h)
	}
	return res.Mask(core.RectXYWH(0, 0, w, h)).dedup()
}

// Random picks a generator uniformly
func Random(rng *rand.Rand, w, h int) Result {
	return Generate(Kind(rng.Intn(int(kindCount))), rng, w, h)
}

// Bounds returns the bounding rectangle of the pattern's points
func (p Result) Bounds() core.Rect {
	var b core.Rect
	for _, pt := range p.Points {
		b = b.Union(core.RectXYWH(pt.X, pt.Y, 1, 1))
	}
	return b
}

// Count returns number of points in pattern
func (p Result) Count() int {
	return len(p.Points)
}

// Empty returns true if pattern has no points
func (p Result) Empty() bool {
	return len(p.Points) == 0
}

func (p Result) dedup() Result {
	slices.SortFunc(p.Points, func(a, b core.Point) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	p.Points = slices.Compact(p.Points)
	return p
}
