package scene

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/grid"
	"github.com/lixenwraith/krunch/parameter"
)

// Terminal cells are roughly twice as tall as wide; x offsets are doubled to keep the orbit round
const aspect = 2.0

// Trail paints two points orbiting an anchor every update and removes the oldest once
// more than limit are live
type Trail struct {
	grid   *grid.Grid
	rng    *rand.Rand
	anchor core.Point
	area   core.Rect
	radius float64
	angle  float64
	color  uint32
	limit  int
	points []core.Point
}

// NewTrail orbits anchor; points outside area are not painted
func NewTrail(g *grid.Grid, rng *rand.Rand, anchor core.Point, area core.Rect, limit int) *Trail {
	return &Trail{
		grid:   g,
		rng:    rng,
		anchor: anchor,
		area:   area,
		radius: parameter.TrailRadius,
		limit:  limit,
		points: make([]core.Point, 0, limit+2),
	}
}

// Radius returns the inner orbit radius
func (tr *Trail) Radius() float64 { return tr.radius }

// Grow changes the inner radius by d, never below zero
func (tr *Trail) Grow(d float64) {
	tr.radius = max(tr.radius+d, 0)
}

// Len returns the number of live trail entries
func (tr *Trail) Len() int { return len(tr.points) }

// Points returns the live entries, oldest first
func (tr *Trail) Points() []core.Point { return tr.points }

// Step rotates the orbit, paints its two points and trims the oldest entries
func (tr *Trail) Step() error {
	if tr.color == 0 {
		tr.color = uint32(tr.rng.Intn(0xff))
	}
	tr.angle += parameter.TrailAngleStep

	r := tr.radius
	for range 2 {
		r += parameter.TrailSpacing
		p := tr.anchor.Add(core.Pt(
			int(math.Round(math.Cos(tr.angle)*r*aspect)),
			int(math.Round(math.Sin(tr.angle)*r)),
		))
		if tr.area.Contains(p) {
			if err := tr.grid.SetColor(p, core.Hex(tr.color)); err != nil {
				return err
			}
			tr.points = append(tr.points, p)
		}
		tr.color = (tr.color << 1) & 0xffffff
	}

	for len(tr.points) > tr.limit {
		tr.grid.Remove(tr.points[0])
		tr.points = tr.points[1:]
	}
	return nil
}
