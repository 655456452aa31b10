package pattern

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/krunch/core"
)

// Terminal cells are roughly twice as tall as wide; x offsets are doubled to keep shapes round
const aspect = 2.0

// lines draws a V across the middle half of the width, shifted vertically by a random amount
func lines(rng *rand.Rand, w, h int) []core.Point {
	t := rng.Intn(h) - rng.Intn(h)
	pts := make([]core.Point, 0, w)
	for j := w / 4; j < (w/4)*3; j++ {
		pts = append(pts, core.Pt(j, j/2+t), core.Pt(w-j, j/2+t))
	}
	return pts
}

// circles draws one ring of random radius 5..14 around the centre
func circles(rng *rand.Rand, w, h int) []core.Point {
	cx, cy := float64(w/2), float64(h/2)
	r := float64(rng.Intn(10) + 5)
	pts := make([]core.Point, 0, 128)
	for n := 0.0; n < 2*math.Pi; n += 0.05 {
		pts = append(pts, core.Pt(
			int(math.Round(cx+math.Sin(n)*r*aspect)),
			int(math.Round(cy+math.Cos(n)*r)),
		))
	}
	return pts
}

// sine draws paired sine and cosine bands every fifth of the height, each with a random amplitude 1..4
func sine(rng *rand.Rand, w, h int) []core.Point {
	step := max(h/5, 1)
	pts := make([]core.Point, 0, 2*w*(h/step+1))
	for cy := 0; cy < h; cy += step {
		r := float64(rng.Intn(4) + 1)
		for n := 0.0; n < float64(w); n += 0.8 {
			x := int(n)
			phase := n / aspect
			pts = append(pts,
				core.Pt(x, cy+int(math.Round(math.Sin(phase)*r))),
				core.Pt(x, cy+int(math.Round(math.Cos(phase)*r))),
			)
		}
	}
	return pts
}
