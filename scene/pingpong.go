package scene

import "github.com/lixenwraith/krunch/core"

// PingPong oscillates an offset along one axis at a time. Each time the offset passes through
// the origin a second time the axis flips; crossing the limit reverses direction
type PingPong struct {
	Offset core.Point
	Side   bool // true moves along X
	Dir    bool // true moves towards positive
	flip   bool
	limit  int
	step   int
}

// NewPingPong creates an oscillator at the origin
func NewPingPong(limit, step int) *PingPong {
	return &PingPong{limit: limit, step: step}
}

// Step advances the offset and returns it
func (pp *PingPong) Step() core.Point {
	if pp.Offset == (core.Point{}) {
		if pp.flip {
			pp.Side = !pp.Side
			pp.flip = false
		} else {
			pp.flip = true
		}
	}
	if abs(pp.Offset.X) > pp.limit || abs(pp.Offset.Y) > pp.limit {
		pp.Dir = !pp.Dir
	}

	d := pp.step
	if !pp.Dir {
		d = -d
	}
	if pp.Side {
		pp.Offset.X += d
	} else {
		pp.Offset.Y += d
	}
	return pp.Offset
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
