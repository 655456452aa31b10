package scene

import (
	"math"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/grid"
	"github.com/lixenwraith/krunch/parameter"
)

// ColorCurve traces a rising logarithmic intensity line, holds at full intensity while on,
// and once switched off traces the falling half. Each step paints one cell whose color is the intensity
type ColorCurve struct {
	grid   *grid.Grid
	origin core.Point
	t      float64
	c      float64
	on     bool
}

// NewColorCurve starts the curve at origin, switched on
func NewColorCurve(g *grid.Grid, origin core.Point) *ColorCurve {
	return &ColorCurve{grid: g, origin: origin, on: true}
}

// Off switches the curve off; the next steps trace the falling half
func (cc *ColorCurve) Off() { cc.on = false }

// On reports whether the curve is still rising or holding
func (cc *ColorCurve) On() bool { return cc.on }

// Intensity returns the current channel value in CurveFloor..0xff
func (cc *ColorCurve) Intensity() uint8 { return uint8(math.Floor(cc.c)) }

// Color returns the painted color: intensity in the green and blue channels
func (cc *ColorCurve) Color() core.RGB {
	i := uint32(cc.Intensity())
	return core.Hex(i<<8 | i)
}

// Step advances the curve one update and paints its newest cell
func (cc *ColorCurve) Step() error {
	if cc.on && cc.c >= 0xff {
		cc.c = 0xff
		return nil
	}
	if !cc.on && cc.t < parameter.CurveFallStart {
		cc.t = parameter.CurveFallStart
	}
	cc.t++

	x := cc.t * parameter.CurveWidth / parameter.CurveSpan
	if x > parameter.CurveWidth {
		return nil
	}
	var raw float64
	if x <= parameter.CurveWidth/2 {
		raw = math.Log(x) * 50
	} else {
		raw = 0xff - math.Log(x-parameter.CurveWidth/2)*50
	}
	raw = min(max(raw, 0), 0xff)
	cc.c = raw/0xff*(0xff-parameter.CurveFloor) + parameter.CurveFloor

	p := cc.origin.Add(core.Pt(int(x/parameter.CurveScaleX), -int(raw/parameter.CurveScaleY)))
	return cc.grid.SetColor(p, cc.Color())
}
