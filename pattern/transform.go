package pattern

import "github.com/lixenwraith/krunch/core"

// Translate shifts all points by (dx, dy)
func (p Result) Translate(dx, dy int) Result {
	pts := make([]core.Point, len(p.Points))
	d := core.Pt(dx, dy)
	for i, pt := range p.Points {
		pts[i] = pt.Add(d)
	}
	p.Points = pts
	return p
}

// Mask removes points outside bounds
func (p Result) Mask(bounds core.Rect) Result {
	return p.MaskFunc(bounds.Contains)
}

// MaskFunc removes points where keep returns false
func (p Result) MaskFunc(keep func(core.Point) bool) Result {
	pts := make([]core.Point, 0, len(p.Points))
	for _, pt := range p.Points {
		if keep(pt) {
			pts = append(pts, pt)
		}
	}
	p.Points = pts
	return p
}
