package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/krunch/core"
)

// Glyph cell size of basicfont.Face7x13
const (
	GlyphWidth  = 7
	GlyphHeight = 13
)

func rgba(c core.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Snapshot rasterizes a buffer, one 7x13 glyph box per cell
func Snapshot(buf *Buffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width()*GlyphWidth, buf.Height()*GlyphHeight))
	face := basicfont.Face7x13

	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c := buf.Get(x, y)
			box := image.Rect(x*GlyphWidth, y*GlyphHeight, (x+1)*GlyphWidth, (y+1)*GlyphHeight)
			draw.Draw(img, box, image.NewUniform(rgba(c.Bg)), image.Point{}, draw.Src)

			if c.Rune == 0 || c.Rune == ' ' {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(rgba(c.Fg)),
				Face: face,
				Dot:  fixed.P(x*GlyphWidth, y*GlyphHeight+face.Ascent),
			}
			d.DrawString(string(c.Rune))
		}
	}
	return img
}

// WritePNG encodes the snapshot of buf to w
func WritePNG(w io.Writer, buf *Buffer) error {
	return png.Encode(w, Snapshot(buf))
}
