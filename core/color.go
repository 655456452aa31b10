package core

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Hex unpacks a 0xRRGGBB value
func Hex(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Uint32 packs the color as 0xRRGGBB
func (c RGB) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Colorful converts to the go-colorful representation
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FromColorful clamps a go-colorful color back to 8-bit channels
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// HSV builds a color from hue in degrees, saturation and value in [0,1]
func HSV(h, s, v float64) RGB {
	return FromColorful(colorful.Hsv(h, s, v))
}

// Blend mixes toward src in Lab space: t=0 keeps c, t=1 yields src
func (c RGB) Blend(src RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return src
	}
	return FromColorful(c.Colorful().BlendLab(src.Colorful(), t))
}

// Scale multiplies each channel by factor (for fading effects)
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

func (c RGB) String() string {
	return fmt.Sprintf("#%06x", c.Uint32())
}
