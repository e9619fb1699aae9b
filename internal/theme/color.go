// Package theme decodes the four-colour palette of the watch face.
package theme

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit packed colour, two bits per channel: aarrggbb.
type Color uint8

const (
	Clear Color = 0x00
	Black Color = 0xc0
	White Color = 0xff
)

func expand(bits uint8) uint8 {
	return (bits & 0x3) * 0x55
}

// NRGBA returns the non-premultiplied 8-bit per channel equivalent.
func (c Color) NRGBA() color.NRGBA {
	v := uint8(c)
	return color.NRGBA{
		R: expand(v >> 4),
		G: expand(v >> 2),
		B: expand(v),
		A: expand(v >> 6),
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Hex returns the colour as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	n := c.NRGBA()
	n.A = 0xff
	cf, _ := colorful.MakeColor(n)
	return cf.Hex()
}
