// Package render owns the framebuffer the watch face draws into and the
// text overlay on top of it.
package render

import (
	"fmt"
	"image"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"

	"arc-touch-go/internal/theme"
)

// Backend is a display colour capability: the framebuffer type it draws
// into and the theme decoder that suits it.
type Backend interface {
	Name() string
	NewFrame(r image.Rectangle) draw.Image
	Decoder() theme.Decoder
}

// Color is a full-colour backend over image.NRGBA.
type Color struct{}

func (Color) Name() string                          { return "color" }
func (Color) NewFrame(r image.Rectangle) draw.Image { return image.NewNRGBA(r) }
func (Color) Decoder() theme.Decoder                { return theme.ColorDecoder{} }

// Mono is a 1-bit backend laid out the way the e-paper controller wants it.
type Mono struct{}

func (Mono) Name() string { return "mono" }

func (Mono) NewFrame(r image.Rectangle) draw.Image {
	return image1bit.NewVerticalLSB(r)
}

func (Mono) Decoder() theme.Decoder { return theme.MonoDecoder{} }

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, error) {
	switch name {
	case "color":
		return Color{}, nil
	case "mono":
		return Mono{}, nil
	}
	return nil, fmt.Errorf("unknown backend %q (want color or mono)", name)
}
