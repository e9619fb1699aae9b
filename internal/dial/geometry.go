// Package dial lays out and paints the two-ring arc clock.
package dial

import (
	"fmt"
	"image"
	"sort"

	"arc-touch-go/internal/arc"
)

// Geometry describes the dial layout for one display.
type Geometry struct {
	Name           string
	Width, Height  int
	Center         image.Point
	ExternalRadius int
	OuterThickness int
	InnerThickness int
	Space          int // gap between the two rings

	MinuteHalfWidth int32
	HourHalfWidth   int32
}

var (
	Rect = Geometry{
		Name:            "rect",
		Width:           144,
		Height:          168,
		Center:          image.Pt(72, 84),
		ExternalRadius:  71,
		OuterThickness:  15,
		InnerThickness:  15,
		Space:           5,
		MinuteHalfWidth: arc.MaxAngle / 50,
		HourHalfWidth:   arc.MaxAngle / 24,
	}

	Round = Geometry{
		Name:            "round",
		Width:           180,
		Height:          180,
		Center:          image.Pt(90, 90),
		ExternalRadius:  91,
		OuterThickness:  18,
		InnerThickness:  15,
		Space:           5,
		MinuteHalfWidth: arc.MaxAngle / 50,
		HourHalfWidth:   arc.MaxAngle / 30,
	}

	// EPaper fits the 2.13" waveshare panel in portrait.
	EPaper = Geometry{
		Name:            "epd",
		Width:           122,
		Height:          250,
		Center:          image.Pt(61, 125),
		ExternalRadius:  60,
		OuterThickness:  12,
		InnerThickness:  10,
		Space:           4,
		MinuteHalfWidth: arc.MaxAngle / 50,
		HourHalfWidth:   arc.MaxAngle / 24,
	}
)

var geometries = map[string]Geometry{
	Rect.Name:   Rect,
	Round.Name:  Round,
	EPaper.Name: EPaper,
}

// Lookup returns the geometry registered under name.
func Lookup(name string) (Geometry, error) {
	g, ok := geometries[name]
	if !ok {
		names := make([]string, 0, len(geometries))
		for n := range geometries {
			names = append(names, n)
		}
		sort.Strings(names)
		return Geometry{}, fmt.Errorf("unknown platform %q (want one of %v)", name, names)
	}
	return g, nil
}

func (g Geometry) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

func (g Geometry) OuterInnerRadius() int {
	return g.ExternalRadius - g.OuterThickness
}

func (g Geometry) InnerOuterRadius() int {
	return g.OuterInnerRadius() - g.Space
}

func (g Geometry) InnerInnerRadius() int {
	return g.InnerOuterRadius() - g.InnerThickness
}

// TextFrame is the overlay box before vertical centring: a column as wide
// as the hour ring's hole.
func (g Geometry) TextFrame() image.Rectangle {
	r := g.InnerInnerRadius()
	return image.Rect(g.Center.X-r, g.Center.Y-24, g.Center.X+r, g.Center.Y+36)
}
