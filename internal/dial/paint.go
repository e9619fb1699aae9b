package dial

import (
	"image"
	"image/color"

	"arc-touch-go/internal/arc"
	"arc-touch-go/internal/theme"
)

// Surface is the drawing capability the dial needs besides the arc canvas.
type Surface interface {
	arc.Canvas
	SetFillColor(c color.Color)
	FillCircle(center image.Point, radius int)
}

// Paint draws both rings. The minute shows as a notch carved out of the
// outer ring; the hour ring is cleared everywhere except the hour window.
func Paint(s Surface, g Geometry, a Angles, th theme.Theme) {
	bg := th[theme.Background]
	c := g.Center

	s.SetFillColor(th[theme.Minute])
	s.FillCircle(c, g.ExternalRadius)
	s.SetFillColor(bg)
	s.FillCircle(c, g.OuterInnerRadius())
	arc.Draw(s, c, g.ExternalRadius+1, g.OuterThickness+2, a.MinuteFrom, a.MinuteTo, bg)

	s.SetFillColor(th[theme.Hour])
	s.FillCircle(c, g.InnerOuterRadius())
	s.SetFillColor(bg)
	s.FillCircle(c, g.InnerOuterRadius()-g.InnerThickness)
	arc.Draw(s, c, g.InnerOuterRadius()+1, g.InnerThickness+1, a.HourTo, a.HourFrom, bg)
}
