// Package arc paints annular ring segments pixel by pixel.
//
// Angles grow clockwise on screen: 0 points east, Angle90 south (y grows
// downwards). A pixel at offset (x, y) from the centre belongs to the ring
// when innerRadius² <= x²+y² < outerRadius², so two rings that share a
// boundary radius never paint the same pixel.
package arc

import (
	"image"
	"image/color"
)

// Canvas is the drawing capability the rasterizer paints onto.
type Canvas interface {
	SetStrokeColor(c color.Color)
	DrawPixel(p image.Point)
}

// Spec describes one ring segment.
type Spec struct {
	Center    image.Point
	Radius    int // outer radius, exclusive
	Thickness int // Radius-Thickness is the inclusive inner radius
	Start     int32
	End       int32
	Color     color.Color
}

// Draw paints s onto cv.
func (s Spec) Draw(cv Canvas) {
	Draw(cv, s.Center, s.Radius, s.Thickness, s.Start, s.End, s.Color)
}

// steepSlope stands in for the end boundary of a span that closes at a full
// turn, so the end half-plane test accepts everything but the seam.
const steepSlope float32 = -1000000

// Draw paints every pixel of the annulus [radius-thickness, radius) whose
// angular position lies in [start, end) clockwise. A span whose end is a
// multiple of MaxAngle runs to a full turn; a span with start > end wraps
// through zero and is drawn as [start, MaxAngle) followed by [0, end).
func Draw(cv Canvas, center image.Point, radius, thickness int, start, end int32, c color.Color) {
	if thickness > radius {
		thickness = radius
	}
	start = Normalize(start)
	end = Normalize(end)
	if end == 0 {
		end = MaxAngle
	}

	cv.SetStrokeColor(c)
	spans := [][2]int32{{start, end}}
	if start > end {
		spans = [][2]int32{{start, MaxAngle}, {0, end}}
	}
	for _, sp := range spans {
		drawSpan(cv, center, radius, thickness, sp[0], sp[1])
	}
}

type box struct {
	xmin, xmax, ymin, ymax int32
}

func newBox() box {
	return box{xmin: 65535000, xmax: -65535000, ymin: 65535000, ymax: -65535000}
}

func (b *box) add(x, y int32) {
	b.xmin = min(b.xmin, x)
	b.xmax = max(b.xmax, x)
	b.ymin = min(b.ymin, y)
	b.ymax = max(b.ymax, y)
}

// bounds returns the pixel bounding box of the non-wrapping span
// [start, end] for a ring of the given radii.
func bounds(radius, thickness int, start, end int32) box {
	cosStart, sinStart := Cos(start), Sin(start)
	cosEnd, sinEnd := Cos(end), Sin(end)

	b := newBox()
	for _, r := range []int32{int32(radius), int32(radius - thickness)} {
		b.add(r*cosStart, r*sinStart)
		b.add(r*cosEnd, r*sinEnd)
	}
	b.xmin /= MaxRatio
	b.xmax /= MaxRatio
	b.ymin /= MaxRatio
	b.ymax /= MaxRatio

	// The corners miss the circle's extremal point when the span crosses
	// a cardinal direction.
	if start < Angle90 && end > Angle90 {
		b.ymax = int32(radius)
	}
	if start < Angle180 && end > Angle180 {
		b.xmin = -int32(radius)
	}
	if start < Angle270 && end > Angle270 {
		b.ymin = -int32(radius)
	}
	return b
}

// slopes returns the cos/sin ratios of the two span boundaries. A zero sine
// yields an infinity, which the half-plane tests rely on.
func slopes(start, end int32) (float32, float32) {
	sslope := float32(Cos(start)) / float32(Sin(start))
	eslope := float32(Cos(end)) / float32(Sin(end))
	if end == MaxAngle {
		eslope = steepSlope
	}
	return sslope, eslope
}

// inStart reports whether (x, y) lies on the inner side of the start boundary.
func inStart(x, y int, start int32, sslope float32) bool {
	fx, fy := float32(x), float32(y)
	switch {
	case y > 0:
		return start < Angle180 && fx <= fy*sslope
	case y < 0:
		return start <= Angle180 || fx >= fy*sslope
	default:
		return (start <= Angle180 && x < 0) || (start == 0 && x > 0)
	}
}

// inEnd reports whether (x, y) lies on the inner side of the end boundary.
func inEnd(x, y int, start, end int32, eslope float32) bool {
	fx, fy := float32(x), float32(y)
	switch {
	case y > 0:
		return end >= Angle180 || fx >= fy*eslope
	case y < 0:
		return end > Angle180 && fx <= fy*eslope
	default:
		return (end >= Angle180 && x < 0) || (start == 0 && x > 0)
	}
}

func drawSpan(cv Canvas, center image.Point, radius, thickness int, start, end int32) {
	b := bounds(radius, thickness, start, end)
	sslope, eslope := slopes(start, end)

	ir2 := (radius - thickness) * (radius - thickness)
	or2 := radius * radius

	for x := int(b.xmin); x <= int(b.xmax); x++ {
		for y := int(b.ymin); y <= int(b.ymax); y++ {
			d2 := x*x + y*y
			if d2 >= or2 || d2 < ir2 {
				continue
			}
			if inStart(x, y, start, sslope) && inEnd(x, y, start, end, eslope) {
				cv.DrawPixel(image.Pt(center.X+x, center.Y+y))
			}
		}
	}
}
