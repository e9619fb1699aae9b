package arc

import (
	"image"
	"image/color"
	"testing"
)

// pixelSet records painted pixels relative to the origin.
type pixelSet struct {
	stroke color.Color
	px     map[image.Point]color.Color
}

func newPixelSet() *pixelSet { return &pixelSet{px: make(map[image.Point]color.Color)} }

func (p *pixelSet) SetStrokeColor(c color.Color) { p.stroke = c }
func (p *pixelSet) DrawPixel(pt image.Point)     { p.px[pt] = p.stroke }

func annulusContains(x, y, radius, thickness int) bool {
	d2 := x*x + y*y
	return d2 < radius*radius && d2 >= (radius-thickness)*(radius-thickness)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want int32
	}{
		{0, 0},
		{1, 1},
		{MaxAngle - 1, MaxAngle - 1},
		{MaxAngle, 0},
		{MaxAngle + 5, 5},
		{-1, MaxAngle - 1},
		{-Angle90, Angle270},
		{-3*MaxAngle - 7, MaxAngle - 7},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeProperties(t *testing.T) {
	for a := -4 * MaxAngle; a <= 4*MaxAngle; a += 997 {
		n := Normalize(a)
		if n < 0 || n >= MaxAngle {
			t.Fatalf("Normalize(%d) = %d, out of range", a, n)
		}
		if m := Normalize(a + MaxAngle); m != n {
			t.Fatalf("Normalize(%d) = %d, Normalize(a+MaxAngle) = %d", a, n, m)
		}
	}
}

func TestSinCosCardinals(t *testing.T) {
	tests := []struct {
		a        int32
		sin, cos int32
	}{
		{0, 0, MaxRatio},
		{Angle90, MaxRatio, 0},
		{Angle180, 0, -MaxRatio},
		{Angle270, -MaxRatio, 0},
		{-Angle90, -MaxRatio, 0},
	}
	for _, tt := range tests {
		if got := Sin(tt.a); got != tt.sin {
			t.Errorf("Sin(%d) = %d, want %d", tt.a, got, tt.sin)
		}
		if got := Cos(tt.a); got != tt.cos {
			t.Errorf("Cos(%d) = %d, want %d", tt.a, got, tt.cos)
		}
	}
	if s, c := Sin(Deg(45)), Cos(Deg(45)); s != c || s != 46340 {
		t.Errorf("Sin/Cos(45°) = %d/%d, want 46340", s, c)
	}
}

func TestDrawFullCircleLeavesNoGap(t *testing.T) {
	const radius, thickness = 30, 8
	p := newPixelSet()
	Draw(p, image.Point{}, radius, thickness, 0, MaxAngle, color.White)

	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			want := annulusContains(x, y, radius, thickness)
			_, got := p.px[image.Pt(x, y)]
			if got != want {
				t.Fatalf("pixel (%d,%d) painted=%v, want %v", x, y, got, want)
			}
		}
	}
	for x := radius - thickness; x < radius; x++ {
		if _, ok := p.px[image.Pt(x, 0)]; !ok {
			t.Errorf("seam pixel (%d,0) not painted", x)
		}
	}
}

func TestDrawEndZeroMeansFullTurn(t *testing.T) {
	a, b := newPixelSet(), newPixelSet()
	Draw(a, image.Point{}, 20, 5, 0, 0, color.White)
	Draw(b, image.Point{}, 20, 5, 0, MaxAngle, color.White)
	if len(a.px) == 0 || len(a.px) != len(b.px) {
		t.Errorf("Draw(0, 0) painted %d pixels, Draw(0, MaxAngle) painted %d", len(a.px), len(b.px))
	}
}

func TestDrawWrapEqualsUnion(t *testing.T) {
	const radius, thickness = 40, 12
	spans := [][2]int32{
		{Deg(300), Deg(45)},
		{Deg(200), Deg(10)},
		{-Deg(30), Deg(30)},
		{Deg(359), Deg(1)},
	}
	for _, sp := range spans {
		s, e := Normalize(sp[0]), Normalize(sp[1])
		if s <= e {
			t.Fatalf("span %v does not wrap", sp)
		}
		wrapped := newPixelSet()
		Draw(wrapped, image.Point{}, radius, thickness, sp[0], sp[1], color.White)

		union := newPixelSet()
		Draw(union, image.Point{}, radius, thickness, s, MaxAngle, color.White)
		Draw(union, image.Point{}, radius, thickness, 0, e, color.White)

		if len(wrapped.px) != len(union.px) {
			t.Errorf("span %v: wrapped painted %d pixels, union %d", sp, len(wrapped.px), len(union.px))
			continue
		}
		for pt := range union.px {
			if _, ok := wrapped.px[pt]; !ok {
				t.Errorf("span %v: pixel %v missing from wrapped draw", sp, pt)
				break
			}
		}
	}
}

func TestDrawFirstQuadrant(t *testing.T) {
	const radius, thickness = 25, 6
	p := newPixelSet()
	Draw(p, image.Point{}, radius, thickness, 0, Angle90, color.White)

	if len(p.px) == 0 {
		t.Fatal("nothing painted")
	}
	for pt := range p.px {
		if pt.X < 0 || pt.Y < 0 {
			t.Fatalf("pixel %v lies outside the south-east quadrant", pt)
		}
		if !annulusContains(pt.X, pt.Y, radius, thickness) {
			t.Fatalf("pixel %v lies outside the annulus", pt)
		}
	}
	if _, ok := p.px[image.Pt(15, 15)]; !ok {
		t.Error("mid-ring pixel at 45° not painted")
	}
}

func TestDrawCardinalCrossingExpandsBox(t *testing.T) {
	tests := []struct {
		name       string
		start, end int32
		extremal   func(r int) image.Point
	}{
		{"south", Deg(45), Deg(135), func(r int) image.Point { return image.Pt(0, r-1) }},
		{"west", Deg(135), Deg(225), func(r int) image.Point { return image.Pt(-(r - 1), 0) }},
		{"north", Deg(225), Deg(315), func(r int) image.Point { return image.Pt(0, -(r - 1)) }},
	}
	const radius, thickness = 30, 10
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPixelSet()
			Draw(p, image.Point{}, radius, thickness, tt.start, tt.end, color.White)
			pt := tt.extremal(radius)
			if _, ok := p.px[pt]; !ok {
				t.Errorf("extremal pixel %v not painted", pt)
			}
		})
	}
}

func TestAdjoiningRingsDoNotOverlap(t *testing.T) {
	outer, inner := newPixelSet(), newPixelSet()
	Draw(outer, image.Point{}, 30, 10, 0, MaxAngle, color.White)
	Draw(inner, image.Point{}, 20, 10, 0, MaxAngle, color.White)
	for pt := range inner.px {
		if _, ok := outer.px[pt]; ok {
			t.Fatalf("pixel %v painted by both rings", pt)
		}
	}
}

func TestDrawOffsetsByCenterAndUsesColor(t *testing.T) {
	p := newPixelSet()
	center := image.Pt(72, 84)
	red := color.NRGBA{R: 0xff, A: 0xff}
	Spec{Center: center, Radius: 10, Thickness: 3, Start: 0, End: MaxAngle, Color: red}.Draw(p)

	c, ok := p.px[image.Pt(center.X+8, center.Y)]
	if !ok {
		t.Fatal("pixel east of centre not painted")
	}
	if c != red {
		t.Errorf("pixel colour = %v, want %v", c, red)
	}
	if _, ok := p.px[center]; ok {
		t.Error("centre painted")
	}
}

func TestThicknessClampedToRadius(t *testing.T) {
	p := newPixelSet()
	Draw(p, image.Point{}, 5, 50, 0, MaxAngle, color.White)
	for pt := range p.px {
		if pt.X*pt.X+pt.Y*pt.Y >= 25 {
			t.Fatalf("pixel %v outside radius", pt)
		}
	}
	if len(p.px) == 0 {
		t.Error("nothing painted for a solid disk")
	}
}
