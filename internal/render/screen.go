package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Screen is a framebuffer with stroke and fill state plus a single text
// overlay. It satisfies the arc canvas, the dial surface and the
// sequencer's overlay and measurer.
type Screen struct {
	img    draw.Image
	face   font.Face
	stroke color.Color
	fill   color.Color

	text      string
	frame     image.Rectangle
	hidden    bool
	textColor color.Color
}

// NewScreen wraps img. The overlay starts hidden with white text.
func NewScreen(img draw.Image, face font.Face) *Screen {
	return &Screen{
		img:       img,
		face:      face,
		stroke:    color.White,
		fill:      color.White,
		hidden:    true,
		textColor: color.White,
	}
}

func (s *Screen) Image() draw.Image            { return s.img }
func (s *Screen) Bounds() image.Rectangle      { return s.img.Bounds() }
func (s *Screen) SetStrokeColor(c color.Color) { s.stroke = c }
func (s *Screen) SetFillColor(c color.Color)   { s.fill = c }

// DrawPixel sets p in the stroke colour. Points off the framebuffer are
// dropped.
func (s *Screen) DrawPixel(p image.Point) {
	if p.In(s.img.Bounds()) {
		s.img.Set(p.X, p.Y, s.stroke)
	}
}

// FillCircle fills the disk x²+y² <= r² around c.
func (s *Screen) FillCircle(c image.Point, r int) {
	b := s.img.Bounds()
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y > r*r {
				continue
			}
			p := image.Pt(c.X+x, c.Y+y)
			if p.In(b) {
				s.img.Set(p.X, p.Y, s.fill)
			}
		}
	}
}

// Clear floods the framebuffer with c.
func (s *Screen) Clear(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *Screen) SetText(text string)        { s.text = text }
func (s *Screen) SetFrame(r image.Rectangle) { s.frame = r }
func (s *Screen) SetHidden(hidden bool)      { s.hidden = hidden }
func (s *Screen) SetTextColor(c color.Color) { s.textColor = c }
func (s *Screen) Text() string               { return s.text }
func (s *Screen) Frame() image.Rectangle     { return s.frame }
func (s *Screen) Hidden() bool               { return s.hidden }

// ContentSize reports the size text occupies when wrapped to box's width.
func (s *Screen) ContentSize(text string, box image.Rectangle) image.Point {
	return measure(s.face, wrap(s.face, text, box.Dx()))
}

// DrawOverlay renders the overlay text, each line centred horizontally in
// the frame, starting at the frame's top. Text is not clipped to the frame.
func (s *Screen) DrawOverlay() {
	if s.hidden || s.text == "" {
		return
	}
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(s.textColor),
		Face: s.face,
	}
	ascent := s.face.Metrics().Ascent.Ceil()
	lh := lineHeight(s.face)
	for i, line := range wrap(s.face, s.text, s.frame.Dx()) {
		w := d.MeasureString(line).Ceil()
		x := s.frame.Min.X + (s.frame.Dx()-w)/2
		d.Dot = fixed.P(x, s.frame.Min.Y+ascent+i*lh)
		d.DrawString(line)
	}
}
