package device

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"reflect"
	"time"
	"unsafe"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"

	"arc-touch-go/internal/logging"
)

const (
	maxPartials  = 6
	fullInterval = 24 * time.Hour
)

// Panel is the e-paper display. Between full refreshes it can update only
// the band of rows that changed.
type Panel struct {
	dev      *waveshare2in13v4.Dev
	policy   refreshPolicy
	last     *image1bit.VerticalLSB
	sleeping bool
}

// OpenPanel initialises the panel on port and clears it to white.
func OpenPanel(port spi.Port, partial bool) (*Panel, error) {
	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		return nil, err
	}
	if err := dev.Init(); err != nil {
		return nil, err
	}
	_ = setDisplayMode(dev, false)
	if err := dev.Clear(color.White); err != nil {
		return nil, err
	}
	logging.Logger().Info("panel ready", "bounds", dev.Bounds(), "partial", partial)
	return &Panel{dev: dev, policy: refreshPolicy{enabled: partial, lastFull: time.Now()}}, nil
}

func (p *Panel) Bounds() image.Rectangle { return p.dev.Bounds() }

// Show sends img to the panel and puts it back to sleep.
func (p *Panel) Show(img image.Image) error {
	frame := image1bit.NewVerticalLSB(p.dev.Bounds())
	draw.Draw(frame, frame.Bounds(), img, img.Bounds().Min, draw.Src)

	now := time.Now()
	rect, full, send := p.policy.plan(p.last, frame, now)
	p.last = frame
	if !send {
		return p.sleep()
	}

	if p.sleeping {
		if err := p.dev.Init(); err != nil {
			return err
		}
		p.sleeping = false
	}
	_ = setDisplayMode(p.dev, !full)
	if err := p.dev.Draw(rect, frame, rect.Min); err != nil {
		return err
	}
	p.policy.done(full, now)
	return p.sleep()
}

func (p *Panel) sleep() error {
	if p.sleeping {
		return nil
	}
	if err := p.dev.Sleep(); err != nil {
		return err
	}
	p.sleeping = true
	return nil
}

// Close blanks the panel before halting it.
func (p *Panel) Close() error {
	if p.sleeping {
		if err := p.dev.Init(); err != nil {
			return err
		}
		p.sleeping = false
	}
	_ = setDisplayMode(p.dev, false)
	if err := p.dev.Clear(color.White); err != nil {
		return err
	}
	if err := p.dev.Sleep(); err != nil {
		return err
	}
	return p.dev.Halt()
}

// refreshPolicy decides between full and partial refreshes. Partial updates
// ghost, so a full refresh is forced after maxPartials of them or once
// fullInterval has passed.
type refreshPolicy struct {
	enabled   bool
	sinceFull int
	lastFull  time.Time
}

// plan returns the region to send, whether it needs a full refresh, and
// whether anything needs sending at all.
func (r *refreshPolicy) plan(prev, curr *image1bit.VerticalLSB, now time.Time) (image.Rectangle, bool, bool) {
	bounds := curr.Bounds()
	if !r.enabled || prev == nil {
		return bounds, true, true
	}
	diff, ok := diffRect(prev, curr)
	if !ok {
		return image.Rectangle{}, false, false
	}
	if r.sinceFull >= maxPartials || now.Sub(r.lastFull) >= fullInterval {
		return bounds, true, true
	}
	return alignRect(diff, bounds), false, true
}

func (r *refreshPolicy) done(full bool, now time.Time) {
	if full {
		r.sinceFull = 0
		r.lastFull = now
		return
	}
	r.sinceFull++
}

// setDisplayMode flips the driver's unexported refresh mode; the driver
// only exposes it through its options at construction time.
func setDisplayMode(dev *waveshare2in13v4.Dev, partial bool) error {
	v := reflect.ValueOf(dev).Elem().FieldByName("mode")
	if !v.IsValid() || !v.CanAddr() {
		return errors.New("display mode field unavailable")
	}
	ptr := reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	if partial {
		ptr.Set(reflect.ValueOf(waveshare2in13v4.Partial))
	} else {
		ptr.Set(reflect.ValueOf(waveshare2in13v4.Full))
	}
	return nil
}

// alignRect widens r to whole bytes along x, which is how the controller
// addresses RAM.
func alignRect(r, bounds image.Rectangle) image.Rectangle {
	if r.Empty() {
		return r
	}
	x0 := max(r.Min.X&^7, bounds.Min.X)
	x1 := min((r.Max.X+7)&^7, bounds.Max.X)
	if x1 <= x0 {
		return bounds
	}
	return image.Rect(x0, r.Min.Y, x1, r.Max.Y).Intersect(bounds)
}

// diffRect is the bounding box of the pixels that differ.
func diffRect(prev, curr *image1bit.VerticalLSB) (image.Rectangle, bool) {
	b := curr.Bounds()
	if !prev.Bounds().Eq(b) {
		return b, true
	}
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	changed := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if prev.BitAt(x, y) == curr.BitAt(x, y) {
				continue
			}
			changed = true
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}
	if !changed {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
