// Package device drives the Raspberry Pi peripherals of the hardware
// watch: the waveshare 2.13" e-paper panel, its GT1151 touch controller,
// a vibration motor, a backlight and the battery gauge.
package device

import (
	"context"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	"arc-touch-go/internal/logging"
)

const (
	gt1151Addr   = 0x14
	regStatus    = 0x814E
	regPoints    = 0x814F
	touchWidth   = 122
	touchHeight  = 250
	debounce     = 700 * time.Millisecond
	errorBackoff = 3 * time.Second
)

// Touch is the GT1151 controller. Each new press is reported as one tap.
type Touch struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

type touchPoint struct {
	x int
	y int
}

// OpenTouch opens the controller on the named I2C bus.
func OpenTouch(bus string) (*Touch, error) {
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, err
	}
	return NewTouch(b), nil
}

func NewTouch(bus i2c.BusCloser) *Touch {
	return &Touch{bus: bus, dev: &i2c.Dev{Bus: bus, Addr: gt1151Addr}}
}

func (t *Touch) Close() error {
	if t.bus != nil {
		return t.bus.Close()
	}
	return nil
}

func (t *Touch) read(reg uint16, n int) ([]byte, error) {
	w := []byte{byte(reg >> 8), byte(reg & 0xFF)}
	r := make([]byte, n)
	if err := t.dev.Tx(w, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (t *Touch) write(reg uint16, b byte) error {
	return t.dev.Tx([]byte{byte(reg >> 8), byte(reg & 0xFF), b}, nil)
}

// poll returns the first touch point, or nil when nothing is pressed.
func (t *Touch) poll() (*touchPoint, error) {
	status, err := t.read(regStatus, 1)
	if err != nil {
		return nil, err
	}
	if status[0]&0x80 == 0 {
		return nil, nil
	}
	count := int(status[0] & 0x0F)
	if count < 1 || count > 5 {
		_ = t.write(regStatus, 0x00)
		return nil, nil
	}
	data, err := t.read(regPoints, count*8)
	if err != nil {
		return nil, err
	}
	_ = t.write(regStatus, 0x00)
	x := int(data[1]) | int(data[2])<<8
	y := int(data[3]) | int(data[4])<<8
	if x >= touchWidth || y >= touchHeight {
		return nil, nil
	}
	return &touchPoint{x: x, y: y}, nil
}

// tapGate turns a stream of polls into taps: one per press, with repeated
// presses on the same spot inside the debounce window dropped.
type tapGate struct {
	held   bool
	last   touchPoint
	lastAt time.Time
}

func (g *tapGate) next(tp *touchPoint, now time.Time) bool {
	if tp == nil {
		g.held = false
		return false
	}
	if g.held {
		return false
	}
	g.held = true
	if *tp == g.last && now.Sub(g.lastAt) < debounce {
		return false
	}
	g.last = *tp
	g.lastAt = now
	return true
}

// tapDirection splits the panel into halves along its long axis: taps on
// the top half count as -1, the bottom half as +1.
func tapDirection(tp touchPoint) (axis, direction int) {
	if tp.y < touchHeight/2 {
		return 1, -1
	}
	return 1, 1
}

// Run polls every poll interval until ctx is done, calling onTap for each
// new press.
func (t *Touch) Run(ctx context.Context, poll time.Duration, onTap func(axis, direction int)) {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var gate tapGate
	var lastErrAt time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			tp, err := t.poll()
			if err != nil {
				if now.Sub(lastErrAt) > errorBackoff {
					logging.Logger().Warn("touch poll failed", "err", err)
					lastErrAt = now
				}
				continue
			}
			if gate.next(tp, now) {
				axis, dir := tapDirection(*tp)
				logging.Logger().Debug("tap", "x", tp.x, "y", tp.y)
				onTap(axis, dir)
			}
		}
	}
}
