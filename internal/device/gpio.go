package device

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

func openPin(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio %q not found", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("gpio %s: %w", name, err)
	}
	return p, nil
}

// Motor drives a vibration motor through a transistor on one pin.
type Motor struct {
	pin gpio.PinOut
	mu  sync.Mutex // one pattern at a time
}

func OpenMotor(pin string) (*Motor, error) {
	p, err := openPin(pin)
	if err != nil {
		return nil, err
	}
	return NewMotor(p), nil
}

func NewMotor(pin gpio.PinOut) *Motor {
	return &Motor{pin: pin}
}

// Vibrate plays pattern in the background: even entries are on, odd
// entries off.
func (m *Motor) Vibrate(pattern []time.Duration) {
	go m.play(pattern)
}

func (m *Motor) play(pattern []time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range pattern {
		_ = m.pin.Out(gpio.Level(i%2 == 0))
		time.Sleep(d)
	}
	_ = m.pin.Out(gpio.Low)
}

// Backlight switches the front light.
type Backlight struct {
	pin gpio.PinOut
}

func OpenBacklight(pin string) (*Backlight, error) {
	p, err := openPin(pin)
	if err != nil {
		return nil, err
	}
	return NewBacklight(p), nil
}

func NewBacklight(pin gpio.PinOut) *Backlight {
	return &Backlight{pin: pin}
}

func (b *Backlight) Enable(on bool) {
	_ = b.pin.Out(gpio.Level(on))
}
