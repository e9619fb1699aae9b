package sim

import (
	"sync/atomic"
	"time"
)

// The peripherals below are written on the watch loop and read by the UI,
// so all state is atomic.

type Link struct {
	up atomic.Bool
}

func NewLink(connected bool) *Link {
	l := &Link{}
	l.up.Store(connected)
	return l
}

func (l *Link) Connected() bool { return l.up.Load() }

// Toggle flips the link and returns the new state.
func (l *Link) Toggle() bool {
	for {
		old := l.up.Load()
		if l.up.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

type Battery struct {
	pct atomic.Int32
}

func NewBattery(pct int) *Battery {
	b := &Battery{}
	b.pct.Store(int32(pct))
	return b
}

func (b *Battery) ChargePercent() int { return int(b.pct.Load()) }

// Add changes the charge by delta, clamped to 0..100.
func (b *Battery) Add(delta int) {
	b.pct.Store(int32(min(max(b.ChargePercent()+delta, 0), 100)))
}

type Light struct {
	on atomic.Bool
}

func (l *Light) Enable(on bool) { l.on.Store(on) }
func (l *Light) On() bool       { return l.on.Load() }

// Vibrator remembers until when the last pattern plays.
type Vibrator struct {
	until atomic.Int64
	now   func() time.Time
}

func NewVibrator() *Vibrator {
	return &Vibrator{now: time.Now}
}

func (v *Vibrator) Vibrate(pattern []time.Duration) {
	var total time.Duration
	for _, d := range pattern {
		total += d
	}
	v.until.Store(v.now().Add(total).UnixNano())
}

func (v *Vibrator) Buzzing() bool {
	return v.now().UnixNano() < v.until.Load()
}
