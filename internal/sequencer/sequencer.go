// Package sequencer drives the transient text overlay of the watch face.
//
// The sequencer walks one of three step ranges (info cycle, config
// acknowledgment, bluetooth status) using a one-shot timer per step. It is
// not safe for concurrent use: every method, and every scheduled callback,
// must run on the same goroutine.
package sequencer

import (
	"fmt"
	"image"
	"time"

	"arc-touch-go/internal/config"
	"arc-touch-go/internal/i18n"
	"arc-touch-go/internal/logging"
)

// Timer is a scheduled continuation.
type Timer interface {
	// Stop prevents the callback from running if it has not run yet.
	Stop() bool
}

// Scheduler runs f once after d on the sequencer's goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Overlay is the text layer the sequencer writes to.
type Overlay interface {
	SetText(text string)
	SetFrame(r image.Rectangle)
	SetHidden(hidden bool)
}

// Measurer reports the rendered size of text laid out in box with the
// overlay's font, centre alignment and word wrap.
type Measurer interface {
	ContentSize(text string, box image.Rectangle) image.Point
}

type Light interface {
	Enable(on bool)
}

type Vibrator interface {
	Vibrate(pattern []time.Duration)
}

type Battery interface {
	ChargePercent() int
}

// Link reports the live phone connection state.
type Link interface {
	Connected() bool
}

// SettingsSource supplies the current user settings; *config.Store
// implements it.
type SettingsSource interface {
	Settings() config.Settings
}

// Deps are the capabilities a Sequencer drives.
type Deps struct {
	Scheduler Scheduler
	Overlay   Overlay
	Measurer  Measurer
	Light     Light
	Vibrator  Vibrator
	Battery   Battery
	Link      Link
	Settings  SettingsSource

	// Frame is the overlay box before centring; CenterY is the line its
	// content is centred on.
	Frame   image.Rectangle
	CenterY int

	Clock24h bool
	Now      func() time.Time
}

// Sequencer owns all overlay state: the step counter, the date and info
// texts, the current overlay frame and the last reported link state.
type Sequencer struct {
	d Deps

	step      Step
	date      string
	info      string
	frame     image.Rectangle
	connected bool
	pending   Timer
}

// New returns an idle sequencer with the overlay hidden.
func New(d Deps) *Sequencer {
	if d.Now == nil {
		d.Now = time.Now
	}
	s := &Sequencer{d: d, frame: d.Frame}
	d.Overlay.SetFrame(s.frame)
	d.Overlay.SetHidden(true)
	return s
}

func (s *Sequencer) Step() Step { return s.step }

// Date returns the current date text.
func (s *Sequencer) Date() string { return s.date }

// Text returns the text last shown on the overlay.
func (s *Sequencer) Text() string { return s.info }

// Frame returns the overlay frame after the last centring.
func (s *Sequencer) Frame() image.Rectangle { return s.frame }

// SetDate recomputes the date text for t with the current settings.
func (s *Sequencer) SetDate(t time.Time) {
	st := s.d.Settings.Settings()
	s.date = FormatDate(t, st.DateOrder, st.Language)
}

// Tap starts the info cycle. Taps are ignored while any cycle is running.
func (s *Sequencer) Tap(axis, direction int) {
	if s.step != Idle {
		logging.Logger().Debug("tap ignored", "step", s.step, "axis", axis)
		return
	}
	s.advance()
}

// ConnectionChanged shows the link status, pre-empting whatever is on
// screen. A lost link also vibrates once.
func (s *Sequencer) ConnectionChanged(connected bool) {
	s.connected = connected
	if !connected {
		s.d.Vibrator.Vibrate(DisconnectPattern)
	}
	s.enter(bluetoothBase)
}

// ConfigApplied shows the config acknowledgment, pre-empting whatever is on
// screen.
func (s *Sequencer) ConfigApplied() {
	s.enter(configBase)
}

// Reset cancels any pending step and hides the overlay.
func (s *Sequencer) Reset() {
	s.cancel()
	s.hide()
}

func (s *Sequencer) enter(base Step) {
	s.cancel()
	logging.Logger().Debug("sequence pre-empted", "from", s.step, "to", (base + 1).Range())
	s.step = base
	s.advance()
}

func (s *Sequencer) cancel() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Sequencer) advance() {
	s.pending = nil
	s.step++
	logging.Logger().Debug("step", "step", s.step, "range", s.step.Range())

	switch s.step {
	case InfoTime:
		s.light(true)
		s.show(FormatTime(s.d.Now(), s.d.Clock24h))
		s.d.Overlay.SetHidden(false)
		s.after(InfoDuration)
	case InfoDate:
		s.show(s.date)
		s.after(InfoDuration)
	case InfoPhone:
		if s.d.Link.Connected() {
			s.show("phone ok")
		} else {
			s.show("phone failed")
		}
		s.after(InfoDuration)
	case InfoBattery:
		s.show(fmt.Sprintf("batt %d%%", s.d.Battery.ChargePercent()))
		s.after(InfoDuration)

	case ConfigSaved:
		s.light(true)
		s.show("config saved")
		s.d.Overlay.SetHidden(false)
		s.after(LongDuration)

	case BluetoothStatus:
		s.light(true)
		if s.connected {
			s.show("Phone ok")
		} else {
			s.show("Phone failed")
		}
		s.d.Overlay.SetHidden(false)
		s.after(BluetoothDuration)

	case InfoHide, ConfigHide, BluetoothHide:
		s.light(false)
		s.hide()

	default:
		logging.Logger().Warn("unexpected step, resetting", "step", s.step)
		s.hide()
	}
}

func (s *Sequencer) after(d time.Duration) {
	s.pending = s.d.Scheduler.AfterFunc(d, s.advance)
}

// hide conceals the overlay, leaves the date text in it and returns to idle.
func (s *Sequencer) hide() {
	s.d.Overlay.SetHidden(true)
	s.show(s.date)
	s.step = Idle
}

func (s *Sequencer) light(on bool) {
	if s.d.Settings.Settings().Backlight {
		s.d.Light.Enable(on)
	}
}

// show centres the overlay vertically on its content, keeping the frame's
// width and height, then sets the text.
func (s *Sequencer) show(text string) {
	size := s.d.Measurer.ContentSize(text, s.d.Frame)
	f := s.d.Frame
	s.frame = f.Add(image.Pt(0, s.d.CenterY-size.Y/2-f.Min.Y))
	s.info = text
	s.d.Overlay.SetFrame(s.frame)
	s.d.Overlay.SetText(text)
}

// FormatDate renders the weekday over the date: month/day when monthFirst,
// otherwise day/zero-padded month.
func FormatDate(t time.Time, monthFirst bool, lang i18n.Language) string {
	wd := i18n.Weekday(lang, t.Weekday())
	if monthFirst {
		return fmt.Sprintf("%s\n%d/%d", wd, int(t.Month()), t.Day())
	}
	return fmt.Sprintf("%s\n%d/%.2d", wd, t.Day(), int(t.Month()))
}

// FormatTime renders the clock as 15:04, or 3:04 PM in 12-hour style.
func FormatTime(t time.Time, clock24h bool) string {
	if clock24h {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}
