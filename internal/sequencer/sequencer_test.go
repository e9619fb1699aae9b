package sequencer

import (
	"image"
	"strings"
	"testing"
	"time"

	"arc-touch-go/internal/config"
	"arc-touch-go/internal/i18n"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// live returns the timers that would still fire.
func (s *fakeScheduler) live() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire runs the oldest live timer.
func (s *fakeScheduler) fire(t *testing.T) time.Duration {
	t.Helper()
	live := s.live()
	if len(live) == 0 {
		t.Fatal("no pending timer")
	}
	tm := live[0]
	tm.fired = true
	tm.f()
	return tm.d
}

type fakeOverlay struct {
	text   string
	frame  image.Rectangle
	hidden bool
}

func (o *fakeOverlay) SetText(text string)        { o.text = text }
func (o *fakeOverlay) SetFrame(r image.Rectangle) { o.frame = r }
func (o *fakeOverlay) SetHidden(h bool)           { o.hidden = h }

// lineMeasurer reports 20 pixels per line.
type lineMeasurer struct{}

func (lineMeasurer) ContentSize(text string, box image.Rectangle) image.Point {
	return image.Pt(box.Dx(), 20*(strings.Count(text, "\n")+1))
}

type fakeLight struct{ calls []bool }

func (l *fakeLight) Enable(on bool) { l.calls = append(l.calls, on) }

type fakeVibrator struct{ patterns [][]time.Duration }

func (v *fakeVibrator) Vibrate(p []time.Duration) { v.patterns = append(v.patterns, p) }

type fixedBattery int

func (b fixedBattery) ChargePercent() int { return int(b) }

type fakeLink bool

func (l *fakeLink) Connected() bool { return bool(*l) }

type staticSettings config.Settings

func (s *staticSettings) Settings() config.Settings { return config.Settings(*s) }

type harness struct {
	seq      *Sequencer
	sched    *fakeScheduler
	overlay  *fakeOverlay
	light    *fakeLight
	vibes    *fakeVibrator
	link     *fakeLink
	settings *staticSettings
}

var (
	testFrame = image.Rect(36, 60, 108, 120)
	testNow   = time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC) // a Tuesday
)

func newHarness(t *testing.T) *harness {
	t.Helper()
	link := fakeLink(true)
	st := staticSettings(config.Defaults())
	h := &harness{
		sched:    &fakeScheduler{},
		overlay:  &fakeOverlay{},
		light:    &fakeLight{},
		vibes:    &fakeVibrator{},
		link:     &link,
		settings: &st,
	}
	h.seq = New(Deps{
		Scheduler: h.sched,
		Overlay:   h.overlay,
		Measurer:  lineMeasurer{},
		Light:     h.light,
		Vibrator:  h.vibes,
		Battery:   fixedBattery(80),
		Link:      h.link,
		Settings:  h.settings,
		Frame:     testFrame,
		CenterY:   84,
		Clock24h:  true,
		Now:       func() time.Time { return testNow },
	})
	h.seq.SetDate(testNow)
	return h
}

func TestNewStartsHidden(t *testing.T) {
	h := newHarness(t)
	if h.seq.Step() != Idle || !h.overlay.hidden || h.overlay.frame != testFrame {
		t.Errorf("step=%v hidden=%v frame=%v", h.seq.Step(), h.overlay.hidden, h.overlay.frame)
	}
}

func TestInfoCycle(t *testing.T) {
	h := newHarness(t)
	h.seq.Tap(2, 1)

	steps := []struct {
		step Step
		text string
	}{
		{InfoTime, "14:07"},
		{InfoDate, "tue\n3/5"},
		{InfoPhone, "phone ok"},
		{InfoBattery, "batt 80%"},
	}
	for i, want := range steps {
		if i > 0 {
			if d := h.sched.fire(t); d != InfoDuration {
				t.Errorf("step %v scheduled after %v, want %v", steps[i-1].step, d, InfoDuration)
			}
		}
		if h.seq.Step() != want.step {
			t.Fatalf("step = %v, want %v", h.seq.Step(), want.step)
		}
		if h.overlay.text != want.text || h.overlay.hidden {
			t.Errorf("step %v: text=%q hidden=%v, want %q visible", want.step, h.overlay.text, h.overlay.hidden, want.text)
		}
	}

	h.sched.fire(t)
	if h.seq.Step() != Idle {
		t.Errorf("step = %v after cycle, want idle", h.seq.Step())
	}
	if !h.overlay.hidden || h.overlay.text != "tue\n3/5" {
		t.Errorf("after cycle: hidden=%v text=%q", h.overlay.hidden, h.overlay.text)
	}
	if len(h.sched.live()) != 0 {
		t.Error("timer still pending after the cycle ended")
	}
}

func TestInfoPhoneFailed(t *testing.T) {
	h := newHarness(t)
	*h.link = false
	h.seq.Tap(0, 0)
	h.sched.fire(t)
	h.sched.fire(t)
	if h.overlay.text != "phone failed" {
		t.Errorf("text = %q, want phone failed", h.overlay.text)
	}
}

func TestTapIgnoredWhileActive(t *testing.T) {
	for _, enter := range []struct {
		name string
		f    func(*Sequencer)
	}{
		{"info", func(s *Sequencer) { s.Tap(0, 0) }},
		{"config", func(s *Sequencer) { s.ConfigApplied() }},
		{"bluetooth", func(s *Sequencer) { s.ConnectionChanged(true) }},
	} {
		t.Run(enter.name, func(t *testing.T) {
			h := newHarness(t)
			enter.f(h.seq)
			before := h.seq.Step()
			timers := len(h.sched.timers)

			h.seq.Tap(0, 0)
			if h.seq.Step() != before || len(h.sched.timers) != timers {
				t.Errorf("tap changed step %v -> %v", before, h.seq.Step())
			}
		})
	}
}

func TestConfigAppliedRange(t *testing.T) {
	h := newHarness(t)
	h.seq.ConfigApplied()
	if h.seq.Step() != ConfigSaved || h.overlay.text != "config saved" || h.overlay.hidden {
		t.Fatalf("step=%v text=%q hidden=%v", h.seq.Step(), h.overlay.text, h.overlay.hidden)
	}
	if d := h.sched.fire(t); d != LongDuration {
		t.Errorf("ack duration = %v, want %v", d, LongDuration)
	}
	if h.seq.Step() != Idle || !h.overlay.hidden {
		t.Errorf("step=%v hidden=%v after ack", h.seq.Step(), h.overlay.hidden)
	}
}

func TestConnectionChangedPreemptsAndVibratesOnLoss(t *testing.T) {
	h := newHarness(t)
	h.seq.Tap(0, 0)
	h.sched.fire(t) // now showing the date
	stale := h.sched.live()[0]

	h.seq.ConnectionChanged(false)
	if h.seq.Step() != BluetoothStatus || h.overlay.text != "Phone failed" {
		t.Fatalf("step=%v text=%q", h.seq.Step(), h.overlay.text)
	}
	if !stale.stopped {
		t.Error("pending info timer not cancelled")
	}
	if len(h.vibes.patterns) != 1 {
		t.Fatalf("vibrations = %d, want 1", len(h.vibes.patterns))
	}
	if len(h.vibes.patterns[0]) != 3 || h.vibes.patterns[0][0] != 400*time.Millisecond {
		t.Errorf("pattern = %v", h.vibes.patterns[0])
	}

	h.seq.ConnectionChanged(true)
	if h.overlay.text != "Phone ok" {
		t.Errorf("text = %q, want Phone ok", h.overlay.text)
	}
	if len(h.vibes.patterns) != 1 {
		t.Errorf("reconnect vibrated: %d patterns", len(h.vibes.patterns))
	}

	live := h.sched.live()
	if len(live) != 1 || live[0].d != BluetoothDuration {
		t.Fatalf("live timers = %d, want one %v timer", len(live), BluetoothDuration)
	}
	h.sched.fire(t)
	if h.seq.Step() != Idle {
		t.Errorf("step = %v, want idle", h.seq.Step())
	}
}

func TestConfigAppliedPreemptsBluetooth(t *testing.T) {
	h := newHarness(t)
	h.seq.ConnectionChanged(true)
	h.seq.ConfigApplied()
	if h.seq.Step() != ConfigSaved {
		t.Fatalf("step = %v, want %v", h.seq.Step(), ConfigSaved)
	}
	if n := len(h.sched.live()); n != 1 {
		t.Errorf("live timers = %d, want 1", n)
	}
}

func TestBacklightFollowsSetting(t *testing.T) {
	h := newHarness(t)
	h.seq.Tap(0, 0)
	for h.seq.Step() != Idle {
		h.sched.fire(t)
	}
	if len(h.light.calls) != 0 {
		t.Errorf("light toggled with backlight off: %v", h.light.calls)
	}

	h.settings.Backlight = true
	h.seq.Tap(0, 0)
	for h.seq.Step() != Idle {
		h.sched.fire(t)
	}
	if len(h.light.calls) != 2 || !h.light.calls[0] || h.light.calls[1] {
		t.Errorf("light calls = %v, want [true false]", h.light.calls)
	}
}

func TestShowCentresFrame(t *testing.T) {
	h := newHarness(t)
	h.seq.Tap(0, 0)
	// One line: 20px tall, centred on y=84.
	want := image.Rect(36, 74, 108, 134)
	if h.overlay.frame != want {
		t.Errorf("one-line frame = %v, want %v", h.overlay.frame, want)
	}
	h.sched.fire(t)
	want = image.Rect(36, 64, 108, 124)
	if h.overlay.frame != want || h.seq.Frame() != want {
		t.Errorf("two-line frame = %v, want %v", h.overlay.frame, want)
	}
}

func TestResetCancelsPending(t *testing.T) {
	h := newHarness(t)
	h.seq.ConfigApplied()
	h.seq.Reset()
	if h.seq.Step() != Idle || !h.overlay.hidden || len(h.sched.live()) != 0 {
		t.Errorf("step=%v hidden=%v live=%d", h.seq.Step(), h.overlay.hidden, len(h.sched.live()))
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		monthFirst bool
		lang       i18n.Language
		at         time.Time
		want       string
	}{
		{true, i18n.English, testNow, "tue\n3/5"},
		{false, i18n.English, testNow, "tue\n5/03"},
		{false, i18n.French, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), "mer\n25/12"},
		{true, i18n.German, time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC), "son\n11/3"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.at, tt.monthFirst, tt.lang); got != tt.want {
			t.Errorf("FormatDate(%v, %v, %v) = %q, want %q", tt.at, tt.monthFirst, tt.lang, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	at := time.Date(2024, 3, 5, 21, 4, 0, 0, time.UTC)
	if got := FormatTime(at, true); got != "21:04" {
		t.Errorf("24h = %q", got)
	}
	if got := FormatTime(at, false); got != "9:04 PM" {
		t.Errorf("12h = %q", got)
	}
}

func TestStepRange(t *testing.T) {
	for s, want := range map[Step]Range{
		Idle: RangeIdle, InfoTime: RangeInfo, InfoHide: RangeInfo,
		ConfigSaved: RangeConfig, ConfigHide: RangeConfig,
		BluetoothStatus: RangeBluetooth, BluetoothHide: RangeBluetooth,
		configBase: RangeIdle, 150: RangeIdle,
	} {
		if got := s.Range(); got != want {
			t.Errorf("Step(%d).Range() = %v, want %v", s, got, want)
		}
	}
}
