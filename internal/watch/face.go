package watch

import (
	"context"
	"fmt"
	"image"
	"time"

	"golang.org/x/image/font"

	"arc-touch-go/internal/config"
	"arc-touch-go/internal/dial"
	"arc-touch-go/internal/logging"
	"arc-touch-go/internal/render"
	"arc-touch-go/internal/sequencer"
	"arc-touch-go/internal/theme"
)

// Display receives every redrawn frame.
type Display interface {
	Show(img image.Image) error
}

// Options configure a Face. Missing peripherals are replaced by stand-ins:
// no light, no vibration, a full battery and no phone link.
type Options struct {
	Geometry dial.Geometry
	Backend  render.Backend
	Font     font.Face
	Store    *config.Store
	Display  Display

	Light    sequencer.Light
	Vibrator sequencer.Vibrator
	Battery  sequencer.Battery
	Link     sequencer.Link

	Clock24h bool
	Now      func() time.Time
}

type nopLight struct{}

func (nopLight) Enable(bool) {}

type nopVibrator struct{}

func (nopVibrator) Vibrate([]time.Duration) {}

type noBattery struct{}

func (noBattery) ChargePercent() int { return 100 }

type noLink struct{}

func (noLink) Connected() bool { return false }

// Face is the watch face application. Its Handle methods and Flush must run
// on the loop goroutine.
type Face struct {
	loop   *Loop
	opt    Options
	screen *render.Screen
	seq    *sequencer.Sequencer

	theme  theme.Theme
	angles dial.Angles
	day    int
	dirty  bool
}

// overlay marks the face dirty whenever the sequencer touches the text
// layer.
type overlay struct {
	f *Face
}

func (o overlay) SetText(text string) {
	o.f.screen.SetText(text)
	o.f.dirty = true
}

func (o overlay) SetFrame(r image.Rectangle) {
	o.f.screen.SetFrame(r)
	o.f.dirty = true
}

func (o overlay) SetHidden(hidden bool) {
	o.f.screen.SetHidden(hidden)
	o.f.dirty = true
}

func New(loop *Loop, opt Options) (*Face, error) {
	if opt.Store == nil || opt.Display == nil || opt.Backend == nil {
		return nil, fmt.Errorf("watch: store, display and backend are required")
	}
	if opt.Font == nil {
		opt.Font = render.LoadFace(18)
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Light == nil {
		opt.Light = nopLight{}
	}
	if opt.Vibrator == nil {
		opt.Vibrator = nopVibrator{}
	}
	if opt.Battery == nil {
		opt.Battery = noBattery{}
	}
	if opt.Link == nil {
		opt.Link = noLink{}
	}
	g := opt.Geometry
	f := &Face{
		loop:   loop,
		opt:    opt,
		screen: render.NewScreen(opt.Backend.NewFrame(g.Bounds()), opt.Font),
	}
	f.seq = sequencer.New(sequencer.Deps{
		Scheduler: loop,
		Overlay:   overlay{f},
		Measurer:  f.screen,
		Light:     opt.Light,
		Vibrator:  opt.Vibrator,
		Battery:   opt.Battery,
		Link:      opt.Link,
		Settings:  opt.Store,
		Frame:     g.TextFrame(),
		CenterY:   g.Center.Y,
		Clock24h:  opt.Clock24h,
		Now:       opt.Now,
	})
	return f, nil
}

func (f *Face) Sequencer() *sequencer.Sequencer { return f.seq }
func (f *Face) Screen() *render.Screen          { return f.screen }
func (f *Face) Theme() theme.Theme              { return f.theme }
func (f *Face) Angles() dial.Angles             { return f.angles }

// Start computes the first frame from the loaded settings and now.
func (f *Face) Start(now time.Time) {
	f.applySettings(now)
	f.angles = dial.Calc(now, f.opt.Geometry)
	f.day = now.YearDay()
	f.dirty = true
	logging.Logger().Info("watch face started",
		"platform", f.opt.Geometry.Name, "backend", f.opt.Backend.Name())
}

// HandleTick moves the hands and refreshes the date text on a new day.
func (f *Face) HandleTick(now time.Time) {
	f.angles = dial.Calc(now, f.opt.Geometry)
	if d := now.YearDay(); d != f.day {
		f.day = d
		f.seq.SetDate(now)
	}
	f.dirty = true
}

func (f *Face) HandleTap(axis, direction int) {
	f.seq.Tap(axis, direction)
}

func (f *Face) HandleConnection(connected bool) {
	logging.Logger().Info("phone link changed", "connected", connected)
	f.seq.ConnectionChanged(connected)
}

// HandleMessage applies an inbound settings update. Incomplete or invalid
// updates are dropped without touching the store; an update that changes
// nothing is accepted silently.
func (f *Face) HandleMessage(m config.Message) error {
	u, err := config.ParseUpdate(m)
	if err != nil {
		logging.Logger().Debug("update dropped", "err", err)
		return err
	}
	if !f.opt.Store.Apply(u) {
		return nil
	}
	f.applySettings(f.opt.Now())
	f.seq.ConfigApplied()
	return nil
}

func (f *Face) applySettings(now time.Time) {
	st := f.opt.Store.Settings()
	f.theme = f.opt.Backend.Decoder().Decode(st.ThemeCode)
	f.screen.SetTextColor(f.theme[theme.Text])
	f.seq.SetDate(now)
	f.dirty = true
	logging.Logger().Info("settings applied",
		"dateorder", st.DateOrder, "lang", st.Language,
		"backlight", st.Backlight, "theme", st.ThemeCode)
}

// Flush redraws and sends the frame if anything changed since the last
// flush.
func (f *Face) Flush() error {
	if !f.dirty {
		return nil
	}
	f.dirty = false
	f.screen.Clear(f.theme[theme.Background])
	dial.Paint(f.screen, f.opt.Geometry, f.angles, f.theme)
	f.screen.DrawOverlay()
	return f.opt.Display.Show(f.screen.Image())
}

// Run starts the minute ticker and processes events until ctx is done.
// Start must have been called.
func (f *Face) Run(ctx context.Context) error {
	go f.tick(ctx)
	if err := f.Flush(); err != nil {
		logging.Logger().Warn("display update failed", "err", err)
	}
	return f.loop.Run(ctx, func() {
		if err := f.Flush(); err != nil {
			logging.Logger().Warn("display update failed", "err", err)
		}
	})
}

// tick posts a HandleTick at the top of every minute.
func (f *Face) tick(ctx context.Context) {
	for {
		now := f.opt.Now()
		t := time.NewTimer(now.Truncate(time.Minute).Add(time.Minute).Sub(now))
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
		f.loop.Post(func() { f.HandleTick(f.opt.Now()) })
	}
}
