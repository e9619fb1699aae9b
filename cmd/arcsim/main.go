// Command arcsim runs the arc watch face in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sethvargo/go-envconfig"

	"arc-touch-go/internal/config"
	"arc-touch-go/internal/dial"
	"arc-touch-go/internal/logging"
	"arc-touch-go/internal/render"
	"arc-touch-go/internal/sim"
	"arc-touch-go/internal/watch"
)

// simDefaults apply when the environment leaves a variable unset.
var simDefaults = map[string]string{
	"PLATFORM": "round",
	"BACKEND":  "color",
}

func main() {
	ctx := context.Background()
	lookup := envconfig.MultiLookuper(config.EnvLookuper(), envconfig.MapLookuper(simDefaults))
	h, err := config.LoadHost(ctx, lookup)
	if err != nil {
		log.Fatal(err)
	}
	flag.StringVar(&h.Platform, "platform", h.Platform, "dial geometry: rect, round or epd")
	flag.StringVar(&h.Backend, "backend", h.Backend, "rendering backend: color or mono")
	flag.StringVar(&h.StorePath, "config", h.StorePath, "settings file path")
	memory := flag.Bool("memory", false, "keep settings in memory only")
	logPath := flag.String("log", "arcsim.log", "diagnostics log file")
	flag.Parse()

	f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	logging.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if err := run(ctx, h, *memory); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, h *config.Host, memory bool) error {
	g, err := dial.Lookup(h.Platform)
	if err != nil {
		return err
	}
	backend, err := render.Lookup(h.Backend)
	if err != nil {
		return err
	}

	var kv config.KV = config.NewMemoryKV()
	if !memory {
		fkv, err := config.OpenFileKV(h.StorePath)
		if err != nil {
			return err
		}
		kv = fkv
	}
	store := config.NewStore(kv)
	store.Load()

	p := sim.Peripherals{
		Link:     sim.NewLink(true),
		Battery:  sim.NewBattery(80),
		Light:    &sim.Light{},
		Vibrator: sim.NewVibrator(),
	}

	var prog *tea.Program
	loop := watch.NewLoop(64)
	face, err := watch.New(loop, watch.Options{
		Geometry: g,
		Backend:  backend,
		Font:     render.LoadFace(h.FontSize),
		Store:    store,
		Display:  sim.NewDisplay(func(m tea.Msg) { prog.Send(m) }),
		Light:    p.Light,
		Vibrator: p.Vibrator,
		Battery:  p.Battery,
		Link:     p.Link,
		Clock24h: h.Clock24h,
	})
	if err != nil {
		return err
	}
	face.Start(time.Now())

	prog = tea.NewProgram(sim.NewModel(loop, face, store, p), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		_ = face.Run(ctx)
	}()

	_, err = prog.Run()
	return err
}
