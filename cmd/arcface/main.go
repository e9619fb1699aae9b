// Command arcface runs the arc watch face on a Raspberry Pi with a
// waveshare 2.13" e-paper touch HAT.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"arc-touch-go/internal/config"
	"arc-touch-go/internal/device"
	"arc-touch-go/internal/dial"
	"arc-touch-go/internal/logging"
	"arc-touch-go/internal/mqtt"
	"arc-touch-go/internal/render"
	"arc-touch-go/internal/sequencer"
	"arc-touch-go/internal/watch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h, err := config.LoadHost(ctx, config.EnvLookuper())
	if err != nil {
		log.Fatal(err)
	}
	flag.StringVar(&h.Platform, "platform", h.Platform, "dial geometry: rect, round or epd")
	flag.StringVar(&h.Backend, "backend", h.Backend, "rendering backend: color or mono")
	flag.StringVar(&h.StorePath, "config", h.StorePath, "settings file path")
	flag.StringVar(&h.MQTT.Broker, "broker", h.MQTT.Broker, "MQTT broker URL for settings updates")
	flag.DurationVar(&h.Device.TouchPoll, "poll", h.Device.TouchPoll, "touch poll interval")
	partial := flag.Bool("partial", false, "enable partial refresh policy")
	debug := flag.Bool("debug", false, "log debug diagnostics")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(ctx, h, *partial); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func run(ctx context.Context, h *config.Host, partial bool) error {
	g, err := dial.Lookup(h.Platform)
	if err != nil {
		return err
	}
	backend, err := render.Lookup(h.Backend)
	if err != nil {
		return err
	}
	kv, err := config.OpenFileKV(h.StorePath)
	if err != nil {
		return err
	}
	store := config.NewStore(kv)
	store.Load()

	if _, err := host.Init(); err != nil {
		return err
	}
	spiPort, err := spireg.Open("")
	if err != nil {
		return err
	}
	defer spiPort.Close()

	panel, err := device.OpenPanel(spiPort, partial)
	if err != nil {
		return err
	}
	defer func() {
		if err := panel.Close(); err != nil {
			log.Printf("panel shutdown failed: %v", err)
		}
	}()

	var light sequencer.Light
	if b, err := device.OpenBacklight(h.Device.LightPin); err != nil {
		log.Printf("backlight unavailable: %v", err)
	} else {
		light = b
	}
	var vibe sequencer.Vibrator
	if m, err := device.OpenMotor(h.Device.VibePin); err != nil {
		log.Printf("vibration motor unavailable: %v", err)
	} else {
		vibe = m
	}

	loop := watch.NewLoop(64)
	var face *watch.Face

	var link sequencer.Link
	var sub *mqtt.Subscriber
	if h.MQTT.Broker != "" {
		sub = mqtt.New(h.MQTT, mqtt.Handlers{
			OnMessage: func(m config.Message) {
				loop.Post(func() { _ = face.HandleMessage(m) })
			},
			OnLink: func(connected bool) {
				loop.Post(func() { face.HandleConnection(connected) })
			},
		})
		defer sub.Close()
		link = sub
	}

	face, err = watch.New(loop, watch.Options{
		Geometry: g,
		Backend:  backend,
		Font:     render.LoadFace(h.FontSize),
		Store:    store,
		Display:  panel,
		Light:    light,
		Vibrator: vibe,
		Battery:  device.NewBattery(h.Device.BatteryPath),
		Link:     link,
		Clock24h: h.Clock24h,
	})
	if err != nil {
		return err
	}
	face.Start(time.Now())

	if sub != nil {
		go func() {
			if err := sub.Connect(ctx); err != nil {
				log.Printf("mqtt connect failed: %v", err)
			}
		}()
	}

	touch, err := device.OpenTouch(h.Device.TouchBus)
	if err != nil {
		log.Printf("touch unavailable: %v", err)
	} else {
		defer touch.Close()
		go touch.Run(ctx, h.Device.TouchPoll, func(axis, direction int) {
			loop.Post(func() { face.HandleTap(axis, direction) })
		})
	}

	return face.Run(ctx)
}
