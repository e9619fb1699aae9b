// Package mqtt delivers settings updates from a broker and reports the
// broker connection as the phone link.
package mqtt

import (
	"context"
	"errors"
	"sync/atomic"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"arc-touch-go/internal/config"
	"arc-touch-go/internal/logging"
)

// Handlers are called from paho's goroutines; callers must hand the values
// over to their own goroutine.
type Handlers struct {
	OnMessage func(config.Message)
	OnLink    func(connected bool)
}

// Subscriber listens for settings updates on one topic.
type Subscriber struct {
	client mqtt.Client
	cfg    config.MQTT
	h      Handlers

	connected atomic.Bool
	seen      atomic.Bool
}

// New creates a subscriber for cfg. Nothing is dialled until Connect.
func New(cfg config.MQTT, h Handlers) *Subscriber {
	s := &Subscriber{cfg: cfg, h: h}

	options := mqtt.NewClientOptions()
	options.AddBroker(cfg.Broker)
	options.SetClientID(cfg.ClientID)
	options.SetAutoReconnect(true)
	options.SetOnConnectHandler(s.onConnect)
	options.SetConnectionLostHandler(s.onLost)
	s.client = mqtt.NewClient(options)
	return s
}

// Connect dials the broker and waits for the first connection or ctx.
func (s *Subscriber) Connect(ctx context.Context) error {
	if s.cfg.Broker == "" {
		return errors.New("mqtt: no broker configured")
	}
	t := s.client.Connect()
	select {
	case <-t.Done():
		return t.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Connected reports whether the broker connection is up. It is the live
// link state the info cycle peeks at.
func (s *Subscriber) Connected() bool {
	return s.connected.Load()
}

func (s *Subscriber) Close() {
	s.client.Disconnect(250)
}

func (s *Subscriber) onConnect(c mqtt.Client) {
	t := c.Subscribe(s.cfg.Topic, 1, s.onMessage)
	go func() {
		_ = t.Wait()
		if t.Error() != nil {
			logging.Logger().Warn("subscribe failed", "topic", s.cfg.Topic, "err", t.Error())
		}
	}()
	s.connected.Store(true)
	logging.Logger().Info("broker connected", "broker", s.cfg.Broker, "topic", s.cfg.Topic)

	// The first connection is start-up, not a link change.
	if s.seen.Swap(true) && s.h.OnLink != nil {
		s.h.OnLink(true)
	}
}

func (s *Subscriber) onLost(_ mqtt.Client, err error) {
	s.connected.Store(false)
	logging.Logger().Warn("broker connection lost", "err", err)
	if s.h.OnLink != nil {
		s.h.OnLink(false)
	}
}

func (s *Subscriber) onMessage(_ mqtt.Client, m mqtt.Message) {
	msg, err := Decode(m.Payload())
	if err != nil {
		logging.Logger().Warn("malformed settings payload", "topic", m.Topic(), "err", err)
		return
	}
	logging.Logger().Debug("settings payload", "topic", m.Topic(), "keys", len(msg))
	if s.h.OnMessage != nil {
		s.h.OnMessage(msg)
	}
}
