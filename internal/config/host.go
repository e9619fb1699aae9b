package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix is prepended to every host variable name.
const EnvPrefix = "ARC_"

// Host configures the process around the watch face.
type Host struct {
	Platform  string  `env:"PLATFORM,default=epd"`
	Backend   string  `env:"BACKEND,default=mono"`
	StorePath string  `env:"STORE_PATH"`
	Clock24h  bool    `env:"CLOCK_24H,default=true"`
	FontSize  float64 `env:"FONT_SIZE,default=18"`

	MQTT   MQTT
	Device Device
}

// MQTT configures the inbound settings transport. An empty broker disables it.
type MQTT struct {
	Broker   string `env:"MQTT_BROKER"`
	Topic    string `env:"MQTT_TOPIC,default=arc/config"`
	ClientID string `env:"MQTT_CLIENT_ID,default=arc-touch-go"`
}

// Device configures the Raspberry Pi peripherals.
type Device struct {
	TouchBus    string        `env:"TOUCH_BUS,default=1"`
	TouchPoll   time.Duration `env:"TOUCH_POLL,default=50ms"`
	VibePin     string        `env:"VIBE_PIN,default=GPIO26"`
	LightPin    string        `env:"LIGHT_PIN,default=GPIO18"`
	BatteryPath string        `env:"BATTERY_PATH,default=/sys/class/power_supply/BAT0/capacity"`
}

// EnvLookuper reads ARC_-prefixed variables from the process environment.
func EnvLookuper() envconfig.Lookuper {
	return envconfig.PrefixLookuper(EnvPrefix, envconfig.OsLookuper())
}

// LoadHost fills a Host from l, applying tag defaults for anything unset.
func LoadHost(ctx context.Context, l envconfig.Lookuper) (*Host, error) {
	var h Host
	if err := envconfig.ProcessWith(ctx, &h, l); err != nil {
		return nil, fmt.Errorf("host config: %w", err)
	}
	if h.StorePath == "" {
		h.StorePath = DefaultStorePath()
	}
	return &h, nil
}

// DefaultStorePath is settings.json under the user's config directory.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "arc-touch-go", "settings.json")
}
