package command

import (
	"fmt"
	"os"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-spades/internal/netclient"
)

type Config struct {
	Address       string         `json:"address"`
	DataDir       string         `json:"data_dir"`
	SettingsPath  string         `json:"settings_path"`
	FrameInterval string         `json:"frame_interval"`
	Frontend      FrontendConfig `json:"frontend"`
	Presence      PresenceConfig `json:"presence"`
	Nats          NatsConfig     `json:"nats"`
}

// Validate applies the SPADES_ADDRESS and SPADES_DATA_DIR overrides before checking the config.
func (c *Config) Validate() error {
	c.applyEnv()

	el := errors.NewErrorList()

	if c.Address == "" {
		el.Add(fmt.Errorf("address is required"))
	} else if _, _, err := netclient.ParseAddress(c.Address); err != nil {
		el.Add(fmt.Errorf("parsing address: %w", err))
	}

	if c.FrameInterval != "" {
		d, err := time.ParseDuration(c.FrameInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing frame_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("frame_interval must be positive"))
		}
	}

	el.Add(c.Frontend.validate())
	el.Add(c.Presence.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) applyEnv() {
	if addr := os.Getenv("SPADES_ADDRESS"); addr != "" {
		c.Address = addr
	}
	if dir := os.Getenv("SPADES_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
}

func (c *Config) frameInterval() time.Duration {
	d, err := time.ParseDuration(c.FrameInterval)
	if err != nil {
		return 0
	}
	return d
}

func (c *Config) dataDir() string {
	if c.DataDir == "" {
		return "."
	}
	return c.DataDir
}
