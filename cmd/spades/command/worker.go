package command

import (
	"fmt"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-spades/internal/client"
	"github.com/pixil98/go-spades/internal/driver"
	"github.com/pixil98/go-spades/internal/headless"
	"github.com/pixil98/go-spades/internal/hud"
	"github.com/pixil98/go-spades/internal/netclient"
	"github.com/pixil98/go-spades/internal/settings"
)

// frontend is what the session draws to and reads input from.
type frontend interface {
	client.Renderer
	client.AudioDevice
	client.ScriptedUI
}

func BuildWorkers(config any) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	workers := service.WorkerList{}

	// Settings
	var src settings.Source = settings.Static(settings.Defaults())
	if cfg.SettingsPath != "" {
		store, err := settings.Load(cfg.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		src = store
		workers["settings"] = store
	}

	// Embedded game bus
	if cfg.Nats.Listen {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = ns
	}

	// Frontend
	var fe frontend
	var terminal *hud.HUD
	switch cfg.Frontend.Type {
	case FrontendTypeHeadless:
		fe = headless.NewFrontend(cfg.Frontend.MaxFrames)
	default:
		h, err := hud.NewHUD()
		if err != nil {
			return nil, fmt.Errorf("creating terminal ui: %w", err)
		}
		terminal = h
		fe = h
		workers["terminal"] = h
	}

	// Session
	opts := []client.SessionOpt{
		client.WithSettings(src),
		client.WithDataDir(cfg.dataDir()),
	}
	link, err := cfg.Presence.buildLink()
	if err != nil {
		return nil, fmt.Errorf("creating presence link: %w", err)
	}
	if link != nil {
		opts = append(opts, client.WithPresence(link))
	}

	session := client.NewSession(fe, fe, fe, netclient.NewClient(), cfg.Address, opts...)
	if terminal != nil {
		terminal.Bind(session)
	}

	var driverOpts []driver.FrameDriverOpt
	if d := cfg.frameInterval(); d > 0 {
		driverOpts = append(driverOpts, driver.WithFrameLength(d))
	}
	workers["driver"] = driver.NewFrameDriver(session, driverOpts...)

	return workers, nil
}
