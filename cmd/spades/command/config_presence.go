package command

import (
	"fmt"
	"net/url"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-spades/internal/presence"
)

// PresenceConfig points at an optional rich presence daemon.
type PresenceConfig struct {
	URL         string  `json:"url"`
	UpdateRate  float64 `json:"update_rate"`
	DialTimeout string  `json:"dial_timeout"`
}

func (p *PresenceConfig) validate() error {
	el := errors.NewErrorList()

	if p.URL != "" {
		u, err := url.Parse(p.URL)
		if err != nil {
			el.Add(fmt.Errorf("parsing presence url: %w", err))
		} else if u.Scheme != "ws" && u.Scheme != "wss" {
			el.Add(fmt.Errorf("presence url must use ws or wss, got %q", u.Scheme))
		}
	}
	if p.UpdateRate < 0 {
		el.Add(fmt.Errorf("update_rate must not be negative"))
	}
	if p.DialTimeout != "" {
		if _, err := time.ParseDuration(p.DialTimeout); err != nil {
			el.Add(fmt.Errorf("parsing dial_timeout: %w", err))
		}
	}

	return el.Err()
}

// buildLink returns nil when no presence daemon is configured.
func (p *PresenceConfig) buildLink() (*presence.Link, error) {
	if p.URL == "" {
		return nil, nil
	}

	var opts []presence.LinkOpt
	if p.UpdateRate > 0 {
		opts = append(opts, presence.WithUpdateRate(p.UpdateRate))
	}
	if p.DialTimeout != "" {
		d, err := time.ParseDuration(p.DialTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing dial_timeout: %w", err)
		}
		opts = append(opts, presence.WithDialTimeout(d))
	}

	return presence.NewLink(p.URL, opts...), nil
}
