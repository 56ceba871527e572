package client

import (
	"log/slog"
	"time"
)

type AlertType int

const (
	AlertNotice AlertType = iota
	AlertWarning
	AlertError
)

func (t AlertType) String() string {
	switch t {
	case AlertNotice:
		return "notice"
	case AlertWarning:
		return "warning"
	case AlertError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	noticeAlertTimeout  = 2500 * time.Millisecond
	defaultAlertTimeout = 3 * time.Second

	alertSound = "Sounds/Feedback/Alert.opus"
)

// Alert is a transient notification shown on top of the game.
type Alert struct {
	Contents      string
	Type          AlertType
	AppearTime    time.Duration
	DisappearTime time.Duration
}

type alertOptions struct {
	timeout time.Duration
	quiet   bool
}

type AlertOpt func(*alertOptions)

// WithAlertTimeout overrides how long the alert stays visible.
func WithAlertTimeout(d time.Duration) AlertOpt {
	return func(o *alertOptions) {
		o.timeout = d
	}
}

// QuietAlert suppresses the alert sound.
func QuietAlert() AlertOpt {
	return func(o *alertOptions) {
		o.quiet = true
	}
}

// ShowAlert replaces the current alert.
func (s *Session) ShowAlert(contents string, t AlertType, opts ...AlertOpt) {
	o := alertOptions{timeout: defaultAlertTimeout}
	if t == AlertNotice {
		o.timeout = noticeAlertTimeout
	}
	for _, opt := range opts {
		opt(&o)
	}

	s.alert = Alert{
		Contents:      contents,
		Type:          t,
		AppearTime:    s.time,
		DisappearTime: s.time + o.timeout,
	}
	slog.Debug("showing alert", "type", t, "contents", contents)

	if t != AlertNotice && !o.quiet {
		s.audio.PlayLocal(alertSound)
	}
}

// ActiveAlert returns the alert to display, if one is visible right now.
func (s *Session) ActiveAlert() (Alert, bool) {
	if s.alert.Contents == "" {
		return Alert{}, false
	}
	if s.time < s.alert.AppearTime || s.time >= s.alert.DisappearTime {
		return Alert{}, false
	}
	return s.alert, true
}
