package client

import (
	"time"

	"github.com/pixil98/go-spades/internal/settings"
)

type SessionOpt func(*Session)

// WithSettings sets where the session reads its settings snapshot from.
func WithSettings(src settings.Source) SessionOpt {
	return func(s *Session) {
		s.settings = src
	}
}

// WithPresence attaches a presence link, initialised during heavy init.
func WithPresence(p PresenceLink) SessionOpt {
	return func(s *Session) {
		s.presence = p
	}
}

// WithDataDir sets the directory net logs and map shots are written under.
func WithDataDir(dir string) SessionOpt {
	return func(s *Session) {
		s.dataDir = dir
	}
}

// WithClock replaces the wall clock used for net log names and timestamps.
func WithClock(clock func() time.Time) SessionOpt {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithRendererInitFrames sets how many frames are drawn before heavy init.
func WithRendererInitFrames(n int) SessionOpt {
	return func(s *Session) {
		s.framesToInit = n
	}
}
