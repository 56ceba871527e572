package settings

import "time"

type StoreOpt func(*Store)

// WithPollInterval sets how often Start checks the settings file for changes.
func WithPollInterval(d time.Duration) StoreOpt {
	return func(s *Store) {
		s.pollInterval = d
	}
}
