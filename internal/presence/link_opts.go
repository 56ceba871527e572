package presence

import (
	"time"

	"golang.org/x/time/rate"
)

type LinkOpt func(*Link)

// WithUpdateRate sets the maximum number of position updates per second.
func WithUpdateRate(perSecond float64) LinkOpt {
	return func(l *Link) {
		l.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func WithDialTimeout(d time.Duration) LinkOpt {
	return func(l *Link) {
		l.dialTimeout = d
	}
}

func WithWriteTimeout(d time.Duration) LinkOpt {
	return func(l *Link) {
		l.writeTimeout = d
	}
}
