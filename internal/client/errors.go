package client

import "errors"

var (
	// ErrConnectionLost ends the frame loop. It is the only error RunFrame
	// returns once the session is running.
	ErrConnectionLost = errors.New("connection lost")

	ErrNoWorld        = errors.New("no world loaded")
	ErrNoMapLoaded    = errors.New("no map loaded")
	ErrNoFreeFileName = errors.New("no free file name")
	ErrProxyStale     = errors.New("player proxy is stale")
	ErrSessionClosed  = errors.New("session is closed")
)

// shortMessage returns the innermost error text, without the context that
// wrapping added on the way up.
func shortMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
