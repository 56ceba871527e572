package netclient

import "time"

type ClientOpt func(*Client)

// WithBufferSize sets how many undelivered events are queued before the
// connection reports a slow consumer.
func WithBufferSize(n int) ClientOpt {
	return func(c *Client) {
		c.bufferSize = n
	}
}

// WithMaxEventsPerPoll caps how many events one PollEvents call hands out.
func WithMaxEventsPerPoll(n int) ClientOpt {
	return func(c *Client) {
		c.maxEventsPerPoll = n
	}
}

// WithConnectTimeout sets the dial timeout for each connection attempt.
func WithConnectTimeout(d time.Duration) ClientOpt {
	return func(c *Client) {
		c.connectTimeout = d
	}
}

// WithMaxReconnects sets how many times a dropped connection is retried
// before the session is considered lost. Negative retries forever.
func WithMaxReconnects(n int) ClientOpt {
	return func(c *Client) {
		c.maxReconnects = n
	}
}
