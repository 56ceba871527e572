package netclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-spades/internal/world"
)

const (
	defaultRoom             = "default"
	defaultBufferSize       = 1024
	defaultMaxEventsPerPoll = 256
	defaultConnectTimeout   = 5 * time.Second
	defaultFlushTimeout     = time.Second
)

type Status int

const (
	StatusNotConnected Status = iota
	StatusConnecting
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusNotConnected:
		return "not connected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Client is the network session of a game client. Server events arrive on a
// buffered channel filled by the NATS connection and are handed out by
// PollEvents, so the caller decides when and how long to block.
type Client struct {
	id   string
	room string

	conn   *nats.Conn
	events chan *nats.Msg
	subs   []*nats.Subscription

	bufferSize       int
	maxEventsPerPoll int
	connectTimeout   time.Duration
	maxReconnects    int
}

func NewClient(opts ...ClientOpt) *Client {
	c := &Client{
		id:               uuid.New().String(),
		bufferSize:       defaultBufferSize,
		maxEventsPerPoll: defaultMaxEventsPerPoll,
		connectTimeout:   defaultConnectTimeout,
		maxReconnects:    nats.DefaultMaxReconnect,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Id returns the identifier the server uses to address this client.
func (c *Client) Id() string {
	return c.id
}

// ParseAddress splits a server address of the form nats://host:port/room into
// the bus URL and the room name.
func ParseAddress(address string) (serverURL string, room string, err error) {
	u, err := url.Parse(address)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	room = strings.Trim(u.Path, "/")
	if room == "" {
		room = defaultRoom
	}
	if strings.ContainsAny(room, ". *>") {
		return "", "", fmt.Errorf("%w: room %q", ErrInvalidAddress, room)
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), room, nil
}

// Subjects used on the bus for a room.
func BroadcastSubject(room string) string {
	return fmt.Sprintf("spades.%s.broadcast", room)
}

func ClientSubject(room, clientId string) string {
	return fmt.Sprintf("spades.%s.client.%s", room, clientId)
}

func ServerSubject(room string) string {
	return fmt.Sprintf("spades.%s.server", room)
}

// Connect starts connecting to address. An unreachable server is not an
// error: the client reports StatusConnecting and keeps retrying in the
// background.
func (c *Client) Connect(address string) error {
	if c.conn != nil {
		return fmt.Errorf("already connected to room %q", c.room)
	}

	serverURL, room, err := ParseAddress(address)
	if err != nil {
		return err
	}

	conn, err := nats.Connect(serverURL,
		nats.Name("go-spades "+c.id),
		nats.Timeout(c.connectTimeout),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(c.maxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("network session disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("network session reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", serverURL, err)
	}

	c.conn = conn
	c.room = room
	c.events = make(chan *nats.Msg, c.bufferSize)

	for _, subject := range []string{BroadcastSubject(room), ClientSubject(room, c.id)} {
		sub, err := conn.ChanSubscribe(subject, c.events)
		if err != nil {
			c.closeConn()
			return fmt.Errorf("subscribing to %s: %w", subject, err)
		}
		c.subs = append(c.subs, sub)
	}

	// Make sure the server knows our subscriptions before it answers the hello.
	if conn.IsConnected() {
		if err := conn.FlushTimeout(defaultFlushTimeout); err != nil {
			slog.Warn("flushing subscriptions", "error", err)
		}
	}

	return c.send(IntentHello, nil)
}

// Status maps the connection state onto the three states the frame loop
// cares about.
func (c *Client) Status() Status {
	if c.conn == nil {
		return StatusNotConnected
	}

	switch c.conn.Status() {
	case nats.CONNECTED:
		return StatusConnected
	case nats.CONNECTING, nats.RECONNECTING:
		return StatusConnecting
	default:
		return StatusNotConnected
	}
}

// PollEvents waits up to wait for the first event, then drains whatever else
// is already queued. Events decoded before a malformed one are returned
// together with the error; the rest stay queued for the next poll.
func (c *Client) PollEvents(ctx context.Context, wait time.Duration) ([]Event, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	if c.conn.IsClosed() {
		return nil, ErrConnectionClosed
	}

	var events []Event

	first, err := c.waitForMessage(ctx, wait)
	if err != nil || first == nil {
		return nil, err
	}

	msg := first
	for {
		ev, err := DecodeEvent(msg.Data)
		if err != nil {
			return events, err
		}
		events = append(events, ev)

		if len(events) >= c.maxEventsPerPoll {
			return events, nil
		}

		select {
		case msg = <-c.events:
		default:
			return events, nil
		}
	}
}

func (c *Client) waitForMessage(ctx context.Context, wait time.Duration) (*nats.Msg, error) {
	if wait <= 0 {
		select {
		case msg := <-c.events:
			return msg, nil
		default:
			return nil, nil
		}
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case msg := <-c.events:
		return msg, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Disconnect says goodbye to the server and closes the connection.
func (c *Client) Disconnect() error {
	if c.conn == nil {
		return nil
	}

	var err error
	if c.conn.IsConnected() {
		err = c.send(IntentBye, nil)
		if err == nil {
			err = c.conn.FlushTimeout(defaultFlushTimeout)
		}
	}
	c.closeConn()

	if err != nil {
		return fmt.Errorf("sending goodbye: %w", err)
	}
	return nil
}

func (c *Client) closeConn() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.subs = nil
	c.conn.Close()
}

func (c *Client) SendJoin(team int, weapon world.WeaponType, name string, score int) error {
	return c.send(IntentJoin, &Join{Team: team, Weapon: weapon, Name: name, Score: score})
}

func (c *Client) SendTeamChange(team int) error {
	return c.send(IntentTeamChange, &TeamChange{Team: team})
}

func (c *Client) SendWeaponChange(weapon world.WeaponType) error {
	return c.send(IntentWeaponChange, &WeaponChange{Weapon: weapon})
}

func (c *Client) SendChat(global bool, text string) error {
	return c.send(IntentChat, &ChatIntent{Global: global, Text: text})
}

func (c *Client) send(t IntentType, payload any) error {
	if c.conn == nil || c.conn.IsClosed() {
		return ErrNotConnected
	}

	env := &Envelope{Type: string(t), ClientId: c.id}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshalling %s: %w", t, err)
		}
		env.Payload = raw
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshalling envelope: %w", err)
	}

	if err := c.conn.Publish(ServerSubject(c.room), data); err != nil {
		return fmt.Errorf("publishing %s: %w", t, err)
	}
	return nil
}
