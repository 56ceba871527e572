package presence

import (
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-spades/internal/world"
	"golang.org/x/time/rate"
)

const (
	defaultUpdateRate   = 10 // per second
	defaultWriteTimeout = 100 * time.Millisecond
	defaultDialTimeout  = 2 * time.Second
)

var ErrNotLinked = errors.New("presence link not initialised")

// Message is what the link writes to the presence daemon.
type Message struct {
	Type     string      `json:"type"`
	Context  string      `json:"context,omitempty"`
	Identity string      `json:"identity,omitempty"`
	Position *world.Vec3 `json:"position,omitempty"`
	Front    *world.Vec3 `json:"front,omitempty"`
	Alive    bool        `json:"alive,omitempty"`
}

// Link pushes the local player's context, identity and position to a local
// presence daemon (voice chat positional audio, rich presence) over a
// websocket.
type Link struct {
	url     string
	conn    *websocket.Conn
	limiter *rate.Limiter

	dialTimeout  time.Duration
	writeTimeout time.Duration
}

func NewLink(url string, opts ...LinkOpt) *Link {
	l := &Link{
		url:          url,
		limiter:      rate.NewLimiter(rate.Limit(defaultUpdateRate), 1),
		dialTimeout:  defaultDialTimeout,
		writeTimeout: defaultWriteTimeout,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Init dials the presence daemon.
func (l *Link) Init() error {
	dialer := &websocket.Dialer{HandshakeTimeout: l.dialTimeout}
	conn, _, err := dialer.Dial(l.url, nil)
	if err != nil {
		return fmt.Errorf("dialing presence daemon %s: %w", l.url, err)
	}
	l.conn = conn
	return nil
}

// SetContext tells the daemon which server the player is on, so only players
// sharing a context hear each other.
func (l *Link) SetContext(context string) error {
	return l.write(&Message{Type: "context", Context: context})
}

func (l *Link) SetIdentity(identity string) error {
	return l.write(&Message{Type: "identity", Identity: identity})
}

// Update sends the player's position. Calls beyond the update rate are
// dropped.
func (l *Link) Update(p *world.Player) error {
	if p == nil || !l.limiter.Allow() {
		return nil
	}

	pos := p.EyePosition()
	front := p.Front
	return l.write(&Message{Type: "position", Position: &pos, Front: &front, Alive: p.Alive})
}

func (l *Link) Close() error {
	if l.conn == nil {
		return nil
	}

	_ = l.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(l.writeTimeout))
	err := l.conn.Close()
	l.conn = nil
	return err
}

func (l *Link) write(m *Message) error {
	if l.conn == nil {
		return ErrNotLinked
	}

	if err := l.conn.SetWriteDeadline(time.Now().Add(l.writeTimeout)); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}
	if err := l.conn.WriteJSON(m); err != nil {
		return fmt.Errorf("writing %s: %w", m.Type, err)
	}
	return nil
}
