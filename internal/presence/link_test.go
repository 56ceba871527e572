package presence

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-spades/internal/world"
	"github.com/pixil98/go-testutil"
)

// newDaemon starts a presence daemon that forwards every message it receives.
func newDaemon(t *testing.T) (string, <-chan Message) {
	t.Helper()

	msgs := make(chan Message, 16)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var m Message
			if err := conn.ReadJSON(&m); err != nil {
				return
			}
			msgs <- m
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http"), msgs
}

func expectMessage(t *testing.T, msgs <-chan Message) Message {
	t.Helper()
	select {
	case m := <-msgs:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for presence message")
	}
	return Message{}
}

func TestLink(t *testing.T) {
	url, msgs := newDaemon(t)

	l := NewLink(url, WithUpdateRate(1))
	if err := l.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer l.Close()

	if err := l.SetContext("nats://127.0.0.1:4222/arena"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := expectMessage(t, msgs)
	testutil.AssertEqual(t, "type", m.Type, "context")
	testutil.AssertEqual(t, "context", m.Context, "nats://127.0.0.1:4222/arena")

	if err := l.SetIdentity("Alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m = expectMessage(t, msgs)
	testutil.AssertEqual(t, "identity", m.Identity, "Alice")

	p := &world.Player{Alive: true, Position: world.Vec3{X: 1, Y: 2, Z: 3}, Front: world.Vec3{X: 1}}
	if err := l.Update(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Second update in the same instant is throttled.
	if err := l.Update(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m = expectMessage(t, msgs)
	testutil.AssertEqual(t, "type", m.Type, "position")
	testutil.AssertEqual(t, "alive", m.Alive, true)

	select {
	case extra := <-msgs:
		t.Errorf("expected throttled update to be dropped, got %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLink_NotInitialised(t *testing.T) {
	l := NewLink("ws://127.0.0.1:1/presence")

	err := l.SetIdentity("Alice")
	if !errors.Is(err, ErrNotLinked) {
		t.Errorf("expected ErrNotLinked, got %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}

func TestLink_InitFailure(t *testing.T) {
	l := NewLink("ws://127.0.0.1:1/presence", WithDialTimeout(100*time.Millisecond))

	err := l.Init()
	testutil.AssertErrorContains(t, err, "dialing presence daemon")
}
