package messaging

import (
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestNatsServer_PublishSubscribe(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Run(); err != nil {
		t.Fatalf("starting server: %v", err)
	}
	defer s.Shutdown()

	received := make(chan string, 1)
	unsub, err := s.Subscribe("spades.test", func(data []byte) {
		received <- string(data)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unsub()

	err = s.Publish("spades.test", []byte("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case msg := <-received:
		testutil.AssertEqual(t, "message", msg, "hello")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestNatsServer_NotStarted(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = s.Publish("spades.test", []byte("hello"))
	testutil.AssertErrorContains(t, err, "not started")

	_, err = s.Subscribe("spades.test", func([]byte) {})
	testutil.AssertErrorContains(t, err, "not started")
}
