package simulate

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dshills/hotkeys/key"
)

func dialTestServer(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func recvEvent(t *testing.T, ch <-chan key.Event) key.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatched event")
		return key.Event{}
	}
}

func TestServerForwardsEvents(t *testing.T) {
	events := make(chan key.Event, 8)
	s := NewServer(func(ev key.Event) { events <- ev }, testLogger())
	conn := dialTestServer(t, s)

	msgs := []string{
		`{"spec":"ctrl+s","kind":"keydown"}`,
		`{"spec":"g","kind":"keyup"}`,
		`{"spec":"escape"}`,
	}
	for _, msg := range msgs {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("write %s: %v", msg, err)
		}
	}

	ev := recvEvent(t, events)
	if ev.ID() != "ctrl+s" || ev.Kind != key.KindDown {
		t.Errorf("event 1 = %v %v, want ctrl+s keydown", ev.ID(), ev.Kind)
	}
	ev = recvEvent(t, events)
	if ev.ID() != "g" || ev.Kind != key.KindUp {
		t.Errorf("event 2 = %v %v, want g keyup", ev.ID(), ev.Kind)
	}
	ev = recvEvent(t, events)
	if ev.Key != key.KeyEscape || ev.Kind != key.KindDown {
		t.Errorf("event 3 = %v %v, want escape keydown default", ev.ID(), ev.Kind)
	}
	if ev.Time.IsZero() {
		t.Error("forwarded event time is zero, want stamped")
	}
}

func TestServerSkipsMalformedMessages(t *testing.T) {
	events := make(chan key.Event, 8)
	s := NewServer(func(ev key.Event) { events <- ev }, testLogger())
	conn := dialTestServer(t, s)

	msgs := []string{
		`not json`,
		`{"spec":"hyper+s","kind":"keydown"}`,
		`{"spec":"a","kind":"sideways"}`,
		`{"spec":"ctrl+q","kind":"keydown"}`,
	}
	for _, msg := range msgs {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("write %s: %v", msg, err)
		}
	}

	ev := recvEvent(t, events)
	if ev.ID() != "ctrl+q" {
		t.Errorf("dispatched %v, want ctrl+q after skipping malformed", ev.ID())
	}
	select {
	case extra := <-events:
		t.Errorf("unexpected extra event %v", extra.ID())
	default:
	}
}
