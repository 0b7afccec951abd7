package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todo_webapp/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func fakeClient(hub *Hub, buf int) *Client {
	return &Client{ID: "fake", Send: make(chan []byte, buf), Hub: hub}
}

func TestHubPublishFansOut(t *testing.T) {
	hub := NewHub()
	a, b := fakeClient(hub, 4), fakeClient(hub, 4)
	hub.Register(a)
	hub.Register(b)

	hub.Publish(domain.Event{Type: domain.EventTaskCreated, TaskID: 7})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			var ev domain.Event
			if err := json.Unmarshal(msg, &ev); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if ev.Type != domain.EventTaskCreated || ev.TaskID != 7 {
				t.Fatalf("unexpected event %+v", ev)
			}
		default:
			t.Fatal("client got nothing")
		}
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := fakeClient(hub, 1)
	hub.Register(slow)

	hub.Publish(domain.Event{Type: domain.EventTaskUpdated, TaskID: 1})
	hub.Publish(domain.Event{Type: domain.EventTaskUpdated, TaskID: 2})

	if hub.Count() != 0 {
		t.Fatalf("slow client still registered")
	}
	<-slow.Send
	if _, ok := <-slow.Send; ok {
		t.Fatal("send channel of dropped client not closed")
	}
}

func TestHubUnregisterTwiceAndClose(t *testing.T) {
	hub := NewHub()
	c := fakeClient(hub, 1)
	hub.Register(c)
	hub.Unregister(c)
	hub.Unregister(c)

	other := fakeClient(hub, 1)
	hub.Register(other)
	hub.Close()

	if hub.Count() != 0 {
		t.Fatalf("clients left after close: %d", hub.Count())
	}
	if hub.Register(fakeClient(hub, 1)) {
		t.Fatal("closed hub accepted a client")
	}
}

func TestHandleWSDeliversEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	defer hub.Close()

	r := gin.New()
	r.GET("/ws", HandleWS(hub, ""))
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(strings.Replace(srv.URL, "http", "ws", 1)+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read ready: %v", err)
	}
	if !strings.Contains(string(msg), `"ready"`) {
		t.Fatalf("first message %s", msg)
	}

	hub.Publish(domain.Event{Type: domain.EventTaskDeleted, TaskID: 3})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var ev domain.Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Type != domain.EventTaskDeleted || ev.TaskID != 3 {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestHandleWSRejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	defer hub.Close()

	r := gin.New()
	r.GET("/ws", HandleWS(hub, "https://todo.example"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	header := map[string][]string{"Origin": {"https://evil.example"}}
	_, res, err := websocket.DefaultDialer.Dial(strings.Replace(srv.URL, "http", "ws", 1)+"/ws", header)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if res == nil || res.StatusCode != 403 {
		t.Fatalf("expected 403, got %+v", res)
	}
}
