package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"todo_webapp/internal/config"
	"todo_webapp/internal/db"
	"todo_webapp/internal/domain"
	httpserver "todo_webapp/internal/http"
	"todo_webapp/internal/ws"
)

// startServer runs the real engine over a temp sqlite store.
func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	hub := ws.NewHub()
	t.Cleanup(hub.Close)

	r := httpserver.NewEngine(&config.Config{}, httpserver.Deps{Store: store, Hub: hub, Version: "e2e"})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

// startReader runs a single reader goroutine to avoid concurrent ReadMessage calls.
func startReader(conn *websocket.Conn) chan domain.Event {
	out := make(chan domain.Event, 16)
	go func() {
		defer close(out)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev domain.Event
			if json.Unmarshal(msg, &ev) == nil {
				out <- ev
			}
		}
	}()
	return out
}

func waitFor(t *testing.T, ch chan domain.Event, typ domain.EventType) domain.Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("feed closed while waiting for %s", typ)
			}
			if ev.Type == typ {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", typ)
		}
	}
}

func call(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func TestE2E_ChangeFeedFollowsMutations(t *testing.T) {
	ts := startServer(t)

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	events := startReader(conn)
	waitFor(t, events, "ready")

	code, body := call(t, http.MethodPost, ts.URL+"/tasks", map[string]string{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, code)
	data := body["data"].(map[string]any)
	require.Equal(t, "Buy milk", data["title"])
	require.Equal(t, false, data["completed"])
	id := int64(data["id"].(float64))

	ev := waitFor(t, events, domain.EventTaskCreated)
	require.Equal(t, id, ev.TaskID)

	code, body = call(t, http.MethodPut, ts.URL+"/tasks/1", map[string]bool{"completed": true})
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 1, body["changes"])
	require.Equal(t, id, waitFor(t, events, domain.EventTaskUpdated).TaskID)

	code, body = call(t, http.MethodGet, ts.URL+"/tasks", nil)
	require.Equal(t, http.StatusOK, code)
	list := body["data"].([]any)
	require.Len(t, list, 1)
	first := list[0].(map[string]any)
	require.Equal(t, "Buy milk", first["title"])
	require.Equal(t, true, first["completed"])

	code, body = call(t, http.MethodDelete, ts.URL+"/tasks/1", nil)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 1, body["changes"])
	require.Equal(t, id, waitFor(t, events, domain.EventTaskDeleted).TaskID)

	code, body = call(t, http.MethodGet, ts.URL+"/tasks", nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, body["data"])
}

func TestE2E_FailedMutationsPublishNothing(t *testing.T) {
	ts := startServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(strings.Replace(ts.URL, "http", "ws", 1)+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	events := startReader(conn)
	waitFor(t, events, "ready")

	code, _ := call(t, http.MethodPost, ts.URL+"/tasks", map[string]string{"title": ""})
	require.Equal(t, http.StatusBadRequest, code)
	code, _ = call(t, http.MethodDelete, ts.URL+"/tasks/5", nil)
	require.Equal(t, http.StatusNotFound, code)

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}
