package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"todo_webapp/internal/domain"
)

// Smoke test against a running server: subscribe to the change feed, create
// and delete a task over HTTP, and check both events arrive.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3001"
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := fmt.Sprintf("http://127.0.0.1:%s", port)
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws", port)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if _, err := waitFor(conn, "ready"); err != nil {
		log.Fatalf("ready: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"title": "smoke test task"})
	res, err := http.Post(base+"/tasks", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("create: %v", err)
	}
	var created struct {
		Data domain.Task `json:"data"`
	}
	err = json.NewDecoder(res.Body).Decode(&created)
	res.Body.Close()
	if err != nil || res.StatusCode != http.StatusCreated {
		log.Fatalf("create: status=%d err=%v", res.StatusCode, err)
	}
	log.Printf("created task id=%d", created.Data.ID)

	ev, err := waitFor(conn, string(domain.EventTaskCreated))
	if err != nil {
		log.Fatalf("created event: %v", err)
	}
	log.Printf("got %s for task %d", ev.Type, ev.TaskID)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/tasks/%d", base, created.Data.ID), nil)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("delete: %v", err)
	}
	res.Body.Close()

	ev, err = waitFor(conn, string(domain.EventTaskDeleted))
	if err != nil {
		log.Fatalf("deleted event: %v", err)
	}
	log.Printf("got %s for task %d", ev.Type, ev.TaskID)

	log.Println("smoke test finished")
}

func waitFor(conn *websocket.Conn, msgType string) (domain.Event, error) {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(deadline)
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return domain.Event{}, err
		}
		var ev domain.Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			continue
		}
		if string(ev.Type) == msgType {
			return ev, nil
		}
	}
	return domain.Event{}, fmt.Errorf("timed out waiting for %s", msgType)
}
