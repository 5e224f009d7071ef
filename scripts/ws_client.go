// Package main runs a demo WebSocket client for route events.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s", port)

	// Connect WS first so we see the route.optimized event
	u := url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/v1/route-events/ws"}
	hdr := http.Header{}
	hdr.Set("X-Tenant-Id", "t_demo")
	hdr.Set("X-Role", "admin")
	c, _, err := websocket.DefaultDialer.Dial(u.String(), hdr)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer func() { _ = c.Close() }()

	if err := c.WriteJSON(wsMessage{Type: "connection_init"}); err != nil {
		log.Fatal(err)
	}
	pl, _ := json.Marshal(map[string]any{"eventType": "route."})
	if err := c.WriteJSON(wsMessage{Type: "subscribe", ID: "1", Payload: pl}); err != nil {
		log.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var m wsMessage
			if err := c.ReadJSON(&m); err != nil {
				log.Printf("read: %v", err)
				return
			}
			log.Printf("WS <- %s: %s", m.Type, string(m.Payload))
		}
	}()

	// Run an optimization to trigger the event
	time.Sleep(500 * time.Millisecond)
	body := []byte(`{
		"tenantId": "t_demo",
		"startLocation": "DEPOT",
		"tasks": [
			{"taskId": "t1", "binLocation": "A-3-15L", "priority": "HIGH"},
			{"taskId": "t2", "binLocation": "A-1-2"},
			{"taskId": "t3", "binLocation": "B-12-4R"}
		]
	}`)
	req, _ := http.NewRequest(http.MethodPost, base+"/v1/optimize", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-Id", "t_demo")
	req.Header.Set("X-Role", "admin")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	var route struct {
		ID              string  `json:"id"`
		Algorithm       string  `json:"algorithm"`
		TotalDistance   float64 `json:"totalDistance"`
		EstimatedTimeMs int64   `json:"estimatedTimeMs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		log.Fatal(err)
	}
	log.Printf("Route %s via %s: distance=%.2f, estimated=%dms", route.ID, route.Algorithm, route.TotalDistance, route.EstimatedTimeMs)

	// Wait briefly to receive the broadcast
	select {
	case <-time.After(2 * time.Second):
	case <-done:
	}
}
