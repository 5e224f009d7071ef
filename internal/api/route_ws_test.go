package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestRouteEventsWSProtocol(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(http.HandlerFunc(s.RouteEventsWSHandler))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	hdr := http.Header{"X-Tenant-Id": []string{"t_ws"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, hdr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsMessage{Type: "connection_init"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	var ack wsMessage
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&ack); err != nil || ack.Type != "connection_ack" {
		t.Fatalf("want connection_ack, got %+v err=%v", ack, err)
	}

	sub := wsMessage{Type: "subscribe", ID: "1", Payload: json.RawMessage(`{"eventType":"route."}`)}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	// the subscribe frame is handled by the same read loop that sent the ack,
	// so a short wait is enough for the broker registration
	time.Sleep(100 * time.Millisecond)

	s.Broker.Publish("t_ws", SSEEvent{Type: "route.optimized", Data: map[string]any{"routeId": "r1"}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type == "ping" {
			continue
		}
		if msg.Type != "next" || msg.ID != "1" {
			t.Fatalf("want next for sub 1, got %+v", msg)
		}
		var body struct {
			Type string         `json:"type"`
			Data map[string]any `json:"data"`
		}
		if err := json.Unmarshal(msg.Payload, &body); err != nil {
			t.Fatalf("payload: %v", err)
		}
		if body.Type != "route.optimized" || body.Data["routeId"] != "r1" {
			t.Fatalf("wrong event: %+v", body)
		}
		break
	}

	if err := conn.WriteJSON(wsMessage{Type: "complete", ID: "1"}); err != nil {
		t.Fatalf("complete: %v", err)
	}
}

func TestRouteEventsWSFilterSkipsOtherEvents(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(http.HandlerFunc(s.RouteEventsWSHandler))
	defer srv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsMessage{Type: "connection_init"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	var ack wsMessage
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatalf("ack: %v", err)
	}
	sub := wsMessage{Type: "subscribe", ID: "1", Payload: json.RawMessage(`{"eventType":"route."}`)}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	s.Broker.Publish("t_demo", SSEEvent{Type: "config.updated"})
	s.Broker.Publish("t_demo", SSEEvent{Type: "route.optimized"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsMessage
	for {
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type == "ping" {
			continue
		}
		break
	}
	var body struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(msg.Payload, &body)
	if body.Type != "route.optimized" {
		t.Fatalf("filtered event leaked through: %+v", body)
	}
}
