package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{}

// newTestController runs a websocket endpoint that performs the given
// session exchange.
func newTestController(t *testing.T, handler func(ws *websocket.Conn, r *http.Request)) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer ws.Close()
		handler(ws, r)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestConnectHandshake(t *testing.T) {
	var gotAgentHeader string

	url := newTestController(t, func(ws *websocket.Conn, r *http.Request) {
		gotAgentHeader = r.Header.Get("X-Kaio-Agent")
		ws.WriteJSON(map[string]string{"session_id": "sess-42"})

		// Hold the connection open until the client side closes
		ws.ReadMessage()
	})

	header := http.Header{"X-Kaio-Agent": []string{"agent-1"}}
	link, sessionID, err := Connect(context.Background(), url, header, false)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer link.Close()

	if sessionID != "sess-42" {
		t.Errorf("session id = %q, expected sess-42", sessionID)
	}
	if gotAgentHeader != "agent-1" {
		t.Errorf("agent header = %q, expected agent-1", gotAgentHeader)
	}
}

func TestConnectMissingSessionID(t *testing.T) {
	tests := []struct {
		name  string
		frame map[string]string
	}{
		{name: "empty object", frame: map[string]string{}},
		{name: "empty session id", frame: map[string]string{"session_id": ""}},
		{name: "wrong field", frame: map[string]string{"session": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := newTestController(t, func(ws *websocket.Conn, r *http.Request) {
				ws.WriteJSON(tt.frame)
				ws.ReadMessage()
			})

			_, _, err := Connect(context.Background(), url, nil, false)
			if !errors.Is(err, ErrHandshake) {
				t.Errorf("Connect = %v, expected ErrHandshake", err)
			}
		})
	}
}

func TestConnectRefused(t *testing.T) {
	if _, _, err := Connect(context.Background(), "ws://127.0.0.1:1/session", nil, false); err == nil {
		t.Error("Connect to closed port expected error, got nil")
	}
}

func TestReceiveAndSend(t *testing.T) {
	url := newTestController(t, func(ws *websocket.Conn, r *http.Request) {
		ws.WriteJSON(map[string]string{"session_id": "s"})
		ws.WriteMessage(websocket.TextMessage, []byte(`{"request_id":"r1"}`))

		// Echo check: wait for the client's frame
		_, message, err := ws.ReadMessage()
		if err != nil {
			t.Errorf("controller read: %v", err)
			return
		}
		if !strings.Contains(string(message), "pong") {
			t.Errorf("controller received %q", message)
		}
	})

	link, _, err := Connect(context.Background(), url, nil, false)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer link.Close()

	raw, err := link.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if string(raw) != `{"request_id":"r1"}` {
		t.Errorf("Receive = %q", raw)
	}

	if err := link.Send(map[string]string{"reply": "pong"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func TestReceiveAfterPeerClose(t *testing.T) {
	url := newTestController(t, func(ws *websocket.Conn, r *http.Request) {
		ws.WriteJSON(map[string]string{"session_id": "s"})
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	})

	link, _, err := Connect(context.Background(), url, nil, false)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer link.Close()

	if _, err := link.Receive(); !errors.Is(err, ErrClosed) {
		t.Errorf("Receive = %v, expected ErrClosed", err)
	}
}
