// Package transport owns the persistent websocket connection to the
// controller. Framing is one JSON object per message in each direction.
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	// ErrClosed is returned by Receive when the peer closes the connection.
	ErrClosed = errors.New("connection closed by peer")

	// ErrHandshake is returned by Connect when the first frame doesn't carry
	// a session id.
	ErrHandshake = errors.New("handshake frame missing session_id")
)

// Link is a single persistent connection to the controller. It is not safe
// for concurrent use; the agent's loop is strictly sequential and that is the
// only user.
type Link struct {
	ws *websocket.Conn
}

type handshake struct {
	SessionID string `json:"session_id"`
}

// Connect dials the controller and performs the session handshake: the first
// frame from the controller is {"session_id": "..."}. Returns the link and
// the assigned session id.
func Connect(ctx context.Context, url string, header http.Header, tlsSkipVerify bool) (*Link, string, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
		TLSClientConfig:  &tls.Config{InsecureSkipVerify: tlsSkipVerify},
	}

	log.Debug().Msgf("transport: dialing controller: %s", url)

	ws, response, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		if response != nil {
			return nil, "", fmt.Errorf("dialing controller (status %d): %w", response.StatusCode, err)
		}
		return nil, "", fmt.Errorf("dialing controller: %w", err)
	}

	// The first frame carries the assigned session id
	var hs handshake
	if err := ws.ReadJSON(&hs); err != nil {
		ws.Close()
		return nil, "", fmt.Errorf("reading handshake: %w", err)
	}
	if hs.SessionID == "" {
		ws.Close()
		return nil, "", ErrHandshake
	}

	return &Link{ws: ws}, hs.SessionID, nil
}

// Receive blocks for the next frame and returns its raw bytes. A normal close
// by the peer is reported as ErrClosed.
func (l *Link) Receive() ([]byte, error) {
	_, message, err := l.ws.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, ErrClosed
		}
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil, ErrClosed
		}
		return nil, fmt.Errorf("receiving frame: %w", err)
	}
	return message, nil
}

// Send writes v as a single JSON frame.
func (l *Link) Send(v any) error {
	if err := l.ws.WriteJSON(v); err != nil {
		return fmt.Errorf("sending frame: %w", err)
	}
	return nil
}

func (l *Link) Close() error {
	return l.ws.Close()
}
