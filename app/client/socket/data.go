package socket

import (
	"context"

	"github.com/gorilla/websocket"
)

// State of the single realtime connection. Owned exclusively by the
// client; observers poll State or register a state listener.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateExhausted:
		return "exhausted"
	default:
		return "disconnected"
	}
}

// Conn is the minimal surface the client needs from a websocket
// connection. gorilla/websocket satisfies it in production; tests
// inject fakes.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v any) error
	Close() error
}

// Dialer opens one connection attempt.
type Dialer func(ctx context.Context, url string) (Conn, error)

func gorillaDialer(ctx context.Context, url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// Listener receives each decoded inbound frame.
type Listener func(frame any)

// StateListener is told about every state transition, with the current
// reconnect attempt for StateReconnecting.
type StateListener func(state State, attempt int)
