// Package socket owns the single realtime connection to the backend.
// It delivers inbound JSON frames to registered listeners and
// reconnects with linear backoff when the link drops. Nothing else in
// the process opens or closes this connection.
package socket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"dashmate/app/config"

	"github.com/samber/do"
)

type registeredListener struct {
	id int
	fn Listener
}

type Client struct {
	appCtx      context.Context
	url         string
	dial        Dialer
	baseDelay   time.Duration
	maxAttempts int

	// writeMu serializes every write to the current conn. The
	// underlying websocket supports at most one concurrent writer.
	writeMu sync.Mutex

	mu            sync.Mutex
	state         State
	attempt       int
	conn          Conn
	userID        string
	generation    int
	retryTimer    *time.Timer
	listeners     []registeredListener
	nextID        int
	stateListener StateListener
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Client{
		appCtx:      do.MustInvoke[context.Context](di),
		url:         cfg.Socket.URL,
		dial:        gorillaDialer,
		baseDelay:   cfg.Socket.BaseDelay,
		maxAttempts: cfg.Socket.MaxAttempts,
		state:       StateDisconnected,
	}, nil
}

// newClient is the test constructor: injected dialer, no DI container.
func newClient(appCtx context.Context, url string, dial Dialer, baseDelay time.Duration, maxAttempts int) *Client {
	return &Client{
		appCtx:      appCtx,
		url:         url,
		dial:        dial,
		baseDelay:   baseDelay,
		maxAttempts: maxAttempts,
		state:       StateDisconnected,
	}
}

// Connect starts a fresh connection for the given user. Any pending
// scheduled retry is cancelled first so two sockets are never in
// flight; this is also how a caller leaves the Exhausted state.
func (c *Client) Connect(userID string) {
	c.mu.Lock()
	c.userID = userID
	c.generation++
	generation := c.generation
	c.cancelRetryLocked()
	c.closeConnLocked()
	c.attempt = 0
	c.setStateLocked(StateConnecting)
	c.mu.Unlock()

	go c.dialAndRun(generation)
}

// Disconnect tears the connection down for good. No auto-reconnect
// fires from an explicit disconnect.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.cancelRetryLocked()
	c.closeConnLocked()
	c.attempt = 0
	c.setStateLocked(StateDisconnected)
}

// Send writes one JSON frame. While the link is down this is a no-op:
// the message is dropped and logged, never queued for replay.
func (c *Client) Send(v any) error {
	c.mu.Lock()
	conn := c.conn
	state := c.state
	c.mu.Unlock()

	if state != StateConnected || conn == nil {
		slog.Warn("Dropping outbound message, link is down", "state", state.String())
		return nil
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return conn.WriteJSON(v)
}

// AddListener registers a frame listener and returns its id for
// removal. Listeners are invoked in registration order.
func (c *Client) AddListener(fn Listener) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.listeners = append(c.listeners, registeredListener{id: c.nextID, fn: fn})

	return c.nextID
}

func (c *Client) RemoveListener(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, listener := range c.listeners {
		if listener.id == id {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// SetStateListener registers the single observer told about state
// transitions.
func (c *Client) SetStateListener(fn StateListener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stateListener = fn
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Client) ReconnectAttempt() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.attempt
}

func (c *Client) dialAndRun(generation int) {
	conn, err := c.dial(c.appCtx, c.url)

	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}

	if err != nil {
		c.mu.Unlock()
		slog.Warn("Socket dial failed", "url", c.url, "error", err)
		c.scheduleReconnect(generation)
		return
	}

	c.conn = conn
	c.attempt = 0
	c.setStateLocked(StateConnected)
	userID := c.userID
	c.mu.Unlock()

	slog.Info("Socket connected", "url", c.url)

	// Sends may already be racing in once the state reads Connected,
	// so the announcement takes the write lock like everyone else.
	c.writeMu.Lock()
	err = conn.WriteJSON(map[string]any{
		"type":      "user_connected",
		"user_id":   userID,
		"timestamp": time.Now().Format(time.RFC3339),
	})
	c.writeMu.Unlock()
	if err != nil {
		slog.Warn("Failed to announce identity", "error", err)
	}

	c.readLoop(conn, generation)
}

func (c *Client) readLoop(conn Conn, generation int) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if generation != c.generation {
				// Explicit disconnect or a newer Connect owns the
				// state now.
				c.mu.Unlock()
				return
			}
			c.conn = nil
			c.mu.Unlock()

			slog.Warn("Socket connection lost", "error", err)
			c.scheduleReconnect(generation)
			return
		}

		var frame any
		if err = json.Unmarshal(data, &frame); err != nil {
			slog.Warn("Discarding malformed inbound frame", "error", err)
			continue
		}

		c.fanOut(frame)
	}
}

func (c *Client) fanOut(frame any) {
	c.mu.Lock()
	listeners := make([]registeredListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, listener := range listeners {
		c.invoke(listener.fn, frame)
	}
}

// One listener's panic must not prevent delivery to the others.
func (c *Client) invoke(fn Listener, frame any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Socket listener panicked", "panic", r)
		}
	}()

	fn(frame)
}

// scheduleReconnect arms the next attempt. Delay before the Nth
// attempt is baseDelay x N, uncapped; after maxAttempts the client
// stops and surfaces Exhausted.
func (c *Client) scheduleReconnect(generation int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return
	}

	c.attempt++
	if c.attempt > c.maxAttempts {
		c.attempt = c.maxAttempts
		c.setStateLocked(StateExhausted)
		slog.Error("Socket reconnect attempts exhausted", "attempts", c.maxAttempts, "telegram", true)
		return
	}

	delay := reconnectDelay(c.baseDelay, c.attempt)
	c.setStateLocked(StateReconnecting)
	slog.Info("Scheduling socket reconnect", "attempt", c.attempt, "delay", delay)

	c.retryTimer = time.AfterFunc(delay, func() {
		c.mu.Lock()
		if generation != c.generation {
			c.mu.Unlock()
			return
		}
		c.setStateLocked(StateConnecting)
		c.mu.Unlock()

		c.dialAndRun(generation)
	})
}

// reconnectDelay grows linearly with the attempt number: base for the
// first attempt, twice that for the second, and so on, uncapped.
func reconnectDelay(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(attempt)
}

func (c *Client) cancelRetryLocked() {
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
}

func (c *Client) closeConnLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

func (c *Client) setStateLocked(state State) {
	c.state = state

	if c.stateListener != nil {
		// Callback runs outside the lock to keep observers from
		// deadlocking on client methods.
		fn := c.stateListener
		attempt := c.attempt
		go fn(state, attempt)
	}
}

// Shutdown closes the connection when the DI container stops.
func (c *Client) Shutdown() error {
	c.Disconnect()
	return nil
}

var _ do.Shutdownable = (*Client)(nil)
