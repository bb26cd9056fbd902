// Package client is the websocket boundary adapter: it speaks the
// practice protocol to a rangedrill server and presents the trainer's
// Catalog, SessionStarter, HandFeed and Evaluator interfaces.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/rangedrill/internal/protocol"
)

// ErrRequestTimeout reports a boundary call that received no response in
// time. A stalled call fails instead of leaving the UI disabled forever.
var ErrRequestTimeout = errors.New("request timed out")

// ServerError is an error response from the practice server.
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %s: %s", e.Code, e.Message)
}

// Client represents a websocket client for the practice protocol. All
// operations are request/response, correlated by requestId.
type Client struct {
	serverURL string
	conn      *websocket.Conn
	send      chan *protocol.Message
	logger    *log.Logger
	clock     quartz.Clock
	timeout   time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	connected bool
	closeOnce sync.Once

	pendingMu sync.Mutex
	pending   map[string]chan *protocol.Message
	nextID    atomic.Uint64
}

// NewClient creates a client with the real clock and default timeout.
func NewClient(serverURL string, logger *log.Logger) *Client {
	return NewClientWithClock(serverURL, logger, quartz.NewReal(), 10*time.Second)
}

// NewClientWithClock creates a client with an injectable clock and
// request timeout for tests.
func NewClientWithClock(serverURL string, logger *log.Logger, clock quartz.Clock, timeout time.Duration) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		serverURL: serverURL,
		send:      make(chan *protocol.Message, 64),
		logger:    logger.WithPrefix("client"),
		clock:     clock,
		timeout:   timeout,
		ctx:       ctx,
		cancel:    cancel,
		pending:   make(map[string]chan *protocol.Message),
	}
}

// Connect establishes the websocket connection.
func (c *Client) Connect() error {
	c.logger.Info("Connecting to server", "url", c.serverURL)

	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	// Convert http/https to ws/wss
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readPump()
	go c.writePump()

	c.logger.Info("Connected to server")
	return nil
}

// Disconnect closes the connection and fails all pending requests.
func (c *Client) Disconnect() error {
	c.closeOnce.Do(func() {
		c.cancel()

		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
			c.connected = false
		}
		c.mu.Unlock()

		c.failPending()
		c.logger.Info("Disconnected from server")
	})
	return nil
}

// IsConnected returns whether the client is connected.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// request sends one message and waits for its correlated response, the
// clock's timeout, or context cancellation.
func (c *Client) request(ctx context.Context, t protocol.MessageType, data interface{}) (*protocol.Message, error) {
	msg, err := protocol.NewMessage(t, data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	msg.RequestID = fmt.Sprintf("req-%d", c.nextID.Add(1))

	ch := make(chan *protocol.Message, 1)
	c.pendingMu.Lock()
	c.pending[msg.RequestID] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, msg.RequestID)
		c.pendingMu.Unlock()
	}()

	select {
	case c.send <- msg:
	case <-c.ctx.Done():
		return nil, c.ctx.Err()
	default:
		return nil, errors.New("send buffer full")
	}

	timedOut := make(chan struct{})
	timer := c.clock.AfterFunc(c.timeout, func() {
		close(timedOut)
	})
	defer timer.Stop()

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, errors.New("connection closed")
		}
		if resp.Type == protocol.MessageTypeError {
			var data protocol.ErrorData
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return nil, fmt.Errorf("undecodable server error: %w", err)
			}
			return nil, &ServerError{Code: data.Code, Message: data.Message}
		}
		return resp, nil

	case <-timedOut:
		c.logger.Warn("Request timed out", "type", t, "requestId", msg.RequestID)
		return nil, fmt.Errorf("%w: %s", ErrRequestTimeout, t)

	case <-ctx.Done():
		return nil, ctx.Err()

	case <-c.ctx.Done():
		return nil, c.ctx.Err()
	}
}

// readPump routes responses to their pending requests.
func (c *Client) readPump() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		c.failPending()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg protocol.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		if msg.RequestID == "" {
			c.logger.Debug("Ignoring uncorrelated message", "type", msg.Type)
			continue
		}

		c.pendingMu.Lock()
		ch, ok := c.pending[msg.RequestID]
		c.pendingMu.Unlock()
		if !ok {
			c.logger.Debug("Response for unknown request", "requestId", msg.RequestID)
			continue
		}

		select {
		case ch <- &msg:
		default:
			c.logger.Warn("Dropping duplicate response", "requestId", msg.RequestID)
		}
	}
}

// writePump sends queued messages to the server. A write error aborts
// every pending request so callers fail now instead of waiting out the
// request timeout.
func (c *Client) writePump() {
	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				c.failFast()
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

// failFast aborts the client after a transport failure: cancels the
// client context and fails everything still pending.
func (c *Client) failFast() {
	c.cancel()
	c.failPending()
}

// failPending closes every pending response channel so blocked requests
// fail instead of hanging.
func (c *Client) failPending() {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}
