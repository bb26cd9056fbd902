package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/rangedrill/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a websocket connection to one practicing client.
type Connection struct {
	conn      *websocket.Conn
	send      chan *protocol.Message
	service   *Service
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a connection wrapper around an upgraded socket.
func NewConnection(conn *websocket.Conn, logger *log.Logger, service *Service) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		send:    make(chan *protocol.Message, 64),
		service: service,
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// sendMessage queues a message for the client.
func (c *Connection) sendMessage(msg *protocol.Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown
			c.logger.Debug("Attempted to send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

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

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage dispatches one request and sends its response, keyed by
// the request's id.
func (c *Connection) handleMessage(msg *protocol.Message) {
	c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

	switch msg.Type {
	case protocol.MessageTypeListPositions:
		c.reply(msg, protocol.MessageTypePositionList,
			protocol.LabelListData{Labels: c.service.Positions()})

	case protocol.MessageTypeListActions:
		var data protocol.ListActionsData
		if !c.decode(msg, &data) {
			return
		}
		if data.Position == "" {
			c.sendError(msg, protocol.ErrCodeBadRequest, "position is required")
			return
		}
		c.reply(msg, protocol.MessageTypeActionList,
			protocol.LabelListData{Labels: c.service.ActionsFor(data.Position)})

	case protocol.MessageTypeListStackDepths:
		var data protocol.ListStackDepthsData
		if !c.decode(msg, &data) {
			return
		}
		if data.Position == "" || data.Action == "" {
			c.sendError(msg, protocol.ErrCodeBadRequest, "position and action are required")
			return
		}
		c.reply(msg, protocol.MessageTypeStackDepthList,
			protocol.LabelListData{Labels: c.service.StackDepthsFor(data.Position, data.Action)})

	case protocol.MessageTypeStartSession:
		var data protocol.StartSessionData
		if !c.decode(msg, &data) {
			return
		}
		c.reply(msg, protocol.MessageTypeSessionStarted,
			c.service.StartSession(data.Position, data.Action, data.StackDepth))

	case protocol.MessageTypeNextHand:
		hand, err := c.service.NextHand()
		if err != nil {
			c.sendError(msg, protocol.ErrCodeNoSession, err.Error())
			return
		}
		c.reply(msg, protocol.MessageTypeHand, protocol.HandData{Hand: hand})

	case protocol.MessageTypeCheckAnswer:
		var data protocol.CheckAnswerData
		if !c.decode(msg, &data) {
			return
		}
		verdict, err := c.service.CheckAnswer(data.Hand, data.Action)
		if err != nil {
			c.sendError(msg, protocol.ErrCodeNoSession, err.Error())
			return
		}
		c.reply(msg, protocol.MessageTypeVerdict, verdict)

	default:
		c.sendError(msg, protocol.ErrCodeBadRequest, "unknown message type: "+msg.Type.String())
	}
}

// decode unmarshals a request payload, answering with an error on failure.
func (c *Connection) decode(msg *protocol.Message, v interface{}) bool {
	if err := json.Unmarshal(msg.Data, v); err != nil {
		c.sendError(msg, protocol.ErrCodeBadRequest, "failed to parse request data")
		return false
	}
	return true
}

// reply sends a response correlated to the originating request.
func (c *Connection) reply(req *protocol.Message, t protocol.MessageType, data interface{}) {
	msg, err := protocol.NewMessage(t, data)
	if err != nil {
		c.logger.Error("Failed to encode response", "type", t, "error", err)
		return
	}
	msg.RequestID = req.RequestID
	if err := c.sendMessage(msg); err != nil {
		c.logger.Error("Failed to send response", "type", t, "error", err)
	}
}

// sendError answers a request with an error message.
func (c *Connection) sendError(req *protocol.Message, code, message string) {
	msg, err := protocol.NewMessage(protocol.MessageTypeError, protocol.ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to encode error", "error", err)
		return
	}
	msg.RequestID = req.RequestID
	_ = c.sendMessage(msg)
}
