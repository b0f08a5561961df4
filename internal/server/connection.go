package server

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Connection wraps one websocket client. Writes go through a buffered
// channel so a slow client never blocks a table's runner goroutine.
type Connection struct {
	ws     *websocket.Conn
	send   chan ServerMessage
	logger *log.Logger

	mu     sync.RWMutex
	player string
	table  string
	closed bool
}

// NewConnection wraps an upgraded websocket.
func NewConnection(ws *websocket.Conn, logger *log.Logger) *Connection {
	return &Connection{
		ws:     ws,
		send:   make(chan ServerMessage, 32),
		logger: logger.WithPrefix("conn").With("remote", ws.RemoteAddr().String()),
	}
}

// Identity returns the player and table this connection is bound to.
func (c *Connection) Identity() (player, table string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.player, c.table
}

func (c *Connection) bind(player, table string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player = player
	c.table = table
}

// Send queues a message; it drops the message rather than block if the
// client cannot keep up.
func (c *Connection) Send(msg ServerMessage) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("send buffer full, dropping message", "type", msg.Type)
	}
}

// Close shuts the connection down.
func (c *Connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	close(c.send)
	return c.ws.Close()
}

// writePump drains the send channel onto the socket.
func (c *Connection) writePump() {
	for msg := range c.send {
		if err := c.ws.WriteJSON(msg); err != nil {
			c.logger.Debug("write failed", "error", err)
			return
		}
	}
}

// readPump delivers inbound messages to handle until the socket dies.
func (c *Connection) readPump(handle func(*Connection, ClientMessage)) {
	for {
		var msg ClientMessage
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read failed", "error", err)
			}
			return
		}
		handle(c, msg)
	}
}
