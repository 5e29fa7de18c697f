package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is public and advisory; cross-origin browser clients are
	// allowed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one live connection. Reads and writes each run on their own
// goroutine; the hub communicates with the write side through send.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// ServeWS upgrades the request and attaches the connection to the hub.
func ServeWS(hub *Hub, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			id:   uuid.NewString(),
			hub:  hub,
			conn: conn,
			send: make(chan []byte, sendBufferSize),
		}

		// The ack is queued before the hub learns about the client, so no
		// broadcast can get ahead of it on the wire.
		client.queueAck()
		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}

// queueAck queues the connection acknowledgement carrying the assigned
// client id. Must run before the client is registered.
func (c *Client) queueAck() {
	ack, err := json.Marshal(ConnectionAck{
		Type:     EventConnection,
		Status:   "connected",
		ClientID: c.id,
	})
	if err != nil {
		return
	}
	select {
	case c.send <- ack:
	default:
	}
}

// readPump relays inbound frames to the hub until the transport signals
// closure. There is no application-level heartbeat; the connection is dead
// only when the read fails.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.hub.relay(c.id, raw)
	}
}

// writePump drains the send channel onto the connection. The hub closes
// send on unregister, which terminates the loop.
func (c *Client) writePump() {
	defer c.conn.Close()

	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
