package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize bounds inbound frames; chat texts are short.
	maxMessageSize = 4096
	sendBuffer     = 64
)

// InboundMessage is what a connected client sends over the socket.
type InboundMessage struct {
	Text string `json:"text"`
}

// Client is one live websocket connection bound to an authenticated user.
// It implements Subscriber; outbound events flow through a buffered channel
// drained by the write pump so Deliver never blocks a broadcast.
type Client struct {
	id       string
	UserID   string
	Username string

	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	logger *zap.Logger
	once   sync.Once
}

// NewClient wraps an upgraded websocket connection.
func NewClient(hub *Hub, conn *websocket.Conn, userID, username string, logger *zap.Logger) *Client {
	return &Client{
		id:       uuid.NewString(),
		UserID:   userID,
		Username: username,
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// ID returns the connection id.
func (c *Client) ID() string { return c.id }

// Deliver queues a payload for the write pump. Returns false once the
// connection is closed or the buffer is full, signalling the hub to evict
// this connection.
func (c *Client) Deliver(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Close tears the connection down once; repeated calls are no-ops.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// ReadPump reads inbound messages until the connection drops, handing each
// to onMessage. It owns disconnect cleanup: the client leaves every room it
// joined, idempotently, before the pump returns.
func (c *Client) ReadPump(onMessage func(*Client, InboundMessage)) {
	defer func() {
		c.hub.RemoveSubscriber(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg InboundMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read failed", zap.String("connID", c.id), zap.Error(err))
			}
			return
		}
		if msg.Text == "" {
			continue
		}
		onMessage(c, msg)
	}
}

// WritePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.hub.RemoveSubscriber(c)
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
