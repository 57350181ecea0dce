package notifications

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	sendQueueSize = 16
	writeTimeout  = 10 * time.Second
)

// Client is one websocket subscriber. Writes go through a buffered queue so
// a slow consumer never blocks the hub's broadcast loop.
type Client struct {
	UserID uint

	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		UserID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendQueueSize),
	}
}

// trySend queues a payload, dropping it when the client's queue is full.
func (c *Client) trySend(payload []byte) {
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// WritePump drains the send queue onto the connection. It returns when the
// queue is closed or a write fails; the caller unregisters afterwards.
func (c *Client) WritePump() {
	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// ReadPump consumes (and discards) client frames so pings and close frames
// are processed. It returns when the connection drops.
func (c *Client) ReadPump() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
