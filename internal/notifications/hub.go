package notifications

import (
	"context"
	"errors"
	"sync"

	"inkwell/internal/middleware"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per user
	maxConnsPerUser = 4
	// Max total connections
	maxTotalConns = 10000
)

// Hub fans feed events out to every connected websocket client.
type Hub struct {
	mu         sync.RWMutex
	conns      map[uint]map[*Client]struct{}
	totalConns int
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[uint]map[*Client]struct{}),
	}
}

// Register adds a connection for the given user. Returns an error when a
// connection limit is exceeded.
func (h *Hub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[userID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[userID] = m
	}
	if len(m) >= maxConnsPerUser {
		return nil, errors.New("user connection limit reached")
	}

	client := newClient(h, conn, userID)
	m[client] = struct{}{}
	h.totalConns++
	middleware.WebSocketConnections.Inc()

	return client, nil
}

// Unregister removes a client and closes its send queue.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.UserID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	if len(m) == 0 {
		delete(h.conns, client.UserID)
	}
	h.totalConns--
	middleware.WebSocketConnections.Dec()
	client.close()
}

// Broadcast queues a payload for every connected client. Clients with a full
// send queue are skipped rather than blocking the hub.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.conns {
		for client := range clients {
			client.trySend(payload)
		}
	}
}

// Wire connects the hub to the notifier's Redis subscription so events
// published by any instance reach this hub's clients.
func (h *Hub) Wire(ctx context.Context, n *Notifier) error {
	return n.StartSubscriber(ctx, func(payload string) {
		h.Broadcast([]byte(payload))
	})
}

// ConnectionCount returns the current number of registered connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalConns
}
