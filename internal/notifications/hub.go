package notifications

import (
	"context"
	"errors"
	"strings"
	"sync"

	"lifelog/internal/middleware"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerUser = 8
	maxTotalConns   = 10000
)

// Hub maps userID to that user's live websocket clients and fans Redis events
// out to them. A user may be connected from several devices at once.
type Hub struct {
	mu         sync.RWMutex
	conns      map[uint]map[*Client]struct{}
	totalConns int
	shutdown   chan struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[uint]map[*Client]struct{}),
		shutdown: make(chan struct{}),
	}
}

// Name identifies this hub in metrics labels.
func (h *Hub) Name() string { return "events" }

// Register adds a connection for userID. It fails when the per-user or
// server-wide connection limit is reached.
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

	client := NewClient(h, conn, userID)
	m[client] = struct{}{}
	h.totalConns++
	return client, nil
}

// UnregisterClient removes a client after its connection closes.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.conns[client.UserID]; ok {
		if _, exists := m[client]; exists {
			delete(m, client)
			h.totalConns--
		}
		if len(m) == 0 {
			delete(h.conns, client.UserID)
		}
	}
}

// Broadcast sends message to every connection userID currently holds.
func (h *Hub) Broadcast(userID uint, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.conns[userID]; ok {
		data := []byte(message)
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// IsOnline reports whether userID has at least one live connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients, ok := h.conns[userID]
	return ok && len(clients) > 0
}

// StartWiring subscribes the hub to the Notifier's Redis channels and routes
// each event to the addressed user's connections.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartSubscriber(ctx, func(channel, payload string) {
		idStr, ok := strings.CutPrefix(channel, "events:user:")
		if !ok {
			middleware.Logger.Warn("unexpected event channel", "channel", channel)
			return
		}
		var userID uint
		for _, r := range idStr {
			if r < '0' || r > '9' {
				middleware.Logger.Warn("unexpected event channel", "channel", channel)
				return
			}
			userID = userID*10 + uint(r-'0')
		}
		h.Broadcast(userID, payload)
	})
}

// Shutdown closes every connection with a going-away frame.
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, userConns := range h.conns {
		for client := range userConns {
			if client.Conn == nil {
				continue
			}
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				middleware.Logger.Warn("websocket close write failed", "user_id", userID, "error", err.Error())
			}
			if err := client.Conn.Close(); err != nil {
				middleware.Logger.Warn("websocket close failed", "user_id", userID, "error", err.Error())
			}
		}
	}
	h.conns = make(map[uint]map[*Client]struct{})
	return nil
}
