package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"rideshare-backend/internal/events"
	"rideshare-backend/internal/observability"
)

// ErrHubBusy is returned by Notify when the broadcast queue is full.
var ErrHubBusy = errors.New("websocket hub busy")

// Hub maintains active WebSocket connections and pushes booking events to
// every connection of the owning user
type Hub struct {
	// Registered clients (userID -> set of clients); a user may have several tabs open
	clients map[string]map[*Client]struct{}

	// Outbound messages addressed to a user
	broadcast chan *Message

	register   chan *Client
	unregister chan *Client

	logger *slog.Logger

	// Closed when Run returns
	done chan struct{}

	// Guards clients for readers outside Run
	mu sync.RWMutex
}

// Message represents a message to deliver to a specific user
type Message struct {
	UserID string
	Data   []byte
}

// NewHub creates a new Hub instance
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop. It returns when ctx is cancelled, closing
// every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for userID, set := range h.clients {
				for client := range set {
					close(client.send)
				}
				delete(h.clients, userID)
			}
			h.mu.Unlock()
			observability.WebSocketClients.Set(0)
			return

		case client := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			total := h.countLocked()
			h.mu.Unlock()
			observability.WebSocketClients.Set(float64(total))
			h.logger.Info("✅ websocket client connected", "user_id", client.UserID, "clients", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if h.removeLocked(client) {
				total := h.countLocked()
				observability.WebSocketClients.Set(float64(total))
				h.logger.Info("🔴 websocket client disconnected", "user_id", client.UserID, "clients", total)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[message.UserID] {
				select {
				case client.send <- message.Data:
				default:
					// Client buffer full, disconnect
					h.removeLocked(client)
					h.logger.Warn("⚠️ websocket client buffer full, disconnecting", "user_id", client.UserID)
				}
			}
			observability.WebSocketClients.Set(float64(h.countLocked()))
			h.mu.Unlock()
		}
	}
}

// Notify queues a booking event for the user's open connections. It never
// blocks; a full queue is reported as ErrHubBusy.
func (h *Hub) Notify(_ context.Context, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", e.Type, err)
	}

	select {
	case h.broadcast <- &Message{UserID: e.UserID, Data: data}:
		return nil
	default:
		return ErrHubBusy
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.countLocked()
}

// IsUserConnected checks if a user has at least one open connection
func (h *Hub) IsUserConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func (h *Hub) removeLocked(client *Client) bool {
	set, ok := h.clients[client.UserID]
	if !ok {
		return false
	}
	if _, ok := set[client]; !ok {
		return false
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.UserID)
	}
	return true
}
