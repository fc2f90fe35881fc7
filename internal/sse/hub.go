package sse

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/event"
)

// Message is a Server-Sent Event ready for the wire.
type Message struct {
	EventType string
	Data      string
}

// Client is one connected SSE stream.
type Client struct {
	ID     string
	UserID string
	Events chan Message
}

// Hub tracks connected SSE clients and forwards resource-change events to
// them. It is wired to the event bus in main, not a package singleton.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Attach subscribes the hub to all resource changes on the bus. The
// returned cancel detaches it.
func (h *Hub) Attach(bus event.Bus) (func(), error) {
	return bus.Subscribe(event.ResourceAll, func(ev event.Event) {
		h.BroadcastChange(ev)
	})
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.logger.Debug("sse client registered",
		zap.String("client_id", client.ID),
		zap.String("user_id", client.UserID),
		zap.Int("total", len(h.clients)))
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		h.logger.Debug("sse client unregistered",
			zap.String("client_id", clientID),
			zap.Int("total", len(h.clients)))
	}
}

// Broadcast sends a message to all connected clients. Clients with a full
// buffer are skipped rather than blocking the hub.
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- msg:
		default:
			h.logger.Warn("sse client buffer full, skipping event",
				zap.String("client_id", client.ID))
		}
	}
}

// BroadcastChange forwards a resource-change event as a "change" SSE event
// with a JSON payload.
func (h *Hub) BroadcastChange(ev event.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.Broadcast(Message{EventType: "change", Data: string(data)})
}
