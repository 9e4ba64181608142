package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"voice-chatbot-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub tracks anonymous chat connections. Sessions are not authenticated, so
// clients are keyed by connection rather than by user.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": client.ID})
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of locally connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a frame to ALL connected clients, on this instance and,
// when Redis is configured, on every other instance.
func (h *Hub) Broadcast(message []byte) {
	h.broadcastLocal(message)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"message": json.RawMessage(message),
		})
		h.rdb.Publish(context.Background(), "chatbot_cluster_events", payload)
	}
}

func (h *Hub) broadcastLocal(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			// Slow consumer, drop the frame rather than block the hub
			h.logger.Warn("Hub", "Client send buffer full, dropping message", map[string]interface{}{"client_id": client.ID})
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the same channel. Frames published by one
	// instance are replayed to the local clients of all others.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "chatbot_cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		h.broadcastLocal(payload.Message)
	}
}
