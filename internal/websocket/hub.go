package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"syncpad-be/internal/model"
	"syncpad-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel is the Redis pub/sub channel instances use to reach
// clients connected to a different instance.
const clusterChannel = "cluster_events"

// Hub tracks connected clients per user and fans notifications out to
// them. A user may hold several connections at once (multiple tabs or
// devices), so the map value is a slice.
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Optional. When set, every delivery is also published to Redis so
	// other instances can reach their local clients.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			// Sole place client.Send is closed. A client can reach this
			// branch twice (dropped by a delivery and again when its
			// readPump exits); the second pass finds nothing to remove.
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

func envelope(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}

// Send delivers a notification to every connection the user has on this
// instance, then relays through Redis for connections held elsewhere.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for _, client := range h.deliver(clients, data) {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
		h.unregister <- client
	}

	h.relay(userID.String(), data)
}

// Broadcast delivers a notification to every connected client.
func (h *Hub) Broadcast(notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	var stale []*Client
	for _, clients := range h.clients {
		stale = append(stale, h.deliver(clients, data)...)
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregister <- client
	}

	h.relay("*", data)
}

// deliver attempts a non-blocking send to each client and returns the ones
// whose buffers are full. Callers hand those to unregister, which is the
// only path that closes a Send channel; closing here too would close it a
// second time and panic the Run goroutine.
func (h *Hub) deliver(clients []*Client, data []byte) []*Client {
	var stale []*Client
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			stale = append(stale, client)
		}
	}
	return stale
}

type clusterPayload struct {
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) relay(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(clusterPayload{
		TargetUserID: target,
		Message:      data,
	})
	h.rdb.Publish(context.Background(), clusterChannel, payload)
}

// subscribeToRedis listens for deliveries published by other instances and
// forwards them to local clients. The wildcard target "*" means broadcast.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetUserID == "*" {
			h.mu.RLock()
			var stale []*Client
			for _, clients := range h.clients {
				stale = append(stale, h.deliver(clients, payload.Message)...)
			}
			h.mu.RUnlock()

			for _, client := range stale {
				h.unregister <- client
			}
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients := h.clients[uid]
		h.mu.RUnlock()

		for _, client := range h.deliver(clients, payload.Message) {
			h.unregister <- client
		}
	}
}
