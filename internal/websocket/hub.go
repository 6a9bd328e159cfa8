package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"skillswap-be/internal/pkg/logger"
	"skillswap-be/internal/repository/memory"

	"github.com/redis/go-redis/v9"
)

const clusterChannel = "chat_events"

// Hub is the connection registry: at most one live channel per user.
// Binding a user who already holds a channel evicts the older one.
type Hub struct {
	// Registered clients map: UserID -> Client
	clients map[uint]*Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance delivery
	rdb *redis.Client

	presence *memory.PresenceRepository

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, presence *memory.PresenceRepository, log logger.ILogger) *Hub {
	return &Hub{
		clients:  make(map[uint]*Client),
		rdb:      rdb,
		presence: presence,
		logger:   log,
	}
}

// Bind registers an authenticated client under its user id. A previous
// channel for the same user is evicted; the newest authentication wins.
func (h *Hub) Bind(client *Client) {
	h.mu.Lock()
	prev := h.clients[client.UserID]
	h.clients[client.UserID] = client
	h.mu.Unlock()

	if prev != nil && prev != client {
		prev.closeSend()
		h.logger.Info("Hub", "Evicted stale channel", map[string]interface{}{
			"user_id":    client.UserID,
			"channel_id": prev.ID,
		})
	}
	if h.presence != nil {
		h.presence.SetOnline(client.UserID)
	}
	h.logger.Info("Hub", "Client bound", map[string]interface{}{
		"user_id":    client.UserID,
		"channel_id": client.ID,
	})
}

// Unbind removes the client if it is still the registered channel for
// its user. An evicted client finds a newer channel in its slot and
// must leave it untouched.
func (h *Hub) Unbind(client *Client) {
	h.mu.Lock()
	current, ok := h.clients[client.UserID]
	removed := ok && current == client
	if removed {
		delete(h.clients, client.UserID)
	}
	h.mu.Unlock()

	client.closeSend()
	if removed {
		if h.presence != nil {
			h.presence.SetOffline(client.UserID)
		}
		h.logger.Info("Hub", "Client unbound", map[string]interface{}{
			"user_id":    client.UserID,
			"channel_id": client.ID,
		})
	}
}

// Lookup returns the live channel for a user, if any.
func (h *Hub) Lookup(userID uint) (*Client, bool) {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	return client, ok
}

// Deliver pushes a frame to the user's live channel. When the user is
// not bound locally the frame is published to redis so another
// instance holding the channel can deliver it. Returns true only for
// local delivery.
func (h *Hub) Deliver(userID uint, payload []byte) bool {
	if client, ok := h.Lookup(userID); ok {
		if client.enqueue(payload) {
			return true
		}
		h.logger.Warn("Hub", "Send buffer full, dropping channel", map[string]interface{}{
			"user_id":    userID,
			"channel_id": client.ID,
		})
		h.Unbind(client)
		return false
	}

	if h.rdb != nil {
		wire, _ := json.Marshal(clusterFrame{UserID: userID, Frame: payload})
		h.rdb.Publish(context.Background(), clusterChannel, wire)
	}
	return false
}

type clusterFrame struct {
	UserID uint            `json:"user_id"`
	Frame  json.RawMessage `json:"frame"`
}

// Run consumes frames published by other instances and delivers them
// to locally bound channels. Blocks until ctx is cancelled; a no-op
// without redis.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}

	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterFrame
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Malformed cluster frame", map[string]interface{}{"error": err.Error()})
				continue
			}
			if client, ok := h.Lookup(payload.UserID); ok {
				if !client.enqueue(payload.Frame) {
					h.Unbind(client)
				}
			}
		}
	}
}
