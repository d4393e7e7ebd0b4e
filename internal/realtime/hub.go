package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub is the live-connection registry: at most one websocket connection per
// user, registered on authenticated connect and cleared on disconnect. The
// notification fan-out depends on it only through PushToUser; pushes to
// absent users are silently skipped.
type Hub struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[uuid.UUID]*websocket.Conn)}
}

// Register stores conn as the user's live connection, closing any previous
// one for the same user.
func (h *Hub) Register(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	prev := h.conns[userID]
	h.conns[userID] = conn
	h.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
}

// Unregister removes conn if it is still the user's registered connection.
// A stale conn that was already replaced is left alone.
func (h *Hub) Unregister(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	if h.conns[userID] == conn {
		delete(h.conns, userID)
	}
	h.mu.Unlock()
}

// IsConnected reports whether the user has a live connection.
func (h *Hub) IsConnected(userID uuid.UUID) bool {
	h.mu.RLock()
	_, ok := h.conns[userID]
	h.mu.RUnlock()
	return ok
}

type frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// PushToUser sends a named event to the user's live connection, if any.
// Returns whether a delivery was attempted. Write failures drop the
// connection; durable notifications are the source of truth, so nothing is
// retried.
func (h *Hub) PushToUser(userID uuid.UUID, event string, payload any) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[userID]
	if !ok {
		return false
	}

	data, err := json.Marshal(frame{Event: event, Data: payload})
	if err != nil {
		log.Printf("realtime: marshal %s event: %v", event, err)
		return false
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("realtime: push to user %s failed: %v", userID, err)
		conn.Close()
		delete(h.conns, userID)
		return false
	}
	return true
}
