package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub keeps at most one live connection per user. It is handed to whoever
// needs to push, there is no package-level instance.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint64]*client
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[uint64]*client),
		logger:  logger,
	}
}

// Register takes ownership of an authenticated connection. A previous
// connection for the same user is replaced and closed, last connect wins.
func (h *Hub) Register(userID uint64, conn *websocket.Conn) {
	c := newClient(h, userID, conn)

	h.mu.Lock()
	old := h.clients[userID]
	h.clients[userID] = c
	h.mu.Unlock()

	if old != nil {
		old.close()
	}

	go c.writePump()
	go c.readPump()

	h.logger.Info("ws client connected", zap.Uint64("userId", userID))
}

// unregister drops the client unless it was already replaced by a newer
// connection for the same user.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if h.clients[c.userID] == c {
		delete(h.clients, c.userID)
	}
	h.mu.Unlock()

	c.close()
	h.logger.Info("ws client disconnected", zap.Uint64("userId", c.userID))
}

// Push delivers payload to the user's live connection if there is one.
// Delivery is best-effort: no connection or a full send buffer means the
// message is dropped.
func (h *Hub) Push(userID uint64, messageType string, payload interface{}) {
	h.mu.RLock()
	c := h.clients[userID]
	h.mu.RUnlock()

	if c == nil {
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"type":    messageType,
		"payload": payload,
	})
	if err != nil {
		h.logger.Error("ws marshal failed", zap.Error(err))
		return
	}

	select {
	case c.send <- data:
	default:
		h.logger.Warn("ws send buffer full, dropping message", zap.Uint64("userId", userID))
	}
}

// Connected reports whether a live connection is registered for the user.
func (h *Hub) Connected(userID uint64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[userID] != nil
}

// Reject closes an upgraded connection that failed authentication with a
// policy violation code and the given reason. The connection never enters
// the registry.
func Reject(conn *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	conn.Close()
}
