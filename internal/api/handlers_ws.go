package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/roomsense/roomsense-backend/internal/model"
	"github.com/roomsense/roomsense-backend/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// connectWS upgrades the request and authenticates the token from the query
// string. Failures close the socket with a policy violation instead of an
// HTTP error, the connection is already upgraded at that point.
func (h *handlers) connectWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	token := c.Query("token")
	if token == "" {
		ws.Reject(conn, "Token not provided")
		return
	}

	claims, err := h.tokens.Validate(token)
	if err != nil {
		ws.Reject(conn, "Invalid token")
		return
	}

	var user model.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		ws.Reject(conn, "User not found")
		return
	}

	h.hub.Register(user.ID, conn)
}
