package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roomsense/roomsense-backend/internal/auth"
	"github.com/roomsense/roomsense-backend/internal/service"
	"github.com/roomsense/roomsense-backend/internal/ws"
)

type handlers struct {
	svc    *service.Service
	db     *gorm.DB
	tokens *auth.TokenManager
	hub    *ws.Hub
	logger *zap.Logger
}

// NewRouter wires the REST surface and the live channel endpoint.
func NewRouter(svc *service.Service, db *gorm.DB, tokens *auth.TokenManager, hub *ws.Hub, logger *zap.Logger) *gin.Engine {
	h := &handlers{
		svc:    svc,
		db:     db,
		tokens: tokens,
		hub:    hub,
		logger: logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(auth.RequestID())
	router.Use(accessLog(logger))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "IoT Sensor Monitor Backend is running!")
	})

	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)

	authorized := router.Group("/")
	authorized.Use(auth.Middleware(db, tokens, logger))
	{
		authorized.POST("/auth/change-password", h.changePassword)

		authorized.GET("/api/devices", h.listDevices)
		authorized.POST("/api/devices", h.createDevice)
		authorized.PUT("/api/devices/:deviceId", h.updateDevice)
		authorized.POST("/api/devices/:deviceId/thresholds", h.setThresholds)
		authorized.DELETE("/api/devices/:deviceId", h.deleteDevice)
		authorized.GET("/api/devices/:deviceId/alerts", h.listAlerts)
		authorized.PUT("/api/alerts/:alertId/seen", h.markAlertSeen)

		authorized.POST("/api/readings", h.ingestReading)
		authorized.GET("/api/readings/:deviceId", h.listReadings)
		authorized.GET("/api/stats/:deviceId", h.getStats)
	}

	router.GET("/ws", h.connectWS)

	return router
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("requestId", c.GetString("requestID")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
