package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomsense/roomsense-backend/internal/auth"
)

func (h *handlers) listAlerts(c *gin.Context) {
	deviceID, ok := paramID(c, "deviceId")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	page, err := h.svc.ListAlerts(user.ID, deviceID, queryInt(c, "page", 1))
	if err != nil {
		serviceError(c, err, "Device not found.")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *handlers) markAlertSeen(c *gin.Context) {
	alertID, ok := paramID(c, "alertId")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	alert, err := h.svc.MarkAlertSeen(user.ID, alertID)
	if err != nil {
		serviceError(c, err, "Alert not found.")
		return
	}

	c.JSON(http.StatusOK, alert)
}
