package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomsense/roomsense-backend/internal/auth"
	"github.com/roomsense/roomsense-backend/internal/service"
)

type ingestReadingRequest struct {
	DeviceID    *uint64  `json:"deviceId"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

func (h *handlers) ingestReading(c *gin.Context) {
	var req ingestReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.DeviceID == nil || req.Temperature == nil || req.Humidity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deviceId, temperature and humidity are required"})
		return
	}

	user := auth.CurrentUser(c)
	reading, err := h.svc.IngestReading(user.ID, *req.DeviceID, *req.Temperature, *req.Humidity)
	if err != nil {
		serviceError(c, err, "Device not found.")
		return
	}

	c.JSON(http.StatusCreated, reading)
}

func (h *handlers) listReadings(c *gin.Context) {
	deviceID, ok := paramID(c, "deviceId")
	if !ok {
		return
	}

	startDate, ok := queryDate(c, "startDate")
	if !ok {
		return
	}
	endDate, ok := queryDate(c, "endDate")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	page, err := h.svc.ListReadings(user.ID, deviceID, service.ReadingQuery{
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 0),
		StartDate: startDate,
		EndDate:   endDate,
		SortBy:    c.Query("sortBy"),
		Order:     c.Query("order"),
	})
	if err != nil {
		serviceError(c, err, "Device not found.")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *handlers) getStats(c *gin.Context) {
	deviceID, ok := paramID(c, "deviceId")
	if !ok {
		return
	}

	startDate, ok := queryDate(c, "startDate")
	if !ok {
		return
	}
	endDate, ok := queryDate(c, "endDate")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	stats, err := h.svc.GetStats(user.ID, deviceID, startDate, endDate)
	if err != nil {
		serviceError(c, err, "Device not found or you do not have permission to view it.")
		return
	}

	c.JSON(http.StatusOK, stats)
}
