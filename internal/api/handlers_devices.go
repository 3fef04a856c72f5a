package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomsense/roomsense-backend/internal/auth"
	"github.com/roomsense/roomsense-backend/internal/model"
	"github.com/roomsense/roomsense-backend/internal/service"
)

type createDeviceRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type updateDeviceRequest struct {
	Name       *string           `json:"name"`
	Location   *string           `json:"location"`
	Thresholds *model.Thresholds `json:"thresholds"`
}

func (h *handlers) listDevices(c *gin.Context) {
	user := auth.CurrentUser(c)

	devices, err := h.svc.ListDevices(user.ID, queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		serviceError(c, err, "Device not found")
		return
	}

	c.JSON(http.StatusOK, devices)
}

func (h *handlers) createDevice(c *gin.Context) {
	var req createDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user := auth.CurrentUser(c)
	device, err := h.svc.CreateDevice(user.ID, req.Name, req.Location)
	if err != nil {
		serviceError(c, err, "Device not found")
		return
	}

	c.JSON(http.StatusCreated, device)
}

func (h *handlers) updateDevice(c *gin.Context) {
	deviceID, ok := paramID(c, "deviceId")
	if !ok {
		return
	}

	var req updateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user := auth.CurrentUser(c)
	device, err := h.svc.UpdateDevice(user.ID, deviceID, service.DeviceUpdate{
		Name:       req.Name,
		Location:   req.Location,
		Thresholds: req.Thresholds,
	})
	if err != nil {
		serviceError(c, err, "Device not found or you do not own this device.")
		return
	}

	c.JSON(http.StatusOK, device)
}

func (h *handlers) setThresholds(c *gin.Context) {
	deviceID, ok := paramID(c, "deviceId")
	if !ok {
		return
	}

	var thresholds model.Thresholds
	if err := c.ShouldBindJSON(&thresholds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user := auth.CurrentUser(c)
	device, err := h.svc.SetThresholds(user.ID, deviceID, thresholds)
	if err != nil {
		serviceError(c, err, "Device not found or you do not own this device.")
		return
	}

	c.JSON(http.StatusOK, device)
}

func (h *handlers) deleteDevice(c *gin.Context) {
	deviceID, ok := paramID(c, "deviceId")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	if err := h.svc.DeleteDevice(user.ID, deviceID); err != nil {
		serviceError(c, err, "Device not found or you do not own this device.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device and all its readings deleted successfully."})
}
