package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/services"
)

type DeviceController struct {
	push *services.PushService // nil when push is unconfigured
}

func NewDeviceController(push *services.PushService) *DeviceController {
	return &DeviceController{push: push}
}

// RegisterPush registers this device's push token so the over-budget
// notification can reach it.
func (dc *DeviceController) RegisterPush(c *gin.Context) {
	if dc.push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications not configured"})
		return
	}

	var req struct {
		Platform string `json:"platform" binding:"required"`
		Token    string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ep, err := dc.push.RegisterDevice(c.Request.Context(), req.Platform, req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"platform": ep.Platform, "registered_at": ep.UpdatedAt})
}
