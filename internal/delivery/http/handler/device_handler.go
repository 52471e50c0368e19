package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainDevice "eldercare-monitor/internal/domain/device"
	"eldercare-monitor/internal/usecase/device"
	"eldercare-monitor/pkg/utils"
)

type DeviceHandler struct {
	service *device.Service
}

func NewDeviceHandler(service *device.Service) *DeviceHandler {
	return &DeviceHandler{service: service}
}

func (h *DeviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.GET("", h.ListDevices)
		devices.GET("/:id", h.GetDevice)
	}
}

func (h *DeviceHandler) GetDevice(c *gin.Context) {
	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid device ID")
		return
	}

	resp, err := h.service.GetDevice(c.Request.Context(), deviceID)
	if err != nil {
		if errors.Is(err, domainDevice.ErrDeviceNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device retrieved successfully", resp)
}

func (h *DeviceHandler) ListDevices(c *gin.Context) {
	var filter device.DeviceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListDevices(c.Request.Context(), &filter)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Devices retrieved successfully", resp)
}
