package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainPairing "eldercare-monitor/internal/domain/pairing"
	"eldercare-monitor/internal/usecase/pairing"
	"eldercare-monitor/pkg/utils"
)

type PairingHandler struct {
	service *pairing.Service
}

func NewPairingHandler(service *pairing.Service) *PairingHandler {
	return &PairingHandler{service: service}
}

func (h *PairingHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/pairing")
	{
		group.POST("", h.CreatePairing)
		group.GET("/status/:code", h.GetStatus)
		group.POST("/verify/:code", h.Verify)
		group.GET("/:id/logs", h.GetLogs)
	}
}

func (h *PairingHandler) CreatePairing(c *gin.Context) {
	var req pairing.CreatePairingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	requestedBy, ok := actingUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.CreatePairing(c.Request.Context(), &req, requestedBy)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pairing request created", resp)
}

func (h *PairingHandler) GetStatus(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Pairing code required")
		return
	}

	resp, err := h.service.GetStatus(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, domainPairing.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pairing request retrieved", gin.H{"pairing_request": resp})
}

func (h *PairingHandler) Verify(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Pairing code required")
		return
	}

	var req pairing.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	approvedBy, ok := actingUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.Verify(c.Request.Context(), code, &req, approvedBy)
	if err != nil {
		switch {
		case errors.Is(err, domainPairing.ErrNotFound),
			errors.Is(err, domainPairing.ErrExpired),
			errors.Is(err, domainPairing.ErrNotPending):
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pairing request verified", resp)
}

func (h *PairingHandler) GetLogs(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid pairing request ID")
		return
	}

	logs, err := h.service.GetLogs(c.Request.Context(), requestID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Association logs retrieved", gin.H{"logs": logs})
}

// actingUserID extracts the authenticated user's ID set by the auth
// middleware. Writes the error response itself when the claim is missing
// or malformed.
func actingUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not found in context")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw.(string))
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid user identity")
		return uuid.Nil, false
	}
	return id, true
}
