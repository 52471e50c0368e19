package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainILQ "eldercare-monitor/internal/domain/ilq"
	"eldercare-monitor/internal/usecase/ilq"
	"eldercare-monitor/pkg/utils"
)

type TrendHandler struct {
	service *ilq.Service
}

func NewTrendHandler(service *ilq.Service) *TrendHandler {
	return &TrendHandler{service: service}
}

func (h *TrendHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/ilq")
	{
		group.POST("/trend", h.AnalyzeTrend)
		group.GET("/scores/:personId", h.ListScores)
	}
}

func (h *TrendHandler) AnalyzeTrend(c *gin.Context) {
	var req ilq.TrendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.AnalyzeTrend(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domainILQ.ErrInsufficientData) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Insufficient data for trend analysis")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	// Trend results are returned flat, matching the analyzer contract.
	c.JSON(http.StatusOK, resp)
}

func (h *TrendHandler) ListScores(c *gin.Context) {
	personID, err := uuid.Parse(c.Param("personId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid person ID")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	scores, err := h.service.ListScores(c.Request.Context(), personID, limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scores retrieved", gin.H{"scores": scores})
}
