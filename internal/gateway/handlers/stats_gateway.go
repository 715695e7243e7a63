package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	stats "restaurant-pos/internal/services/stats/handler"
)

type StatsHTTPHandler struct {
	stats *stats.StatsHandler
}

func NewStatsHTTPHandler(h *stats.StatsHandler) *StatsHTTPHandler {
	return &StatsHTTPHandler{stats: h}
}

func (h *StatsHTTPHandler) GetStats(c *gin.Context) {
	result, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Stats retrieved successfully", result))
}
