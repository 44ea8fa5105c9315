package handler

import (
	"github.com/gin-gonic/gin"

	"skiresults/internal/service"
)

// StatsHandler handles the stats and ingestion-status endpoints.
type StatsHandler struct {
	queries *service.QueryService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(queries *service.QueryService) *StatsHandler {
	return &StatsHandler{queries: queries}
}

// GetStats handles GET /api/v1/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.queries.Stats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}

// GetFailures handles GET /api/v1/failures
func (h *StatsHandler) GetFailures(c *gin.Context) {
	files, err := h.queries.FailedFiles(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, files, len(files))
}
