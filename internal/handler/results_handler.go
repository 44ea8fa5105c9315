package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skiresults/internal/domain"
	"skiresults/internal/export"
	"skiresults/internal/service"
)

// ResultsHandler handles result search, athlete history, filter options, and
// export endpoints.
type ResultsHandler struct {
	queries *service.QueryService
}

// NewResultsHandler creates a new ResultsHandler.
func NewResultsHandler(queries *service.QueryService) *ResultsHandler {
	return &ResultsHandler{queries: queries}
}

// Search handles GET /api/v1/results
func (h *ResultsHandler) Search(c *gin.Context) {
	rows, err := h.queries.Search(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, rows, len(rows))
}

// AthleteHistory handles GET /api/v1/athletes/:name/results
func (h *ResultsHandler) AthleteHistory(c *gin.Context) {
	rows, err := h.queries.AthleteHistory(c.Request.Context(), c.Param("name"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, rows, len(rows))
}

// FilterOptions handles GET /api/v1/options
func (h *ResultsHandler) FilterOptions(c *gin.Context) {
	opts, err := h.queries.FilterOptions(c.Request.Context(), c.Query("season"), c.Query("competition"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, opts)
}

// Export handles GET /api/v1/results/export. The format query parameter
// selects csv (default) or xlsx; search filters apply as on /results.
func (h *ResultsHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	rows, err := h.queries.Search(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("results-%s.%s", time.Now().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := export.WriteXLSX(c.Writer, rows); err != nil {
			HandleError(c, err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteRows(rows); err != nil {
		return
	}
	w.Flush()
}

func filterFromQuery(c *gin.Context) domain.SearchFilter {
	return domain.SearchFilter{
		Season:      c.Query("season"),
		Competition: c.Query("competition"),
		Discipline:  c.Query("discipline"),
		AgeGroup:    c.Query("age_group"),
		Gender:      c.Query("gender"),
		Name:        c.Query("name"),
	}
}
