package router

import (
	"github.com/gin-gonic/gin"

	"skiresults/internal/handler"
	"skiresults/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	resultsH *handler.ResultsHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.GET("/results", resultsH.Search)
	v1.GET("/results/export", resultsH.Export)
	v1.GET("/athletes/:name/results", resultsH.AthleteHistory)
	v1.GET("/options", resultsH.FilterOptions)
	v1.GET("/stats", statsH.GetStats)
	v1.GET("/failures", statsH.GetFailures)

	return r
}
