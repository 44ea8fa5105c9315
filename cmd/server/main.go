package main

import (
	"fmt"
	"log"

	"skiresults/internal/config"
	"skiresults/internal/handler"
	"skiresults/internal/repository/postgres"
	"skiresults/internal/router"
	"skiresults/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	resultRepo := postgres.NewResultRepo(db)
	facetRepo := postgres.NewFacetRepo(db)
	statsRepo := postgres.NewStatsRepo(db)
	ledgerRepo := postgres.NewLedgerRepo(db)

	// Initialize services
	querySvc := service.NewQueryService(resultRepo, facetRepo, statsRepo, ledgerRepo)

	// Initialize handlers
	resultsH := handler.NewResultsHandler(querySvc)
	statsH := handler.NewStatsHandler(querySvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(resultsH, statsH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
