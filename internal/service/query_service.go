package service

import (
	"context"
	"fmt"
	"strings"

	"skiresults/internal/domain"
	"skiresults/internal/port"
)

// QueryService serves the read side: result search, athlete history, filter
// facets, aggregate stats, and the failed-file listing.
type QueryService struct {
	results port.ResultRepository
	facets  port.FacetRepository
	stats   port.StatsRepository
	ledger  port.LedgerRepository
}

// NewQueryService creates a query service over the given repositories.
func NewQueryService(
	results port.ResultRepository,
	facets port.FacetRepository,
	stats port.StatsRepository,
	ledger port.LedgerRepository,
) *QueryService {
	return &QueryService{
		results: results,
		facets:  facets,
		stats:   stats,
		ledger:  ledger,
	}
}

// Search returns result rows matching the filter. Blank filter fields are
// ignored; a fully blank filter returns everything.
func (s *QueryService) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.ResultRow, error) {
	rows, err := s.results.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("queryService.Search: %w", err)
	}
	return rows, nil
}

// AthleteHistory returns every result for the named athlete across all
// competitions. The name must be non-blank.
func (s *QueryService) AthleteHistory(ctx context.Context, name string) ([]domain.ResultRow, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("queryService.AthleteHistory: %w", domain.ErrEmptyInput)
	}
	rows, err := s.results.AthleteHistory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("queryService.AthleteHistory: %w", err)
	}
	return rows, nil
}

// FilterOptions returns distinct filter values, cascaded by the optional
// season and competition.
func (s *QueryService) FilterOptions(ctx context.Context, season, competition string) (*domain.FilterOptions, error) {
	opts, err := s.facets.GetFilterOptions(ctx, season, competition)
	if err != nil {
		return nil, fmt.Errorf("queryService.FilterOptions: %w", err)
	}
	return opts, nil
}

// Stats returns aggregate counts over the store.
func (s *QueryService) Stats(ctx context.Context) (*domain.Stats, error) {
	stats, err := s.stats.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("queryService.Stats: %w", err)
	}
	return stats, nil
}

// FailedFiles returns the ledger entries of documents whose ingestion failed,
// most recent first.
func (s *QueryService) FailedFiles(ctx context.Context) ([]domain.ProcessedFile, error) {
	files, err := s.ledger.ListFailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("queryService.FailedFiles: %w", err)
	}
	return files, nil
}
