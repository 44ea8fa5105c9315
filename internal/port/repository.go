package port

import (
	"context"

	"skiresults/internal/domain"
)

// CompetitionRepository persists competitions keyed by (season, name).
type CompetitionRepository interface {
	// GetOrCreate returns the id of the competition matching (season, name)
	// exactly, inserting it if absent. Differing venue/date on a duplicate
	// insert are silently ignored.
	GetOrCreate(ctx context.Context, comp *domain.Competition) (int64, error)
}

// EventRepository persists events keyed by source file.
type EventRepository interface {
	// GetOrCreate returns the id of the event with the same source file,
	// inserting it if absent.
	GetOrCreate(ctx context.Context, event *domain.Event) (int64, error)
}

// ResultRepository persists and queries athlete results.
type ResultRepository interface {
	// InsertBatch inserts results for an event, deriving each row's phonetic
	// name key at insert time.
	InsertBatch(ctx context.Context, eventID int64, results []domain.Result) error

	// Search returns denormalized rows matching the filter, ordered by
	// competition date descending then rank ascending.
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.ResultRow, error)

	// AthleteHistory returns every result whose athlete name matches the
	// given name (script-aware substring), ordered by date descending, then
	// discipline, then rank.
	AthleteHistory(ctx context.Context, name string) ([]domain.ResultRow, error)
}

// LedgerRepository tracks per-document ingestion status for idempotency.
type LedgerRepository interface {
	// Mark upserts the ledger entry for a source key, replacing any prior row.
	Mark(ctx context.Context, sourceKey, fileType string, status domain.IngestStatus, errorMessage string) error

	// IsProcessed reports whether the source key is ledgered as success.
	IsProcessed(ctx context.Context, sourceKey string) (bool, error)

	// ListFailed returns all ledger entries with status failed.
	ListFailed(ctx context.Context) ([]domain.ProcessedFile, error)
}

// FacetRepository provides distinct-value queries for search filters.
type FacetRepository interface {
	GetFilterOptions(ctx context.Context, season, competition string) (*domain.FilterOptions, error)
}

// StatsRepository provides aggregate statistics queries.
type StatsRepository interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}
