package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"skiresults/internal/domain"
	"skiresults/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const statsQuery = `SELECT
	(SELECT COUNT(*) FROM competitions) AS competitions,
	(SELECT COUNT(*) FROM events) AS events,
	(SELECT COUNT(*) FROM results) AS results,
	(SELECT COUNT(DISTINCT name) FROM results) AS athletes,
	(SELECT COUNT(*) FROM processed_files WHERE status = 'success') AS files_success,
	(SELECT COUNT(*) FROM processed_files WHERE status = 'failed') AS files_failed,
	(SELECT COUNT(*) FROM processed_files WHERE status = 'skipped') AS files_skipped`

func (r *statsRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, statsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats: %w", err)
	}
	return &stats, nil
}
