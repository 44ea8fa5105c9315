package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"skiresults/internal/domain"
	"skiresults/internal/port"
)

type ledgerRepo struct {
	db *sqlx.DB
}

// NewLedgerRepo creates a new PostgreSQL-backed LedgerRepository.
func NewLedgerRepo(db *sqlx.DB) port.LedgerRepository {
	return &ledgerRepo{db: db}
}

// Mark upserts the ledger entry for a source key. The conflict target is the
// unique source_key, so the table holds at most one live row per document and
// status can flip freely across runs.
func (r *ledgerRepo) Mark(ctx context.Context, sourceKey, fileType string, status domain.IngestStatus, errorMessage string) error {
	var errMsg *string
	if errorMessage != "" {
		errMsg = &errorMessage
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO processed_files (source_key, file_type, processed_at, status, error_message)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (source_key) DO UPDATE SET
			file_type = EXCLUDED.file_type,
			processed_at = EXCLUDED.processed_at,
			status = EXCLUDED.status,
			error_message = EXCLUDED.error_message`,
		sourceKey, fileType, time.Now().UTC(), status, errMsg)
	if err != nil {
		return fmt.Errorf("ledgerRepo.Mark: %w", err)
	}
	return nil
}

// IsProcessed reports whether the key's live ledger entry is success. Failed
// and skipped documents stay eligible for reprocessing on the next run.
func (r *ledgerRepo) IsProcessed(ctx context.Context, sourceKey string) (bool, error) {
	var status string
	err := r.db.GetContext(ctx, &status,
		"SELECT status FROM processed_files WHERE source_key = $1", sourceKey)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ledgerRepo.IsProcessed: %w", err)
	}
	return status == string(domain.IngestSuccess), nil
}

func (r *ledgerRepo) ListFailed(ctx context.Context) ([]domain.ProcessedFile, error) {
	var entries []domain.ProcessedFile
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM processed_files WHERE status = $1 ORDER BY processed_at DESC`,
		domain.IngestFailed)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.ListFailed: %w", err)
	}
	return entries, nil
}
