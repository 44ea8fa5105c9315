package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"skiresults/internal/domain"
	"skiresults/internal/port"
)

type eventRepo struct {
	db *sqlx.DB
}

// NewEventRepo creates a new PostgreSQL-backed EventRepository.
func NewEventRepo(db *sqlx.DB) port.EventRepository {
	return &eventRepo{db: db}
}

// GetOrCreate keys events by source file: one event per ingested document.
// Events without a source file are always inserted fresh.
func (r *eventRepo) GetOrCreate(ctx context.Context, event *domain.Event) (int64, error) {
	if event.SourceFile != nil && *event.SourceFile != "" {
		var id int64
		err := r.db.GetContext(ctx, &id,
			"SELECT id FROM events WHERE source_file = $1", *event.SourceFile)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("eventRepo.GetOrCreate lookup: %w", err)
		}
	}

	var id int64
	err := r.db.GetContext(ctx, &id,
		`INSERT INTO events (competition_id, discipline, gender, age_group, round_type, source_file)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		event.CompetitionID, event.Discipline, event.Gender, event.AgeGroup, event.RoundType, event.SourceFile)
	if err != nil {
		return 0, fmt.Errorf("eventRepo.GetOrCreate insert: %w", err)
	}
	return id, nil
}
