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

type competitionRepo struct {
	db *sqlx.DB
}

// NewCompetitionRepo creates a new PostgreSQL-backed CompetitionRepository.
func NewCompetitionRepo(db *sqlx.DB) port.CompetitionRepository {
	return &competitionRepo{db: db}
}

// GetOrCreate matches on (season, name) exactly, NULL season included. When a
// row already exists its venue/date/organizer stay untouched regardless of
// what the new parse carried.
func (r *competitionRepo) GetOrCreate(ctx context.Context, comp *domain.Competition) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		"SELECT id FROM competitions WHERE season IS NOT DISTINCT FROM $1 AND name = $2",
		comp.Season, comp.Name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("competitionRepo.GetOrCreate lookup: %w", err)
	}

	err = r.db.GetContext(ctx, &id,
		`INSERT INTO competitions (season, name, venue, date, organizer)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		comp.Season, comp.Name, comp.Venue, comp.Date, comp.Organizer)
	if err != nil {
		return 0, fmt.Errorf("competitionRepo.GetOrCreate insert: %w", err)
	}
	return id, nil
}
