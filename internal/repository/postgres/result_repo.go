package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"skiresults/internal/domain"
	"skiresults/internal/pinyin"
	"skiresults/internal/port"
)

type resultRepo struct {
	db *sqlx.DB
}

// NewResultRepo creates a new PostgreSQL-backed ResultRepository.
func NewResultRepo(db *sqlx.DB) port.ResultRepository {
	return &resultRepo{db: db}
}

// InsertBatch inserts all results for an event in one transaction. The
// phonetic name key is derived here, once, at insert time; reads never
// recompute it.
func (r *resultRepo) InsertBatch(ctx context.Context, eventID int64, results []domain.Result) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("resultRepo.InsertBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `INSERT INTO results
		(event_id, rank, bib, name, team, run1_time, run2_time, total_time,
		 run1_seconds, run2_seconds, total_seconds, time_diff, status, name_pinyin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	for _, res := range results {
		name := ""
		if res.Name != nil {
			name = *res.Name
		}
		_, err := tx.ExecContext(ctx, query,
			eventID, res.Rank, res.Bib, res.Name, res.Team,
			res.Run1Time, res.Run2Time, res.TotalTime,
			res.Run1Seconds, res.Run2Seconds, res.TotalSeconds,
			res.TimeDiff, res.Status, pinyin.Key(name))
		if err != nil {
			return fmt.Errorf("resultRepo.InsertBatch insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("resultRepo.InsertBatch commit: %w", err)
	}
	return nil
}

const resultRowColumns = `
	r.rank, r.bib, r.name, r.team,
	r.run1_time, r.run2_time, r.total_time, r.time_diff, r.status,
	r.run1_seconds, r.run2_seconds, r.total_seconds,
	e.discipline, e.gender, e.age_group, e.round_type,
	c.season, c.name AS competition, c.venue, c.date`

const resultRowJoins = `
	FROM results r
	JOIN events e ON r.event_id = e.id
	JOIN competitions c ON e.competition_id = c.id`

// Search builds the filter clause dynamically; all filters are exact-match
// except name, which matches by script: pure-ASCII input matches the phonetic
// key case-insensitively, anything else matches the display name.
func (r *resultRepo) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.ResultRow, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Season != "" {
		add("c.season = $%d", filter.Season)
	}
	if filter.Competition != "" {
		add("c.name = $%d", filter.Competition)
	}
	if filter.Discipline != "" {
		add("e.discipline = $%d", filter.Discipline)
	}
	if filter.AgeGroup != "" {
		add("e.age_group = $%d", filter.AgeGroup)
	}
	if filter.Gender != "" {
		add("e.gender = $%d", filter.Gender)
	}
	if filter.Name != "" {
		if isASCII(filter.Name) {
			add("r.name_pinyin LIKE $%d", "%"+strings.ToLower(filter.Name)+"%")
		} else {
			add("r.name LIKE $%d", "%"+filter.Name+"%")
		}
	}

	query := "SELECT" + resultRowColumns + resultRowJoins
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY c.date DESC NULLS LAST, r.rank ASC NULLS LAST"

	var rows []domain.ResultRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("resultRepo.Search: %w", err)
	}
	return rows, nil
}

// AthleteHistory returns every result whose athlete name matches, across all
// competitions, with the same script-aware matching as Search.
func (r *resultRepo) AthleteHistory(ctx context.Context, name string) ([]domain.ResultRow, error) {
	var where string
	var arg string
	if isASCII(name) {
		where = "r.name_pinyin LIKE $1"
		arg = "%" + strings.ToLower(name) + "%"
	} else {
		where = "r.name LIKE $1"
		arg = "%" + name + "%"
	}

	query := "SELECT" + resultRowColumns + resultRowJoins +
		" WHERE " + where +
		" ORDER BY c.date DESC NULLS LAST, e.discipline, r.rank ASC NULLS LAST"

	var rows []domain.ResultRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, fmt.Errorf("resultRepo.AthleteHistory: %w", err)
	}
	return rows, nil
}

// isASCII reports whether the input (spaces ignored) is pure ASCII, which
// selects phonetic-key matching over display-name matching.
func isASCII(s string) bool {
	for _, r := range strings.ReplaceAll(s, " ", "") {
		if r > 127 {
			return false
		}
	}
	return true
}
