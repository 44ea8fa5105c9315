package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"skiresults/internal/domain"
	"skiresults/internal/port"
)

type facetRepo struct {
	db *sqlx.DB
}

// NewFacetRepo creates a new PostgreSQL-backed FacetRepository.
func NewFacetRepo(db *sqlx.DB) port.FacetRepository {
	return &facetRepo{db: db}
}

// GetFilterOptions returns distinct non-empty values for the search filter
// dropdowns. Seasons are global; competitions cascade by season; the event
// facets cascade by competition when set, else by season.
func (r *facetRepo) GetFilterOptions(ctx context.Context, season, competition string) (*domain.FilterOptions, error) {
	opts := &domain.FilterOptions{}

	err := r.db.SelectContext(ctx, &opts.Seasons,
		`SELECT DISTINCT season FROM competitions
		 WHERE season IS NOT NULL AND season != '' ORDER BY season`)
	if err != nil {
		return nil, fmt.Errorf("facetRepo.GetFilterOptions seasons: %w", err)
	}

	if season != "" {
		err = r.db.SelectContext(ctx, &opts.Competitions,
			`SELECT DISTINCT name FROM competitions
			 WHERE name != '' AND season = $1 ORDER BY name`, season)
	} else {
		err = r.db.SelectContext(ctx, &opts.Competitions,
			`SELECT DISTINCT name FROM competitions WHERE name != '' ORDER BY name`)
	}
	if err != nil {
		return nil, fmt.Errorf("facetRepo.GetFilterOptions competitions: %w", err)
	}

	for _, facet := range []struct {
		column string
		dest   *[]string
	}{
		{"discipline", &opts.Disciplines},
		{"age_group", &opts.AgeGroups},
		{"gender", &opts.Genders},
	} {
		query, args := facetQuery(facet.column, season, competition)
		if err := r.db.SelectContext(ctx, facet.dest, query, args...); err != nil {
			return nil, fmt.Errorf("facetRepo.GetFilterOptions %s: %w", facet.column, err)
		}
	}

	return opts, nil
}

func facetQuery(column, season, competition string) (string, []interface{}) {
	base := fmt.Sprintf(
		"SELECT DISTINCT e.%[1]s FROM events e", column)
	where := fmt.Sprintf(" WHERE e.%[1]s IS NOT NULL AND e.%[1]s != ''", column)
	order := fmt.Sprintf(" ORDER BY e.%[1]s", column)

	switch {
	case competition != "":
		return base + " JOIN competitions c ON e.competition_id = c.id" +
			where + " AND c.name = $1" + order, []interface{}{competition}
	case season != "":
		return base + " JOIN competitions c ON e.competition_id = c.id" +
			where + " AND c.season = $1" + order, []interface{}{season}
	default:
		return base + where + order, nil
	}
}
