package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/antimaLinux/kickscraper/internal/domain/formation"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
)

type TeamRepository struct {
	db      *sqlx.DB
	catalog formation.Catalog
}

func NewTeamRepository(db *sqlx.DB, catalog formation.Catalog) *TeamRepository {
	return &TeamRepository{db: db, catalog: catalog}
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	const query = `
		SELECT id, public_id, name, formation_name, starters, bench, created_at, updated_at
		FROM teams
		WHERE public_id = $1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	catalog, err := r.formationIndex(ctx)
	if err != nil {
		return team.Team{}, false, err
	}

	t, err := teamFromRow(row, catalog)
	if err != nil {
		return team.Team{}, false, err
	}
	return t, true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	const query = `
		SELECT id, public_id, name, formation_name, starters, bench, created_at, updated_at
		FROM teams
		ORDER BY public_id`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	catalog, err := r.formationIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		t, err := teamFromRow(row, catalog)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	starters, err := rosterToJSON(t.Starters)
	if err != nil {
		return fmt.Errorf("encode starters: %w", err)
	}
	bench, err := rosterToJSON(t.Bench)
	if err != nil {
		return fmt.Errorf("encode bench: %w", err)
	}

	const query = `
		INSERT INTO teams (public_id, name, formation_name, starters, bench, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (public_id) DO UPDATE SET
			name = EXCLUDED.name,
			formation_name = EXCLUDED.formation_name,
			starters = EXCLUDED.starters,
			bench = EXCLUDED.bench,
			updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Formation.Name, starters, bench); err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) formationIndex(ctx context.Context) (map[string]formation.Formation, error) {
	formations, err := r.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list formations: %w", err)
	}
	out := make(map[string]formation.Formation, len(formations))
	for _, f := range formations {
		out[f.Name] = f
	}
	return out, nil
}
