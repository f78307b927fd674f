package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

type fixtureStatRow struct {
	Gameweek int     `db:"gameweek"`
	PlayerID string  `db:"player_public_id"`
	Name     string  `db:"player_name"`
	Position string  `db:"position"`
	Points   float64 `db:"points"`
}

func (r *PlayerStatsRepository) GetByGameweek(ctx context.Context, gameweek int) ([]playerstats.FixtureStat, error) {
	const query = `
		SELECT gameweek, player_public_id, player_name, position, points
		FROM player_fixture_stats
		WHERE gameweek = $1
		ORDER BY player_public_id`

	var rows []fixtureStatRow
	if err := r.db.SelectContext(ctx, &rows, query, gameweek); err != nil {
		return nil, fmt.Errorf("select gameweek stats: %w", err)
	}

	out := make([]playerstats.FixtureStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.FixtureStat{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Position: player.Position(row.Position),
			Points:   row.Points,
		})
	}
	return out, nil
}

func (r *PlayerStatsRepository) UpsertGameweek(ctx context.Context, gameweek int, stats []playerstats.FixtureStat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert gameweek stats: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// A sync replaces the full sheet for the gameweek; stale rows for
	// players no longer in the feed must not survive.
	if _, err := tx.ExecContext(ctx, `DELETE FROM player_fixture_stats WHERE gameweek = $1`, gameweek); err != nil {
		return fmt.Errorf("clear gameweek stats: %w", err)
	}

	const insert = `
		INSERT INTO player_fixture_stats (gameweek, player_public_id, player_name, position, points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (gameweek, player_public_id) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			position = EXCLUDED.position,
			points = EXCLUDED.points,
			updated_at = NOW()`

	for _, s := range stats {
		if _, err := tx.ExecContext(ctx, insert, gameweek, s.PlayerID, s.Name, string(s.Position), s.Points); err != nil {
			return fmt.Errorf("upsert stat for player %s: %w", s.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit gameweek stats: %w", err)
	}
	return nil
}
