package playerstats

import "context"

// Repository stores gameweek stat sheets.
type Repository interface {
	GetByGameweek(ctx context.Context, gameweek int) ([]FixtureStat, error)
	UpsertGameweek(ctx context.Context, gameweek int, stats []FixtureStat) error
}
