package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
	"github.com/antimaLinux/kickscraper/internal/platform/logging"
)

// StatsProvider fetches one gameweek's scored-points sheet from the
// upstream stats feed.
type StatsProvider interface {
	FetchGameweek(ctx context.Context, gameweek int) ([]playerstats.FixtureStat, error)
}

type SyncResult struct {
	Gameweek   int
	Records    int
	Skipped    int
	DurationMs int64
}

type StatsSyncService struct {
	provider StatsProvider
	stats    playerstats.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewStatsSyncService(provider StatsProvider, stats playerstats.Repository, logger *logging.Logger) *StatsSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsSyncService{
		provider: provider,
		stats:    stats,
		logger:   logger,
		now:      time.Now,
	}
}

// Sync pulls the gameweek sheet from the provider and replaces the
// stored sheet. Rows without a player id or with an unknown position
// are dropped rather than failing the whole sync.
func (s *StatsSyncService) Sync(ctx context.Context, gameweek int) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsSyncService.Sync")
	defer span.End()

	if gameweek <= 0 {
		return SyncResult{}, fmt.Errorf("%w: gameweek must be positive", ErrInvalidInput)
	}

	start := s.now()
	sheet, err := s.provider.FetchGameweek(ctx, gameweek)
	if err != nil {
		return SyncResult{}, fmt.Errorf("%w: fetch gameweek %d: %v", ErrDependencyUnavailable, gameweek, err)
	}

	kept := make([]playerstats.FixtureStat, 0, len(sheet))
	skipped := 0
	for _, stat := range sheet {
		if stat.PlayerID == "" {
			skipped++
			continue
		}
		if _, known := player.AllPositions[stat.Position]; !known {
			s.logger.WarnContext(ctx, "dropping stat row with unknown position",
				"player_id", stat.PlayerID,
				"position", string(stat.Position),
			)
			skipped++
			continue
		}
		kept = append(kept, stat)
	}

	if err := s.stats.UpsertGameweek(ctx, gameweek, kept); err != nil {
		return SyncResult{}, fmt.Errorf("store gameweek stats: %w", err)
	}

	result := SyncResult{
		Gameweek:   gameweek,
		Records:    len(kept),
		Skipped:    skipped,
		DurationMs: s.now().Sub(start).Milliseconds(),
	}
	s.logger.InfoContext(ctx, "gameweek stats synced",
		"gameweek", gameweek,
		"records", result.Records,
		"skipped", result.Skipped,
	)
	return result, nil
}
