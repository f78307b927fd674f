package memory

import (
	"context"
	"sync"

	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu         sync.RWMutex
	byGameweek map[int][]playerstats.FixtureStat
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{byGameweek: make(map[int][]playerstats.FixtureStat)}
}

func (r *PlayerStatsRepository) GetByGameweek(_ context.Context, gameweek int) ([]playerstats.FixtureStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := r.byGameweek[gameweek]
	out := make([]playerstats.FixtureStat, 0, len(stats))
	out = append(out, stats...)

	return out, nil
}

func (r *PlayerStatsRepository) UpsertGameweek(_ context.Context, gameweek int, stats []playerstats.FixtureStat) error {
	copied := append([]playerstats.FixtureStat(nil), stats...)

	r.mu.Lock()
	r.byGameweek[gameweek] = copied
	r.mu.Unlock()

	return nil
}
