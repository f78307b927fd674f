package cache

import (
	"context"
	"strconv"

	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
	basecache "github.com/antimaLinux/kickscraper/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	if err := r.next.Upsert(ctx, t); err != nil {
		return err
	}
	r.cache.Delete(ctx, "team:id:"+t.ID)
	r.cache.Delete(ctx, "team:list")
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type PlayerStatsRepository struct {
	next  playerstats.Repository
	cache *basecache.Store
}

func NewPlayerStatsRepository(next playerstats.Repository, cache *basecache.Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, cache: cache}
}

func (r *PlayerStatsRepository) GetByGameweek(ctx context.Context, gameweek int) ([]playerstats.FixtureStat, error) {
	key := "stats:gw:" + strconv.Itoa(gameweek)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByGameweek(ctx, gameweek)
		if err != nil {
			return nil, err
		}
		return append([]playerstats.FixtureStat(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]playerstats.FixtureStat)
	return append([]playerstats.FixtureStat(nil), items...), nil
}

func (r *PlayerStatsRepository) UpsertGameweek(ctx context.Context, gameweek int, stats []playerstats.FixtureStat) error {
	if err := r.next.UpsertGameweek(ctx, gameweek, stats); err != nil {
		return err
	}
	r.cache.Delete(ctx, "stats:gw:"+strconv.Itoa(gameweek))
	return nil
}
