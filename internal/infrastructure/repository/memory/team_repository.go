package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		items[t.ID] = cloneTeam(t)
	}
	return &TeamRepository{items: items}
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return team.Team{}, false, nil
	}

	return cloneTeam(item), true, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneTeam(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneTeam(item)
	return nil
}

func cloneTeam(item team.Team) team.Team {
	copied := item
	copied.Starters = append([]player.Player(nil), item.Starters...)
	copied.Bench = append([]player.Player(nil), item.Bench...)
	return copied
}
