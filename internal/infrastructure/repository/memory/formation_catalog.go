package memory

import (
	"context"
	"sort"

	"github.com/antimaLinux/kickscraper/internal/domain/formation"
)

// FormationCatalog serves the fixed set of supported formations.
type FormationCatalog struct {
	byName map[string]formation.Formation
}

func NewFormationCatalog(formations []formation.Formation) *FormationCatalog {
	byName := make(map[string]formation.Formation, len(formations))
	for _, f := range formations {
		byName[f.Name] = f
	}
	return &FormationCatalog{byName: byName}
}

func (c *FormationCatalog) Get(_ context.Context, name string) (formation.Formation, bool, error) {
	f, ok := c.byName[name]
	if !ok {
		return formation.Formation{}, false, nil
	}
	return f, true, nil
}

func (c *FormationCatalog) List(_ context.Context) ([]formation.Formation, error) {
	out := make([]formation.Formation, 0, len(c.byName))
	for _, f := range c.byName {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
