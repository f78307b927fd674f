package playerstats

import "github.com/antimaLinux/kickscraper/internal/domain/player"

// FixtureStat is one player's scored points for one gameweek. A sheet
// of FixtureStats is the full universe of players for the fixture; ids
// outside a given team are simply ignored by the scoring engine.
type FixtureStat struct {
	PlayerID string
	Name     string
	Position player.Position
	Points   float64
}

// IndexByPlayer builds an id lookup over a stat sheet. Later duplicates
// win, matching upsert semantics of the repositories.
func IndexByPlayer(stats []FixtureStat) map[string]FixtureStat {
	out := make(map[string]FixtureStat, len(stats))
	for _, s := range stats {
		out[s.PlayerID] = s
	}
	return out
}
