package scoring

import (
	"math"

	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
)

// Rules stores the tunable scoring parameters. They are loaded from the
// environment by the config package and passed down explicitly so tests
// can run with non-default limits.
type Rules struct {
	MaxSubstitutions int
	GoalThreshold    float64
	GoalGap          float64
	HomeBonus        float64
}

func DefaultRules() Rules {
	return Rules{
		MaxSubstitutions: 5,
		GoalThreshold:    200,
		GoalGap:          20,
		HomeBonus:        6,
	}
}

// Substitution records one bench player replacing a non-scoring
// starter.
type Substitution struct {
	OutID        string
	InID         string
	Position     player.Position
	CaptainMoved bool
}

// Result is the outcome of evaluating one team against one gameweek
// stat sheet.
type Result struct {
	Points        float64
	CaptainID     string
	CaptainRandom bool
	Substitutions []Substitution
	Final         []player.Player
}

// Evaluate scores a team for one fixture. It is a pure function of its
// inputs: the team aggregate is never mutated and repeated calls with
// the same pick function yield identical results.
//
// pick selects a roster index when no starter is flagged captain; it is
// the only source of randomness in the engine. A nil pick selects
// index 0.
func Evaluate(t team.Team, stats []playerstats.FixtureStat, isAway bool, rules Rules, pick func(n int) int) Result {
	if rules.MaxSubstitutions < 0 {
		rules.MaxSubstitutions = 0
	}
	byID := playerstats.IndexByPlayer(stats)

	captainID := t.CaptainID()
	captainRandom := false
	if captainID == "" && len(t.Starters) > 0 {
		idx := 0
		if pick != nil {
			idx = pick(len(t.Starters))
		}
		if idx < 0 || idx >= len(t.Starters) {
			idx = 0
		}
		captainID = t.Starters[idx].ID
		captainRandom = true
	}

	// Starters absent from the sheet did not take the pitch at all:
	// they are excluded from the scoring set and are never candidates
	// for substitution.
	playing := make([]player.Player, 0, len(t.Starters))
	for _, p := range t.Starters {
		stat, ok := byID[p.ID]
		if !ok {
			continue
		}
		playing = append(playing, player.Player{
			ID:       p.ID,
			Name:     p.Name,
			Position: p.Position,
			Points:   stat.Points,
			Captain:  p.ID == captainID,
		})
	}

	// Bench order is substitution priority. Only bench players who
	// actually scored are usable substitutes.
	eligible := make([]player.Player, 0, len(t.Bench))
	for _, p := range t.Bench {
		stat, ok := byID[p.ID]
		if !ok || stat.Points <= 0 {
			continue
		}
		eligible = append(eligible, player.Player{
			ID:       p.ID,
			Name:     p.Name,
			Position: p.Position,
			Points:   stat.Points,
		})
	}

	substitutions := make([]Substitution, 0, rules.MaxSubstitutions)
	if len(eligible) > 0 {
		playing, substitutions = substitute(playing, eligible, rules.MaxSubstitutions)
		for _, sub := range substitutions {
			if sub.CaptainMoved {
				captainID = sub.InID
			}
		}
	}

	total := 0.0
	if !isAway {
		total = rules.HomeBonus
	}
	for _, p := range playing {
		if p.Captain {
			total += 2 * p.Points
			continue
		}
		total += p.Points
	}

	return Result{
		Points:        roundPoints(total),
		CaptainID:     captainID,
		CaptainRandom: captainRandom,
		Substitutions: substitutions,
		Final:         playing,
	}
}

// substitute walks the zero-scoring starters in roster order and
// greedily replaces each with the first unused same-position eligible
// substitute. First match wins; there is no backtracking. Only
// successful substitutions count toward the limit: a candidate with no
// matching substitute simply stays in, unscored. A limit of zero (or
// less) disables substitution entirely.
func substitute(playing, eligible []player.Player, maxSubstitutions int) ([]player.Player, []Substitution) {
	used := make(map[string]struct{}, maxSubstitutions)
	removed := make(map[string]struct{}, maxSubstitutions)
	captainMovedTo := ""
	substitutions := make([]Substitution, 0, maxSubstitutions)

	for _, candidate := range playing {
		if len(substitutions) >= maxSubstitutions {
			break
		}
		if candidate.Points != 0 {
			continue
		}
		for _, sub := range eligible {
			if sub.Position != candidate.Position {
				continue
			}
			if _, taken := used[sub.ID]; taken {
				continue
			}
			used[sub.ID] = struct{}{}
			removed[candidate.ID] = struct{}{}
			if candidate.Captain {
				captainMovedTo = sub.ID
			}
			substitutions = append(substitutions, Substitution{
				OutID:        candidate.ID,
				InID:         sub.ID,
				Position:     candidate.Position,
				CaptainMoved: candidate.Captain,
			})
			break
		}
	}

	if len(substitutions) == 0 {
		return playing, substitutions
	}

	final := make([]player.Player, 0, len(playing))
	for _, p := range playing {
		if _, out := removed[p.ID]; out {
			continue
		}
		final = append(final, p)
	}
	for _, sub := range eligible {
		if _, in := used[sub.ID]; in {
			final = append(final, sub)
		}
	}

	// The captain bonus transfers before point summation, even when
	// the incoming substitute scored nothing.
	if captainMovedTo != "" {
		for i := range final {
			final[i].Captain = final[i].ID == captainMovedTo
		}
	}

	return final, substitutions
}

// PointsToGoals converts a point total to a goal count: one goal each
// time the total strictly exceeds the current threshold, which starts
// at GoalThreshold and grows by GoalGap per goal.
func PointsToGoals(points float64, rules Rules) int {
	goals := 0
	threshold := rules.GoalThreshold
	for points > threshold {
		goals++
		threshold += rules.GoalGap
	}
	return goals
}

// roundPoints rounds to 2 decimal places, half away from zero.
func roundPoints(v float64) float64 {
	return math.Round(v*100) / 100
}
