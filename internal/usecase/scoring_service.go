package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
	"github.com/antimaLinux/kickscraper/internal/domain/scoring"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
	"github.com/antimaLinux/kickscraper/internal/platform/logging"
)

const defaultGameweekWorkers = 8

type EvaluateTeamInput struct {
	TeamID   string
	Gameweek int
	Away     bool
}

// TeamScore is one team's evaluated fixture outcome.
type TeamScore struct {
	TeamID        string
	TeamName      string
	Gameweek      int
	Away          bool
	Points        float64
	Goals         int
	CaptainID     string
	CaptainRandom bool
	Substitutions []scoring.Substitution
	Lineup        []player.Player
}

type GameweekScores struct {
	Gameweek int
	Away     bool
	Teams    []TeamScore
}

type ScoringService struct {
	teams  team.Repository
	stats  playerstats.Repository
	rules  scoring.Rules
	pick   func(n int) int
	logger *logging.Logger

	maxWorkers int
}

func NewScoringService(
	teams team.Repository,
	stats playerstats.Repository,
	rules scoring.Rules,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		teams:      teams,
		stats:      stats,
		rules:      rules,
		pick:       rand.IntN,
		logger:     logger,
		maxWorkers: defaultGameweekWorkers,
	}
}

// SetPicker replaces the captain fallback selector. Tests use this to
// make the random-captain path deterministic.
func (s *ScoringService) SetPicker(pick func(n int) int) {
	if pick != nil {
		s.pick = pick
	}
}

func (s *ScoringService) SetMaxWorkers(n int) {
	if n > 0 {
		s.maxWorkers = n
	}
}

func (s *ScoringService) EvaluateTeam(ctx context.Context, input EvaluateTeamInput) (TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.EvaluateTeam")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.TeamID == "" {
		return TeamScore{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.Gameweek <= 0 {
		return TeamScore{}, fmt.Errorf("%w: gameweek must be positive", ErrInvalidInput)
	}

	t, exists, err := s.teams.GetByID(ctx, input.TeamID)
	if err != nil {
		return TeamScore{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamScore{}, fmt.Errorf("%w: team %s", ErrNotFound, input.TeamID)
	}

	sheet, err := s.stats.GetByGameweek(ctx, input.Gameweek)
	if err != nil {
		return TeamScore{}, fmt.Errorf("get gameweek stats: %w", err)
	}

	return s.evaluate(ctx, t, sheet, input.Gameweek, input.Away), nil
}

// EvaluateGameweek scores every stored team against one gameweek sheet
// on a worker pool. Results are ordered by team id regardless of
// completion order.
func (s *ScoringService) EvaluateGameweek(ctx context.Context, gameweek int, away bool) (GameweekScores, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.EvaluateGameweek")
	defer span.End()

	if gameweek <= 0 {
		return GameweekScores{}, fmt.Errorf("%w: gameweek must be positive", ErrInvalidInput)
	}

	teams, err := s.teams.List(ctx)
	if err != nil {
		return GameweekScores{}, fmt.Errorf("list teams: %w", err)
	}

	sheet, err := s.stats.GetByGameweek(ctx, gameweek)
	if err != nil {
		return GameweekScores{}, fmt.Errorf("get gameweek stats: %w", err)
	}

	result := GameweekScores{Gameweek: gameweek, Away: away, Teams: make([]TeamScore, 0, len(teams))}
	if len(teams) == 0 {
		return result, nil
	}

	workerCount := s.maxWorkers
	if workerCount > len(teams) {
		workerCount = len(teams)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return GameweekScores{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	scores := make(chan TeamScore, len(teams))
	var workers sync.WaitGroup
	for _, t := range teams {
		t := t
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			scores <- s.evaluate(ctx, t, sheet, gameweek, away)
		}); err != nil {
			workers.Done()
			return GameweekScores{}, fmt.Errorf("submit team to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(scores)

	for score := range scores {
		result.Teams = append(result.Teams, score)
	}
	sort.Slice(result.Teams, func(i, j int) bool { return result.Teams[i].TeamID < result.Teams[j].TeamID })

	return result, nil
}

// GoalsForPoints converts a raw point total into scored goals under the
// configured threshold ladder.
func (s *ScoringService) GoalsForPoints(points float64) int {
	return scoring.PointsToGoals(points, s.rules)
}

func (s *ScoringService) evaluate(ctx context.Context, t team.Team, sheet []playerstats.FixtureStat, gameweek int, away bool) TeamScore {
	outcome := scoring.Evaluate(t, sheet, away, s.rules, s.pick)
	if outcome.CaptainRandom {
		s.logger.WarnContext(ctx, "no captain flagged, picked one at random",
			"team_id", t.ID,
			"captain_id", outcome.CaptainID,
		)
	}

	return TeamScore{
		TeamID:        t.ID,
		TeamName:      t.Name,
		Gameweek:      gameweek,
		Away:          away,
		Points:        outcome.Points,
		Goals:         scoring.PointsToGoals(outcome.Points, s.rules),
		CaptainID:     outcome.CaptainID,
		CaptainRandom: outcome.CaptainRandom,
		Substitutions: outcome.Substitutions,
		Lineup:        outcome.Final,
	}
}
