package usecase

import (
	"errors"
	"testing"

	"github.com/antimaLinux/kickscraper/internal/domain/formation"
	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
	"github.com/antimaLinux/kickscraper/internal/domain/scoring"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
	"github.com/antimaLinux/kickscraper/internal/infrastructure/repository/memory"
	"github.com/antimaLinux/kickscraper/internal/platform/logging"
)

var testFormation442 = formation.Formation{Name: "4-4-2", Goalkeepers: 1, Defenders: 4, Midfielders: 4, Forwards: 2}

func scoringTestTeam(t *testing.T, teamID string, withCaptain bool) team.Team {
	t.Helper()

	starters := []player.Player{
		{ID: teamID + "-gk1", Position: player.PositionGoalkeeper},
		{ID: teamID + "-def1", Position: player.PositionDefender},
		{ID: teamID + "-def2", Position: player.PositionDefender},
		{ID: teamID + "-def3", Position: player.PositionDefender},
		{ID: teamID + "-def4", Position: player.PositionDefender},
		{ID: teamID + "-mid1", Position: player.PositionMidfielder, Captain: withCaptain},
		{ID: teamID + "-mid2", Position: player.PositionMidfielder},
		{ID: teamID + "-mid3", Position: player.PositionMidfielder},
		{ID: teamID + "-mid4", Position: player.PositionMidfielder},
		{ID: teamID + "-fwd1", Position: player.PositionForward},
		{ID: teamID + "-fwd2", Position: player.PositionForward},
	}
	bench := []player.Player{
		{ID: teamID + "-sub-gk", Position: player.PositionGoalkeeper},
		{ID: teamID + "-sub-def", Position: player.PositionDefender},
		{ID: teamID + "-sub-mid", Position: player.PositionMidfielder},
		{ID: teamID + "-sub-fwd", Position: player.PositionForward},
	}

	built, err := team.New(teamID, "Team "+teamID, testFormation442, starters, bench)
	if err != nil {
		t.Fatalf("build test team: %v", err)
	}
	return built
}

// Full sheet where every starter scored: gk 5, defenders 4 each, the
// captain midfielder 10, other midfielders 6 each, forwards 7 and 8.
// Sum 64; captain doubled adds 10.
func scoringTestSheet(teamID string) []playerstats.FixtureStat {
	return []playerstats.FixtureStat{
		{PlayerID: teamID + "-gk1", Position: player.PositionGoalkeeper, Points: 5},
		{PlayerID: teamID + "-def1", Position: player.PositionDefender, Points: 4},
		{PlayerID: teamID + "-def2", Position: player.PositionDefender, Points: 4},
		{PlayerID: teamID + "-def3", Position: player.PositionDefender, Points: 4},
		{PlayerID: teamID + "-def4", Position: player.PositionDefender, Points: 4},
		{PlayerID: teamID + "-mid1", Position: player.PositionMidfielder, Points: 10},
		{PlayerID: teamID + "-mid2", Position: player.PositionMidfielder, Points: 6},
		{PlayerID: teamID + "-mid3", Position: player.PositionMidfielder, Points: 6},
		{PlayerID: teamID + "-mid4", Position: player.PositionMidfielder, Points: 6},
		{PlayerID: teamID + "-fwd1", Position: player.PositionForward, Points: 7},
		{PlayerID: teamID + "-fwd2", Position: player.PositionForward, Points: 8},
	}
}

func newScoringFixture(t *testing.T, teams ...team.Team) (*ScoringService, *memory.PlayerStatsRepository) {
	t.Helper()

	teamRepo := memory.NewTeamRepository(nil)
	for _, item := range teams {
		if err := teamRepo.Upsert(t.Context(), item); err != nil {
			t.Fatalf("seed team %s: %v", item.ID, err)
		}
	}
	statsRepo := memory.NewPlayerStatsRepository()
	return NewScoringService(teamRepo, statsRepo, scoring.DefaultRules(), logging.NewNop()), statsRepo
}

func TestScoringService_EvaluateTeam_HomeAndAway(t *testing.T) {
	squad := scoringTestTeam(t, "alpha", true)
	svc, statsRepo := newScoringFixture(t, squad)
	if err := statsRepo.UpsertGameweek(t.Context(), 1, scoringTestSheet("alpha")); err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	home, err := svc.EvaluateTeam(t.Context(), EvaluateTeamInput{TeamID: "alpha", Gameweek: 1})
	if err != nil {
		t.Fatalf("evaluate home failed: %v", err)
	}
	if home.Points != 80.0 {
		t.Fatalf("unexpected home points: %v", home.Points)
	}
	if home.CaptainID != "alpha-mid1" || home.CaptainRandom {
		t.Fatalf("unexpected captain: %s random=%v", home.CaptainID, home.CaptainRandom)
	}

	away, err := svc.EvaluateTeam(t.Context(), EvaluateTeamInput{TeamID: "alpha", Gameweek: 1, Away: true})
	if err != nil {
		t.Fatalf("evaluate away failed: %v", err)
	}
	if away.Points != 74.0 {
		t.Fatalf("unexpected away points: %v", away.Points)
	}
}

func TestScoringService_EvaluateTeam_RandomCaptainIsDeterministicWithPicker(t *testing.T) {
	squad := scoringTestTeam(t, "beta", false)
	svc, statsRepo := newScoringFixture(t, squad)
	svc.SetPicker(func(n int) int { return 5 })
	if err := statsRepo.UpsertGameweek(t.Context(), 1, scoringTestSheet("beta")); err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	score, err := svc.EvaluateTeam(t.Context(), EvaluateTeamInput{TeamID: "beta", Gameweek: 1, Away: true})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !score.CaptainRandom {
		t.Fatalf("expected the captain to be picked at random")
	}
	if score.CaptainID != "beta-mid1" {
		t.Fatalf("unexpected captain: %s", score.CaptainID)
	}
	// Same sum as the flagged-captain case: index 5 is the 10-point
	// midfielder.
	if score.Points != 74.0 {
		t.Fatalf("unexpected points: %v", score.Points)
	}
}

func TestScoringService_EvaluateTeam_SubstitutionFromBench(t *testing.T) {
	squad := scoringTestTeam(t, "gamma", true)
	svc, statsRepo := newScoringFixture(t, squad)

	sheet := scoringTestSheet("gamma")
	// fwd2 did not play at all; the scoring bench forward comes in.
	sheet = sheet[:len(sheet)-1]
	sheet = append(sheet, playerstats.FixtureStat{PlayerID: "gamma-sub-fwd", Position: player.PositionForward, Points: 3})
	if err := statsRepo.UpsertGameweek(t.Context(), 1, sheet); err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	score, err := svc.EvaluateTeam(t.Context(), EvaluateTeamInput{TeamID: "gamma", Gameweek: 1, Away: true})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if len(score.Substitutions) != 0 {
		t.Fatalf("absent starters are not substitution candidates, got %d subs", len(score.Substitutions))
	}
	// fwd2's 8 points drop out entirely; the bench forward never
	// enters because fwd2 is not on the sheet.
	if score.Points != 66.0 {
		t.Fatalf("unexpected points: %v", score.Points)
	}
}

func TestScoringService_EvaluateTeam_ZeroScoringStarterIsReplaced(t *testing.T) {
	squad := scoringTestTeam(t, "delta", true)
	svc, statsRepo := newScoringFixture(t, squad)

	sheet := scoringTestSheet("delta")
	// fwd2 played but scored nothing, so the bench forward replaces
	// him.
	sheet[len(sheet)-1].Points = 0
	sheet = append(sheet, playerstats.FixtureStat{PlayerID: "delta-sub-fwd", Position: player.PositionForward, Points: 3})
	if err := statsRepo.UpsertGameweek(t.Context(), 1, sheet); err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	score, err := svc.EvaluateTeam(t.Context(), EvaluateTeamInput{TeamID: "delta", Gameweek: 1, Away: true})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if len(score.Substitutions) != 1 {
		t.Fatalf("unexpected substitution count: %d", len(score.Substitutions))
	}
	if score.Substitutions[0].OutID != "delta-fwd2" || score.Substitutions[0].InID != "delta-sub-fwd" {
		t.Fatalf("unexpected substitution: %+v", score.Substitutions[0])
	}
	// 64 - 8 (fwd2) + 3 (sub) + 10 (captain double) = 69.
	if score.Points != 69.0 {
		t.Fatalf("unexpected points: %v", score.Points)
	}
}

func TestScoringService_EvaluateTeam_NotFound(t *testing.T) {
	svc, _ := newScoringFixture(t)

	_, err := svc.EvaluateTeam(t.Context(), EvaluateTeamInput{TeamID: "missing", Gameweek: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoringService_EvaluateTeam_InvalidGameweek(t *testing.T) {
	svc, _ := newScoringFixture(t, scoringTestTeam(t, "alpha", true))

	_, err := svc.EvaluateTeam(t.Context(), EvaluateTeamInput{TeamID: "alpha", Gameweek: 0})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScoringService_EvaluateGameweek_OrderedByTeamID(t *testing.T) {
	first := scoringTestTeam(t, "aaa", true)
	second := scoringTestTeam(t, "zzz", true)
	svc, statsRepo := newScoringFixture(t, second, first)
	svc.SetMaxWorkers(2)

	sheet := append(scoringTestSheet("aaa"), scoringTestSheet("zzz")...)
	if err := statsRepo.UpsertGameweek(t.Context(), 3, sheet); err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	result, err := svc.EvaluateGameweek(t.Context(), 3, false)
	if err != nil {
		t.Fatalf("evaluate gameweek failed: %v", err)
	}
	if len(result.Teams) != 2 {
		t.Fatalf("unexpected team count: %d", len(result.Teams))
	}
	if result.Teams[0].TeamID != "aaa" || result.Teams[1].TeamID != "zzz" {
		t.Fatalf("results not ordered by team id: %s, %s", result.Teams[0].TeamID, result.Teams[1].TeamID)
	}
	for _, score := range result.Teams {
		if score.Points != 80.0 {
			t.Fatalf("unexpected points for %s: %v", score.TeamID, score.Points)
		}
	}
}

func TestScoringService_GoalsForPoints(t *testing.T) {
	svc, _ := newScoringFixture(t)

	cases := []struct {
		points float64
		goals  int
	}{
		{0, 0},
		{200, 0},
		{200.01, 1},
		{250, 3},
		{300, 5},
	}
	for _, tc := range cases {
		if got := svc.GoalsForPoints(tc.points); got != tc.goals {
			t.Fatalf("GoalsForPoints(%v) = %d, want %d", tc.points, got, tc.goals)
		}
	}
}
