package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/antimaLinux/kickscraper/internal/domain/formation"
	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
	"github.com/antimaLinux/kickscraper/internal/platform/id"
)

// PlayerSelection is one roster or bench slot as submitted by a
// client. Position accepts the wire spellings understood by
// player.ParsePosition.
type PlayerSelection struct {
	ID       string
	Name     string
	Position string
	Captain  bool
}

type CreateTeamInput struct {
	Name      string
	Formation string
	Starters  []PlayerSelection
	Bench     []PlayerSelection
}

type TeamService struct {
	formations formation.Catalog
	teams      team.Repository
	idGen      id.Generator
	now        func() time.Time
}

func NewTeamService(formations formation.Catalog, teams team.Repository, idGen id.Generator) *TeamService {
	return &TeamService{
		formations: formations,
		teams:      teams,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Formation = strings.TrimSpace(input.Formation)
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if input.Formation == "" {
		return team.Team{}, fmt.Errorf("%w: formation is required", ErrInvalidInput)
	}

	f, ok, err := s.formations.Get(ctx, input.Formation)
	if err != nil {
		return team.Team{}, fmt.Errorf("resolve formation: %w", err)
	}
	if !ok {
		return team.Team{}, fmt.Errorf("%w: %s", formation.ErrUnsupportedFormation, input.Formation)
	}

	starters, err := selectionsToPlayers(input.Starters)
	if err != nil {
		return team.Team{}, err
	}
	bench, err := selectionsToPlayers(input.Bench)
	if err != nil {
		return team.Team{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	created, err := team.New(teamID, input.Name, f, starters, bench)
	if err != nil {
		return team.Team{}, err
	}
	created.UpdatedAt = s.now().UTC()

	if err := s.teams.Upsert(ctx, created); err != nil {
		return team.Team{}, fmt.Errorf("save team: %w", err)
	}

	return created, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	return t, nil
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) ListFormations(ctx context.Context) ([]formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListFormations")
	defer span.End()

	formations, err := s.formations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list formations: %w", err)
	}
	return formations, nil
}

func selectionsToPlayers(selections []PlayerSelection) ([]player.Player, error) {
	out := make([]player.Player, 0, len(selections))
	for _, sel := range selections {
		position, err := player.ParsePosition(sel.Position)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out = append(out, player.Player{
			ID:       strings.TrimSpace(sel.ID),
			Name:     strings.TrimSpace(sel.Name),
			Position: position,
			Captain:  sel.Captain,
		})
	}
	return out, nil
}
