package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/antimaLinux/kickscraper/internal/domain/formation"
	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
	"github.com/antimaLinux/kickscraper/internal/usecase"
)

type playerSlotRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"max=120"`
	Position string `json:"position" validate:"required"`
	Captain  bool   `json:"captain"`
}

type createTeamRequest struct {
	Name      string              `json:"name" validate:"required,max=100"`
	Formation string              `json:"formation" validate:"required"`
	Starters  []playerSlotRequest `json:"starters" validate:"required,len=11,dive"`
	Bench     []playerSlotRequest `json:"bench" validate:"dive"`
}

type playerDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Position string  `json:"position"`
	Points   float64 `json:"points,omitempty"`
	Captain  bool    `json:"captain,omitempty"`
}

type teamDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Formation string      `json:"formation"`
	Starters  []playerDTO `json:"starters"`
	Bench     []playerDTO `json:"bench"`
}

type formationDTO struct {
	Name        string `json:"name"`
	Goalkeepers int    `json:"goalkeepers"`
	Defenders   int    `json:"defenders"`
	Midfielders int    `json:"midfielders"`
	Forwards    int    `json:"forwards"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		Name:      req.Name,
		Formation: req.Formation,
		Starters:  slotsToSelections(req.Starters),
		Bench:     slotsToSelections(req.Bench),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, created))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	t, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, t))
}

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	formations, err := h.teamService.ListFormations(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list formations failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]formationDTO, 0, len(formations))
	for _, f := range formations {
		items = append(items, formationToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func slotsToSelections(slots []playerSlotRequest) []usecase.PlayerSelection {
	out := make([]usecase.PlayerSelection, 0, len(slots))
	for _, slot := range slots {
		out = append(out, usecase.PlayerSelection{
			ID:       slot.ID,
			Name:     slot.Name,
			Position: slot.Position,
			Captain:  slot.Captain,
		})
	}
	return out
}

func teamToDTO(ctx context.Context, t team.Team) teamDTO {
	_, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:        t.ID,
		Name:      t.Name,
		Formation: t.Formation.Name,
		Starters:  playersToDTOs(t.Starters),
		Bench:     playersToDTOs(t.Bench),
	}
}

func playersToDTOs(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerDTO{
			ID:       p.ID,
			Name:     p.Name,
			Position: string(p.Position),
			Points:   p.Points,
			Captain:  p.Captain,
		})
	}
	return out
}

func formationToDTO(f formation.Formation) formationDTO {
	return formationDTO{
		Name:        f.Name,
		Goalkeepers: f.Goalkeepers,
		Defenders:   f.Defenders,
		Midfielders: f.Midfielders,
		Forwards:    f.Forwards,
	}
}
