package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/antimaLinux/kickscraper/internal/domain/scoring"
	"github.com/antimaLinux/kickscraper/internal/usecase"
)

type scoreTeamRequest struct {
	Gameweek int  `json:"gameweek" validate:"required,min=1"`
	Away     bool `json:"away"`
}

type substitutionDTO struct {
	Out          string `json:"out"`
	In           string `json:"in"`
	Position     string `json:"position"`
	CaptainMoved bool   `json:"captainMoved,omitempty"`
}

type teamScoreDTO struct {
	TeamID        string            `json:"teamId"`
	TeamName      string            `json:"teamName"`
	Gameweek      int               `json:"gameweek"`
	Away          bool              `json:"away"`
	Points        float64           `json:"points"`
	Goals         int               `json:"goals"`
	CaptainID     string            `json:"captainId"`
	CaptainRandom bool              `json:"captainRandom,omitempty"`
	Substitutions []substitutionDTO `json:"substitutions"`
	Lineup        []playerDTO       `json:"lineup"`
}

type goalsDTO struct {
	Points float64 `json:"points"`
	Goals  int     `json:"goals"`
}

func (h *Handler) ScoreTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreTeam")
	defer span.End()

	teamID := r.PathValue("teamID")

	var req scoreTeamRequest
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

	score, err := h.scoringService.EvaluateTeam(ctx, usecase.EvaluateTeamInput{
		TeamID:   teamID,
		Gameweek: req.Gameweek,
		Away:     req.Away,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "score team failed", "team_id", teamID, "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamScoreToDTO(score))
}

func (h *Handler) ScoreGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreGameweek")
	defer span.End()

	gameweek, err := strconv.Atoi(r.PathValue("gameweek"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: gameweek must be an integer", usecase.ErrInvalidInput))
		return
	}
	away := strings.EqualFold(r.URL.Query().Get("away"), "true")

	result, err := h.scoringService.EvaluateGameweek(ctx, gameweek, away)
	if err != nil {
		h.logger.WarnContext(ctx, "score gameweek failed", "gameweek", gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamScoreDTO, 0, len(result.Teams))
	for _, score := range result.Teams {
		items = append(items, teamScoreToDTO(score))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GoalsForPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GoalsForPoints")
	defer span.End()

	raw := strings.TrimSpace(r.URL.Query().Get("points"))
	if raw == "" {
		writeError(ctx, w, fmt.Errorf("%w: points query parameter is required", usecase.ErrInvalidInput))
		return
	}
	points, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: points must be a number", usecase.ErrInvalidInput))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, goalsDTO{
		Points: points,
		Goals:  h.scoringService.GoalsForPoints(points),
	})
}

func teamScoreToDTO(score usecase.TeamScore) teamScoreDTO {
	return teamScoreDTO{
		TeamID:        score.TeamID,
		TeamName:      score.TeamName,
		Gameweek:      score.Gameweek,
		Away:          score.Away,
		Points:        score.Points,
		Goals:         score.Goals,
		CaptainID:     score.CaptainID,
		CaptainRandom: score.CaptainRandom,
		Substitutions: substitutionsToDTOs(score.Substitutions),
		Lineup:        playersToDTOs(score.Lineup),
	}
}

func substitutionsToDTOs(subs []scoring.Substitution) []substitutionDTO {
	out := make([]substitutionDTO, 0, len(subs))
	for _, sub := range subs {
		out = append(out, substitutionDTO{
			Out:          sub.OutID,
			In:           sub.InID,
			Position:     string(sub.Position),
			CaptainMoved: sub.CaptainMoved,
		})
	}
	return out
}
