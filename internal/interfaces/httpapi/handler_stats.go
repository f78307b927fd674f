package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/antimaLinux/kickscraper/internal/usecase"
)

type syncStatsRequest struct {
	Gameweek int `json:"gameweek" validate:"required,min=1"`
}

type syncStatsDTO struct {
	Gameweek   int   `json:"gameweek"`
	Records    int   `json:"records"`
	Skipped    int   `json:"skipped"`
	DurationMs int64 `json:"durationMs"`
}

func (h *Handler) SyncStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncStats")
	defer span.End()

	var req syncStatsRequest
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

	result, err := h.syncService.Sync(ctx, req.Gameweek)
	if err != nil {
		h.logger.ErrorContext(ctx, "stats sync failed", "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncStatsDTO{
		Gameweek:   result.Gameweek,
		Records:    result.Records,
		Skipped:    result.Skipped,
		DurationMs: result.DurationMs,
	})
}
