package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
	"github.com/antimaLinux/kickscraper/internal/domain/scoring"
	"github.com/antimaLinux/kickscraper/internal/infrastructure/repository/memory"
	"github.com/antimaLinux/kickscraper/internal/platform/id"
	"github.com/antimaLinux/kickscraper/internal/platform/logging"
	"github.com/antimaLinux/kickscraper/internal/usecase"
)

const testJobToken = "test-job-token"

type fixedProvider struct {
	sheet []playerstats.FixtureStat
}

func (p *fixedProvider) FetchGameweek(_ context.Context, _ int) ([]playerstats.FixtureStat, error) {
	return p.sheet, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	formations := memory.NewFormationCatalog(memory.SeedFormations())
	teamRepo := memory.NewTeamRepository(nil)
	statsRepo := memory.NewPlayerStatsRepository()
	for _, seeded := range memory.SeedTeams() {
		if err := teamRepo.Upsert(t.Context(), seeded); err != nil {
			t.Fatalf("seed team: %v", err)
		}
	}
	for gameweek, sheet := range memory.SeedGameweekStats() {
		if err := statsRepo.UpsertGameweek(t.Context(), gameweek, sheet); err != nil {
			t.Fatalf("seed stats: %v", err)
		}
	}

	teamService := usecase.NewTeamService(formations, teamRepo, id.NewRandomGenerator())
	scoringService := usecase.NewScoringService(teamRepo, statsRepo, scoring.DefaultRules(), logging.NewNop())
	provider := &fixedProvider{sheet: []playerstats.FixtureStat{
		{PlayerID: "x1", Position: player.PositionMidfielder, Points: 5},
	}}
	syncService := usecase.NewStatsSyncService(provider, statsRepo, logging.NewNop())

	handler := NewHandler(teamService, scoringService, syncService, slog.New(slog.DiscardHandler))
	return NewRouter(handler, slog.New(slog.DiscardHandler), []string{"*"}, testJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_CreateAndGetTeam(t *testing.T) {
	router := newTestRouter(t)

	payload := `{
		"name": "API XI",
		"formation": "4-3-3",
		"starters": [
			{"id": "gk1", "position": "GK"},
			{"id": "def1", "position": "DEF"},
			{"id": "def2", "position": "DEF"},
			{"id": "def3", "position": "DEF"},
			{"id": "def4", "position": "DEF"},
			{"id": "mid1", "position": "MID", "captain": true},
			{"id": "mid2", "position": "MID"},
			{"id": "mid3", "position": "MID"},
			{"id": "fwd1", "position": "FWD"},
			{"id": "fwd2", "position": "FWD"},
			{"id": "fwd3", "position": "FWD"}
		],
		"bench": [
			{"id": "sub1", "position": "GK"},
			{"id": "sub2", "position": "DEF"}
		]
	}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/teams", strings.NewReader(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response")
	}
	teamID, _ := data["id"].(string)
	if teamID == "" {
		t.Fatalf("expected a team id in response")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/"+teamID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_CreateTeam_RosterMismatchIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	// 4-4-2 shape submitted against 4-3-3.
	payload := `{
		"name": "Broken XI",
		"formation": "4-3-3",
		"starters": [
			{"id": "gk1", "position": "GK"},
			{"id": "def1", "position": "DEF"},
			{"id": "def2", "position": "DEF"},
			{"id": "def3", "position": "DEF"},
			{"id": "def4", "position": "DEF"},
			{"id": "mid1", "position": "MID"},
			{"id": "mid2", "position": "MID"},
			{"id": "mid3", "position": "MID"},
			{"id": "mid4", "position": "MID"},
			{"id": "fwd1", "position": "FWD"},
			{"id": "fwd2", "position": "FWD"}
		]
	}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/teams", strings.NewReader(payload)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ScoreSeededTeam(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost,
		"/v1/teams/"+memory.SeedTeamIDScudetto+"/score",
		strings.NewReader(`{"gameweek": 1}`),
	))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response")
	}
	if points, _ := data["points"].(float64); points <= 0 {
		t.Fatalf("expected positive points, got %v", data["points"])
	}
	if captain, _ := data["captainId"].(string); captain == "" {
		t.Fatalf("expected a captain id in response")
	}
}

func TestRouter_GoalsForPoints(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scoring/goals?points=250", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if goals, _ := data["goals"].(float64); goals != 3 {
		t.Fatalf("expected 3 goals for 250 points, got %v", data["goals"])
	}
}

func TestRouter_SyncStats_RequiresJobToken(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/stats/sync", strings.NewReader(`{"gameweek": 2}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/stats/sync", strings.NewReader(`{"gameweek": 2}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if records, _ := data["records"].(float64); records != 1 {
		t.Fatalf("expected 1 synced record, got %v", data["records"])
	}
}
