package kickest

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/antimaLinux/kickscraper/internal/domain/player"
)

func TestMapRole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role string
		want player.Position
	}{
		{"P", player.PositionGoalkeeper},
		{"D", player.PositionDefender},
		{"C", player.PositionMidfielder},
		{"A", player.PositionForward},
		{"gk", player.PositionGoalkeeper},
		{" fwd ", player.PositionForward},
	}
	for _, tc := range cases {
		got, err := mapRole(tc.role)
		if err != nil {
			t.Fatalf("mapRole(%q) returned error: %v", tc.role, err)
		}
		if got != tc.want {
			t.Fatalf("mapRole(%q) = %s, want %s", tc.role, got, tc.want)
		}
	}

	if _, err := mapRole("X"); err == nil {
		t.Fatalf("expected an error for unknown role")
	}
}

func TestFetchGameweek_WalksAllPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tableRequest
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if req.Gameweek != 7 {
			t.Errorf("unexpected gameweek in request: %d", req.Gameweek)
		}
		if req.PerPage != 3 {
			t.Errorf("unexpected page size in request: %d", req.PerPage)
		}

		var envelope tableEnvelope
		envelope.Data.Pages = 2
		switch req.Page {
		case 1:
			envelope.Data.Players = []tablePlayer{
				{ID: 1, Name: "Keeper", Role: "P", Points: 6},
				{ID: 2, Name: "Back", Role: "D", Points: 5.5},
				{ID: 3, Name: "Mystery", Role: "X", Points: 9},
			}
		case 2:
			envelope.Data.Players = []tablePlayer{
				{ID: 4, Name: "Striker", Role: "A", Points: 11},
			}
		default:
			t.Errorf("unexpected page requested: %d", req.Page)
		}

		raw, _ := sonic.Marshal(envelope)
		_, _ = w.Write(raw)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, PageSize: 3})

	sheet, err := client.FetchGameweek(t.Context(), 7)
	if err != nil {
		t.Fatalf("fetch gameweek failed: %v", err)
	}
	// The unknown-role row is dropped, everything else survives.
	if len(sheet) != 3 {
		t.Fatalf("unexpected sheet size: %d", len(sheet))
	}
	if sheet[0].PlayerID != "1" || sheet[0].Position != player.PositionGoalkeeper {
		t.Fatalf("unexpected first row: %+v", sheet[0])
	}
	if sheet[2].PlayerID != "4" || sheet[2].Points != 11 {
		t.Fatalf("unexpected last row: %+v", sheet[2])
	}
}

func TestFetchGameweek_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		var envelope tableEnvelope
		envelope.Data.Pages = 1
		envelope.Data.Players = []tablePlayer{{ID: 9, Name: "Winger", Role: "C", Points: 7}}
		raw, _ := sonic.Marshal(envelope)
		_, _ = w.Write(raw)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 2})

	sheet, err := client.FetchGameweek(t.Context(), 1)
	if err != nil {
		t.Fatalf("fetch gameweek failed: %v", err)
	}
	if len(sheet) != 1 {
		t.Fatalf("unexpected sheet size: %d", len(sheet))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one retry, server saw %d calls", calls.Load())
	}
}

func TestFetchGameweek_NonRetryableStatusFailsFast(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 3})

	if _, err := client.FetchGameweek(t.Context(), 1); err == nil {
		t.Fatalf("expected an error for forbidden status")
	}
	if calls.Load() != 1 {
		t.Fatalf("forbidden status must not retry, server saw %d calls", calls.Load())
	}
}
