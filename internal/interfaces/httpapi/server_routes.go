package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("POST /v1/teams/{teamID}/score", handler.ScoreTeam)
	mux.HandleFunc("GET /v1/scoring/gameweeks/{gameweek}", handler.ScoreGameweek)
	mux.HandleFunc("GET /v1/scoring/goals", handler.GoalsForPoints)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/stats/sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncStats)))
}
