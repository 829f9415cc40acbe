package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchCode}", handler.GetMatchDetail)
	mux.HandleFunc("GET /v1/groups", handler.ListGroups)
	mux.HandleFunc("GET /v1/groups/standings", handler.ListAllStandings)
	mux.HandleFunc("GET /v1/groups/{group}/standings", handler.GetGroupStandings)
	mux.HandleFunc("GET /v1/groups/{group}/rounds", handler.GetGroupRounds)
	mux.HandleFunc("GET /v1/standings", handler.GetStandingsByQuery)
}
