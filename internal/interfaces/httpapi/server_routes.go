package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-grid/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !metricsEnabled {
		return
	}

	mux.Handle("GET /metrics", metrics.Handler())
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/league", handler.LoadLeague)
	mux.HandleFunc("GET /v1/league", handler.GetLeague)
	mux.HandleFunc("GET /v1/achievements", handler.ListAchievements)
	mux.HandleFunc("GET /v1/intersections", handler.GetIntersection)
}

func registerGridRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/grids", handler.CreateGrid)
	mux.HandleFunc("GET /v1/grids/{gridID}", handler.GetGrid)
	mux.HandleFunc("POST /v1/grids/{gridID}/guesses", handler.SubmitGuess)
	mux.HandleFunc("GET /v1/grids/{gridID}/cells/{row}/{col}/answers", handler.ListCellAnswers)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/players/{pid}", handler.GetPlayer)
}
