package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/season", handler.GetSeason)
	mux.HandleFunc("POST /v1/picks", handler.SubmitPicks)
	mux.HandleFunc("POST /v1/weeks/current/kicker-bet", handler.SelectKickerMatch)
	mux.HandleFunc("GET /v1/weeks/{week}/accumulators", handler.ListAccumulators)
}

func registerReportRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/weeks/{week}/earnings", handler.GetWeekEarnings)
	mux.HandleFunc("GET /v1/pot", handler.GetPot)
	mux.HandleFunc("GET /v1/breakeven", handler.GetBreakeven)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAdminToken(adminToken, fn))
	}

	admin("POST /v1/season/players", handler.AddPlayer)
	admin("DELETE /v1/season/players/{name}", handler.RemovePlayer)
	admin("POST /v1/season/start", handler.StartSeason)
	admin("POST /v1/season/reset", handler.ResetSeason)

	admin("POST /v1/weeks/current/advance", handler.AdvanceWeek)
	admin("POST /v1/weeks/current/odds-lock", handler.LockOdds)
	admin("PUT /v1/weeks/current/odds", handler.SetPickOdds)
	admin("PUT /v1/weeks/current/kicker-odds", handler.SetKickerOdds)

	admin("POST /v1/weeks/current/results/{team}/toggle", handler.ToggleTeamResult)
	admin("PUT /v1/weeks/current/results/{team}", handler.SetTeamResult)
	admin("DELETE /v1/weeks/current/results/{team}", handler.ClearTeamResult)
	admin("POST /v1/weeks/current/kicker-result", handler.SetKickerResult)

	admin("POST /v1/weeks/current/accumulators/regenerate", handler.RegenerateAccumulators)
	admin("DELETE /v1/weeks/{week}/accumulators/{type}/teams/{team}", handler.RemoveAccumulatorTeam)
}
