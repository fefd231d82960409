package httpapi

import "net/http"

func (h *Handler) GetWeekEarnings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekEarnings")
	defer span.End()

	week, err := parseWeekPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	earnings, err := h.reportService.WeekEarnings(ctx, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "get week earnings failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, earnings)
}

func (h *Handler) GetPot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPot")
	defer span.End()

	week, err := parseOptionalWeekQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	total, err := h.reportService.Pot(ctx, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "get pot failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, total)
}

func (h *Handler) GetBreakeven(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBreakeven")
	defer span.End()

	report, err := h.reportService.Breakeven(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get breakeven failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	standings, err := h.reportService.Standings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}
