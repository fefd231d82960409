package httpapi

import (
	"net/http"
	"strings"

	"github.com/dinkanimations/squadbets/internal/usecase"
)

func (h *Handler) AdvanceWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceWeek")
	defer span.End()

	outcome, err := h.weekService.Advance(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "advance week failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outcome)
}

func (h *Handler) LockOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockOdds")
	defer span.End()

	res, err := h.seasonService.LockOdds(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "lock odds failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, res)
}

func (h *Handler) SetPickOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPickOdds")
	defer span.End()

	var req setPickOddsRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, stored, err := h.oddsService.SetPickOdds(ctx, usecase.SetPickOddsInput{
		PlayerName: req.PlayerName,
		TeamName:   req.TeamName,
		Odds:       req.Odds,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set pick odds failed", "player", req.PlayerName, "team", req.TeamName, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !stored {
		writeSuccess(ctx, w, http.StatusOK, map[string]bool{"cleared": true})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entry)
}

func (h *Handler) SetKickerOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetKickerOdds")
	defer span.End()

	var req setKickerOddsRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, stored, err := h.oddsService.SetKickerOdds(ctx, usecase.SetKickerOddsInput{
		PlayerName: req.PlayerName,
		Odds:       req.Odds,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set kicker odds failed", "player", req.PlayerName, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !stored {
		writeSuccess(ctx, w, http.StatusOK, map[string]bool{"cleared": true})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entry)
}

func (h *Handler) ToggleTeamResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleTeamResult")
	defer span.End()

	team := strings.TrimSpace(r.PathValue("team"))
	res, err := h.resultService.ToggleTeamResult(ctx, team)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle team result failed", "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, res)
}

func (h *Handler) SetTeamResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetTeamResult")
	defer span.End()

	var req setTeamResultRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	team := strings.TrimSpace(r.PathValue("team"))
	res, err := h.resultService.SetTeamResult(ctx, team, *req.HasWon)
	if err != nil {
		h.logger.WarnContext(ctx, "set team result failed", "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, res)
}

func (h *Handler) ClearTeamResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearTeamResult")
	defer span.End()

	team := strings.TrimSpace(r.PathValue("team"))
	if err := h.resultService.ClearTeamResult(ctx, team); err != nil {
		h.logger.WarnContext(ctx, "clear team result failed", "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"cleared": true})
}

func (h *Handler) SetKickerResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetKickerResult")
	defer span.End()

	var req setKickerResultRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.resultService.SetKickerResult(ctx, *req.HomeScore, *req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "set kicker result failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, res)
}

func (h *Handler) ListAccumulators(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAccumulators")
	defer span.End()

	week, err := parseWeekPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	bets, err := h.accumulatorService.ListWeek(ctx, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "list accumulators failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bets)
}

func (h *Handler) RegenerateAccumulators(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegenerateAccumulators")
	defer span.End()

	bets, err := h.accumulatorService.Regenerate(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "regenerate accumulators failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bets)
}

func (h *Handler) RemoveAccumulatorTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveAccumulatorTeam")
	defer span.End()

	week, err := parseWeekPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	betType := strings.TrimSpace(r.PathValue("type"))
	team := strings.TrimSpace(r.PathValue("team"))
	bet, err := h.accumulatorService.RemoveTeam(ctx, week, betType, team)
	if err != nil {
		h.logger.WarnContext(ctx, "remove accumulator team failed",
			"week", week,
			"type", betType,
			"team", team,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bet)
}
