package httpapi

import (
	"net/http"

	"github.com/dinkanimations/squadbets/internal/usecase"
)

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	var req submitPicksRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.pickService.Submit(ctx, usecase.SubmitPicksInput{
		PlayerName: req.PlayerName,
		Team1:      req.Team1,
		Team2:      req.Team2,
		HomeScore:  req.HomeScore,
		AwayScore:  req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "player", req.PlayerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, res)
}

func (h *Handler) SelectKickerMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectKickerMatch")
	defer span.End()

	var req selectKickerMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kb, err := h.pickService.SelectKickerMatch(ctx, usecase.SelectKickerMatchInput{
		PlayerName: req.PlayerName,
		Match:      req.Match,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "select kicker match failed", "player", req.PlayerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, kb)
}
