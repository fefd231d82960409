package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/dinkanimations/squadbets/internal/platform/logging"
	"github.com/dinkanimations/squadbets/internal/usecase"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	seasonService      *usecase.SeasonService
	pickService        *usecase.PickService
	oddsService        *usecase.OddsService
	resultService      *usecase.ResultService
	accumulatorService *usecase.AccumulatorService
	weekService        *usecase.WeekService
	reportService      *usecase.ReportService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	seasonService *usecase.SeasonService,
	pickService *usecase.PickService,
	oddsService *usecase.OddsService,
	resultService *usecase.ResultService,
	accumulatorService *usecase.AccumulatorService,
	weekService *usecase.WeekService,
	reportService *usecase.ReportService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService:      seasonService,
		pickService:        pickService,
		oddsService:        oddsService,
		resultService:      resultService,
		accumulatorService: accumulatorService,
		weekService:        weekService,
		reportService:      reportService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a strict JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func parseWeekPathValue(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("%w: week must be a positive integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return week, nil
}

func parseOptionalWeekQuery(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return 0, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("%w: week query must be a positive integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return week, nil
}

type addPlayerRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type submitPicksRequest struct {
	PlayerName string `json:"player_name" validate:"required"`
	Team1      string `json:"team1" validate:"required,max=100"`
	Team2      string `json:"team2" validate:"required,max=100"`
	HomeScore  *int   `json:"home_score,omitempty" validate:"omitempty,min=0"`
	AwayScore  *int   `json:"away_score,omitempty" validate:"omitempty,min=0"`
}

type selectKickerMatchRequest struct {
	PlayerName string `json:"player_name" validate:"required"`
	Match      string `json:"match" validate:"required,max=200"`
}

type setPickOddsRequest struct {
	PlayerName string `json:"player_name" validate:"required"`
	TeamName   string `json:"team_name" validate:"required"`
	Odds       string `json:"odds" validate:"max=20"`
}

type setKickerOddsRequest struct {
	PlayerName string `json:"player_name" validate:"required"`
	Odds       string `json:"odds" validate:"max=20"`
}

type setTeamResultRequest struct {
	HasWon *bool `json:"has_won" validate:"required"`
}

type setKickerResultRequest struct {
	HomeScore *int `json:"home_score" validate:"required,min=0"`
	AwayScore *int `json:"away_score" validate:"required,min=0"`
}
