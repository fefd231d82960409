package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dinkanimations/squadbets/internal/config"
	"github.com/dinkanimations/squadbets/internal/domain/settlement"
	"github.com/dinkanimations/squadbets/internal/infrastructure/repository/kvstate"
	"github.com/dinkanimations/squadbets/internal/interfaces/httpapi"
	"github.com/dinkanimations/squadbets/internal/platform/logging"
	"github.com/dinkanimations/squadbets/internal/usecase"
)

// NewHTTPServer wires the store, ledger and usecases behind the HTTP API.
// The returned closer releases the store connection.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	repo := kvstate.NewRepository(store, kvstate.Config{
		Workers:  cfg.StoreLoadWorkers,
		Location: cfg.LateWindowLocation,
	}, logger.Named("kvstate"))
	engine := settlement.NewEngine(stakesFromConfig(cfg))
	ledger := usecase.NewLedger(repo, engine, cfg.LateWindowLocation, logger.Named("ledger"))
	httpLogger := logger.Named("http")

	handler := httpapi.NewHandler(
		usecase.NewSeasonService(ledger),
		usecase.NewPickService(ledger),
		usecase.NewOddsService(ledger),
		usecase.NewResultService(ledger),
		usecase.NewAccumulatorService(ledger),
		usecase.NewWeekService(ledger),
		usecase.NewReportService(ledger),
		httpLogger,
	)
	router := httpapi.NewRouter(handler, httpLogger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, closeStore, nil
}

func stakesFromConfig(cfg config.Config) settlement.Stakes {
	stakes := settlement.DefaultStakes()
	if cfg.StakeDoubleBet > 0 {
		stakes.DoubleBet = cfg.StakeDoubleBet
	}
	if cfg.StakeKickerBet > 0 {
		stakes.KickerBet = cfg.StakeKickerBet
	}
	if cfg.StakeMaxAcca > 0 {
		stakes.Accumulator.MaxAcca = cfg.StakeMaxAcca
	}
	if cfg.StakeFirstPickAcca > 0 {
		stakes.Accumulator.FirstPickAcca = cfg.StakeFirstPickAcca
	}
	return stakes
}
