package usecase

import (
	"context"
	"fmt"

	"github.com/dinkanimations/squadbets/internal/domain/kickerbet"
	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/domain/weekly"
)

type SeasonOverview struct {
	CurrentWeek   int                   `json:"currentWeek"`
	Settings      season.Settings       `json:"settings"`
	OddsLocked    bool                  `json:"oddsLocked"`
	KickerBet     *kickerbet.KickerBet  `json:"kickerBet"`
	WeeklyWinners []season.WeeklyWinner `json:"weeklyWinners"`
	TotalPot      season.TotalPot       `json:"totalPot"`
	Blockers      []string              `json:"blockers"`
}

type LockOddsResult struct {
	Week          int  `json:"week"`
	AlreadyLocked bool `json:"alreadyLocked"`
}

type SeasonService struct {
	ledger *Ledger
}

func NewSeasonService(ledger *Ledger) *SeasonService {
	return &SeasonService{ledger: ledger}
}

func (s *SeasonService) Overview(ctx context.Context) (SeasonOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Overview")
	defer span.End()

	state, err := s.ledger.load(ctx, "season.overview")
	if err != nil {
		return SeasonOverview{}, err
	}

	out := SeasonOverview{
		CurrentWeek:   state.CurrentWeek,
		Settings:      state.Settings,
		OddsLocked:    state.IsOddsLocked(state.CurrentWeek),
		WeeklyWinners: state.WeeklyWinners,
		TotalPot:      state.TotalPot,
		Blockers:      weekly.Preconditions(state),
	}
	if kb, ok := state.KickerBets.ForWeek(state.CurrentWeek); ok {
		out.KickerBet = &kb
	}
	return out, nil
}

func (s *SeasonService) AddPlayer(ctx context.Context, name string) (season.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.AddPlayer")
	defer span.End()

	return s.updateRoster(ctx, "season.add_player", func(state season.State) (season.State, error) {
		return state.AddPlayer(name)
	})
}

func (s *SeasonService) RemovePlayer(ctx context.Context, name string) (season.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.RemovePlayer")
	defer span.End()

	return s.updateRoster(ctx, "season.remove_player", func(state season.State) (season.State, error) {
		return state.RemovePlayer(name)
	})
}

func (s *SeasonService) Start(ctx context.Context) (season.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Start")
	defer span.End()

	return s.updateRoster(ctx, "season.start", func(state season.State) (season.State, error) {
		return state.Start(s.ledger.now())
	})
}

// Reset wipes every stored key and starts again at week 1.
func (s *SeasonService) Reset(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Reset")
	defer span.End()

	if err := s.ledger.repo.Reset(ctx); err != nil {
		s.ledger.logger.ErrorContext(ctx, "reset season failed", "error", err)
		return fmt.Errorf("%w: reset season: %v", ErrDependencyUnavailable, err)
	}
	s.ledger.logger.InfoContext(ctx, "season reset")
	return nil
}

// LockOdds latches the current week's odds. Locking twice is not an error.
func (s *SeasonService) LockOdds(ctx context.Context) (LockOddsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.LockOdds")
	defer span.End()

	state, err := s.ledger.load(ctx, "season.lock_odds")
	if err != nil {
		return LockOddsResult{}, err
	}

	week := state.CurrentWeek
	state, locked := state.LockOdds(week)
	if !locked {
		return LockOddsResult{Week: week, AlreadyLocked: true}, nil
	}
	if _, err := s.ledger.commit(ctx, "season.lock_odds", state, season.KeyOddsLockStates); err != nil {
		return LockOddsResult{}, err
	}
	return LockOddsResult{Week: week}, nil
}

func (s *SeasonService) updateRoster(ctx context.Context, op string, mutate func(season.State) (season.State, error)) (season.Settings, error) {
	state, err := s.ledger.load(ctx, op)
	if err != nil {
		return season.Settings{}, err
	}

	state, err = mutate(state)
	if err != nil {
		return season.Settings{}, classify(err)
	}

	state, err = s.ledger.commit(ctx, op, state, season.KeySeasonSettings)
	if err != nil {
		return season.Settings{}, err
	}
	return state.Settings, nil
}
