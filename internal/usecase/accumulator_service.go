package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dinkanimations/squadbets/internal/domain/accumulator"
	"github.com/dinkanimations/squadbets/internal/domain/season"
)

type AccumulatorService struct {
	ledger *Ledger
}

func NewAccumulatorService(ledger *Ledger) *AccumulatorService {
	return &AccumulatorService{ledger: ledger}
}

func (s *AccumulatorService) ListWeek(ctx context.Context, week int) ([]accumulator.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccumulatorService.ListWeek", weekAttr(week))
	defer span.End()

	if week < 1 {
		return nil, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	state, err := s.ledger.load(ctx, "accumulators.list")
	if err != nil {
		return nil, err
	}
	return accumulator.ForWeek(state.Accumulators, week), nil
}

// Regenerate creates any missing accumulators for the current week and
// recomputes every bet. Running it twice changes nothing.
func (s *AccumulatorService) Regenerate(ctx context.Context) ([]accumulator.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccumulatorService.Regenerate")
	defer span.End()

	state, err := s.ledger.load(ctx, "accumulators.regenerate")
	if err != nil {
		return nil, err
	}
	state, err = s.ledger.commit(ctx, "accumulators.regenerate", state)
	if err != nil {
		return nil, err
	}
	return accumulator.ForWeek(state.Accumulators, state.CurrentWeek), nil
}

// RemoveTeam drops a leg from an accumulator. Locked weeks cannot be edited.
func (s *AccumulatorService) RemoveTeam(ctx context.Context, week int, rawType, teamName string) (accumulator.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccumulatorService.RemoveTeam", weekAttr(week))
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if week < 1 || teamName == "" {
		return accumulator.Bet{}, fmt.Errorf("%w: week and team_name are required", ErrInvalidInput)
	}
	betType, err := accumulator.ParseType(rawType)
	if err != nil {
		return accumulator.Bet{}, classify(err)
	}

	state, err := s.ledger.load(ctx, "accumulators.remove_team")
	if err != nil {
		return accumulator.Bet{}, err
	}
	if state.IsOddsLocked(week) {
		return accumulator.Bet{}, classify(fmt.Errorf("%w: week %d", season.ErrOddsLocked, week))
	}

	state.Accumulators, err = accumulator.RemoveTeam(state.Accumulators, week, betType, teamName, state.PickOdds, state.TeamResults)
	if err != nil {
		return accumulator.Bet{}, classify(fmt.Errorf("%w: %s week %d", err, betType, week))
	}

	state, err = s.ledger.commit(ctx, "accumulators.remove_team", state)
	if err != nil {
		return accumulator.Bet{}, err
	}
	for _, bet := range accumulator.ForWeek(state.Accumulators, week) {
		if bet.Type == betType {
			return bet, nil
		}
	}
	return accumulator.Bet{}, classify(accumulator.ErrNotFound)
}
