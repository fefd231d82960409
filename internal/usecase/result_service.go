package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dinkanimations/squadbets/internal/domain/kickerbet"
	"github.com/dinkanimations/squadbets/internal/domain/result"
	"github.com/dinkanimations/squadbets/internal/domain/season"
)

type ResultService struct {
	ledger *Ledger
}

func NewResultService(ledger *Ledger) *ResultService {
	return &ResultService{ledger: ledger}
}

// SetTeamResult records whether team won in the current week.
func (s *ResultService) SetTeamResult(ctx context.Context, teamName string, hasWon bool) (result.TeamResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.SetTeamResult")
	defer span.End()

	return s.updateTeam(ctx, "results.set", teamName, func(book result.Book, team string, week int) result.Book {
		return book.Set(team, week, hasWon)
	})
}

// ToggleTeamResult flips the team's outcome, recording a win when none exists.
func (s *ResultService) ToggleTeamResult(ctx context.Context, teamName string) (result.TeamResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ToggleTeamResult")
	defer span.End()

	return s.updateTeam(ctx, "results.toggle", teamName, result.Book.Toggle)
}

// ClearTeamResult returns the team to pending.
func (s *ResultService) ClearTeamResult(ctx context.Context, teamName string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ClearTeamResult")
	defer span.End()

	_, err := s.updateTeam(ctx, "results.clear", teamName, result.Book.Clear)
	return err
}

// SetKickerResult settles the current week's kicker bet. The winners are
// derived once here and never recomputed.
func (s *ResultService) SetKickerResult(ctx context.Context, home, away int) (kickerbet.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.SetKickerResult")
	defer span.End()

	if err := kickerbet.ValidateScore(home, away); err != nil {
		return kickerbet.Result{}, classify(err)
	}

	state, err := s.ledger.load(ctx, "results.kicker")
	if err != nil {
		return kickerbet.Result{}, err
	}

	week := state.CurrentWeek
	kb, ok := state.KickerBets.ForWeek(week)
	if !ok {
		return kickerbet.Result{}, classify(fmt.Errorf("%w: week %d", kickerbet.ErrNoKickerBet, week))
	}
	if _, exists := state.KickerResults.ForWeek(week); exists {
		return kickerbet.Result{}, classify(fmt.Errorf("%w: week %d", kickerbet.ErrResultAlreadySet, week))
	}

	res := kickerbet.Result{
		Week:            week,
		ActualHomeScore: home,
		ActualAwayScore: away,
		Winners:         kickerbet.Winners(kb.Predictions, home, away),
	}
	state.KickerResults = state.KickerResults.Upsert(res)
	if _, err := s.ledger.commit(ctx, "results.kicker", state, season.KeyKickerBetResults); err != nil {
		return kickerbet.Result{}, err
	}

	s.ledger.logger.InfoContext(ctx, "kicker bet settled", "week", week, "winners", len(res.Winners))
	return res, nil
}

func (s *ResultService) updateTeam(
	ctx context.Context,
	op string,
	teamName string,
	mutate func(result.Book, string, int) result.Book,
) (result.TeamResult, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return result.TeamResult{}, fmt.Errorf("%w: team_name is required", ErrInvalidInput)
	}

	state, err := s.ledger.load(ctx, op)
	if err != nil {
		return result.TeamResult{}, err
	}

	week := state.CurrentWeek
	state.TeamResults = mutate(state.TeamResults, teamName, week)
	if _, err := s.ledger.commit(ctx, op, state, season.KeyTeamResults); err != nil {
		return result.TeamResult{}, err
	}

	won, _ := state.TeamResults.Outcome(teamName, week)
	return result.TeamResult{TeamName: teamName, Week: week, HasWon: won}, nil
}
