package usecase

import (
	"context"
	"errors"

	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/domain/weekly"
)

type WeekService struct {
	ledger *Ledger
}

func NewWeekService(ledger *Ledger) *WeekService {
	return &WeekService{ledger: ledger}
}

// Advance closes the current week. A *weekly.BlockedError lists everything
// still outstanding and nothing is written.
func (s *WeekService) Advance(ctx context.Context) (weekly.Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.Advance")
	defer span.End()

	state, err := s.ledger.load(ctx, "week.advance")
	if err != nil {
		return weekly.Outcome{}, err
	}

	next, outcome, err := weekly.Advance(s.ledger.engine, state)
	if err != nil {
		var blocked *weekly.BlockedError
		if errors.As(err, &blocked) {
			s.ledger.logger.InfoContext(ctx, "week advance blocked", "week", blocked.Week, "unmet", blocked.Unmet)
		}
		return weekly.Outcome{}, err
	}

	if _, err := s.ledger.commit(ctx, "week.advance", next, season.KeyCurrentWeek, season.KeyWeeklyWinners); err != nil {
		return weekly.Outcome{}, err
	}

	if outcome.Winner != nil {
		s.ledger.logger.InfoContext(ctx, "week advanced",
			"week", outcome.Week,
			"winner", outcome.Winner.PlayerName,
			"earnings", outcome.Winner.Earnings,
		)
	} else {
		s.ledger.logger.InfoContext(ctx, "week advanced without a winner", "week", outcome.Week)
	}
	return outcome, nil
}
