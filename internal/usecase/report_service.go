package usecase

import (
	"context"
	"fmt"

	"github.com/dinkanimations/squadbets/internal/domain/pot"
	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/domain/settlement"
)

type WeekEarnings struct {
	Week     int                     `json:"week"`
	Players  []settlement.PlayerWeek `json:"players"`
	Warnings []settlement.Warning    `json:"warnings"`
}

// ReportService answers read-only questions. Every figure is recomputed from
// the stored records.
type ReportService struct {
	ledger *Ledger
}

func NewReportService(ledger *Ledger) *ReportService {
	return &ReportService{ledger: ledger}
}

func (s *ReportService) WeekEarnings(ctx context.Context, week int) (WeekEarnings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.WeekEarnings", weekAttr(week))
	defer span.End()

	if week < 1 {
		return WeekEarnings{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	state, err := s.ledger.load(ctx, "reports.week_earnings")
	if err != nil {
		return WeekEarnings{}, err
	}

	warnings := s.ledger.engine.Warnings(state, week)
	if warnings == nil {
		warnings = []settlement.Warning{}
	}
	return WeekEarnings{
		Week:     week,
		Players:  s.ledger.engine.Week(state, week),
		Warnings: warnings,
	}, nil
}

// Pot totals one week, or the whole season when week is 0.
func (s *ReportService) Pot(ctx context.Context, week int) (season.TotalPot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Pot", weekAttr(week))
	defer span.End()

	if week < 0 {
		return season.TotalPot{}, fmt.Errorf("%w: week must be >= 0", ErrInvalidInput)
	}
	state, err := s.ledger.load(ctx, "reports.pot")
	if err != nil {
		return season.TotalPot{}, err
	}
	if week == 0 {
		return pot.ForSeason(s.ledger.engine, state), nil
	}
	return pot.ForWeek(s.ledger.engine, state, week), nil
}

func (s *ReportService) Breakeven(ctx context.Context) (pot.BreakevenReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Breakeven")
	defer span.End()

	state, err := s.ledger.load(ctx, "reports.breakeven")
	if err != nil {
		return pot.BreakevenReport{}, err
	}
	return pot.Breakeven(s.ledger.engine, state), nil
}

func (s *ReportService) Standings(ctx context.Context) ([]pot.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Standings")
	defer span.End()

	state, err := s.ledger.load(ctx, "reports.standings")
	if err != nil {
		return nil, err
	}
	return pot.Standings(s.ledger.engine, state), nil
}
