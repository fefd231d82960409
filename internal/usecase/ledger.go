package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dinkanimations/squadbets/internal/domain/accumulator"
	"github.com/dinkanimations/squadbets/internal/domain/pot"
	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/domain/settlement"
	"github.com/dinkanimations/squadbets/internal/platform/logging"
)

// Ledger is the load-mutate-settle-save cycle every write operation runs.
// Each operation works on a fresh snapshot.
type Ledger struct {
	repo     season.Repository
	engine   *settlement.Engine
	location *time.Location
	logger   *logging.Logger
	now      func() time.Time
}

func NewLedger(repo season.Repository, engine *settlement.Engine, location *time.Location, logger *logging.Logger) *Ledger {
	if engine == nil {
		engine = settlement.NewEngine(settlement.DefaultStakes())
	}
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Ledger{
		repo:     repo,
		engine:   engine,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

func (l *Ledger) Engine() *settlement.Engine {
	return l.engine
}

func (l *Ledger) load(ctx context.Context, op string) (season.State, error) {
	state, err := l.repo.Load(ctx)
	if err != nil {
		l.logger.ErrorContext(ctx, "load season failed", "operation", op, "error", err)
		return season.State{}, fmt.Errorf("%w: load season: %v", ErrDependencyUnavailable, err)
	}
	return state, nil
}

// commit regenerates the current week's accumulators, settles state and writes
// keys plus the derived accumulator and pot keys.
func (l *Ledger) commit(ctx context.Context, op string, state season.State, keys ...string) (season.State, error) {
	return l.save(ctx, op, l.settle(state, true), keys)
}

// record is commit without accumulator generation. Player submissions use it
// so the week's accumulators are only built once an admin acts on the week.
func (l *Ledger) record(ctx context.Context, op string, state season.State, keys ...string) (season.State, error) {
	return l.save(ctx, op, l.settle(state, false), keys)
}

func (l *Ledger) save(ctx context.Context, op string, state season.State, keys []string) (season.State, error) {
	all := make([]string, 0, len(keys)+2)
	all = append(all, keys...)
	all = append(all, season.KeyAccumulatorBets, season.KeyTotalPotData)

	if err := l.repo.Save(ctx, state, dedupKeys(all)...); err != nil {
		l.logger.ErrorContext(ctx, "save season failed", "operation", op, "error", err)
		return season.State{}, fmt.Errorf("%w: save season: %v", ErrDependencyUnavailable, err)
	}
	return state, nil
}

// settle brings the accumulators and the pot snapshot up to date. It is
// deterministic for a given state.
func (l *Ledger) settle(state season.State, regenerate bool) season.State {
	week := state.CurrentWeek
	if regenerate && state.Settings.IsSeasonStarted {
		state.Accumulators = accumulator.Regenerate(
			week,
			state.Picks.ForWeek(week),
			state.Accumulators,
			l.engine.Stakes().Accumulator,
			state.PickOdds,
			state.TeamResults,
		)
	}

	bets := make([]accumulator.Bet, len(state.Accumulators))
	for i, bet := range state.Accumulators {
		bets[i] = accumulator.Recompute(bet, state.PickOdds, state.TeamResults)
	}
	state.Accumulators = bets
	state.TotalPot = pot.ForSeason(l.engine, state)
	return state
}

func dedupKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
