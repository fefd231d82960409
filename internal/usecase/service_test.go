package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dinkanimations/squadbets/internal/domain/accumulator"
	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/domain/settlement"
	"github.com/dinkanimations/squadbets/internal/domain/weekly"
	"github.com/dinkanimations/squadbets/internal/infrastructure/repository/kvstate"
	"github.com/dinkanimations/squadbets/internal/infrastructure/repository/memory"
	seasonmock "github.com/dinkanimations/squadbets/internal/mocks/domain/season"
	"github.com/dinkanimations/squadbets/internal/platform/logging"
)

// Wednesday, outside the late window.
var testNow = time.Date(2026, 9, 9, 10, 0, 0, 0, time.UTC)

type testServices struct {
	store   *memory.KVStore
	ledger  *Ledger
	season  *SeasonService
	picks   *PickService
	odds    *OddsService
	results *ResultService
	accas   *AccumulatorService
	weeks   *WeekService
	reports *ReportService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	store := memory.NewKVStore(nil)
	repo := kvstate.NewRepository(store, kvstate.Config{Workers: 2, Location: time.UTC}, logging.NewNop())
	ledger := NewLedger(repo, settlement.NewEngine(settlement.DefaultStakes()), time.UTC, logging.NewNop())
	ledger.now = func() time.Time { return testNow }

	return testServices{
		store:   store,
		ledger:  ledger,
		season:  NewSeasonService(ledger),
		picks:   NewPickService(ledger),
		odds:    NewOddsService(ledger),
		results: NewResultService(ledger),
		accas:   NewAccumulatorService(ledger),
		weeks:   NewWeekService(ledger),
		reports: NewReportService(ledger),
	}
}

func intPtr(v int) *int {
	return &v
}

func mustStartSeason(t *testing.T, svc testServices, players ...string) {
	t.Helper()
	ctx := context.Background()
	for _, name := range players {
		if _, err := svc.season.AddPlayer(ctx, name); err != nil {
			t.Fatalf("add player %s: %v", name, err)
		}
	}
	if _, err := svc.season.Start(ctx); err != nil {
		t.Fatalf("start season: %v", err)
	}
}

// playWeekOne leaves week 1 fully settled: Amy's double bet wins 60, the
// first-pick accumulator wins 30 and the max accumulator loses.
func playWeekOne(t *testing.T, svc testServices) {
	t.Helper()
	ctx := context.Background()

	mustStartSeason(t, svc, "Amy", "Ben")

	for _, in := range []SubmitPicksInput{
		{PlayerName: "Amy", Team1: "Arsenal", Team2: "Leeds"},
		{PlayerName: "Ben", Team1: "Spurs", Team2: "Chelsea"},
	} {
		if _, err := svc.picks.Submit(ctx, in); err != nil {
			t.Fatalf("submit picks for %s: %v", in.PlayerName, err)
		}
	}

	for _, in := range []SetPickOddsInput{
		{PlayerName: "Amy", TeamName: "Arsenal", Odds: "2/1"},
		{PlayerName: "Amy", TeamName: "Leeds", Odds: "3/1"},
		{PlayerName: "Ben", TeamName: "Spurs", Odds: "1/1"},
		{PlayerName: "Ben", TeamName: "Chelsea", Odds: "2"},
	} {
		if _, _, err := svc.odds.SetPickOdds(ctx, in); err != nil {
			t.Fatalf("set odds %+v: %v", in, err)
		}
	}

	for team, won := range map[string]bool{"Arsenal": true, "Leeds": true, "Spurs": true, "Chelsea": false} {
		if _, err := svc.results.SetTeamResult(ctx, team, won); err != nil {
			t.Fatalf("set result %s: %v", team, err)
		}
	}
}

func TestServices_WeekOneSettlement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	playWeekOne(t, svc)

	earnings, err := svc.reports.WeekEarnings(ctx, 1)
	if err != nil {
		t.Fatalf("week earnings: %v", err)
	}
	totals := map[string]float64{}
	for _, pw := range earnings.Players {
		totals[pw.PlayerName] = pw.Total
	}
	if totals["Amy"] != 60 || totals["Ben"] != 0 {
		t.Fatalf("unexpected week totals: %+v", totals)
	}

	bets, err := svc.accas.ListWeek(ctx, 1)
	if err != nil {
		t.Fatalf("list accumulators: %v", err)
	}
	if len(bets) != 2 {
		t.Fatalf("expected 2 accumulators, got %+v", bets)
	}
	for _, bet := range bets {
		switch bet.Type {
		case accumulator.TypeMaxAcca:
			if len(bet.Teams) != 4 || bet.Status() != "LOST" || bet.ActualWinnings != 0 {
				t.Fatalf("unexpected max acca: %+v", bet)
			}
		case accumulator.TypeFirstPickAcca:
			if bet.Status() != "WON" || bet.ActualWinnings != 30 {
				t.Fatalf("unexpected first pick acca: %+v", bet)
			}
		}
	}

	total, err := svc.reports.Pot(ctx, 0)
	if err != nil {
		t.Fatalf("pot: %v", err)
	}
	if total.PlayerWinnings != 60 || total.AccumulatorWinnings != 30 || total.TotalPot != 90 {
		t.Fatalf("unexpected pot: %+v", total)
	}

	overview, err := svc.season.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.TotalPot.TotalPot != 90 {
		t.Fatalf("expected persisted pot snapshot 90, got %+v", overview.TotalPot)
	}
	if len(overview.Blockers) != 1 {
		t.Fatalf("expected only the odds lock to block advancing, got %v", overview.Blockers)
	}
}

func TestServices_AdvanceAndKickerBet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	playWeekOne(t, svc)

	if _, err := svc.weeks.Advance(ctx); !errors.Is(err, weekly.ErrPreconditionsUnmet) {
		t.Fatalf("expected blocked advance before odds lock, got %v", err)
	}

	lock, err := svc.season.LockOdds(ctx)
	if err != nil || lock.AlreadyLocked {
		t.Fatalf("lock odds: %+v %v", lock, err)
	}
	again, err := svc.season.LockOdds(ctx)
	if err != nil || !again.AlreadyLocked {
		t.Fatalf("expected second lock to report already locked, got %+v %v", again, err)
	}

	if _, _, err := svc.odds.SetPickOdds(ctx, SetPickOddsInput{PlayerName: "Amy", TeamName: "Arsenal", Odds: "5/1"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict editing locked odds, got %v", err)
	}
	if _, err := svc.accas.RemoveTeam(ctx, 1, "max-acca", "Chelsea"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict editing locked accumulator, got %v", err)
	}

	outcome, err := svc.weeks.Advance(ctx)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if outcome.Winner == nil || outcome.Winner.PlayerName != "Amy" || outcome.Winner.Earnings != 60 || outcome.NextWeek != 2 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	if _, err := svc.picks.SelectKickerMatch(ctx, SelectKickerMatchInput{PlayerName: "Ben", Match: "Arsenal v Spurs"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for non-winner, got %v", err)
	}
	if _, err := svc.picks.SelectKickerMatch(ctx, SelectKickerMatchInput{PlayerName: "Amy", Match: "Arsenal v Spurs"}); err != nil {
		t.Fatalf("select kicker match: %v", err)
	}
	if _, err := svc.picks.SelectKickerMatch(ctx, SelectKickerMatchInput{PlayerName: "Amy", Match: "Leeds v Spurs"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on second selection, got %v", err)
	}

	if _, err := svc.picks.Submit(ctx, SubmitPicksInput{PlayerName: "Amy", Team1: "Arsenal", Team2: "Leeds"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected missing prediction to be rejected, got %v", err)
	}
	for _, in := range []SubmitPicksInput{
		{PlayerName: "Amy", Team1: "Arsenal", Team2: "Leeds", HomeScore: intPtr(2), AwayScore: intPtr(1)},
		{PlayerName: "Ben", Team1: "Spurs", Team2: "Everton", HomeScore: intPtr(1), AwayScore: intPtr(1)},
	} {
		if _, err := svc.picks.Submit(ctx, in); err != nil {
			t.Fatalf("submit week 2 picks for %s: %v", in.PlayerName, err)
		}
	}

	if _, _, err := svc.odds.SetKickerOdds(ctx, SetKickerOddsInput{PlayerName: "Amy", Odds: "8/1"}); err != nil {
		t.Fatalf("set kicker odds: %v", err)
	}
	res, err := svc.results.SetKickerResult(ctx, 2, 1)
	if err != nil {
		t.Fatalf("set kicker result: %v", err)
	}
	if len(res.Winners) != 1 || res.Winners[0] != "Amy" {
		t.Fatalf("expected Amy as only kicker winner, got %v", res.Winners)
	}
	if _, err := svc.results.SetKickerResult(ctx, 1, 1); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on second kicker result, got %v", err)
	}

	if _, err := svc.picks.Submit(ctx, SubmitPicksInput{PlayerName: "Ben", Team1: "Spurs", Team2: "Everton", HomeScore: intPtr(2), AwayScore: intPtr(1)}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict predicting after the kicker result, got %v", err)
	}
	resubmitted, err := svc.picks.Submit(ctx, SubmitPicksInput{PlayerName: "Ben", Team1: "Spurs", Team2: "Fulham"})
	if err != nil {
		t.Fatalf("expected team-only resubmission after the kicker result, got %v", err)
	}
	if resubmitted.Prediction != nil || resubmitted.Pick.Team2 != "Fulham" {
		t.Fatalf("unexpected resubmission: %+v", resubmitted)
	}
	overview, err := svc.season.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	kb := overview.KickerBet
	if kb == nil || len(kb.Predictions) != 2 {
		t.Fatalf("expected both predictions kept, got %+v", kb)
	}
	for _, p := range kb.Predictions {
		if p.PlayerName == "Ben" && (p.HomeScore != 1 || p.AwayScore != 1) {
			t.Fatalf("expected Ben's prediction unchanged, got %+v", p)
		}
	}

	earnings, err := svc.reports.WeekEarnings(ctx, 2)
	if err != nil {
		t.Fatalf("week 2 earnings: %v", err)
	}
	for _, pw := range earnings.Players {
		if pw.PlayerName == "Amy" && pw.KickerBet != 9 {
			t.Fatalf("expected Amy kicker earnings 9, got %+v", pw)
		}
	}

	report, err := svc.reports.Breakeven(ctx)
	if err != nil {
		t.Fatalf("breakeven: %v", err)
	}
	if len(report.Weeks) != 1 || report.Weeks[0].Staked != 16 || report.Weeks[0].Winnings != 90 {
		t.Fatalf("unexpected breakeven: %+v", report)
	}
}

func TestServices_AdvanceBlockedWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	mustStartSeason(t, svc, "Amy")
	if _, err := svc.picks.Submit(ctx, SubmitPicksInput{PlayerName: "Amy", Team1: "Arsenal", Team2: "Leeds"}); err != nil {
		t.Fatalf("submit picks: %v", err)
	}

	before := svc.store.Snapshot()
	_, err := svc.weeks.Advance(ctx)

	var blocked *weekly.BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected blocked error, got %v", err)
	}
	if len(blocked.Unmet) != 2 {
		t.Fatalf("expected odds lock and results to be reported, got %v", blocked.Unmet)
	}

	after := svc.store.Snapshot()
	if len(before) != len(after) || before[season.KeyCurrentWeek] != after[season.KeyCurrentWeek] {
		t.Fatalf("expected store untouched, before=%v after=%v", before, after)
	}
}

func TestSeasonService_RosterRules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)

	if _, err := svc.season.Start(ctx); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict starting without players, got %v", err)
	}
	if _, err := svc.season.AddPlayer(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}
	if _, err := svc.season.AddPlayer(ctx, "Amy"); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if _, err := svc.season.AddPlayer(ctx, "Amy"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected duplicate player rejected, got %v", err)
	}

	settings, err := svc.season.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !settings.IsSeasonStarted || settings.SeasonStartDate == nil || !settings.SeasonStartDate.Equal(testNow) {
		t.Fatalf("unexpected settings: %+v", settings)
	}

	if _, err := svc.season.AddPlayer(ctx, "Ben"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict adding after start, got %v", err)
	}
	if _, err := svc.season.RemovePlayer(ctx, "Amy"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict removing after start, got %v", err)
	}

	if err := svc.season.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	overview, err := svc.season.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.CurrentWeek != 1 || overview.Settings.IsSeasonStarted || len(overview.Settings.LockedPlayers) != 0 {
		t.Fatalf("expected fresh season after reset, got %+v", overview)
	}
}

func TestPickService_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)

	if _, err := svc.season.AddPlayer(ctx, "Amy"); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if _, err := svc.picks.Submit(ctx, SubmitPicksInput{PlayerName: "Amy", Team1: "A", Team2: "B"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict before season start, got %v", err)
	}
	if _, err := svc.season.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	tests := []struct {
		name  string
		input SubmitPicksInput
	}{
		{name: "unknown player", input: SubmitPicksInput{PlayerName: "Zed", Team1: "A", Team2: "B"}},
		{name: "missing team", input: SubmitPicksInput{PlayerName: "Amy", Team1: "A"}},
		{name: "same team", input: SubmitPicksInput{PlayerName: "Amy", Team1: "Leeds", Team2: " leeds "}},
		{name: "blank player", input: SubmitPicksInput{Team1: "A", Team2: "B"}},
	}
	for _, tc := range tests {
		if _, err := svc.picks.Submit(ctx, tc.input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", tc.name, err)
		}
	}

	first, err := svc.picks.Submit(ctx, SubmitPicksInput{PlayerName: "Amy", Team1: "A", Team2: "B"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if first.Pick.IsLate {
		t.Fatalf("expected on-time pick on a Wednesday")
	}

	svc.ledger.now = func() time.Time { return time.Date(2026, 9, 12, 13, 0, 0, 0, time.UTC) }
	second, err := svc.picks.Submit(ctx, SubmitPicksInput{PlayerName: "Amy", Team1: "C", Team2: "D"})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if !second.Pick.IsLate {
		t.Fatalf("expected Saturday afternoon pick to be late")
	}
}

func TestOddsService_ClearAndReject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	mustStartSeason(t, svc, "Amy")

	if _, _, err := svc.odds.SetPickOdds(ctx, SetPickOddsInput{PlayerName: "Amy", TeamName: "Leeds", Odds: "abc"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid odds rejected, got %v", err)
	}
	if _, _, err := svc.odds.SetPickOdds(ctx, SetPickOddsInput{PlayerName: "Amy", TeamName: "Leeds", Odds: "0"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected zero odds rejected, got %v", err)
	}
	if _, _, err := svc.odds.SetPickOdds(ctx, SetPickOddsInput{PlayerName: "Zed", TeamName: "Leeds", Odds: "2/1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected unknown player rejected, got %v", err)
	}

	entry, stored, err := svc.odds.SetPickOdds(ctx, SetPickOddsInput{PlayerName: "Amy", TeamName: "Leeds", Odds: " 5/2 "})
	if err != nil || !stored || entry.Odds != 3.5 || entry.OddsFraction != "5/2" {
		t.Fatalf("unexpected entry %+v stored=%v err=%v", entry, stored, err)
	}

	if _, stored, err := svc.odds.SetPickOdds(ctx, SetPickOddsInput{PlayerName: "Amy", TeamName: "Leeds"}); err != nil || stored {
		t.Fatalf("expected blank odds to clear, stored=%v err=%v", stored, err)
	}
	if got := svc.store.Snapshot()[season.KeyPlayerPickOdds]; got != "[]" {
		t.Fatalf("expected cleared odds, got %s", got)
	}
}

func TestAccumulatorService_RegenerateIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	mustStartSeason(t, svc, "Amy", "Ben")
	for _, in := range []SubmitPicksInput{
		{PlayerName: "Amy", Team1: "Arsenal", Team2: "Leeds"},
		{PlayerName: "Ben", Team1: "Arsenal", Team2: "Chelsea"},
	} {
		if _, err := svc.picks.Submit(ctx, in); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	first, err := svc.accas.Regenerate(ctx)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	snapshot := svc.store.Snapshot()[season.KeyAccumulatorBets]

	second, err := svc.accas.Regenerate(ctx)
	if err != nil {
		t.Fatalf("regenerate again: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected two bets each time, got %d and %d", len(first), len(second))
	}
	if got := svc.store.Snapshot()[season.KeyAccumulatorBets]; got != snapshot {
		t.Fatalf("expected identical accumulators, got\n%s\nwant\n%s", got, snapshot)
	}

	bet, err := svc.accas.RemoveTeam(ctx, 1, "max-acca", "Arsenal")
	if err != nil {
		t.Fatalf("remove team: %v", err)
	}
	if len(bet.Teams) != 2 || bet.Teams[0] != "Leeds" || bet.Teams[1] != "Chelsea" {
		t.Fatalf("expected every Arsenal leg removed, got %v", bet.Teams)
	}

	if _, err := svc.accas.RemoveTeam(ctx, 1, "no-such-type", "Leeds"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected unknown type rejected, got %v", err)
	}
	if _, err := svc.accas.RemoveTeam(ctx, 3, "max-acca", "Leeds"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected missing bet, got %v", err)
	}
}

func TestLedger_LoadFailureIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seasonmock.NewRepository(t)
	repo.On("Load", mock.Anything).Return(season.State{}, errors.New("connection reset")).Once()

	service := NewReportService(NewLedger(repo, nil, time.UTC, logging.NewNop()))
	if _, err := service.Standings(ctx); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
}

func TestLedger_SaveFailureIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seasonmock.NewRepository(t)
	repo.On("Load", mock.Anything).Return(season.New(), nil).Once()
	repo.
		On("Save", mock.Anything, mock.AnythingOfType("season.State"),
			season.KeySeasonSettings, season.KeyAccumulatorBets, season.KeyTotalPotData).
		Return(errors.New("read-only store")).
		Once()

	service := NewSeasonService(NewLedger(repo, nil, time.UTC, logging.NewNop()))
	if _, err := service.AddPlayer(ctx, "Amy"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
}
