package accumulator

import (
	"errors"
	"testing"

	"github.com/dinkanimations/squadbets/internal/domain/odds"
	"github.com/dinkanimations/squadbets/internal/domain/pick"
	"github.com/dinkanimations/squadbets/internal/domain/result"
)

func fixturePicks() []pick.TeamPick {
	return []pick.TeamPick{
		{PlayerName: "Amy", Week: 1, Team1: "A", Team2: "B"},
		{PlayerName: "Bob", Week: 1, Team1: "A", Team2: "C"},
	}
}

func fixtureOdds() odds.Table {
	return odds.Table{
		{PlayerName: "Amy", TeamName: "A", Week: 1, Odds: 2},
		{PlayerName: "Amy", TeamName: "B", Week: 1, Odds: 3},
		{PlayerName: "Bob", TeamName: "A", Week: 1, Odds: 9},
	}
}

func findBet(t *testing.T, bets []Bet, week int, typ Type) Bet {
	t.Helper()
	for _, bet := range bets {
		if bet.Week == week && bet.Type == typ {
			return bet
		}
	}
	t.Fatalf("bet week=%d type=%s not found", week, typ)
	return Bet{}
}

func TestLegs(t *testing.T) {
	t.Parallel()

	maxLegs := Legs(TypeMaxAcca, fixturePicks())
	if len(maxLegs) != 4 || maxLegs[0] != "A" || maxLegs[2] != "A" {
		t.Fatalf("expected duplicates kept in ledger order, got %v", maxLegs)
	}
	firstLegs := Legs(TypeFirstPickAcca, fixturePicks())
	if len(firstLegs) != 2 || firstLegs[0] != "A" || firstLegs[1] != "A" {
		t.Fatalf("expected team1 legs only, got %v", firstLegs)
	}
}

func TestPotentialWinnings_FirstMatchAndEvensFallback(t *testing.T) {
	t.Parallel()

	// A uses Amy's 2.0 (first match), B 3.0, C has no odds so evens.
	got := PotentialWinnings(1, []string{"A", "B", "A", "C"}, 1, fixtureOdds())
	if want := 1 * 2.0 * 3.0 * 2.0 * 2.0; got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSettle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		results    result.Book
		wantStatus string
		wantActual float64
	}{
		{
			name:       "pending leg",
			results:    result.Book{{TeamName: "A", Week: 1, HasWon: true}},
			wantStatus: "PENDING",
		},
		{
			name: "pending leg with a loss stays pending",
			results: result.Book{
				{TeamName: "A", Week: 1, HasWon: false},
			},
			wantStatus: "PENDING",
		},
		{
			name: "all won",
			results: result.Book{
				{TeamName: "A", Week: 1, HasWon: true},
				{TeamName: "B", Week: 1, HasWon: true},
			},
			wantStatus: "WON",
			wantActual: 30,
		},
		{
			name: "one lost",
			results: result.Book{
				{TeamName: "A", Week: 1, HasWon: true},
				{TeamName: "B", Week: 1, HasWon: false},
			},
			wantStatus: "LOST",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			bet := Bet{Week: 1, Type: TypeFirstPickAcca, Stake: 5, Teams: []string{"A", "B"}}
			got := Recompute(bet, fixtureOdds(), tc.results)
			if got.PotentialWinnings != 30 {
				t.Fatalf("expected potential 30, got %v", got.PotentialWinnings)
			}
			if got.Status() != tc.wantStatus {
				t.Fatalf("expected %s, got %s", tc.wantStatus, got.Status())
			}
			if got.ActualWinnings != tc.wantActual {
				t.Fatalf("expected actual %v, got %v", tc.wantActual, got.ActualWinnings)
			}
		})
	}
}

func TestRegenerate_Idempotent(t *testing.T) {
	t.Parallel()

	results := result.Book{
		{TeamName: "A", Week: 1, HasWon: true},
		{TeamName: "B", Week: 1, HasWon: true},
		{TeamName: "C", Week: 1, HasWon: true},
	}
	stakes := DefaultStakes()

	first := Regenerate(1, fixturePicks(), nil, stakes, fixtureOdds(), results)
	second := Regenerate(1, fixturePicks(), first, stakes, fixtureOdds(), results)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 bets each run, got %d and %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Type != b.Type || a.PotentialWinnings != b.PotentialWinnings || a.ActualWinnings != b.ActualWinnings || a.Status() != b.Status() {
			t.Fatalf("expected identical bets, got %+v and %+v", a, b)
		}
	}

	maxAcca := findBet(t, second, 1, TypeMaxAcca)
	if want := 1 * 2.0 * 3.0 * 2.0 * 2.0; maxAcca.PotentialWinnings != want {
		t.Fatalf("expected max-acca potential %v, got %v", want, maxAcca.PotentialWinnings)
	}
	firstPick := findBet(t, second, 1, TypeFirstPickAcca)
	if firstPick.Stake != 5 || firstPick.PotentialWinnings != 20 || firstPick.Status() != "WON" {
		t.Fatalf("unexpected 1st-pick-acca: %+v", firstPick)
	}
}

func TestRegenerate_KeepsExistingLegsAndOtherWeeks(t *testing.T) {
	t.Parallel()

	existing := []Bet{
		{Week: 1, Type: TypeMaxAcca, Stake: 1, Teams: []string{"B"}},
		{Week: 7, Type: TypeMaxAcca, Stake: 1, Teams: []string{"Z"}, PotentialWinnings: 99},
	}
	got := Regenerate(1, fixturePicks(), existing, DefaultStakes(), fixtureOdds(), result.Book{})

	if len(got) != 3 {
		t.Fatalf("expected 3 bets, got %d", len(got))
	}
	maxAcca := findBet(t, got, 1, TypeMaxAcca)
	if len(maxAcca.Teams) != 1 || maxAcca.PotentialWinnings != 3 {
		t.Fatalf("expected existing legs recomputed in place, got %+v", maxAcca)
	}
	other := findBet(t, got, 7, TypeMaxAcca)
	if other.PotentialWinnings != 99 {
		t.Fatalf("expected other week untouched, got %+v", other)
	}
}

func TestRegenerate_NoPicks(t *testing.T) {
	t.Parallel()

	got := Regenerate(3, nil, nil, DefaultStakes(), odds.Table{}, result.Book{})
	if len(got) != 0 {
		t.Fatalf("expected no bets, got %v", got)
	}
}

func TestRemoveTeam(t *testing.T) {
	t.Parallel()

	bets := Regenerate(1, fixturePicks(), nil, DefaultStakes(), fixtureOdds(), result.Book{})

	bets, err := RemoveTeam(bets, 1, TypeMaxAcca, "A", fixtureOdds(), result.Book{})
	if err != nil {
		t.Fatalf("remove team: %v", err)
	}
	maxAcca := findBet(t, bets, 1, TypeMaxAcca)
	if len(maxAcca.Teams) != 2 {
		t.Fatalf("expected every occurrence of A removed, got %v", maxAcca.Teams)
	}
	if want := 1 * 3.0 * 2.0; maxAcca.PotentialWinnings != want {
		t.Fatalf("expected potential %v from remaining legs, got %v", want, maxAcca.PotentialWinnings)
	}

	if _, err := RemoveTeam(bets, 2, TypeMaxAcca, "A", fixtureOdds(), result.Book{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveTeam_EmptyForcesLoss(t *testing.T) {
	t.Parallel()

	bets := []Bet{{Week: 1, Type: TypeFirstPickAcca, Stake: 5, Teams: []string{"A", "A"}}}
	bets, err := RemoveTeam(bets, 1, TypeFirstPickAcca, "A", fixtureOdds(), result.Book{})
	if err != nil {
		t.Fatalf("remove team: %v", err)
	}
	got := bets[0]
	if got.IsWon == nil || *got.IsWon {
		t.Fatalf("expected empty accumulator lost, got %s", got.Status())
	}
	if got.ActualWinnings != 0 || got.PotentialWinnings != 0 {
		t.Fatalf("expected zero winnings, got %+v", got)
	}
}

func TestMigrateType(t *testing.T) {
	t.Parallel()

	tests := map[Type]Type{
		"all-picks":       TypeMaxAcca,
		"12-team":         TypeMaxAcca,
		"6-team":          TypeFirstPickAcca,
		TypeMaxAcca:       TypeMaxAcca,
		TypeFirstPickAcca: TypeFirstPickAcca,
		"mystery":         "mystery",
	}
	for in, want := range tests {
		if got := MigrateType(in); got != want {
			t.Fatalf("MigrateType(%q): expected %q, got %q", in, want, got)
		}
	}
}
