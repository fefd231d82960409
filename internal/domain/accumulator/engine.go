package accumulator

import (
	"github.com/dinkanimations/squadbets/internal/domain/odds"
	"github.com/dinkanimations/squadbets/internal/domain/pick"
)

// OddsLookup finds the first odds recorded for a team in a week.
type OddsLookup interface {
	FirstForTeam(teamName string, week int) (float64, bool)
}

// ResultLookup reports a team's outcome in a week.
type ResultLookup interface {
	Outcome(teamName string, week int) (won bool, known bool)
}

// Legs builds the leg list for t from the week's picks, in ledger order.
func Legs(t Type, picks []pick.TeamPick) []string {
	out := make([]string, 0, len(picks)*2)
	for _, p := range picks {
		switch t {
		case TypeMaxAcca:
			out = append(out, p.Team1, p.Team2)
		case TypeFirstPickAcca:
			out = append(out, p.Team1)
		}
	}
	return out
}

// PotentialWinnings is stake times the product of leg odds, with evens for
// legs that have no odds at all.
func PotentialWinnings(stake float64, teams []string, week int, book OddsLookup) float64 {
	if len(teams) == 0 {
		return 0
	}
	product := 1.0
	for _, team := range teams {
		price, ok := book.FirstForTeam(team, week)
		if !ok {
			price = odds.Evens
		}
		product *= price
	}
	return stake * product
}

// Settle derives IsWon and ActualWinnings from the results. An empty bet is lost.
func Settle(bet Bet, results ResultLookup) Bet {
	if len(bet.Teams) == 0 {
		lost := false
		bet.PotentialWinnings = 0
		bet.IsWon = &lost
		bet.ActualWinnings = 0
		return bet
	}

	allKnown := true
	anyLost := false
	for _, team := range bet.Teams {
		won, known := results.Outcome(team, bet.Week)
		if !known {
			allKnown = false
			continue
		}
		if !won {
			anyLost = true
		}
	}

	switch {
	case !allKnown:
		bet.IsWon = nil
		bet.ActualWinnings = 0
	case anyLost:
		lost := false
		bet.IsWon = &lost
		bet.ActualWinnings = 0
	default:
		won := true
		bet.IsWon = &won
		bet.ActualWinnings = bet.PotentialWinnings
	}
	return bet
}

// Recompute refreshes potential winnings from the current legs, then settles.
func Recompute(bet Bet, book OddsLookup, results ResultLookup) Bet {
	bet.Teams = append([]string(nil), bet.Teams...)
	bet.PotentialWinnings = PotentialWinnings(bet.Stake, bet.Teams, bet.Week, book)
	return Settle(bet, results)
}

// Regenerate brings week's accumulators up to date. Existing bets keep their
// legs and are recomputed in place, missing types are created from picks, and
// bets for other weeks pass through unchanged. Without picks for week the
// input is returned as is.
func Regenerate(week int, picks []pick.TeamPick, existing []Bet, stakes Stakes, book OddsLookup, results ResultLookup) []Bet {
	if len(picks) == 0 {
		return existing
	}

	out := make([]Bet, 0, len(existing)+len(Types))
	present := make(map[Type]bool, len(Types))
	for _, bet := range existing {
		if bet.Week != week {
			out = append(out, bet)
			continue
		}
		if present[bet.Type] {
			continue
		}
		present[bet.Type] = true
		out = append(out, Recompute(bet, book, results))
	}

	for _, t := range Types {
		if present[t] {
			continue
		}
		bet := Bet{
			Week:  week,
			Type:  t,
			Stake: stakes.For(t),
			Teams: Legs(t, picks),
		}
		out = append(out, Recompute(bet, book, results))
	}
	return out
}

// RecomputeWeek recomputes every bet of week and leaves the rest untouched.
func RecomputeWeek(week int, bets []Bet, book OddsLookup, results ResultLookup) []Bet {
	out := make([]Bet, len(bets))
	for i, bet := range bets {
		if bet.Week == week {
			bet = Recompute(bet, book, results)
		}
		out[i] = bet
	}
	return out
}

// RemoveTeam drops every occurrence of team from the (week, type) bet and
// recomputes it.
func RemoveTeam(bets []Bet, week int, t Type, team string, book OddsLookup, results ResultLookup) ([]Bet, error) {
	out := make([]Bet, len(bets))
	copy(out, bets)
	for i, bet := range out {
		if bet.Week != week || bet.Type != t {
			continue
		}
		teams := make([]string, 0, len(bet.Teams))
		for _, leg := range bet.Teams {
			if leg == team {
				continue
			}
			teams = append(teams, leg)
		}
		bet.Teams = teams
		out[i] = Recompute(bet, book, results)
		return out, nil
	}
	return bets, ErrNotFound
}

// ForWeek returns week's bets in stored order.
func ForWeek(bets []Bet, week int) []Bet {
	out := make([]Bet, 0, len(Types))
	for _, bet := range bets {
		if bet.Week == week {
			out = append(out, bet)
		}
	}
	return out
}
