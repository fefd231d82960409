package pot

import (
	"math"

	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/domain/settlement"
)

// ForWeek sums individual winnings and won accumulators for week.
func ForWeek(engine *settlement.Engine, state season.State, week int) season.TotalPot {
	var players float64
	for _, pw := range engine.Week(state, week) {
		players += pw.Total
	}

	var accas float64
	for _, bet := range state.Accumulators {
		if bet.Week != week || bet.IsWon == nil || !*bet.IsWon {
			continue
		}
		accas += bet.ActualWinnings
	}

	return season.TotalPot{
		TotalPot:            finite(players + accas),
		AccumulatorWinnings: finite(accas),
		PlayerWinnings:      finite(players),
	}
}

// ForSeason sums ForWeek over weeks 1 through the current week.
func ForSeason(engine *settlement.Engine, state season.State) season.TotalPot {
	var out season.TotalPot
	for week := 1; week <= state.CurrentWeek; week++ {
		wk := ForWeek(engine, state, week)
		out.TotalPot += wk.TotalPot
		out.AccumulatorWinnings += wk.AccumulatorWinnings
		out.PlayerWinnings += wk.PlayerWinnings
	}
	return out
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
