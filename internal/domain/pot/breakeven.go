package pot

import (
	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/domain/settlement"
)

// WeekBreakeven compares what the group staked in a week with what came back.
type WeekBreakeven struct {
	Week      int     `json:"week"`
	Staked    float64 `json:"staked"`
	Winnings  float64 `json:"winnings"`
	Breakeven float64 `json:"breakeven"`
}

// BreakevenReport covers every completed week. The kicker and accumulator
// fields split out the share of the totals that came from those bets.
type BreakevenReport struct {
	Weeks               []WeekBreakeven `json:"weeks"`
	TotalStaked         float64         `json:"totalStaked"`
	TotalWinnings       float64         `json:"totalWinnings"`
	TotalBreakeven      float64         `json:"totalBreakeven"`
	KickerBetStaked     float64         `json:"kickerBetStaked"`
	KickerBetWinnings   float64         `json:"kickerBetWinnings"`
	AccumulatorStaked   float64         `json:"accumulatorStaked"`
	AccumulatorWinnings float64         `json:"accumulatorWinnings"`
	LastWeek            *WeekBreakeven  `json:"lastWeek"`
}

type weekStakes struct {
	doubleBet   float64
	kickerBet   float64
	accumulator float64
}

func (s weekStakes) total() float64 {
	return s.doubleBet + s.kickerBet + s.accumulator
}

func stakesForWeek(engine *settlement.Engine, state season.State, week int) weekStakes {
	stakes := engine.Stakes()
	picks := float64(len(state.Picks.ForWeek(week)))

	out := weekStakes{doubleBet: picks * stakes.DoubleBet}
	if _, ok := state.KickerResults.ForWeek(week); ok {
		out.kickerBet = picks * stakes.KickerBet
	}
	for _, bet := range state.Accumulators {
		if bet.Week == week {
			out.accumulator += bet.Stake
		}
	}
	return out
}

// Staked is double-bet stakes per pick, kicker stakes per pick once the
// week's kicker result is in, plus every accumulator stake for the week.
func Staked(engine *settlement.Engine, state season.State, week int) float64 {
	return finite(stakesForWeek(engine, state, week).total())
}

// Breakeven reports weeks 1 through the week before the current one.
func Breakeven(engine *settlement.Engine, state season.State) BreakevenReport {
	report := BreakevenReport{Weeks: make([]WeekBreakeven, 0, max(state.CurrentWeek-1, 0))}
	for week := 1; week < state.CurrentWeek; week++ {
		split := stakesForWeek(engine, state, week)
		staked := finite(split.total())
		pot := ForWeek(engine, state, week)
		item := WeekBreakeven{
			Week:      week,
			Staked:    staked,
			Winnings:  pot.TotalPot,
			Breakeven: finite(pot.TotalPot - staked),
		}
		report.Weeks = append(report.Weeks, item)
		report.TotalStaked += staked
		report.TotalWinnings += pot.TotalPot
		report.KickerBetStaked += split.kickerBet
		report.AccumulatorStaked += split.accumulator
		report.AccumulatorWinnings += pot.AccumulatorWinnings
		for _, pw := range engine.Week(state, week) {
			report.KickerBetWinnings += pw.KickerBet
		}
	}
	report.TotalBreakeven = finite(report.TotalWinnings - report.TotalStaked)
	report.KickerBetStaked = finite(report.KickerBetStaked)
	report.KickerBetWinnings = finite(report.KickerBetWinnings)
	report.AccumulatorStaked = finite(report.AccumulatorStaked)
	report.AccumulatorWinnings = finite(report.AccumulatorWinnings)
	if n := len(report.Weeks); n > 0 {
		last := report.Weeks[n-1]
		report.LastWeek = &last
	}
	return report
}
