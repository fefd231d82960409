package pot

import (
	"sort"

	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/domain/settlement"
)

// Standing is one player's season line.
type Standing struct {
	PlayerName        string    `json:"playerName"`
	TotalEarnings     float64   `json:"totalEarnings"`
	CorrectPicks      int       `json:"correctPicks"`
	TotalPicks        int       `json:"totalPicks"`
	WinPercentage     float64   `json:"winPercentage"`
	KickerBetWins     int       `json:"kickerBetWins"`
	KickerBetEarnings float64   `json:"kickerBetEarnings"`
	WeeklyWins        int       `json:"weeklyWins"`
	WeeklyEarnings    []float64 `json:"weeklyEarnings"`
}

// Standings ranks the roster by earnings over completed weeks, then name.
// The current week is still open and does not count.
func Standings(engine *settlement.Engine, state season.State) []Standing {
	out := make([]Standing, 0, len(state.Settings.LockedPlayers))
	for _, name := range state.Settings.LockedPlayers {
		st := Standing{
			PlayerName:     name,
			WeeklyEarnings: make([]float64, 0, max(state.CurrentWeek-1, 0)),
		}
		for week := 1; week < state.CurrentWeek; week++ {
			pw := engine.PlayerWeek(state, name, week)
			st.TotalEarnings += pw.Total
			st.KickerBetEarnings += pw.KickerBet
			st.WeeklyEarnings = append(st.WeeklyEarnings, finite(pw.Total))

			if res, ok := state.KickerResults.ForWeek(week); ok && res.HasWinner(name) {
				st.KickerBetWins++
			}
			if p, ok := state.Picks.ForPlayerWeek(name, week); ok {
				st.TotalPicks += 2
				for _, team := range []string{p.Team1, p.Team2} {
					if state.TeamResults.Won(team, week) {
						st.CorrectPicks++
					}
				}
			}
		}
		for _, w := range state.WeeklyWinners {
			if w.PlayerName == name {
				st.WeeklyWins++
			}
		}
		if st.TotalPicks > 0 {
			st.WinPercentage = finite(float64(st.CorrectPicks) / float64(st.TotalPicks) * 100)
		}
		st.TotalEarnings = finite(st.TotalEarnings)
		st.KickerBetEarnings = finite(st.KickerBetEarnings)
		out = append(out, st)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalEarnings != out[j].TotalEarnings {
			return out[i].TotalEarnings > out[j].TotalEarnings
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	return out
}
