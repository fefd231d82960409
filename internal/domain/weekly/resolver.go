package weekly

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/domain/settlement"
)

var ErrPreconditionsUnmet = errors.New("week cannot be advanced")

// BlockedError lists every unmet precondition for advancing Week.
type BlockedError struct {
	Week  int
	Unmet []string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: week %d: %s", ErrPreconditionsUnmet, e.Week, strings.Join(e.Unmet, "; "))
}

func (e *BlockedError) Unwrap() error {
	return ErrPreconditionsUnmet
}

// Resolve picks the top individual earner for week. Ties go to the
// lexicographically smallest name. Nobody wins a week where the best
// earnings are not positive.
func Resolve(engine *settlement.Engine, state season.State, week int) (season.WeeklyWinner, bool) {
	earnings := engine.Week(state, week)
	if len(earnings) == 0 {
		return season.WeeklyWinner{}, false
	}

	sort.SliceStable(earnings, func(i, j int) bool {
		if earnings[i].Total != earnings[j].Total {
			return earnings[i].Total > earnings[j].Total
		}
		return earnings[i].PlayerName < earnings[j].PlayerName
	})

	top := earnings[0]
	if top.Total <= 0 {
		return season.WeeklyWinner{}, false
	}
	return season.WeeklyWinner{Week: week, PlayerName: top.PlayerName, Earnings: top.Total}, true
}

// Preconditions lists what still blocks advancing the current week.
func Preconditions(state season.State) []string {
	week := state.CurrentWeek
	unmet := make([]string, 0, 3)

	if !state.IsOddsLocked(week) {
		unmet = append(unmet, fmt.Sprintf("odds for week %d are not locked", week))
	}
	if _, hasKB := state.KickerBets.ForWeek(week); hasKB {
		if _, hasResult := state.KickerResults.ForWeek(week); !hasResult {
			unmet = append(unmet, fmt.Sprintf("kicker bet result for week %d has not been entered", week))
		}
	}
	if missing := state.TeamResults.Missing(state.Picks.Teams(week), week); len(missing) > 0 {
		unmet = append(unmet, fmt.Sprintf("results missing for: %s", strings.Join(missing, ", ")))
	}
	return unmet
}

// Outcome describes a completed advance.
type Outcome struct {
	Week     int                  `json:"week"`
	NextWeek int                  `json:"nextWeek"`
	Winner   *season.WeeklyWinner `json:"winner"`
}

// Advance records the week's winner, if any and if not already recorded, and
// moves to the next week. Nothing changes unless every precondition holds.
func Advance(engine *settlement.Engine, state season.State) (season.State, Outcome, error) {
	week := state.CurrentWeek
	if unmet := Preconditions(state); len(unmet) > 0 {
		return state, Outcome{}, &BlockedError{Week: week, Unmet: unmet}
	}

	out := Outcome{Week: week, NextWeek: week + 1}
	if existing, ok := state.WinnerFor(week); ok {
		out.Winner = &existing
	} else if winner, ok := Resolve(engine, state, week); ok {
		state, _ = state.RecordWinner(winner)
		out.Winner = &winner
	}

	state.CurrentWeek = week + 1
	return state, out, nil
}
