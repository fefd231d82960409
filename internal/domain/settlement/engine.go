package settlement

import (
	"fmt"
	"sort"

	"github.com/dinkanimations/squadbets/internal/domain/accumulator"
	"github.com/dinkanimations/squadbets/internal/domain/kickerbet"
	"github.com/dinkanimations/squadbets/internal/domain/season"
)

const (
	WarningMissingOdds       = "missing_odds"
	WarningMissingKickerOdds = "missing_kicker_odds"
)

// Stakes are the fixed stake units per bet type.
type Stakes struct {
	DoubleBet   float64
	KickerBet   float64
	Accumulator accumulator.Stakes
}

func DefaultStakes() Stakes {
	return Stakes{
		DoubleBet:   5,
		KickerBet:   1,
		Accumulator: accumulator.DefaultStakes(),
	}
}

// Warning flags a winning bet that pays nothing because odds were never entered.
type Warning struct {
	Code       string `json:"code"`
	PlayerName string `json:"playerName"`
	Week       int    `json:"week"`
	Team       string `json:"team,omitempty"`
	Message    string `json:"message"`
}

// PlayerWeek is one player's individual earnings for a week.
type PlayerWeek struct {
	PlayerName string    `json:"playerName"`
	Week       int       `json:"week"`
	DoubleBet  float64   `json:"doubleBet"`
	KickerBet  float64   `json:"kickerBet"`
	Total      float64   `json:"total"`
	Warnings   []Warning `json:"warnings,omitempty"`
}

// Engine settles individual bets against a season snapshot.
type Engine struct {
	stakes Stakes
}

func NewEngine(stakes Stakes) *Engine {
	return &Engine{stakes: stakes}
}

func (e *Engine) Stakes() Stakes {
	return e.stakes
}

// DoubleBet pays stake x odds1 x odds2 only when both picked teams explicitly
// won. Missing odds on a winning bet pay 0 and produce a warning.
func (e *Engine) DoubleBet(state season.State, playerName string, week int) (float64, []Warning) {
	p, ok := state.Picks.ForPlayerWeek(playerName, week)
	if !ok {
		return 0, nil
	}
	if !state.TeamResults.Won(p.Team1, week) || !state.TeamResults.Won(p.Team2, week) {
		return 0, nil
	}

	var warnings []Warning
	product := e.stakes.DoubleBet
	for _, team := range []string{p.Team1, p.Team2} {
		price, ok := state.PickOdds.ForPlayerTeam(playerName, team, week)
		if !ok {
			warnings = append(warnings, Warning{
				Code:       WarningMissingOdds,
				PlayerName: playerName,
				Week:       week,
				Team:       team,
				Message:    fmt.Sprintf("winning double bet pays 0: no odds for %s", team),
			})
			continue
		}
		product *= price
	}
	if len(warnings) > 0 {
		return 0, warnings
	}
	return product, nil
}

// KickerBet pays stake x the player's kicker odds when they are a frozen
// winner for week.
func (e *Engine) KickerBet(state season.State, playerName string, week int) (float64, []Warning) {
	res, ok := state.KickerResults.ForWeek(week)
	if !ok || !res.HasWinner(playerName) {
		return 0, nil
	}
	if _, ok := state.KickerOdds.ForPlayer(playerName, week); !ok {
		return 0, []Warning{{
			Code:       WarningMissingKickerOdds,
			PlayerName: playerName,
			Week:       week,
			Message:    "winning kicker bet pays 0: no kicker odds",
		}}
	}
	return kickerbet.Earnings(state.KickerResults, state.KickerOdds, playerName, week, e.stakes.KickerBet), nil
}

// PlayerWeek combines the double bet and the kicker bet. Accumulators are not
// an individual's earnings.
func (e *Engine) PlayerWeek(state season.State, playerName string, week int) PlayerWeek {
	double, warnings := e.DoubleBet(state, playerName, week)
	kicker, kickerWarnings := e.KickerBet(state, playerName, week)
	return PlayerWeek{
		PlayerName: playerName,
		Week:       week,
		DoubleBet:  double,
		KickerBet:  kicker,
		Total:      double + kicker,
		Warnings:   append(warnings, kickerWarnings...),
	}
}

// Participants are the players with a pick in week plus any kicker winners,
// in pick order.
func Participants(state season.State, week int) []string {
	out := state.Picks.Players(week)
	seen := make(map[string]struct{}, len(out))
	for _, name := range out {
		seen[name] = struct{}{}
	}
	if res, ok := state.KickerResults.ForWeek(week); ok {
		for _, name := range res.Winners {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// Week settles every participant of week.
func (e *Engine) Week(state season.State, week int) []PlayerWeek {
	players := Participants(state, week)
	out := make([]PlayerWeek, 0, len(players))
	for _, name := range players {
		out = append(out, e.PlayerWeek(state, name, week))
	}
	return out
}

// Warnings collects every settlement warning for week, ordered by player.
func (e *Engine) Warnings(state season.State, week int) []Warning {
	var out []Warning
	for _, pw := range e.Week(state, week) {
		out = append(out, pw.Warnings...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlayerName < out[j].PlayerName
	})
	return out
}
