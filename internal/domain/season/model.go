package season

import (
	"time"

	"github.com/dinkanimations/squadbets/internal/domain/accumulator"
	"github.com/dinkanimations/squadbets/internal/domain/kickerbet"
	"github.com/dinkanimations/squadbets/internal/domain/odds"
	"github.com/dinkanimations/squadbets/internal/domain/pick"
	"github.com/dinkanimations/squadbets/internal/domain/result"
)

// Settings is the season-wide roster and start state.
type Settings struct {
	IsSeasonStarted bool       `json:"isSeasonStarted"`
	SeasonStartDate *time.Time `json:"seasonStartDate"`
	LockedPlayers   []string   `json:"lockedPlayers" validate:"dive,required"`
}

// OddsLockState is a one-way latch per week.
type OddsLockState struct {
	Week     int  `json:"week" validate:"gte=1"`
	IsLocked bool `json:"isLocked"`
}

// WeeklyWinner is frozen once written.
type WeeklyWinner struct {
	Week       int     `json:"week" validate:"gte=1"`
	PlayerName string  `json:"playerName" validate:"required"`
	Earnings   float64 `json:"earnings" validate:"gte=0"`
}

// TotalPot is a derived reporting snapshot. It is never read back as input.
type TotalPot struct {
	TotalPot            float64 `json:"totalPot"`
	AccumulatorWinnings float64 `json:"accumulatorWinnings"`
	PlayerWinnings      float64 `json:"playerWinnings"`
}

// GameOdds is a per-match odds record from the first app version.
type GameOdds struct {
	Team1             string  `json:"team1"`
	Team2             string  `json:"team2"`
	Team1Odds         float64 `json:"team1Odds"`
	Team2Odds         float64 `json:"team2Odds"`
	Team1OddsFraction string  `json:"team1OddsFraction"`
	Team2OddsFraction string  `json:"team2OddsFraction"`
	Week              int     `json:"week"`
}

// GameResult is a per-match result record from the first app version.
type GameResult struct {
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Winner string `json:"winner"`
	Week   int    `json:"week"`
}

// State is everything the engines read for one season.
type State struct {
	CurrentWeek   int
	Settings      Settings
	PickOdds      odds.Table
	TeamResults   result.Book
	Picks         pick.Ledger
	Accumulators  []accumulator.Bet
	KickerBets    kickerbet.Bets
	KickerOdds    kickerbet.OddsTable
	KickerResults kickerbet.Results
	WeeklyWinners []WeeklyWinner
	OddsLocks     []OddsLockState
	TotalPot      TotalPot

	LegacyGameOdds    []GameOdds
	LegacyGameResults []GameResult
}

// New returns an empty season at week 1.
func New() State {
	return State{
		CurrentWeek: 1,
		Settings:    Settings{LockedPlayers: []string{}},
	}
}

func (s State) IsOddsLocked(week int) bool {
	for _, item := range s.OddsLocks {
		if item.Week == week {
			return item.IsLocked
		}
	}
	return false
}

// LockOdds latches week. It reports false when week was already locked.
func (s State) LockOdds(week int) (State, bool) {
	if s.IsOddsLocked(week) {
		return s, false
	}
	locks := make([]OddsLockState, 0, len(s.OddsLocks)+1)
	for _, item := range s.OddsLocks {
		if item.Week == week {
			continue
		}
		locks = append(locks, item)
	}
	s.OddsLocks = append(locks, OddsLockState{Week: week, IsLocked: true})
	return s, true
}

func (s State) WinnerFor(week int) (WeeklyWinner, bool) {
	for _, item := range s.WeeklyWinners {
		if item.Week == week {
			return item, true
		}
	}
	return WeeklyWinner{}, false
}

// RecordWinner appends w unless week already has a winner.
func (s State) RecordWinner(w WeeklyWinner) (State, bool) {
	if _, exists := s.WinnerFor(w.Week); exists {
		return s, false
	}
	winners := make([]WeeklyWinner, 0, len(s.WeeklyWinners)+1)
	winners = append(winners, s.WeeklyWinners...)
	s.WeeklyWinners = append(winners, w)
	return s, true
}
