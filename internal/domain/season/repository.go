package season

import "context"

// Storage keys. Values are JSON except currentWeek, which is a bare integer.
const (
	KeyCurrentWeek      = "currentWeek"
	KeyGameOdds         = "gameOdds"
	KeyPlayerPickOdds   = "playerPickOdds"
	KeyGameResults      = "gameResults"
	KeyTeamResults      = "teamResults"
	KeyPlayerPicks      = "playerPicks"
	KeyAccumulatorBets  = "accumulatorBets"
	KeyTotalPotData     = "totalPotData"
	KeySeasonSettings   = "seasonSettings"
	KeyKickerBets       = "kickerBets"
	KeyKickerBetOdds    = "kickerBetOdds"
	KeyKickerBetResults = "kickerBetResults"
	KeyWeeklyWinners    = "weeklyWinners"
	KeyOddsLockStates   = "oddsLockStates"
)

// Keys lists every persisted key.
var Keys = []string{
	KeyCurrentWeek,
	KeyGameOdds,
	KeyPlayerPickOdds,
	KeyGameResults,
	KeyTeamResults,
	KeyPlayerPicks,
	KeyAccumulatorBets,
	KeyTotalPotData,
	KeySeasonSettings,
	KeyKickerBets,
	KeyKickerBetOdds,
	KeyKickerBetResults,
	KeyWeeklyWinners,
	KeyOddsLockStates,
}

// Store is the string key-value contract the season is persisted through.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Repository loads and saves the season aggregate.
type Repository interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State, keys ...string) error
	Reset(ctx context.Context) error
}
