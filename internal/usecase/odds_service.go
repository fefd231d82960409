package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dinkanimations/squadbets/internal/domain/kickerbet"
	"github.com/dinkanimations/squadbets/internal/domain/odds"
	"github.com/dinkanimations/squadbets/internal/domain/season"
)

type SetPickOddsInput struct {
	PlayerName string
	TeamName   string
	// Odds is fractional ("5/2") or decimal ("3.5"). Blank clears the entry.
	Odds string
}

type SetKickerOddsInput struct {
	PlayerName string
	Odds       string
}

type OddsService struct {
	ledger *Ledger
}

func NewOddsService(ledger *Ledger) *OddsService {
	return &OddsService{ledger: ledger}
}

// SetPickOdds stores the odds a player got on one of their teams for the
// current week. The bool result is false when the entry was cleared.
func (s *OddsService) SetPickOdds(ctx context.Context, input SetPickOddsInput) (odds.PlayerPickOdds, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.SetPickOdds")
	defer span.End()

	playerName := strings.TrimSpace(input.PlayerName)
	teamName := strings.TrimSpace(input.TeamName)
	if playerName == "" || teamName == "" {
		return odds.PlayerPickOdds{}, false, fmt.Errorf("%w: player_name and team_name are required", ErrInvalidInput)
	}

	state, err := s.ledger.load(ctx, "odds.set_pick")
	if err != nil {
		return odds.PlayerPickOdds{}, false, err
	}
	week := state.CurrentWeek
	if err := requireEditableOdds(state, playerName, week); err != nil {
		return odds.PlayerPickOdds{}, false, err
	}

	var (
		entry  odds.PlayerPickOdds
		stored bool
	)
	if strings.TrimSpace(input.Odds) == "" {
		state.PickOdds = state.PickOdds.Remove(playerName, teamName, week)
	} else {
		entry, err = odds.Entry(playerName, teamName, week, input.Odds)
		if err != nil {
			return odds.PlayerPickOdds{}, false, classify(err)
		}
		state.PickOdds = state.PickOdds.Upsert(entry)
		stored = true
	}

	if _, err := s.ledger.commit(ctx, "odds.set_pick", state, season.KeyPlayerPickOdds); err != nil {
		return odds.PlayerPickOdds{}, false, err
	}
	return entry, stored, nil
}

// SetKickerOdds stores a player's kicker bet odds for the current week. Frozen
// kicker winners pick up the new odds at read time.
func (s *OddsService) SetKickerOdds(ctx context.Context, input SetKickerOddsInput) (kickerbet.Odds, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.SetKickerOdds")
	defer span.End()

	playerName := strings.TrimSpace(input.PlayerName)
	if playerName == "" {
		return kickerbet.Odds{}, false, classify(season.ErrPlayerRequired)
	}

	state, err := s.ledger.load(ctx, "odds.set_kicker")
	if err != nil {
		return kickerbet.Odds{}, false, err
	}
	week := state.CurrentWeek
	if err := requireEditableOdds(state, playerName, week); err != nil {
		return kickerbet.Odds{}, false, err
	}

	var (
		entry  kickerbet.Odds
		stored bool
	)
	if strings.TrimSpace(input.Odds) == "" {
		state.KickerOdds = state.KickerOdds.Remove(playerName, week)
	} else {
		value, err := odds.Validate(input.Odds)
		if err != nil {
			return kickerbet.Odds{}, false, classify(err)
		}
		entry = kickerbet.Odds{
			PlayerName:   playerName,
			Week:         week,
			Odds:         value,
			OddsFraction: strings.TrimSpace(input.Odds),
		}
		state.KickerOdds = state.KickerOdds.Upsert(entry)
		stored = true
	}

	if _, err := s.ledger.commit(ctx, "odds.set_kicker", state, season.KeyKickerBetOdds); err != nil {
		return kickerbet.Odds{}, false, err
	}
	return entry, stored, nil
}

func requireEditableOdds(state season.State, playerName string, week int) error {
	if !state.HasPlayer(playerName) {
		return classify(fmt.Errorf("%w: %s", season.ErrUnknownPlayer, playerName))
	}
	if state.IsOddsLocked(week) {
		return classify(fmt.Errorf("%w: week %d", season.ErrOddsLocked, week))
	}
	return nil
}
