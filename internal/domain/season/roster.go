package season

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrSeasonStarted    = errors.New("season has already started")
	ErrSeasonNotStarted = errors.New("season has not started")
	ErrPlayerRequired   = errors.New("player name is required")
	ErrDuplicatePlayer  = errors.New("player already exists")
	ErrUnknownPlayer    = errors.New("player is not on the roster")
	ErrNoPlayers        = errors.New("at least one player is required to start the season")
	ErrOddsLocked       = errors.New("odds are locked for this week")
)

func (s State) HasPlayer(name string) bool {
	for _, item := range s.Settings.LockedPlayers {
		if item == name {
			return true
		}
	}
	return false
}

func (s State) AddPlayer(name string) (State, error) {
	if s.Settings.IsSeasonStarted {
		return s, ErrSeasonStarted
	}
	value := strings.TrimSpace(name)
	if value == "" {
		return s, ErrPlayerRequired
	}
	if s.HasPlayer(value) {
		return s, fmt.Errorf("%w: %s", ErrDuplicatePlayer, value)
	}
	players := make([]string, 0, len(s.Settings.LockedPlayers)+1)
	players = append(players, s.Settings.LockedPlayers...)
	s.Settings.LockedPlayers = append(players, value)
	return s, nil
}

func (s State) RemovePlayer(name string) (State, error) {
	if s.Settings.IsSeasonStarted {
		return s, ErrSeasonStarted
	}
	if !s.HasPlayer(name) {
		return s, fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}
	players := make([]string, 0, len(s.Settings.LockedPlayers))
	for _, item := range s.Settings.LockedPlayers {
		if item == name {
			continue
		}
		players = append(players, item)
	}
	s.Settings.LockedPlayers = players
	return s, nil
}

func (s State) Start(now time.Time) (State, error) {
	if s.Settings.IsSeasonStarted {
		return s, ErrSeasonStarted
	}
	if len(s.Settings.LockedPlayers) == 0 {
		return s, ErrNoPlayers
	}
	started := now.UTC()
	s.Settings.IsSeasonStarted = true
	s.Settings.SeasonStartDate = &started
	return s, nil
}

// RequireActive checks that the season has started and playerName is on the roster.
func (s State) RequireActive(playerName string) error {
	if !s.Settings.IsSeasonStarted {
		return ErrSeasonNotStarted
	}
	if !s.HasPlayer(playerName) {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, playerName)
	}
	return nil
}
