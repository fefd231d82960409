package usecase

import (
	"errors"
	"fmt"

	"github.com/dinkanimations/squadbets/internal/domain/accumulator"
	"github.com/dinkanimations/squadbets/internal/domain/kickerbet"
	"github.com/dinkanimations/squadbets/internal/domain/season"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classify tags a domain rule violation with the usecase error callers switch on.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, season.ErrSeasonStarted),
		errors.Is(err, season.ErrSeasonNotStarted),
		errors.Is(err, season.ErrNoPlayers),
		errors.Is(err, season.ErrOddsLocked),
		errors.Is(err, kickerbet.ErrAlreadySelected),
		errors.Is(err, kickerbet.ErrResultAlreadySet):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, kickerbet.ErrNotPriorWinner):
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	case errors.Is(err, accumulator.ErrNotFound),
		errors.Is(err, kickerbet.ErrNoKickerBet):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
}
