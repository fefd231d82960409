package kickerbet

import (
	"errors"
	"time"
)

var (
	ErrMatchRequired     = errors.New("kicker bet match is required")
	ErrNotPriorWinner    = errors.New("only the previous week's winner can select the kicker bet match")
	ErrAlreadySelected   = errors.New("kicker bet already selected for this week")
	ErrNoKickerBet       = errors.New("no kicker bet selected for this week")
	ErrInvalidScore      = errors.New("scores must be whole numbers >= 0")
	ErrResultAlreadySet  = errors.New("kicker bet result already entered for this week")
	ErrPredictionMissing = errors.New("kicker bet prediction is required")
)

// Prediction is one player's exact-score guess.
type Prediction struct {
	PlayerName  string    `json:"playerName" validate:"required"`
	HomeScore   int       `json:"homeScore" validate:"gte=0"`
	AwayScore   int       `json:"awayScore" validate:"gte=0"`
	Week        int       `json:"week" validate:"gte=1"`
	SubmittedAt time.Time `json:"submittedAt"`
	IsLate      bool      `json:"isLate"`
}

// KickerBet is the match chosen for a week by the prior week's winner.
type KickerBet struct {
	Week          int          `json:"week" validate:"gte=1"`
	SelectedMatch string       `json:"selectedMatch" validate:"required"`
	SelectedBy    string       `json:"selectedBy" validate:"required"`
	Predictions   []Prediction `json:"predictions" validate:"dive"`
}

// Odds is the price for one player's prediction in a week.
type Odds struct {
	PlayerName   string  `json:"playerName" validate:"required"`
	Week         int     `json:"week" validate:"gte=1"`
	Odds         float64 `json:"odds" validate:"gte=0"`
	OddsFraction string  `json:"oddsFraction"`
}

// Result is the entered final score. Winners are frozen at entry.
type Result struct {
	Week            int      `json:"week" validate:"gte=1"`
	ActualHomeScore int      `json:"actualHomeScore" validate:"gte=0"`
	ActualAwayScore int      `json:"actualAwayScore" validate:"gte=0"`
	Winners         []string `json:"winners"`
}

// HasWinner reports whether playerName is in the frozen winners list.
func (r Result) HasWinner(playerName string) bool {
	for _, name := range r.Winners {
		if name == playerName {
			return true
		}
	}
	return false
}

// Winners lists, in prediction order, the players who called (home, away) exactly.
func Winners(predictions []Prediction, home, away int) []string {
	out := make([]string, 0, len(predictions))
	for _, p := range predictions {
		if p.HomeScore == home && p.AwayScore == away {
			out = append(out, p.PlayerName)
		}
	}
	return out
}

// ValidateScore rejects negative scores.
func ValidateScore(home, away int) error {
	if home < 0 || away < 0 {
		return ErrInvalidScore
	}
	return nil
}

// WithPrediction overwrites the player's prediction or appends it.
func (kb KickerBet) WithPrediction(p Prediction) KickerBet {
	preds := make([]Prediction, 0, len(kb.Predictions)+1)
	replaced := false
	for _, item := range kb.Predictions {
		if item.PlayerName == p.PlayerName {
			if !replaced {
				preds = append(preds, p)
				replaced = true
			}
			continue
		}
		preds = append(preds, item)
	}
	if !replaced {
		preds = append(preds, p)
	}
	kb.Predictions = preds
	return kb
}
