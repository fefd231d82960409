package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dinkanimations/squadbets/internal/domain/kickerbet"
	"github.com/dinkanimations/squadbets/internal/domain/pick"
	"github.com/dinkanimations/squadbets/internal/domain/season"
)

type SubmitPicksInput struct {
	PlayerName string
	Team1      string
	Team2      string
	// HomeScore and AwayScore carry the kicker bet prediction. Both are
	// required once a kicker bet exists for the week, until its result is
	// entered. Scores sent after that are rejected.
	HomeScore *int
	AwayScore *int
}

type SubmitPicksResult struct {
	Pick       pick.TeamPick         `json:"pick"`
	Prediction *kickerbet.Prediction `json:"prediction,omitempty"`
}

type SelectKickerMatchInput struct {
	PlayerName string
	Match      string
}

type PickService struct {
	ledger *Ledger
}

func NewPickService(ledger *Ledger) *PickService {
	return &PickService{ledger: ledger}
}

// Submit stores a player's picks for the current week, overwriting any
// earlier submission.
func (s *PickService) Submit(ctx context.Context, input SubmitPicksInput) (SubmitPicksResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit")
	defer span.End()

	playerName := strings.TrimSpace(input.PlayerName)
	if playerName == "" {
		return SubmitPicksResult{}, classify(season.ErrPlayerRequired)
	}
	team1, team2, err := pick.ValidateTeams(input.Team1, input.Team2)
	if err != nil {
		return SubmitPicksResult{}, classify(err)
	}

	state, err := s.ledger.load(ctx, "picks.submit")
	if err != nil {
		return SubmitPicksResult{}, err
	}
	if err := state.RequireActive(playerName); err != nil {
		return SubmitPicksResult{}, classify(err)
	}

	week := state.CurrentWeek
	now := s.ledger.now().UTC()
	isLate := pick.IsLate(now, s.ledger.location)

	out := SubmitPicksResult{
		Pick: pick.TeamPick{
			PlayerName:  playerName,
			Week:        week,
			Team1:       team1,
			Team2:       team2,
			SubmittedAt: now,
			IsLate:      isLate,
		},
	}

	keys := []string{season.KeyPlayerPicks}
	if kb, ok := state.KickerBets.ForWeek(week); ok && week > 1 && acceptsPrediction(state, week, input) {
		prediction, err := buildPrediction(state, playerName, week, input)
		if err != nil {
			return SubmitPicksResult{}, classify(err)
		}
		prediction.SubmittedAt = now
		prediction.IsLate = isLate
		state.KickerBets = state.KickerBets.Upsert(kb.WithPrediction(prediction))
		out.Prediction = &prediction
		keys = append(keys, season.KeyKickerBets)
	}

	state.Picks = state.Picks.Upsert(out.Pick)
	if _, err := s.ledger.record(ctx, "picks.submit", state, keys...); err != nil {
		return SubmitPicksResult{}, err
	}

	s.ledger.logger.InfoContext(ctx, "picks submitted",
		"player", playerName,
		"week", week,
		"late", isLate,
	)
	return out, nil
}

// acceptsPrediction reports whether a submission should touch the kicker
// bet. Once the week's kicker result is in, a team-only resubmission keeps
// the earlier prediction as it was.
func acceptsPrediction(state season.State, week int, input SubmitPicksInput) bool {
	if _, settled := state.KickerResults.ForWeek(week); !settled {
		return true
	}
	return input.HomeScore != nil || input.AwayScore != nil
}

func buildPrediction(state season.State, playerName string, week int, input SubmitPicksInput) (kickerbet.Prediction, error) {
	if _, settled := state.KickerResults.ForWeek(week); settled {
		return kickerbet.Prediction{}, kickerbet.ErrResultAlreadySet
	}
	if input.HomeScore == nil || input.AwayScore == nil {
		return kickerbet.Prediction{}, kickerbet.ErrPredictionMissing
	}
	if err := kickerbet.ValidateScore(*input.HomeScore, *input.AwayScore); err != nil {
		return kickerbet.Prediction{}, err
	}
	return kickerbet.Prediction{
		PlayerName: playerName,
		HomeScore:  *input.HomeScore,
		AwayScore:  *input.AwayScore,
		Week:       week,
	}, nil
}

// SelectKickerMatch lets the previous week's winner choose this week's
// kicker bet match. Each week gets one selection.
func (s *PickService) SelectKickerMatch(ctx context.Context, input SelectKickerMatchInput) (kickerbet.KickerBet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SelectKickerMatch")
	defer span.End()

	playerName := strings.TrimSpace(input.PlayerName)
	match := strings.TrimSpace(input.Match)
	if playerName == "" {
		return kickerbet.KickerBet{}, classify(season.ErrPlayerRequired)
	}
	if match == "" {
		return kickerbet.KickerBet{}, classify(kickerbet.ErrMatchRequired)
	}

	state, err := s.ledger.load(ctx, "kicker_bet.select")
	if err != nil {
		return kickerbet.KickerBet{}, err
	}
	if err := state.RequireActive(playerName); err != nil {
		return kickerbet.KickerBet{}, classify(err)
	}

	week := state.CurrentWeek
	prior, ok := state.WinnerFor(week - 1)
	if !ok || prior.PlayerName != playerName {
		return kickerbet.KickerBet{}, classify(fmt.Errorf("%w: week %d", kickerbet.ErrNotPriorWinner, week-1))
	}
	if _, exists := state.KickerBets.ForWeek(week); exists {
		return kickerbet.KickerBet{}, classify(kickerbet.ErrAlreadySelected)
	}

	kb := kickerbet.KickerBet{
		Week:          week,
		SelectedMatch: match,
		SelectedBy:    playerName,
		Predictions:   []kickerbet.Prediction{},
	}
	state.KickerBets = state.KickerBets.Upsert(kb)
	if _, err := s.ledger.record(ctx, "kicker_bet.select", state, season.KeyKickerBets); err != nil {
		return kickerbet.KickerBet{}, err
	}
	return kb, nil
}
