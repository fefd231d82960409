package pick

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrTeamRequired  = errors.New("both teams are required")
	ErrDuplicateTeam = errors.New("teams must be different")
)

// TeamPick is one player's two team selections for a week.
type TeamPick struct {
	PlayerName  string    `json:"playerName" validate:"required"`
	Week        int       `json:"week" validate:"gte=1"`
	Team1       string    `json:"team1" validate:"required"`
	Team2       string    `json:"team2" validate:"required"`
	SubmittedAt time.Time `json:"submittedAt"`
	IsLate      bool      `json:"isLate"`
}

// ValidateTeams normalizes and checks a pair of team names.
func ValidateTeams(team1, team2 string) (string, string, error) {
	t1 := strings.TrimSpace(team1)
	t2 := strings.TrimSpace(team2)
	if t1 == "" || t2 == "" {
		return "", "", ErrTeamRequired
	}
	if strings.EqualFold(t1, t2) {
		return "", "", fmt.Errorf("%w: %s", ErrDuplicateTeam, t1)
	}
	return t1, t2, nil
}

// IsLate reports whether at falls in [Saturday 12:00, Sunday 12:00) in loc.
func IsLate(at time.Time, loc *time.Location) bool {
	if at.IsZero() {
		return false
	}
	if loc == nil {
		loc = time.Local
	}
	local := at.In(loc)
	switch local.Weekday() {
	case time.Saturday:
		return local.Hour() >= 12
	case time.Sunday:
		return local.Hour() < 12
	default:
		return false
	}
}
