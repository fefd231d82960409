package odds

import "strings"

// PlayerPickOdds is the price one player got for one team in one week.
type PlayerPickOdds struct {
	PlayerName   string  `json:"playerName" validate:"required"`
	TeamName     string  `json:"teamName" validate:"required"`
	Week         int     `json:"week" validate:"gte=1"`
	Odds         float64 `json:"odds" validate:"gte=0"`
	OddsFraction string  `json:"oddsFraction"`
}

// Table holds at most one record per (player, team, week).
type Table []PlayerPickOdds

// ForPlayerTeam returns the player's odds for team in week. Records with a
// non-positive multiplier are treated as missing.
func (t Table) ForPlayerTeam(playerName, teamName string, week int) (float64, bool) {
	for _, item := range t {
		if item.Week == week && item.PlayerName == playerName && item.TeamName == teamName {
			if item.Odds <= 0 {
				return 0, false
			}
			return item.Odds, true
		}
	}
	return 0, false
}

// FirstForTeam returns the first usable odds recorded for team in week by any player.
func (t Table) FirstForTeam(teamName string, week int) (float64, bool) {
	for _, item := range t {
		if item.Week == week && item.TeamName == teamName && item.Odds > 0 {
			return item.Odds, true
		}
	}
	return 0, false
}

// Upsert replaces the record for the same (player, team, week) or appends it.
func (t Table) Upsert(rec PlayerPickOdds) Table {
	out := make(Table, 0, len(t)+1)
	replaced := false
	for _, item := range t {
		if sameKey(item, rec.PlayerName, rec.TeamName, rec.Week) {
			if !replaced {
				out = append(out, rec)
				replaced = true
			}
			continue
		}
		out = append(out, item)
	}
	if !replaced {
		out = append(out, rec)
	}
	return out
}

// Remove drops the record for (player, team, week) if present.
func (t Table) Remove(playerName, teamName string, week int) Table {
	out := make(Table, 0, len(t))
	for _, item := range t {
		if sameKey(item, playerName, teamName, week) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func sameKey(item PlayerPickOdds, playerName, teamName string, week int) bool {
	return item.Week == week && item.PlayerName == playerName && item.TeamName == teamName
}

// Entry builds a record from raw admin input.
func Entry(playerName, teamName string, week int, raw string) (PlayerPickOdds, error) {
	value, err := Validate(raw)
	if err != nil {
		return PlayerPickOdds{}, err
	}
	return PlayerPickOdds{
		PlayerName:   playerName,
		TeamName:     teamName,
		Week:         week,
		Odds:         value,
		OddsFraction: strings.TrimSpace(raw),
	}, nil
}
