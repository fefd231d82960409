package result

// TeamResult records whether a team won in a week. No record means pending.
type TeamResult struct {
	TeamName string `json:"teamName" validate:"required"`
	Week     int    `json:"week" validate:"gte=1"`
	HasWon   bool   `json:"hasWon"`
}

// Book holds at most one result per (team, week).
type Book []TeamResult

// Outcome returns whether team won in week and whether a result is known.
func (b Book) Outcome(teamName string, week int) (won bool, known bool) {
	for _, item := range b {
		if item.Week == week && item.TeamName == teamName {
			return item.HasWon, true
		}
	}
	return false, false
}

// Won reports an explicit win. Pending counts as not won.
func (b Book) Won(teamName string, week int) bool {
	won, known := b.Outcome(teamName, week)
	return known && won
}

// Missing lists the teams without a result in week.
func (b Book) Missing(teams []string, week int) []string {
	out := make([]string, 0)
	for _, team := range teams {
		if _, known := b.Outcome(team, week); !known {
			out = append(out, team)
		}
	}
	return out
}

// Set records the outcome for (team, week), replacing any existing one.
func (b Book) Set(teamName string, week int, hasWon bool) Book {
	out := b.Clear(teamName, week)
	return append(out, TeamResult{TeamName: teamName, Week: week, HasWon: hasWon})
}

// Toggle flips an existing outcome in place or records a win.
func (b Book) Toggle(teamName string, week int) Book {
	out := make(Book, len(b))
	copy(out, b)
	for i := range out {
		if out[i].Week == week && out[i].TeamName == teamName {
			out[i].HasWon = !out[i].HasWon
			return out
		}
	}
	return append(out, TeamResult{TeamName: teamName, Week: week, HasWon: true})
}

// Clear reverts (team, week) to pending.
func (b Book) Clear(teamName string, week int) Book {
	out := make(Book, 0, len(b)+1)
	for _, item := range b {
		if item.Week == week && item.TeamName == teamName {
			continue
		}
		out = append(out, item)
	}
	return out
}
