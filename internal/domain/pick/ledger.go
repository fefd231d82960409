package pick

import "time"

// Ledger holds at most one pick per (player, week), in submission order.
type Ledger []TeamPick

func (l Ledger) ForPlayerWeek(playerName string, week int) (TeamPick, bool) {
	for _, item := range l {
		if item.Week == week && item.PlayerName == playerName {
			return item, true
		}
	}
	return TeamPick{}, false
}

func (l Ledger) ForWeek(week int) []TeamPick {
	out := make([]TeamPick, 0, len(l))
	for _, item := range l {
		if item.Week == week {
			out = append(out, item)
		}
	}
	return out
}

// Players lists the players with a pick in week, in ledger order.
func (l Ledger) Players(week int) []string {
	out := make([]string, 0, len(l))
	seen := make(map[string]struct{}, len(l))
	for _, item := range l {
		if item.Week != week {
			continue
		}
		if _, ok := seen[item.PlayerName]; ok {
			continue
		}
		seen[item.PlayerName] = struct{}{}
		out = append(out, item.PlayerName)
	}
	return out
}

// Teams lists the distinct teams picked in week, in ledger order.
func (l Ledger) Teams(week int) []string {
	out := make([]string, 0, len(l)*2)
	seen := make(map[string]struct{}, len(l)*2)
	for _, item := range l {
		if item.Week != week {
			continue
		}
		for _, team := range []string{item.Team1, item.Team2} {
			if _, ok := seen[team]; ok {
				continue
			}
			seen[team] = struct{}{}
			out = append(out, team)
		}
	}
	return out
}

// Contains reports whether any pick in week includes team.
func (l Ledger) Contains(team string, week int) bool {
	for _, item := range l {
		if item.Week == week && (item.Team1 == team || item.Team2 == team) {
			return true
		}
	}
	return false
}

// Upsert overwrites the player's pick for the week, keeping its position.
func (l Ledger) Upsert(p TeamPick) Ledger {
	out := make(Ledger, 0, len(l)+1)
	replaced := false
	for _, item := range l {
		if item.Week == p.Week && item.PlayerName == p.PlayerName {
			if !replaced {
				out = append(out, p)
				replaced = true
			}
			continue
		}
		out = append(out, item)
	}
	if !replaced {
		out = append(out, p)
	}
	return out
}

// RecomputeLateness rederives IsLate from SubmittedAt for every pick.
func (l Ledger) RecomputeLateness(loc *time.Location) Ledger {
	out := make(Ledger, len(l))
	for i, item := range l {
		item.IsLate = IsLate(item.SubmittedAt, loc)
		out[i] = item
	}
	return out
}
