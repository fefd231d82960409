package kickerbet

import "time"

// Bets holds at most one kicker bet per week.
type Bets []KickerBet

func (b Bets) ForWeek(week int) (KickerBet, bool) {
	for _, item := range b {
		if item.Week == week {
			return item, true
		}
	}
	return KickerBet{}, false
}

func (b Bets) Upsert(kb KickerBet) Bets {
	out := make(Bets, 0, len(b)+1)
	replaced := false
	for _, item := range b {
		if item.Week == kb.Week {
			if !replaced {
				out = append(out, kb)
				replaced = true
			}
			continue
		}
		out = append(out, item)
	}
	if !replaced {
		out = append(out, kb)
	}
	return out
}

// RecomputeLateness rederives IsLate on every prediction.
func (b Bets) RecomputeLateness(isLate func(time.Time) bool) Bets {
	out := make(Bets, len(b))
	for i, item := range b {
		preds := make([]Prediction, len(item.Predictions))
		for j, p := range item.Predictions {
			p.IsLate = isLate(p.SubmittedAt)
			preds[j] = p
		}
		item.Predictions = preds
		out[i] = item
	}
	return out
}

// OddsTable holds at most one odds record per (player, week).
type OddsTable []Odds

func (t OddsTable) ForPlayer(playerName string, week int) (float64, bool) {
	for _, item := range t {
		if item.Week == week && item.PlayerName == playerName {
			if item.Odds <= 0 {
				return 0, false
			}
			return item.Odds, true
		}
	}
	return 0, false
}

func (t OddsTable) Upsert(rec Odds) OddsTable {
	out := t.Remove(rec.PlayerName, rec.Week)
	return append(out, rec)
}

func (t OddsTable) Remove(playerName string, week int) OddsTable {
	out := make(OddsTable, 0, len(t)+1)
	for _, item := range t {
		if item.Week == week && item.PlayerName == playerName {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Results holds at most one result per week.
type Results []Result

func (r Results) ForWeek(week int) (Result, bool) {
	for _, item := range r {
		if item.Week == week {
			return item, true
		}
	}
	return Result{}, false
}

func (r Results) Upsert(res Result) Results {
	out := make(Results, 0, len(r)+1)
	for _, item := range r {
		if item.Week == res.Week {
			continue
		}
		out = append(out, item)
	}
	return append(out, res)
}

// Earnings is stake times the player's odds when they are a frozen winner for
// week. A winner without odds earns 0.
func Earnings(results Results, odds OddsTable, playerName string, week int, stake float64) float64 {
	res, ok := results.ForWeek(week)
	if !ok || !res.HasWinner(playerName) {
		return 0
	}
	price, ok := odds.ForPlayer(playerName, week)
	if !ok {
		return 0
	}
	return stake * price
}
