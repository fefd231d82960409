package kickerbet

import "testing"

func TestWinners_ExactMatchOnly(t *testing.T) {
	t.Parallel()

	predictions := []Prediction{
		{PlayerName: "Alice", HomeScore: 2, AwayScore: 1, Week: 2},
		{PlayerName: "Carl", HomeScore: 1, AwayScore: 2, Week: 2},
		{PlayerName: "Bob", HomeScore: 2, AwayScore: 1, Week: 2},
	}

	tests := []struct {
		name       string
		home, away int
		want       []string
	}{
		{name: "two exact matches", home: 2, away: 1, want: []string{"Alice", "Bob"}},
		{name: "no match", home: 2, away: 0, want: []string{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Winners(predictions, tc.home, tc.away)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestEarnings(t *testing.T) {
	t.Parallel()

	results := Results{{Week: 2, ActualHomeScore: 2, ActualAwayScore: 1, Winners: []string{"Alice", "Bob"}}}
	odds := OddsTable{{PlayerName: "Alice", Week: 2, Odds: 9, OddsFraction: "8/1"}}

	if got := Earnings(results, odds, "Alice", 2, 1); got != 9 {
		t.Fatalf("expected 9, got %v", got)
	}
	if got := Earnings(results, odds, "Bob", 2, 1); got != 0 {
		t.Fatalf("expected winner without odds to earn 0, got %v", got)
	}
	if got := Earnings(results, odds, "Carl", 2, 1); got != 0 {
		t.Fatalf("expected non-winner to earn 0, got %v", got)
	}
	if got := Earnings(results, odds, "Alice", 3, 1); got != 0 {
		t.Fatalf("expected no result week to earn 0, got %v", got)
	}
}

func TestWithPrediction_Overwrites(t *testing.T) {
	t.Parallel()

	kb := KickerBet{Week: 2, SelectedMatch: "Leeds v Derby", SelectedBy: "Amy"}
	kb = kb.WithPrediction(Prediction{PlayerName: "Amy", HomeScore: 1, AwayScore: 0, Week: 2})
	kb = kb.WithPrediction(Prediction{PlayerName: "Bob", HomeScore: 0, AwayScore: 0, Week: 2})
	kb = kb.WithPrediction(Prediction{PlayerName: "Amy", HomeScore: 3, AwayScore: 3, Week: 2})

	if len(kb.Predictions) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(kb.Predictions))
	}
	if kb.Predictions[0].HomeScore != 3 {
		t.Fatalf("expected Amy's prediction overwritten, got %+v", kb.Predictions[0])
	}
}

func TestValidateScore(t *testing.T) {
	t.Parallel()

	if err := ValidateScore(-1, 0); err != ErrInvalidScore {
		t.Fatalf("expected ErrInvalidScore, got %v", err)
	}
	if err := ValidateScore(0, 0); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
