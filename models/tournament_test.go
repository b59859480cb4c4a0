package models

import "testing"

func TestKnockoutStage(t *testing.T) {
	tour := &Tournament{}
	if got := tour.KnockoutStage(); got != StageEmpty {
		t.Fatalf("stage = %s, want empty", got)
	}

	for _, r := range QuarterfinalRounds {
		tour.KnockoutRound = append(tour.KnockoutRound, &KnockoutMatch{Round: r, Team1: "x", Team2: "y"})
	}
	if got := tour.KnockoutStage(); got != StageQuarterfinals {
		t.Fatalf("stage = %s, want quarterfinals", got)
	}

	for _, r := range SemifinalRounds {
		tour.KnockoutRound = append(tour.KnockoutRound, &KnockoutMatch{Round: r, Team1: "x", Team2: "y"})
	}
	if got := tour.KnockoutStage(); got != StageSemifinals {
		t.Fatalf("stage = %s, want semifinals", got)
	}

	third := &KnockoutMatch{Round: RoundThirdPlace, Team1: "x", Team2: "y", Score: Played(1, 0)}
	final := &KnockoutMatch{Round: RoundFinal, Team1: "x", Team2: "y", Score: Played(2, 2)}
	tour.KnockoutRound = append(tour.KnockoutRound, third, final)
	if got := tour.KnockoutStage(); got != StageFinals {
		t.Fatalf("stage with tied final = %s, want finals", got)
	}

	final.Score = Played(3, 2)
	if got := tour.KnockoutStage(); got != StageComplete {
		t.Fatalf("stage = %s, want complete", got)
	}
}

func TestProgress(t *testing.T) {
	tour := &Tournament{
		GroupMatches: map[string][]*Match{
			"A": {
				{MatchNumber: 1, Team1: "a", Team2: "b", Score: Played(1, 0)},
				{MatchNumber: 2, Team1: "a", Team2: "c"},
			},
			"B": {
				{MatchNumber: 3, Team1: "d", Team2: "e", Score: Played(0, 0)},
				{MatchNumber: 4, Team1: "d", Team2: "f", Score: Played(2, 1)},
			},
		},
	}

	p := tour.Progress()
	if p.GroupPlayed != 3 || p.GroupTotal != 4 || p.GroupPercent != 75 {
		t.Fatalf("group progress = %d/%d (%d%%), want 3/4 (75%%)", p.GroupPlayed, p.GroupTotal, p.GroupPercent)
	}
	if p.KnockoutTotal != 0 || p.KnockoutPercent != 0 {
		t.Fatalf("knockout progress before seeding = %d total, %d%%", p.KnockoutTotal, p.KnockoutPercent)
	}

	tour.KnockoutRound = []*KnockoutMatch{
		{Round: RoundSemifinal1, Team1: "a", Team2: "e", Score: Played(1, 0)},
		{Round: RoundSemifinal2, Team1: "d", Team2: "b"},
	}
	p = tour.Progress()
	if p.KnockoutPlayed != 1 || p.KnockoutTotal != 4 || p.KnockoutPercent != 25 {
		t.Fatalf("knockout progress = %d/%d (%d%%), want 1/4 (25%%)", p.KnockoutPlayed, p.KnockoutTotal, p.KnockoutPercent)
	}

	tour.KnockoutRound = []*KnockoutMatch{{Round: RoundQuarterfinal1, Team1: "a", Team2: "b"}}
	if got := tour.Progress().KnockoutTotal; got != 8 {
		t.Fatalf("knockout total with quarterfinals = %d, want 8", got)
	}
}

func TestAllGroupMatchesOrdered(t *testing.T) {
	tour := &Tournament{
		GroupMatches: map[string][]*Match{
			"B": {{MatchNumber: 4}, {MatchNumber: 3}},
			"A": {{MatchNumber: 1}, {MatchNumber: 2}},
		},
	}
	all := tour.AllGroupMatches()
	for i, m := range all {
		if m.MatchNumber != i+1 {
			t.Fatalf("match %d has number %d, want %d", i, m.MatchNumber, i+1)
		}
	}
}
