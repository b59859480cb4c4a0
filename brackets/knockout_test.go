package brackets

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Dosada05/kicker-tournament/models"
)

// seededRoster returns a tournament without group phase whose overall
// standings are the roster order S1..Sn.
func seededRoster(n int) *models.Tournament {
	t := &models.Tournament{Name: "Cup", GroupMatches: map[string][]*models.Match{}}
	for i := 1; i <= n; i++ {
		t.Teams = append(t.Teams, &models.Team{Name: fmt.Sprintf("S%d", i)})
	}
	return t
}

func record(t *testing.T, b *KnockoutBuilder, tour *models.Tournament, round models.KnockoutRound, g1, g2 string) {
	t.Helper()
	if err := b.RecordScore(tour, round, g1, g2); err != nil {
		t.Fatalf("record %s: %v", round, err)
	}
}

func assertPair(t *testing.T, tour *models.Tournament, round models.KnockoutRound, team1, team2 string) {
	t.Helper()
	m, ok := tour.KnockoutMatch(round)
	if !ok {
		t.Fatalf("%s missing", round)
	}
	if m.Team1 != team1 || m.Team2 != team2 {
		t.Fatalf("%s = %s vs %s, want %s vs %s", round, m.Team1, m.Team2, team1, team2)
	}
	if m.Score.IsPlayed() {
		t.Fatalf("%s created with a score", round)
	}
}

func TestSeedQuarterfinalPairings(t *testing.T) {
	b := NewKnockoutBuilder(nil)
	tour := seededRoster(8)
	if err := b.Seed(tour, true); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(tour.KnockoutRound) != 4 {
		t.Fatalf("first round = %d matches, want 4", len(tour.KnockoutRound))
	}
	assertPair(t, tour, models.RoundQuarterfinal1, "S1", "S8")
	assertPair(t, tour, models.RoundQuarterfinal2, "S2", "S7")
	assertPair(t, tour, models.RoundQuarterfinal3, "S3", "S6")
	assertPair(t, tour, models.RoundQuarterfinal4, "S4", "S5")

	if err := b.Seed(tour, true); !errors.Is(err, ErrKnockoutAlreadyCreated) {
		t.Fatalf("second seed: error = %v, want ErrKnockoutAlreadyCreated", err)
	}
}

func TestSeedSemifinalPairings(t *testing.T) {
	b := NewKnockoutBuilder(nil)
	tour := seededRoster(6)
	if err := b.Seed(tour, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	assertPair(t, tour, models.RoundSemifinal1, "S1", "S4")
	assertPair(t, tour, models.RoundSemifinal2, "S2", "S3")
	if tour.HasQuarterfinals() {
		t.Fatalf("bracket without quarterfinals reports quarterfinals")
	}
}

func TestSeedNotEnoughQualifiers(t *testing.T) {
	b := NewKnockoutBuilder(nil)

	if err := b.Seed(seededRoster(3), false); !errors.Is(err, ErrNotEnoughQualifiers) {
		t.Fatalf("3 teams: error = %v, want ErrNotEnoughQualifiers", err)
	}
	if err := b.Seed(seededRoster(6), true); !errors.Is(err, ErrNotEnoughQualifiers) {
		t.Fatalf("6 teams with quarterfinals: error = %v, want ErrNotEnoughQualifiers", err)
	}

	tour := newTournament([]string{"A", "B"}, map[string][]string{
		"A": {"a1", "a2", "a3"},
		"B": {"b1", "b2", "b3"},
	})
	if err := b.Seed(tour, true); !errors.Is(err, ErrNotEnoughQualifiers) {
		t.Fatalf("two groups of three with quarterfinals: error = %v, want ErrNotEnoughQualifiers", err)
	}
	if len(tour.KnockoutRound) != 0 {
		t.Fatalf("failed seeding created matches")
	}
}

func TestSeedTwoGroupsCrossSeeding(t *testing.T) {
	b := NewKnockoutBuilder(nil)
	tour := newTournament([]string{"A", "B"}, map[string][]string{
		"A": {"a1", "a2", "a3"},
		"B": {"b1", "b2", "b3"},
	})
	if err := b.Seed(tour, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	assertPair(t, tour, models.RoundSemifinal1, "a1", "b2")
	assertPair(t, tour, models.RoundSemifinal2, "b1", "a2")
}

func TestSeedTwoGroupsQuarterfinals(t *testing.T) {
	b := NewKnockoutBuilder(nil)
	tour := newTournament([]string{"A", "B"}, map[string][]string{
		"A": {"a1", "a2", "a3", "a4"},
		"B": {"b1", "b2", "b3", "b4"},
	})
	if err := b.Seed(tour, true); err != nil {
		t.Fatalf("seed: %v", err)
	}
	assertPair(t, tour, models.RoundQuarterfinal1, "a1", "b4")
	assertPair(t, tour, models.RoundQuarterfinal2, "a2", "b3")
	assertPair(t, tour, models.RoundQuarterfinal3, "a3", "b2")
	assertPair(t, tour, models.RoundQuarterfinal4, "a4", "b1")
}

func TestSeedFourGroups(t *testing.T) {
	groups := map[string][]string{
		"A": {"a1", "a2"},
		"B": {"b1", "b2"},
		"C": {"c1", "c2"},
		"D": {"d1", "d2"},
	}
	b := NewKnockoutBuilder(nil)

	semis := newTournament([]string{"A", "B", "C", "D"}, groups)
	if err := b.Seed(semis, false); err != nil {
		t.Fatalf("seed semifinals: %v", err)
	}
	assertPair(t, semis, models.RoundSemifinal1, "a1", "d1")
	assertPair(t, semis, models.RoundSemifinal2, "b1", "c1")

	quarters := newTournament([]string{"A", "B", "C", "D"}, groups)
	if err := b.Seed(quarters, true); err != nil {
		t.Fatalf("seed quarterfinals: %v", err)
	}
	assertPair(t, quarters, models.RoundQuarterfinal1, "a1", "d2")
	assertPair(t, quarters, models.RoundQuarterfinal4, "b2", "c1")
}

func TestSeedUsesGroupStandings(t *testing.T) {
	tour := newTournament([]string{"A"}, map[string][]string{"A": {"w", "x", "y", "z"}})
	if err := GenerateSchedule(tour, NewRoundRobinGenerator(nil)); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	// z wins everything, y beats w and x, x beats w.
	scores := map[int][2]string{
		1: {"0", "1"}, // w-x
		2: {"0", "1"}, // w-y
		3: {"0", "1"}, // w-z
		4: {"0", "1"}, // x-y
		5: {"0", "1"}, // x-z
		6: {"0", "1"}, // y-z
	}
	for n, s := range scores {
		if err := RecordGroupScore(tour, n, s[0], s[1]); err != nil {
			t.Fatalf("record %d: %v", n, err)
		}
	}
	b := NewKnockoutBuilder(nil)
	if err := b.Seed(tour, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	assertPair(t, tour, models.RoundSemifinal1, "z", "w")
	assertPair(t, tour, models.RoundSemifinal2, "y", "x")
}

func TestAdvanceRequiresEveryQuarterfinal(t *testing.T) {
	b := NewKnockoutBuilder(nil)
	tour := seededRoster(8)
	if err := b.Advance(tour); !errors.Is(err, ErrRoundNotReady) {
		t.Fatalf("advance before seeding: error = %v, want ErrRoundNotReady", err)
	}
	if err := b.Seed(tour, true); err != nil {
		t.Fatalf("seed: %v", err)
	}

	record(t, b, tour, models.RoundQuarterfinal1, "2", "0")
	record(t, b, tour, models.RoundQuarterfinal2, "2", "0")
	record(t, b, tour, models.RoundQuarterfinal3, "2", "0")
	if err := b.Advance(tour); !errors.Is(err, ErrRoundNotReady) {
		t.Fatalf("advance with 3 of 4 results: error = %v, want ErrRoundNotReady", err)
	}
	if len(tour.KnockoutRound) != 4 {
		t.Fatalf("semifinals created from an incomplete round")
	}
}

func TestAdvanceRejectsTie(t *testing.T) {
	b := NewKnockoutBuilder(nil)
	tour := seededRoster(8)
	if err := b.Seed(tour, true); err != nil {
		t.Fatalf("seed: %v", err)
	}
	record(t, b, tour, models.RoundQuarterfinal1, "1", "0")
	record(t, b, tour, models.RoundQuarterfinal2, "2", "2")
	record(t, b, tour, models.RoundQuarterfinal3, "1", "0")
	record(t, b, tour, models.RoundQuarterfinal4, "1", "0")

	if err := b.Advance(tour); !errors.Is(err, ErrRoundNotReady) {
		t.Fatalf("advance with a tie: error = %v, want ErrRoundNotReady", err)
	}
	if tour.KnockoutStage() != models.StageQuarterfinals {
		t.Fatalf("stage = %s after rejected advance", tour.KnockoutStage())
	}

	// Golden goal recorded afterwards.
	record(t, b, tour, models.RoundQuarterfinal2, "2", "3")
	if err := b.Advance(tour); err != nil {
		t.Fatalf("advance after tie resolved: %v", err)
	}
}

func TestAdvanceFullBracket(t *testing.T) {
	b := NewKnockoutBuilder(nil)
	tour := seededRoster(8)
	if err := b.Seed(tour, true); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Winners: S1, S7 (upset), S3, S5 (upset).
	record(t, b, tour, models.RoundQuarterfinal1, "3", "1")
	record(t, b, tour, models.RoundQuarterfinal2, "0", "2")
	record(t, b, tour, models.RoundQuarterfinal3, "4", "3")
	record(t, b, tour, models.RoundQuarterfinal4, "1", "5")
	if err := b.Advance(tour); err != nil {
		t.Fatalf("advance to semifinals: %v", err)
	}
	assertPair(t, tour, models.RoundSemifinal1, "S1", "S5")
	assertPair(t, tour, models.RoundSemifinal2, "S7", "S3")

	if err := b.RecordScore(tour, models.RoundQuarterfinal1, "0", "9"); !errors.Is(err, ErrRoundLocked) {
		t.Fatalf("edit quarterfinal after semifinals: error = %v, want ErrRoundLocked", err)
	}

	record(t, b, tour, models.RoundSemifinal1, "1", "2")
	record(t, b, tour, models.RoundSemifinal2, "3", "0")
	if err := b.Advance(tour); err != nil {
		t.Fatalf("advance to finals: %v", err)
	}
	assertPair(t, tour, models.RoundThirdPlace, "S1", "S3")
	assertPair(t, tour, models.RoundFinal, "S5", "S7")
	if len(tour.KnockoutRound) != 8 {
		t.Fatalf("bracket = %d matches, want 8", len(tour.KnockoutRound))
	}

	if err := b.RecordScore(tour, models.RoundSemifinal2, "0", "1"); !errors.Is(err, ErrRoundLocked) {
		t.Fatalf("edit semifinal after finals: error = %v, want ErrRoundLocked", err)
	}

	record(t, b, tour, models.RoundFinal, "2", "1")
	if err := b.Advance(tour); !errors.Is(err, ErrRoundNotReady) {
		t.Fatalf("advance without third place result: error = %v, want ErrRoundNotReady", err)
	}
	record(t, b, tour, models.RoundThirdPlace, "1", "0")
	if tour.KnockoutStage() != models.StageComplete {
		t.Fatalf("stage = %s, want complete", tour.KnockoutStage())
	}
	if err := b.Advance(tour); !errors.Is(err, ErrKnockoutComplete) {
		t.Fatalf("advance complete bracket: error = %v, want ErrKnockoutComplete", err)
	}

	// Finals stay editable.
	record(t, b, tour, models.RoundFinal, "1", "2")
}

func TestRecordKnockoutScoreValidation(t *testing.T) {
	b := NewKnockoutBuilder(nil)
	tour := seededRoster(4)
	if err := b.Seed(tour, false); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := b.RecordScore(tour, models.RoundSemifinal1, "x", "-1")
	if !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("error = %v, want ErrInvalidScore", err)
	}
	if !errors.Is(err, models.ErrGoalsNotInt) || !errors.Is(err, models.ErrGoalsNegative) {
		t.Fatalf("error %v does not report both fields", err)
	}
	var scoreErr *InvalidScoreError
	if !errors.As(err, &scoreErr) || scoreErr.Field != "team1" {
		t.Fatalf("errors.As = %+v, want team1 field first", scoreErr)
	}
	if m, _ := tour.KnockoutMatch(models.RoundSemifinal1); m.Score.IsPlayed() {
		t.Fatalf("rejected score was stored")
	}

	if err := b.RecordScore(tour, models.RoundFinal, "1", "0"); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("unknown round: error = %v, want ErrMatchNotFound", err)
	}
}
