package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseScore(t *testing.T) {
	cases := []struct {
		raw    string
		played bool
		g1, g2 int
	}{
		{"3:1", true, 3, 1},
		{"0:0", true, 0, 0},
		{" 10 : 2 ", true, 10, 2},
		{"-", false, 0, 0},
		{"", false, 0, 0},
		{"None:None", false, 0, 0},
		{"3:", false, 0, 0},
		{"-1:2", false, 0, 0},
		{"a:b", false, 0, 0},
		{"3", false, 0, 0},
	}
	for _, tc := range cases {
		s := ParseScore(tc.raw)
		g1, g2, played := s.Goals()
		if played != tc.played {
			t.Fatalf("ParseScore(%q) played = %v, want %v", tc.raw, played, tc.played)
		}
		if played && (g1 != tc.g1 || g2 != tc.g2) {
			t.Fatalf("ParseScore(%q) = %d:%d, want %d:%d", tc.raw, g1, g2, tc.g1, tc.g2)
		}
	}
}

func TestParseGoals(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		err  error
	}{
		{"0", 0, nil},
		{"7", 7, nil},
		{" 4 ", 4, nil},
		{"", 0, ErrGoalsRequired},
		{"  ", 0, ErrGoalsRequired},
		{"x", 0, ErrGoalsNotInt},
		{"1.5", 0, ErrGoalsNotInt},
		{"-2", 0, ErrGoalsNegative},
	}
	for _, tc := range cases {
		got, err := ParseGoals(tc.raw)
		if !errors.Is(err, tc.err) {
			t.Fatalf("ParseGoals(%q) error = %v, want %v", tc.raw, err, tc.err)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseGoals(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestScoreJSON(t *testing.T) {
	m := Match{MatchNumber: 1, Team1: "A", Team2: "B", Score: Played(2, 2)}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var decoded struct {
		Score string `json:"score"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if decoded.Score != "2:2" {
		t.Fatalf("encoded score = %q, want 2:2", decoded.Score)
	}

	var unplayed Match
	if err := json.Unmarshal([]byte(`{"score":"-"}`), &unplayed); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if unplayed.Score.IsPlayed() {
		t.Fatalf("score %q decoded as played", "-")
	}

	var null Match
	if err := json.Unmarshal([]byte(`{"score":null}`), &null); err != nil {
		t.Fatalf("unmarshal null error: %v", err)
	}
	if null.Score.IsPlayed() {
		t.Fatalf("null score decoded as played")
	}

	if err := json.Unmarshal([]byte(`{"score":5}`), &null); err == nil {
		t.Fatalf("numeric score should be rejected")
	}
}

func TestKnockoutMatchWinner(t *testing.T) {
	m := &KnockoutMatch{Round: RoundFinal, Team1: "A", Team2: "B"}
	if _, _, ok := m.Winner(); ok {
		t.Fatalf("unplayed match has a winner")
	}
	m.Score = Played(1, 1)
	if _, _, ok := m.Winner(); ok {
		t.Fatalf("drawn match has a winner")
	}
	m.Score = Played(1, 3)
	winner, loser, ok := m.Winner()
	if !ok || winner != "B" || loser != "A" {
		t.Fatalf("Winner() = %q, %q, %v, want B, A, true", winner, loser, ok)
	}
}
