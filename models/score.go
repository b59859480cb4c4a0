package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// UnplayedScore is the persisted sentinel for a match without a result.
const UnplayedScore = "-"

var (
	ErrGoalsRequired = errors.New("goal count is required")
	ErrGoalsNotInt   = errors.New("goal count must be an integer")
	ErrGoalsNegative = errors.New("goal count must not be negative")
)

// Score is either unplayed or a played pair of goal counts (team1, team2).
// The zero value is unplayed.
type Score struct {
	played bool
	team1  int
	team2  int
}

func Unplayed() Score {
	return Score{}
}

func Played(team1, team2 int) Score {
	return Score{played: true, team1: team1, team2: team2}
}

func (s Score) IsPlayed() bool { return s.played }

// Goals returns the goal counts. ok is false for an unplayed score.
func (s Score) Goals() (team1, team2 int, ok bool) {
	return s.team1, s.team2, s.played
}

func (s Score) IsDraw() bool {
	return s.played && s.team1 == s.team2
}

func (s Score) String() string {
	if !s.played {
		return UnplayedScore
	}
	return fmt.Sprintf("%d:%d", s.team1, s.team2)
}

// ParseGoals validates a single goal-count field.
func ParseGoals(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrGoalsRequired
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrGoalsNotInt
	}
	if n < 0 {
		return 0, ErrGoalsNegative
	}
	return n, nil
}

// ParseScore reads the stored "g1:g2" form. Anything that is not a pair of
// non-negative integers is treated as unplayed, matching how historic
// documents encoded missing results ("-", "None:None").
func ParseScore(raw string) Score {
	left, right, found := strings.Cut(strings.TrimSpace(raw), ":")
	if !found {
		return Unplayed()
	}
	g1, err := ParseGoals(left)
	if err != nil {
		return Unplayed()
	}
	g2, err := ParseGoals(right)
	if err != nil {
		return Unplayed()
	}
	return Played(g1, g2)
}

func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Score) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Unplayed()
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("score must be a string: %w", err)
	}
	*s = ParseScore(raw)
	return nil
}
