package models

import (
	"sort"
	"time"
)

// DateLayout is the calendar date format of Tournament.Date.
const DateLayout = "2006-01-02"

// Group is a labelled set of teams playing a round-robin among themselves.
type Group struct {
	Label string   `json:"label"`
	Teams []string `json:"teams"`
}

func (g *Group) Has(team string) bool {
	for _, name := range g.Teams {
		if name == team {
			return true
		}
	}
	return false
}

// Tournament представляет турнир со всеми командами, группами и сеткой.
type Tournament struct {
	Name            string              `json:"name"`
	Date            string              `json:"date"`
	CreatedAt       time.Time           `json:"created_at"`
	NumGroups       int                 `json:"num_groups"`
	GroupPhase      bool                `json:"group_phase"`
	DoubleRound     bool                `json:"double_round"`
	Teams           []*Team             `json:"teams"`
	Groups          []*Group            `json:"groups"`
	GroupMatches    map[string][]*Match `json:"group_matches"`
	KnockoutRound   []*KnockoutMatch    `json:"ko_round"`
	ScheduleCreated bool                `json:"schedule_created"`
}

func (t *Tournament) Team(name string) (*Team, bool) {
	for _, team := range t.Teams {
		if team.Name == name {
			return team, true
		}
	}
	return nil, false
}

func (t *Tournament) Group(label string) (*Group, bool) {
	for _, g := range t.Groups {
		if g.Label == label {
			return g, true
		}
	}
	return nil, false
}

// GroupTeams resolves the team records of a group, in group order.
// Names without a team record are dropped.
func (t *Tournament) GroupTeams(label string) []*Team {
	g, ok := t.Group(label)
	if !ok {
		return nil
	}
	teams := make([]*Team, 0, len(g.Teams))
	for _, name := range g.Teams {
		if team, ok := t.Team(name); ok {
			teams = append(teams, team)
		}
	}
	return teams
}

// AllGroupMatches returns the matches of every group ordered by match number.
func (t *Tournament) AllGroupMatches() []*Match {
	var all []*Match
	for _, matches := range t.GroupMatches {
		all = append(all, matches...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].MatchNumber < all[j].MatchNumber
	})
	return all
}

func (t *Tournament) GroupMatch(number int) (*Match, bool) {
	for _, matches := range t.GroupMatches {
		for _, m := range matches {
			if m.MatchNumber == number {
				return m, true
			}
		}
	}
	return nil, false
}

func (t *Tournament) KnockoutMatch(round KnockoutRound) (*KnockoutMatch, bool) {
	for _, m := range t.KnockoutRound {
		if m.Round == round {
			return m, true
		}
	}
	return nil, false
}

// KnockoutMatches returns the matches of one stage in bracket order.
func (t *Tournament) KnockoutMatches(stage KnockoutStage) []*KnockoutMatch {
	var matches []*KnockoutMatch
	for _, m := range t.KnockoutRound {
		if m.Round.Stage() == stage {
			matches = append(matches, m)
		}
	}
	return matches
}

func (t *Tournament) HasQuarterfinals() bool {
	return len(t.KnockoutMatches(StageQuarterfinals)) > 0
}

// KnockoutStage derives the bracket state from the recorded knockout matches.
func (t *Tournament) KnockoutStage() KnockoutStage {
	if len(t.KnockoutRound) == 0 {
		return StageEmpty
	}
	if finals := t.KnockoutMatches(StageFinals); len(finals) > 0 {
		for _, m := range finals {
			if _, _, ok := m.Winner(); !ok {
				return StageFinals
			}
		}
		return StageComplete
	}
	if len(t.KnockoutMatches(StageSemifinals)) > 0 {
		return StageSemifinals
	}
	return StageQuarterfinals
}

func (t *Tournament) Progress() Progress {
	p := Progress{KnockoutStage: t.KnockoutStage()}
	for _, m := range t.AllGroupMatches() {
		p.GroupTotal++
		if m.Score.IsPlayed() {
			p.GroupPlayed++
		}
	}
	if len(t.KnockoutRound) > 0 {
		p.KnockoutTotal = 4
		if t.HasQuarterfinals() {
			p.KnockoutTotal = 8
		}
		for _, m := range t.KnockoutRound {
			if m.Score.IsPlayed() {
				p.KnockoutPlayed++
			}
		}
	}
	p.GroupPercent = percent(p.GroupPlayed, p.GroupTotal)
	p.KnockoutPercent = percent(p.KnockoutPlayed, p.KnockoutTotal)
	return p
}

// TournamentStore is the whole persisted document.
type TournamentStore struct {
	Tournaments       map[string]*Tournament `json:"tournaments"`
	CurrentTournament *string                `json:"current_tournament"`
}

func NewTournamentStore() *TournamentStore {
	return &TournamentStore{Tournaments: make(map[string]*Tournament)}
}

func (s *TournamentStore) Current() (*Tournament, bool) {
	if s.CurrentTournament == nil {
		return nil, false
	}
	t, ok := s.Tournaments[*s.CurrentTournament]
	return t, ok
}

// Names returns the tournament names in lexical order.
func (s *TournamentStore) Names() []string {
	names := make([]string, 0, len(s.Tournaments))
	for name := range s.Tournaments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
