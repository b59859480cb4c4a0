package brackets

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/Dosada05/kicker-tournament/models"
)

var groupLabels = []string{"A", "B", "C", "D"}

// NewGroups returns empty groups for a tournament with numGroups groups.
// Zero groups means the tournament has no group phase.
func NewGroups(numGroups int) ([]*models.Group, error) {
	switch numGroups {
	case 0, 1, 2, 4:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGroupCount, numGroups)
	}
	groups := make([]*models.Group, numGroups)
	for i := range groups {
		groups[i] = &models.Group{Label: groupLabels[i], Teams: []string{}}
	}
	return groups, nil
}

// AssignGroups replaces the group assignment of t. Teams missing from
// assignment stay unassigned. The input is fully validated first.
func AssignGroups(t *models.Tournament, assignment map[string]string) error {
	if t.ScheduleCreated {
		return ErrRosterFrozen
	}
	if !t.GroupPhase {
		return ErrGroupPhaseDisabled
	}
	for team, label := range assignment {
		if _, ok := t.Team(team); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTeam, team)
		}
		if _, ok := t.Group(label); !ok {
			return fmt.Errorf("%w: %q for team %q", ErrUnknownGroup, label, team)
		}
	}

	// Roster order keeps the assignment deterministic for a given input.
	for _, g := range t.Groups {
		g.Teams = []string{}
	}
	for _, team := range t.Teams {
		label, ok := assignment[team.Name]
		if !ok {
			continue
		}
		g, _ := t.Group(label)
		g.Teams = append(g.Teams, team.Name)
	}
	return nil
}

// DrawGroups shuffles the roster with rng and deals the teams across the
// groups one at a time.
func DrawGroups(t *models.Tournament, rng *rand.Rand) error {
	if t.ScheduleCreated {
		return ErrRosterFrozen
	}
	if !t.GroupPhase || len(t.Groups) == 0 {
		return ErrGroupPhaseDisabled
	}

	names := make([]string, len(t.Teams))
	for i, team := range t.Teams {
		names[i] = team.Name
	}
	sort.Strings(names)
	if rng != nil {
		rng.Shuffle(len(names), func(i, j int) {
			names[i], names[j] = names[j], names[i]
		})
	}

	assignment := make(map[string]string, len(names))
	for i, name := range names {
		assignment[name] = t.Groups[i%len(t.Groups)].Label
	}
	return AssignGroups(t, assignment)
}
