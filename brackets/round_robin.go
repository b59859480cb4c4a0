package brackets

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/Dosada05/kicker-tournament/models"
)

// MinTournamentTeams is the roster size required before any schedule or
// knockout action.
const MinTournamentTeams = 4

type RoundRobinGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoundRobinGenerator returns a generator that shuffles double round-robin
// groups with rng. A nil rng disables shuffling.
func NewRoundRobinGenerator(rng *rand.Rand) *RoundRobinGenerator {
	return &RoundRobinGenerator{rng: rng}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// Generate creates the matches of a round-robin group.
// For a single round-robin, each team plays every other team once.
// For a double round-robin, the return leg with swapped slots directly follows the first leg.
func (g *RoundRobinGenerator) Generate(teams []string, doubleRound bool, firstMatchNumber int) ([]*models.Match, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: found %d, min 2 required per group", ErrInsufficientTeams, len(teams))
	}

	order := make([]string, len(teams))
	copy(order, teams)
	if doubleRound {
		g.shuffle(order)
	}

	capacity := len(order) * (len(order) - 1) / 2
	if doubleRound {
		capacity *= 2
	}
	matches := make([]*models.Match, 0, capacity)
	matchNumber := firstMatchNumber

	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			matches = append(matches, &models.Match{
				MatchNumber: matchNumber,
				Team1:       order[i],
				Team2:       order[j],
				Score:       models.Unplayed(),
				Color:       models.DefaultMatchColor,
			})
			matchNumber++

			if doubleRound {
				matches = append(matches, &models.Match{
					MatchNumber: matchNumber,
					Team1:       order[j],
					Team2:       order[i],
					Score:       models.Unplayed(),
					Color:       models.DefaultMatchColor,
				})
				matchNumber++
			}
		}
	}

	return matches, nil
}

func (g *RoundRobinGenerator) shuffle(names []string) {
	if g.rng == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
}

// GenerateSchedule creates the fixtures of every group of t and marks the
// schedule as created. Match numbers run on across groups in label order.
// Nothing in t changes unless every group can be scheduled.
func GenerateSchedule(t *models.Tournament, gen ScheduleGenerator) error {
	if t.ScheduleCreated {
		return ErrScheduleAlreadyCreated
	}
	if !t.GroupPhase || len(t.Groups) == 0 {
		return ErrGroupPhaseDisabled
	}
	if len(t.Teams) < MinTournamentTeams {
		return fmt.Errorf("%w: tournament has %d teams, min %d required", ErrInsufficientTeams, len(t.Teams), MinTournamentTeams)
	}

	schedule := make(map[string][]*models.Match, len(t.Groups))
	matchNumber := 1
	for _, group := range t.Groups {
		matches, err := gen.Generate(group.Teams, t.DoubleRound, matchNumber)
		if err != nil {
			return fmt.Errorf("group %s: %w", group.Label, err)
		}
		matchNumber += len(matches)
		schedule[group.Label] = matches
	}

	t.GroupMatches = schedule
	t.ScheduleCreated = true
	return nil
}
