package brackets

import (
	"fmt"
	"log/slog"

	"github.com/Dosada05/kicker-tournament/models"
)

const (
	quarterfinalQualifiers = 8
	semifinalQualifiers    = 4
)

// KnockoutBuilder seeds the knockout bracket from the group standings and
// advances it round by round.
type KnockoutBuilder struct {
	logger *slog.Logger
}

func NewKnockoutBuilder(logger *slog.Logger) *KnockoutBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &KnockoutBuilder{logger: logger}
}

// Seed creates the first knockout round of t. With quarterfinals eight teams
// qualify (QF1 = 1v8, QF2 = 2v7, QF3 = 3v6, QF4 = 4v5), otherwise four
// (SF1 = 1v4, SF2 = 2v3).
func (b *KnockoutBuilder) Seed(t *models.Tournament, quarterfinals bool) error {
	if len(t.KnockoutRound) > 0 {
		return ErrKnockoutAlreadyCreated
	}
	if len(t.Teams) < MinTournamentTeams {
		return fmt.Errorf("%w: tournament has %d teams, min %d required", ErrNotEnoughQualifiers, len(t.Teams), MinTournamentTeams)
	}

	seeds, err := b.Qualifiers(t, quarterfinals)
	if err != nil {
		return err
	}

	var round []*models.KnockoutMatch
	if quarterfinals {
		round = pairSeeds(seeds, models.QuarterfinalRounds)
	} else {
		round = pairSeeds(seeds, models.SemifinalRounds)
	}

	t.KnockoutRound = round
	b.logger.Info("knockout bracket seeded",
		slog.String("tournament", t.Name),
		slog.Bool("quarterfinals", quarterfinals),
		slog.Any("seeds", seeds))
	return nil
}

// pairSeeds pairs seed i with seed n+1-i.
func pairSeeds(seeds []string, rounds []models.KnockoutRound) []*models.KnockoutMatch {
	n := len(seeds)
	matches := make([]*models.KnockoutMatch, 0, len(rounds))
	for i, round := range rounds {
		matches = append(matches, &models.KnockoutMatch{
			Round: round,
			Team1: seeds[i],
			Team2: seeds[n-1-i],
			Score: models.Unplayed(),
		})
	}
	return matches
}

// Qualifiers returns the seeded team names for the first knockout round.
func (b *KnockoutBuilder) Qualifiers(t *models.Tournament, quarterfinals bool) ([]string, error) {
	need := semifinalQualifiers
	if quarterfinals {
		need = quarterfinalQualifiers
	}

	if !t.GroupPhase {
		standings := ComputeOverallStandings(t.Teams, t.AllGroupMatches(), b.logger)
		return top(standings, need, "tournament")
	}

	tables := make([][]*models.TeamStanding, len(t.Groups))
	for i, g := range t.Groups {
		tables[i] = ComputeStandings(t.GroupTeams(g.Label), t.GroupMatches[g.Label], b.logger)
	}

	switch len(t.Groups) {
	case 1:
		return top(tables[0], need, t.Groups[0].Label)
	case 2:
		if quarterfinals {
			return concatTop(t.Groups, tables, 4)
		}
		// Cross seeding: SF1 = A1 vs B2, SF2 = B1 vs A2.
		first, err := top(tables[0], 2, t.Groups[0].Label)
		if err != nil {
			return nil, err
		}
		second, err := top(tables[1], 2, t.Groups[1].Label)
		if err != nil {
			return nil, err
		}
		return []string{first[0], second[0], first[1], second[1]}, nil
	case 4:
		if quarterfinals {
			return concatTop(t.Groups, tables, 2)
		}
		return concatTop(t.Groups, tables, 1)
	default:
		return nil, fmt.Errorf("%w: %d groups", ErrInvalidGroupCount, len(t.Groups))
	}
}

func concatTop(groups []*models.Group, tables [][]*models.TeamStanding, perGroup int) ([]string, error) {
	seeds := make([]string, 0, perGroup*len(groups))
	for i, table := range tables {
		names, err := top(table, perGroup, groups[i].Label)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, names...)
	}
	return seeds, nil
}

func top(standings []*models.TeamStanding, n int, source string) ([]string, error) {
	if len(standings) < n {
		return nil, fmt.Errorf("%w: %s has %d teams, %d needed", ErrNotEnoughQualifiers, source, len(standings), n)
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = standings[i].Team.Name
	}
	return names, nil
}

// Advance generates the next knockout round once every match of the current
// round has a decided result. Semifinals produce the third-place match and
// the final together.
func (b *KnockoutBuilder) Advance(t *models.Tournament) error {
	switch stage := t.KnockoutStage(); stage {
	case models.StageEmpty:
		return fmt.Errorf("%w: knockout bracket has not been seeded", ErrRoundNotReady)

	case models.StageQuarterfinals:
		winners, _, err := decided(t.KnockoutMatches(stage))
		if err != nil {
			return err
		}
		t.KnockoutRound = append(t.KnockoutRound,
			&models.KnockoutMatch{Round: models.RoundSemifinal1, Team1: winners[0], Team2: winners[3], Score: models.Unplayed()},
			&models.KnockoutMatch{Round: models.RoundSemifinal2, Team1: winners[1], Team2: winners[2], Score: models.Unplayed()},
		)

	case models.StageSemifinals:
		winners, losers, err := decided(t.KnockoutMatches(stage))
		if err != nil {
			return err
		}
		t.KnockoutRound = append(t.KnockoutRound,
			&models.KnockoutMatch{Round: models.RoundThirdPlace, Team1: losers[0], Team2: losers[1], Score: models.Unplayed()},
			&models.KnockoutMatch{Round: models.RoundFinal, Team1: winners[0], Team2: winners[1], Score: models.Unplayed()},
		)

	case models.StageFinals:
		_, _, err := decided(t.KnockoutMatches(stage))
		return err

	default:
		return ErrKnockoutComplete
	}

	b.logger.Info("knockout round advanced",
		slog.String("tournament", t.Name),
		slog.String("stage", string(t.KnockoutStage())))
	return nil
}

// decided returns winners and losers in bracket order, or ErrRoundNotReady
// when a match is unplayed or tied. Ties are settled outside the engine.
func decided(matches []*models.KnockoutMatch) (winners, losers []string, err error) {
	for _, m := range matches {
		if !m.Score.IsPlayed() {
			return nil, nil, fmt.Errorf("%w: %s has no result", ErrRoundNotReady, m.Round)
		}
		winner, loser, ok := m.Winner()
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s ended %s (n/a), the tie must be resolved first", ErrRoundNotReady, m.Round, m.Score)
		}
		winners = append(winners, winner)
		losers = append(losers, loser)
	}
	return winners, losers, nil
}

// RecordScore stores the result of a knockout match. The goal fields are
// validated before anything changes. A round whose results already fed the
// next round cannot be edited.
func (b *KnockoutBuilder) RecordScore(t *models.Tournament, round models.KnockoutRound, goals1, goals2 string) error {
	m, ok := t.KnockoutMatch(round)
	if !ok {
		return fmt.Errorf("%w: knockout round %q", ErrMatchNotFound, round)
	}
	if locked(t, round.Stage()) {
		return fmt.Errorf("%w: %s", ErrRoundLocked, round)
	}
	score, err := ParseScoreFields(goals1, goals2)
	if err != nil {
		return err
	}
	m.Score = score
	return nil
}

func locked(t *models.Tournament, stage models.KnockoutStage) bool {
	switch stage {
	case models.StageQuarterfinals:
		return len(t.KnockoutMatches(models.StageSemifinals)) > 0
	case models.StageSemifinals:
		return len(t.KnockoutMatches(models.StageFinals)) > 0
	default:
		return false
	}
}
