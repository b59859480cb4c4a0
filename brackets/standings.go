package brackets

import (
	"log/slog"
	"sort"

	"github.com/Dosada05/kicker-tournament/models"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// ComputeStandings resets and rebuilds the stats of teams from matches and
// returns them ranked by points, goal difference and goals scored. Teams that
// are still tied keep their input order; there is no head-to-head tiebreak.
// Matches naming a team that is not in teams are logged and skipped.
func ComputeStandings(teams []*models.Team, matches []*models.Match, logger *slog.Logger) []*models.TeamStanding {
	accumulate(teams, matches, logger)
	return rank(teams, func(a, b *models.Team) bool {
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		return a.GoalsFor > b.GoalsFor
	})
}

// ComputeOverallStandings ranks by points and goals scored only. It is used
// for seeding a tournament that has no group phase.
func ComputeOverallStandings(teams []*models.Team, matches []*models.Match, logger *slog.Logger) []*models.TeamStanding {
	accumulate(teams, matches, logger)
	return rank(teams, func(a, b *models.Team) bool {
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.GoalsFor > b.GoalsFor
	})
}

func accumulate(teams []*models.Team, matches []*models.Match, logger *slog.Logger) {
	lookup := make(map[string]*models.Team, len(teams))
	for _, team := range teams {
		team.ResetStats()
		lookup[team.Name] = team
	}

	for _, m := range matches {
		g1, g2, played := m.Score.Goals()
		if !played {
			continue
		}
		t1, ok1 := lookup[m.Team1]
		t2, ok2 := lookup[m.Team2]
		if !ok1 || !ok2 {
			if logger != nil {
				logger.Warn("skipping match in standings",
					slog.Int("match_number", m.MatchNumber),
					slog.String("team1", m.Team1),
					slog.String("team2", m.Team2),
					slog.Any("error", ErrUnknownTeamReference))
			}
			continue
		}

		t1.GamesPlayed++
		t2.GamesPlayed++
		t1.GoalsFor += g1
		t1.GoalsAgainst += g2
		t2.GoalsFor += g2
		t2.GoalsAgainst += g1

		switch {
		case g1 > g2:
			t1.Points += pointsForWin
			t1.Wins++
			t2.Losses++
		case g2 > g1:
			t2.Points += pointsForWin
			t2.Wins++
			t1.Losses++
		default:
			t1.Points += pointsForDraw
			t2.Points += pointsForDraw
			t1.Draws++
			t2.Draws++
		}
	}
}

func rank(teams []*models.Team, less func(a, b *models.Team) bool) []*models.TeamStanding {
	ordered := make([]*models.Team, len(teams))
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})

	standings := make([]*models.TeamStanding, len(ordered))
	for i, team := range ordered {
		standings[i] = &models.TeamStanding{
			Rank:            i + 1,
			Team:            team,
			ScoreDifference: team.GoalDifference(),
		}
	}
	return standings
}

// StandingTeams strips the rows down to the ranked teams.
func StandingTeams(standings []*models.TeamStanding) []*models.Team {
	teams := make([]*models.Team, len(standings))
	for i, s := range standings {
		teams[i] = s.Team
	}
	return teams
}
