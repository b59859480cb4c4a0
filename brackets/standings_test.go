package brackets

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/Dosada05/kicker-tournament/models"
)

func scheduledGroup(t *testing.T, scores map[int][2]string) *models.Tournament {
	t.Helper()
	tour := newTournament([]string{"A"}, map[string][]string{"A": {"A", "B", "C", "D"}})
	if err := GenerateSchedule(tour, NewRoundRobinGenerator(nil)); err != nil {
		t.Fatalf("generate schedule: %v", err)
	}
	for number, s := range scores {
		if err := RecordGroupScore(tour, number, s[0], s[1]); err != nil {
			t.Fatalf("record match %d: %v", number, err)
		}
	}
	return tour
}

// A-B=3:1, A-C=2:2, A-D=1:0, B-C=0:0, B-D=2:1, C-D=1:1
var scenarioScores = map[int][2]string{
	1: {"3", "1"},
	2: {"2", "2"},
	3: {"1", "0"},
	4: {"0", "0"},
	5: {"2", "1"},
	6: {"1", "1"},
}

func TestComputeStandingsScenario(t *testing.T) {
	tour := scheduledGroup(t, scenarioScores)

	matches := tour.GroupMatches["A"]
	if len(matches) != 6 {
		t.Fatalf("matches = %d, want 6", len(matches))
	}
	wantPairs := [][2]string{{"A", "B"}, {"A", "C"}, {"A", "D"}, {"B", "C"}, {"B", "D"}, {"C", "D"}}
	for i, m := range matches {
		if m.MatchNumber != i+1 || m.Team1 != wantPairs[i][0] || m.Team2 != wantPairs[i][1] {
			t.Fatalf("match %d = #%d %s-%s, want #%d %s-%s", i, m.MatchNumber, m.Team1, m.Team2, i+1, wantPairs[i][0], wantPairs[i][1])
		}
	}

	standings := ComputeStandings(tour.Teams, matches, nil)
	want := []struct {
		name   string
		points int
		gd     int
		gf     int
		played int
	}{
		{"A", 7, 3, 6, 3},
		{"B", 4, -1, 3, 3},
		{"C", 3, 0, 3, 3},
		{"D", 1, -2, 2, 3},
	}
	for i, w := range want {
		row := standings[i]
		if row.Rank != i+1 || row.Team.Name != w.name {
			t.Fatalf("rank %d = %s, want %s", i+1, row.Team.Name, w.name)
		}
		if row.Team.Points != w.points || row.ScoreDifference != w.gd || row.Team.GoalsFor != w.gf || row.Team.GamesPlayed != w.played {
			t.Fatalf("%s = %d pts, GD %d, GF %d, GP %d; want %d pts, GD %d, GF %d, GP %d",
				w.name, row.Team.Points, row.ScoreDifference, row.Team.GoalsFor, row.Team.GamesPlayed,
				w.points, w.gd, w.gf, w.played)
		}
	}
}

func TestComputeStandingsIdempotent(t *testing.T) {
	tour := scheduledGroup(t, scenarioScores)
	matches := tour.GroupMatches["A"]

	first := ComputeStandings(tour.Teams, matches, nil)
	snapshot := make([]models.TeamStats, len(first))
	names := make([]string, len(first))
	for i, row := range first {
		snapshot[i] = row.Team.TeamStats
		names[i] = row.Team.Name
	}

	second := ComputeStandings(tour.Teams, matches, nil)
	for i, row := range second {
		if row.Team.Name != names[i] || row.Team.TeamStats != snapshot[i] {
			t.Fatalf("second computation differs at rank %d: %s %+v vs %s %+v",
				i+1, row.Team.Name, row.Team.TeamStats, names[i], snapshot[i])
		}
	}
}

func TestComputeStandingsPointsAndGoalsBalance(t *testing.T) {
	tour := scheduledGroup(t, scenarioScores)
	matches := tour.GroupMatches["A"]
	standings := ComputeStandings(tour.Teams, matches, nil)

	decisive, drawn := 0, 0
	for _, m := range matches {
		if m.Score.IsDraw() {
			drawn++
		} else {
			decisive++
		}
	}

	points, gdSum := 0, 0
	for _, row := range standings {
		points += row.Team.Points
		gdSum += row.Team.GoalDifference()
		if row.Team.Wins+row.Team.Draws+row.Team.Losses != row.Team.GamesPlayed {
			t.Fatalf("%s: W+D+L != GP", row.Team.Name)
		}
	}
	if want := 3*decisive + 2*drawn; points != want {
		t.Fatalf("total points = %d, want %d", points, want)
	}
	if gdSum != 0 {
		t.Fatalf("goal differences sum to %d, want 0", gdSum)
	}
}

func TestComputeStandingsSkipsUnplayedAndUnknown(t *testing.T) {
	teams := []*models.Team{{Name: "A"}, {Name: "B"}}
	matches := []*models.Match{
		{MatchNumber: 1, Team1: "A", Team2: "B", Score: models.Unplayed()},
		{MatchNumber: 2, Team1: "A", Team2: "Ghost", Score: models.Played(5, 0)},
		{MatchNumber: 3, Team1: "B", Team2: "A", Score: models.Played(1, 0)},
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	standings := ComputeStandings(teams, matches, logger)

	if standings[0].Team.Name != "B" || standings[0].Team.Points != 3 {
		t.Fatalf("leader = %s with %d pts, want B with 3", standings[0].Team.Name, standings[0].Team.Points)
	}
	if a := standings[1].Team; a.GamesPlayed != 1 || a.GoalsFor != 0 {
		t.Fatalf("A counted a skipped match: GP %d, GF %d", a.GamesPlayed, a.GoalsFor)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Ghost")) {
		t.Fatalf("unknown team reference was not logged: %s", buf.String())
	}
}

func TestComputeStandingsTiebreaks(t *testing.T) {
	// X and Y are level on points; X has the better goal difference.
	teams := []*models.Team{{Name: "Z"}, {Name: "W"}, {Name: "Y"}, {Name: "X"}}
	matches := []*models.Match{
		{Team1: "X", Team2: "Z", Score: models.Played(5, 0)},
		{Team1: "X", Team2: "Y", Score: models.Played(0, 1)},
		{Team1: "Y", Team2: "W", Score: models.Played(0, 1)},
		{Team1: "Z", Team2: "W", Score: models.Played(1, 1)},
		{Team1: "Y", Team2: "Z", Score: models.Played(1, 0)},
		{Team1: "W", Team2: "X", Score: models.Played(2, 3)},
	}
	got := StandingTeams(ComputeStandings(teams, matches, nil))
	order := []string{got[0].Name, got[1].Name, got[2].Name, got[3].Name}
	// X: 6 pts GD +5, Y: 6 pts GD +1, W: 4 pts GD 0, Z: 1 pt GD -6
	want := []string{"X", "Y", "W", "Z"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestComputeStandingsStableOnFullTie(t *testing.T) {
	teams := []*models.Team{{Name: "first"}, {Name: "second"}, {Name: "third"}}
	standings := ComputeStandings(teams, nil, nil)
	for i, row := range standings {
		if row.Team != teams[i] {
			t.Fatalf("rank %d = %s, want input order %s", i+1, row.Team.Name, teams[i].Name)
		}
	}
}

func TestComputeOverallStandingsIgnoresGoalDifference(t *testing.T) {
	// A and B end on 4 points; B scored more but has the worse goal difference.
	teams := []*models.Team{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	matches := []*models.Match{
		{Team1: "A", Team2: "C", Score: models.Played(2, 0)},
		{Team1: "B", Team2: "C", Score: models.Played(5, 4)},
		{Team1: "A", Team2: "B", Score: models.Played(1, 1)},
	}
	overall := ComputeOverallStandings(teams, matches, nil)
	if overall[0].Team.Name != "B" {
		t.Fatalf("overall leader = %s, want B (more goals scored)", overall[0].Team.Name)
	}
	group := ComputeStandings(teams, matches, nil)
	if group[0].Team.Name != "A" {
		t.Fatalf("group leader = %s, want A (better goal difference)", group[0].Team.Name)
	}
}
