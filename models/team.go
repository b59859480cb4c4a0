package models

// TeamStats holds the aggregate group-stage figures of a team. They are
// recomputed from match results and never edited directly.
type TeamStats struct {
	Points       int `json:"points"`
	GamesPlayed  int `json:"games_played"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

// Team is a pair of players registered under a unique name.
type Team struct {
	Name      string    `json:"name"`
	Players   [2]string `json:"players"`
	PlayerIDs [2]string `json:"player_ids"`
	TeamStats
}

func (t *Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

func (t *Team) ResetStats() {
	t.TeamStats = TeamStats{}
}

// RosterTeam is a team row from the external team database.
type RosterTeam struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Player1 string `json:"player_1" db:"player_1"`
	Player2 string `json:"player_2" db:"player_2"`
}
