package models

// TeamStanding is one row of a ranked table.
type TeamStanding struct {
	Rank            int   `json:"rank"`
	Team            *Team `json:"team"`
	ScoreDifference int   `json:"score_difference"`
}

// GroupStandings is the ranked table of one group.
type GroupStandings struct {
	Group     string          `json:"group"`
	Standings []*TeamStanding `json:"standings"`
}

// Progress reports how many fixtures have a result.
type Progress struct {
	GroupPlayed     int           `json:"group_played"`
	GroupTotal      int           `json:"group_total"`
	GroupPercent    int           `json:"group_percent"`
	KnockoutPlayed  int           `json:"knockout_played"`
	KnockoutTotal   int           `json:"knockout_total"`
	KnockoutPercent int           `json:"knockout_percent"`
	KnockoutStage   KnockoutStage `json:"knockout_stage"`
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return part * 100 / total
}
