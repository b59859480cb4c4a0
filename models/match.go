package models

const DefaultMatchColor = "Rot vs Blau"

// Match is a group-stage fixture. MatchNumber is assigned when the schedule
// is generated and never changes afterwards.
type Match struct {
	MatchNumber int    `json:"match_number"`
	Team1       string `json:"team1"`
	Team2       string `json:"team2"`
	Score       Score  `json:"score"`
	Color       string `json:"color,omitempty"` // side assignment, display only
}

func (m *Match) Involves(team string) bool {
	return m.Team1 == team || m.Team2 == team
}

// KnockoutRound labels a single knockout fixture.
type KnockoutRound string

const (
	RoundQuarterfinal1 KnockoutRound = "Quarterfinal 1"
	RoundQuarterfinal2 KnockoutRound = "Quarterfinal 2"
	RoundQuarterfinal3 KnockoutRound = "Quarterfinal 3"
	RoundQuarterfinal4 KnockoutRound = "Quarterfinal 4"
	RoundSemifinal1    KnockoutRound = "Semifinal 1"
	RoundSemifinal2    KnockoutRound = "Semifinal 2"
	RoundThirdPlace    KnockoutRound = "Third Place"
	RoundFinal         KnockoutRound = "Final"
)

var (
	QuarterfinalRounds = []KnockoutRound{RoundQuarterfinal1, RoundQuarterfinal2, RoundQuarterfinal3, RoundQuarterfinal4}
	SemifinalRounds    = []KnockoutRound{RoundSemifinal1, RoundSemifinal2}
	FinalRounds        = []KnockoutRound{RoundThirdPlace, RoundFinal}
)

// KnockoutStage is the phase of the knockout bracket.
type KnockoutStage string

const (
	StageEmpty         KnockoutStage = "empty"
	StageQuarterfinals KnockoutStage = "quarterfinals"
	StageSemifinals    KnockoutStage = "semifinals"
	StageFinals        KnockoutStage = "finals"
	StageComplete      KnockoutStage = "complete"
)

// Stage returns the knockout stage a round belongs to.
func (r KnockoutRound) Stage() KnockoutStage {
	switch r {
	case RoundQuarterfinal1, RoundQuarterfinal2, RoundQuarterfinal3, RoundQuarterfinal4:
		return StageQuarterfinals
	case RoundSemifinal1, RoundSemifinal2:
		return StageSemifinals
	case RoundThirdPlace, RoundFinal:
		return StageFinals
	default:
		return ""
	}
}

func (r KnockoutRound) Valid() bool {
	return r.Stage() != ""
}

type KnockoutMatch struct {
	Round KnockoutRound `json:"round"`
	Team1 string        `json:"team1"`
	Team2 string        `json:"team2"`
	Score Score         `json:"score"`
}

// Winner returns the winner and loser of a played, decided match.
// ok is false while the match is unplayed or drawn.
func (m *KnockoutMatch) Winner() (winner, loser string, ok bool) {
	g1, g2, played := m.Score.Goals()
	switch {
	case !played || g1 == g2:
		return "", "", false
	case g1 > g2:
		return m.Team1, m.Team2, true
	default:
		return m.Team2, m.Team1, true
	}
}
