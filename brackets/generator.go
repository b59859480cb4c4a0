package brackets

import (
	"github.com/Dosada05/kicker-tournament/models"
)

// ScheduleGenerator builds the fixtures of one group.
type ScheduleGenerator interface {
	// Generate numbers the matches starting at firstMatchNumber.
	Generate(teams []string, doubleRound bool, firstMatchNumber int) ([]*models.Match, error)

	GetName() string
}
