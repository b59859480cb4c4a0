package brackets

import (
	"errors"
	"fmt"

	"github.com/Dosada05/kicker-tournament/models"
)

// ParseScoreFields validates both goal fields independently and returns every
// rejected field.
func ParseScoreFields(goals1, goals2 string) (models.Score, error) {
	g1, err1 := models.ParseGoals(goals1)
	g2, err2 := models.ParseGoals(goals2)

	var errs []error
	if err1 != nil {
		errs = append(errs, &InvalidScoreError{Field: "team1", Value: goals1, Err: err1})
	}
	if err2 != nil {
		errs = append(errs, &InvalidScoreError{Field: "team2", Value: goals2, Err: err2})
	}
	if len(errs) > 0 {
		return models.Unplayed(), errors.Join(errs...)
	}
	return models.Played(g1, g2), nil
}

// RecordGroupScore stores the result of the group match with the given number.
func RecordGroupScore(t *models.Tournament, matchNumber int, goals1, goals2 string) error {
	if !t.ScheduleCreated {
		return fmt.Errorf("%w: schedule has not been created", ErrMatchNotFound)
	}
	m, ok := t.GroupMatch(matchNumber)
	if !ok {
		return fmt.Errorf("%w: group match %d", ErrMatchNotFound, matchNumber)
	}
	score, err := ParseScoreFields(goals1, goals2)
	if err != nil {
		return err
	}
	m.Score = score
	return nil
}
