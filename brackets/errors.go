package brackets

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientTeams      = errors.New("not enough teams")
	ErrScheduleAlreadyCreated = errors.New("schedule has already been created")
	ErrInvalidScore           = errors.New("invalid score")
	ErrRoundNotReady          = errors.New("round is not complete")
	ErrNotEnoughQualifiers    = errors.New("not enough qualified teams for the knockout stage")
	ErrUnknownTeamReference   = errors.New("match references an unknown team")

	ErrKnockoutAlreadyCreated = errors.New("knockout bracket has already been created")
	ErrKnockoutComplete       = errors.New("knockout bracket is complete")
	ErrRoundLocked            = errors.New("round already feeds a later round")
	ErrMatchNotFound          = errors.New("match not found")
	ErrGroupPhaseDisabled     = errors.New("tournament has no group phase")
	ErrRosterFrozen           = errors.New("schedule exists, teams and groups can no longer change")
	ErrUnknownGroup           = errors.New("unknown group")
	ErrUnknownTeam            = errors.New("unknown team")
	ErrInvalidGroupCount      = errors.New("group count must be 0, 1, 2 or 4")
)

// InvalidScoreError reports which goal field was rejected.
type InvalidScoreError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrInvalidScore, e.Field, e.Value, e.Err)
}

func (e *InvalidScoreError) Unwrap() []error {
	return []error{ErrInvalidScore, e.Err}
}
