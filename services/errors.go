package services

import "errors"

// Ошибки сервисного слоя, используемые при маппинге в HTTP.
var (
	ErrValidationFailed = errors.New("validation failed")

	// Турниры
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrTournamentInvalidDate  = errors.New("tournament date must be formatted as YYYY-MM-DD")
	ErrNoCurrentTournament    = errors.New("no tournament is selected")

	// Команды
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrPlayerNamesRequired = errors.New("both player names are required")
	ErrTeamNameConflict    = errors.New("team name is already in use")
	ErrRosterUnavailable   = errors.New("team database is not configured")
	ErrRosterTeamNotFound  = errors.New("team not found in team database")

	// KO-раунд
	ErrInvalidKnockoutRound = errors.New("unknown knockout round")

	// Снимки
	ErrSnapshotsDisabled = errors.New("snapshot storage is not configured")
)
