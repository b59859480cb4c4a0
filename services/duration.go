package services

import (
	"fmt"
	"time"
)

const (
	knockoutGamesWithQuarterfinals = 8 // 4 QF, 2 SF, матч за 3 место, финал
	knockoutGamesWithoutQuarters   = 4
)

type DurationInput struct {
	Groups          int  `json:"groups"`
	TeamsPerGroup   int  `json:"teams_per_group"`
	GroupMinutes    int  `json:"group_minutes"`
	KnockoutMinutes int  `json:"knockout_minutes"`
	Quarterfinals   bool `json:"quarterfinals"`
}

type DurationEstimate struct {
	GroupGames    int           `json:"group_games"`
	KnockoutGames int           `json:"knockout_games"`
	TotalGames    int           `json:"total_games"`
	TotalMinutes  int           `json:"total_minutes"`
	Duration      time.Duration `json:"-"`
	Hours         float64       `json:"hours"`
}

// EstimateDuration approximates the playing time of a tournament. Every group
// plays a single round-robin; breaks between games are not counted.
func EstimateDuration(input DurationInput) (*DurationEstimate, error) {
	if input.Groups < 1 {
		return nil, fmt.Errorf("%w: groups must be at least 1", ErrValidationFailed)
	}
	if input.TeamsPerGroup < 2 {
		return nil, fmt.Errorf("%w: teams_per_group must be at least 2", ErrValidationFailed)
	}
	if input.GroupMinutes < 1 || input.KnockoutMinutes < 1 {
		return nil, fmt.Errorf("%w: game length must be at least 1 minute", ErrValidationFailed)
	}

	groupGames := input.TeamsPerGroup * (input.TeamsPerGroup - 1) / 2 * input.Groups
	koGames := knockoutGamesWithoutQuarters
	if input.Quarterfinals {
		koGames = knockoutGamesWithQuarterfinals
	}

	minutes := groupGames*input.GroupMinutes + koGames*input.KnockoutMinutes
	d := time.Duration(minutes) * time.Minute
	return &DurationEstimate{
		GroupGames:    groupGames,
		KnockoutGames: koGames,
		TotalGames:    groupGames + koGames,
		TotalMinutes:  minutes,
		Duration:      d,
		Hours:         d.Hours(),
	}, nil
}
