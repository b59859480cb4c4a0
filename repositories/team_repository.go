package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/kicker-tournament/models"
	"github.com/lib/pq"
)

// TeamRosterRepository reads the external team database that tournaments
// import their teams from.
type TeamRosterRepository interface {
	ListTeams(ctx context.Context) ([]*models.RosterTeam, error)
	GetByNames(ctx context.Context, names []string) ([]*models.RosterTeam, error)
}

type postgresTeamRosterRepository struct {
	db SQLExecutor
}

func NewPostgresTeamRosterRepository(db *sql.DB) TeamRosterRepository {
	return &postgresTeamRosterRepository{db: db}
}

func (r *postgresTeamRosterRepository) ListTeams(ctx context.Context) ([]*models.RosterTeam, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, player_1, player_2 FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster teams: %w", err)
	}
	return scanRosterTeams(rows)
}

func (r *postgresTeamRosterRepository) GetByNames(ctx context.Context, names []string) ([]*models.RosterTeam, error) {
	if len(names) == 0 {
		return []*models.RosterTeam{}, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, player_1, player_2 FROM teams WHERE name = ANY($1) ORDER BY name`,
		pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster teams by name: %w", err)
	}
	return scanRosterTeams(rows)
}

func scanRosterTeams(rows *sql.Rows) ([]*models.RosterTeam, error) {
	defer rows.Close()
	teams := make([]*models.RosterTeam, 0)
	for rows.Next() {
		var t models.RosterTeam
		if err := rows.Scan(&t.ID, &t.Name, &t.Player1, &t.Player2); err != nil {
			return nil, fmt.Errorf("failed to scan roster team: %w", err)
		}
		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster teams: %w", err)
	}
	return teams, nil
}

// staticTeamRosterRepository serves a fixed roster. It backs deployments
// without a team database and tests.
type staticTeamRosterRepository struct {
	teams []*models.RosterTeam
}

func NewStaticTeamRosterRepository(teams []*models.RosterTeam) TeamRosterRepository {
	return &staticTeamRosterRepository{teams: teams}
}

func (r *staticTeamRosterRepository) ListTeams(ctx context.Context) ([]*models.RosterTeam, error) {
	out := make([]*models.RosterTeam, len(r.teams))
	copy(out, r.teams)
	return out, nil
}

func (r *staticTeamRosterRepository) GetByNames(ctx context.Context, names []string) ([]*models.RosterTeam, error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	out := make([]*models.RosterTeam, 0, len(names))
	for _, t := range r.teams {
		if wanted[t.Name] {
			out = append(out, t)
		}
	}
	return out, nil
}
