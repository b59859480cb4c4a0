package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/kicker-tournament/brackets"
	"github.com/Dosada05/kicker-tournament/models"
	"github.com/Dosada05/kicker-tournament/repositories"
	"github.com/google/uuid"
)

// DefaultNumGroups is used when a tournament is created without a group count.
const DefaultNumGroups = 2

type TournamentService interface {
	ListTournaments(ctx context.Context) ([]TournamentSummary, error)
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, name string) (*models.Tournament, error)
	CurrentTournament(ctx context.Context) (*models.Tournament, error)
	SelectTournament(ctx context.Context, name string) (*models.Tournament, error)

	ListRosterTeams(ctx context.Context) ([]*models.RosterTeam, error)
	AddTeam(ctx context.Context, name string, input AddTeamInput) (*models.Tournament, error)
	ImportTeams(ctx context.Context, name string, teamNames []string) (*models.Tournament, error)
	AssignGroups(ctx context.Context, name string, assignment map[string]string) (*models.Tournament, error)
	DrawGroups(ctx context.Context, name string) (*models.Tournament, error)

	GenerateSchedule(ctx context.Context, name string) (*models.Tournament, error)
	RecordGroupScore(ctx context.Context, name string, matchNumber int, input ScoreInput) (*models.Tournament, error)
	Standings(ctx context.Context, name string) ([]models.GroupStandings, error)

	GenerateKnockout(ctx context.Context, name string, quarterfinals bool) (*models.Tournament, error)
	RecordKnockoutScore(ctx context.Context, name string, round models.KnockoutRound, input ScoreInput) (*models.Tournament, error)
	AdvanceKnockout(ctx context.Context, name string) (*models.Tournament, error)
	Progress(ctx context.Context, name string) (*models.Progress, error)
}

// Broadcaster is notified with the new state after every accepted command.
type Broadcaster interface {
	BroadcastTournament(name string, payload interface{})
}

type CreateTournamentInput struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	NumGroups   *int   `json:"num_groups"`
	DoubleRound bool   `json:"double_round"`
}

type AddTeamInput struct {
	Name    string `json:"name"`
	Player1 string `json:"player_1"`
	Player2 string `json:"player_2"`
}

// ScoreInput carries the raw goal fields as entered by the operator.
type ScoreInput struct {
	Goals1 string `json:"goals1"`
	Goals2 string `json:"goals2"`
}

type TournamentSummary struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	NumGroups int    `json:"num_groups"`
	Teams     int    `json:"teams"`
	Current   bool   `json:"current"`
}

type tournamentService struct {
	// mu serializes load/mutate/save cycles within this process.
	mu         sync.Mutex
	storeRepo  repositories.StoreRepository
	rosterRepo repositories.TeamRosterRepository
	scheduler  brackets.ScheduleGenerator
	knockout   *brackets.KnockoutBuilder
	rng        *rand.Rand
	hub        Broadcaster
	logger     *slog.Logger
	now        func() time.Time
}

// NewTournamentService wires the engine to the store. rosterRepo and hub may
// be nil. rng drives group draws and double round-robin shuffles.
func NewTournamentService(
	storeRepo repositories.StoreRepository,
	rosterRepo repositories.TeamRosterRepository,
	rng *rand.Rand,
	hub Broadcaster,
	logger *slog.Logger,
) TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		storeRepo:  storeRepo,
		rosterRepo: rosterRepo,
		scheduler:  brackets.NewRoundRobinGenerator(rng),
		knockout:   brackets.NewKnockoutBuilder(logger),
		rng:        rng,
		hub:        hub,
		logger:     logger,
		now:        time.Now,
	}
}

// mutate runs one command: load the store, apply fn, save. A rejected command
// returns before Save so the stored document stays untouched.
func (s *tournamentService) mutate(ctx context.Context, name, action string, fn func(store *models.TournamentStore, t *models.Tournament) error) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.storeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments: %w", err)
	}
	t, ok := store.Tournaments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTournamentNotFound, name)
	}

	if err := fn(store, t); err != nil {
		s.logger.InfoContext(ctx, "tournament command rejected",
			slog.String("tournament", name),
			slog.String("action", action),
			slog.Any("error", err))
		return nil, err
	}

	s.refreshStats(t)
	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to save tournaments: %w", err)
	}
	s.logger.InfoContext(ctx, "tournament updated",
		slog.String("tournament", name),
		slog.String("action", action))

	if s.hub != nil {
		s.hub.BroadcastTournament(name, t)
	}
	return t, nil
}

func (s *tournamentService) load(ctx context.Context, name string) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.storeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments: %w", err)
	}
	t, ok := store.Tournaments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTournamentNotFound, name)
	}
	s.refreshStats(t)
	return t, nil
}

// refreshStats recomputes every team's stats from the recorded scores.
func (s *tournamentService) refreshStats(t *models.Tournament) {
	if !t.GroupPhase {
		brackets.ComputeOverallStandings(t.Teams, t.AllGroupMatches(), s.logger)
		return
	}
	for _, team := range t.Teams {
		team.ResetStats()
	}
	for _, g := range t.Groups {
		brackets.ComputeStandings(t.GroupTeams(g.Label), t.GroupMatches[g.Label], s.logger)
	}
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]TournamentSummary, error) {
	store, err := s.storeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments: %w", err)
	}
	summaries := make([]TournamentSummary, 0, len(store.Tournaments))
	for _, name := range store.Names() {
		t := store.Tournaments[name]
		summaries = append(summaries, TournamentSummary{
			Name:      t.Name,
			Date:      t.Date,
			NumGroups: t.NumGroups,
			Teams:     len(t.Teams),
			Current:   store.CurrentTournament != nil && *store.CurrentTournament == name,
		})
	}
	return summaries, nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	now := s.now()
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = now.Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: got %q", ErrTournamentInvalidDate, date)
	}

	numGroups := DefaultNumGroups
	if input.NumGroups != nil {
		numGroups = *input.NumGroups
	}
	groups, err := brackets.NewGroups(numGroups)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.storeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments: %w", err)
	}
	if _, exists := store.Tournaments[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrTournamentNameConflict, name)
	}

	groupMatches := make(map[string][]*models.Match, len(groups))
	for _, g := range groups {
		groupMatches[g.Label] = []*models.Match{}
	}
	t := &models.Tournament{
		Name:          name,
		Date:          date,
		CreatedAt:     now.UTC(),
		NumGroups:     numGroups,
		GroupPhase:    numGroups > 0,
		DoubleRound:   input.DoubleRound,
		Teams:         []*models.Team{},
		Groups:        groups,
		GroupMatches:  groupMatches,
		KnockoutRound: []*models.KnockoutMatch{},
	}
	store.Tournaments[name] = t
	store.CurrentTournament = &name

	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to save tournaments: %w", err)
	}
	s.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament", name),
		slog.Int("num_groups", numGroups),
		slog.Bool("double_round", input.DoubleRound))
	return t, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, name string) (*models.Tournament, error) {
	return s.load(ctx, name)
}

func (s *tournamentService) CurrentTournament(ctx context.Context) (*models.Tournament, error) {
	store, err := s.storeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments: %w", err)
	}
	t, ok := store.Current()
	if !ok {
		return nil, ErrNoCurrentTournament
	}
	s.refreshStats(t)
	return t, nil
}

func (s *tournamentService) SelectTournament(ctx context.Context, name string) (*models.Tournament, error) {
	return s.mutate(ctx, name, "select", func(store *models.TournamentStore, t *models.Tournament) error {
		selected := t.Name
		store.CurrentTournament = &selected
		return nil
	})
}

func (s *tournamentService) ListRosterTeams(ctx context.Context) ([]*models.RosterTeam, error) {
	if s.rosterRepo == nil {
		return nil, ErrRosterUnavailable
	}
	return s.rosterRepo.ListTeams(ctx)
}

func (s *tournamentService) AddTeam(ctx context.Context, name string, input AddTeamInput) (*models.Tournament, error) {
	team, err := newTeam(input.Name, input.Player1, input.Player2)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, name, "add_team", func(_ *models.TournamentStore, t *models.Tournament) error {
		if err := canAddTeams(t, []*models.Team{team}); err != nil {
			return err
		}
		t.Teams = append(t.Teams, team)
		return nil
	})
}

// ImportTeams copies the named teams from the team database into the roster.
func (s *tournamentService) ImportTeams(ctx context.Context, name string, teamNames []string) (*models.Tournament, error) {
	if s.rosterRepo == nil {
		return nil, ErrRosterUnavailable
	}
	if len(teamNames) == 0 {
		return nil, fmt.Errorf("%w: no teams selected", ErrValidationFailed)
	}

	rows, err := s.rosterRepo.GetByNames(ctx, teamNames)
	if err != nil {
		return nil, fmt.Errorf("failed to read team database: %w", err)
	}
	byName := make(map[string]*models.RosterTeam, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
	}

	teams := make([]*models.Team, 0, len(teamNames))
	for _, teamName := range teamNames {
		row, ok := byName[teamName]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrRosterTeamNotFound, teamName)
		}
		team, err := newTeam(row.Name, row.Player1, row.Player2)
		if err != nil {
			return nil, fmt.Errorf("team database row %d: %w", row.ID, err)
		}
		teams = append(teams, team)
	}

	return s.mutate(ctx, name, "import_teams", func(_ *models.TournamentStore, t *models.Tournament) error {
		if err := canAddTeams(t, teams); err != nil {
			return err
		}
		t.Teams = append(t.Teams, teams...)
		return nil
	})
}

func newTeam(name, player1, player2 string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	player1, player2 = strings.TrimSpace(player1), strings.TrimSpace(player2)
	if player1 == "" || player2 == "" {
		return nil, ErrPlayerNamesRequired
	}
	return &models.Team{
		Name:      name,
		Players:   [2]string{player1, player2},
		PlayerIDs: [2]string{uuid.NewString(), uuid.NewString()},
	}, nil
}

func canAddTeams(t *models.Tournament, teams []*models.Team) error {
	if t.ScheduleCreated {
		return brackets.ErrRosterFrozen
	}
	seen := make(map[string]bool, len(t.Teams)+len(teams))
	for _, team := range t.Teams {
		seen[team.Name] = true
	}
	for _, team := range teams {
		if seen[team.Name] {
			return fmt.Errorf("%w: %q", ErrTeamNameConflict, team.Name)
		}
		seen[team.Name] = true
	}
	return nil
}

func (s *tournamentService) AssignGroups(ctx context.Context, name string, assignment map[string]string) (*models.Tournament, error) {
	return s.mutate(ctx, name, "assign_groups", func(_ *models.TournamentStore, t *models.Tournament) error {
		return brackets.AssignGroups(t, assignment)
	})
}

func (s *tournamentService) DrawGroups(ctx context.Context, name string) (*models.Tournament, error) {
	return s.mutate(ctx, name, "draw_groups", func(_ *models.TournamentStore, t *models.Tournament) error {
		return brackets.DrawGroups(t, s.rng)
	})
}

func (s *tournamentService) GenerateSchedule(ctx context.Context, name string) (*models.Tournament, error) {
	return s.mutate(ctx, name, "generate_schedule", func(_ *models.TournamentStore, t *models.Tournament) error {
		if err := brackets.GenerateSchedule(t, s.scheduler); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "schedule generated",
			slog.String("tournament", name),
			slog.String("generator", s.scheduler.GetName()),
			slog.Int("matches", len(t.AllGroupMatches())))
		return nil
	})
}

func (s *tournamentService) RecordGroupScore(ctx context.Context, name string, matchNumber int, input ScoreInput) (*models.Tournament, error) {
	return s.mutate(ctx, name, "record_group_score", func(_ *models.TournamentStore, t *models.Tournament) error {
		return brackets.RecordGroupScore(t, matchNumber, input.Goals1, input.Goals2)
	})
}

func (s *tournamentService) Standings(ctx context.Context, name string) ([]models.GroupStandings, error) {
	t, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}

	if !t.GroupPhase {
		return []models.GroupStandings{{
			Standings: brackets.ComputeOverallStandings(t.Teams, t.AllGroupMatches(), s.logger),
		}}, nil
	}

	tables := make([]models.GroupStandings, 0, len(t.Groups))
	for _, g := range t.Groups {
		tables = append(tables, models.GroupStandings{
			Group:     g.Label,
			Standings: brackets.ComputeStandings(t.GroupTeams(g.Label), t.GroupMatches[g.Label], s.logger),
		})
	}
	return tables, nil
}

func (s *tournamentService) GenerateKnockout(ctx context.Context, name string, quarterfinals bool) (*models.Tournament, error) {
	return s.mutate(ctx, name, "generate_knockout", func(_ *models.TournamentStore, t *models.Tournament) error {
		return s.knockout.Seed(t, quarterfinals)
	})
}

// RecordKnockoutScore stores a knockout result and generates the next round
// as soon as the current one is decided.
func (s *tournamentService) RecordKnockoutScore(ctx context.Context, name string, round models.KnockoutRound, input ScoreInput) (*models.Tournament, error) {
	if !round.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKnockoutRound, round)
	}
	return s.mutate(ctx, name, "record_knockout_score", func(_ *models.TournamentStore, t *models.Tournament) error {
		if err := s.knockout.RecordScore(t, round, input.Goals1, input.Goals2); err != nil {
			return err
		}
		if t.KnockoutStage() == round.Stage() && round.Stage() != models.StageFinals {
			if err := s.knockout.Advance(t); err != nil {
				// Сохраняем результат, даже если раунд ещё не завершён.
				s.logger.DebugContext(ctx, "knockout round not advanced",
					slog.String("tournament", name),
					slog.Any("reason", err))
			}
		}
		return nil
	})
}

func (s *tournamentService) AdvanceKnockout(ctx context.Context, name string) (*models.Tournament, error) {
	return s.mutate(ctx, name, "advance_knockout", func(_ *models.TournamentStore, t *models.Tournament) error {
		return s.knockout.Advance(t)
	})
}

func (s *tournamentService) Progress(ctx context.Context, name string) (*models.Progress, error) {
	t, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	p := t.Progress()
	return &p, nil
}
