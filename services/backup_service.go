package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/kicker-tournament/brackets"
	"github.com/Dosada05/kicker-tournament/models"
	"github.com/Dosada05/kicker-tournament/repositories"
	"github.com/Dosada05/kicker-tournament/storage"
	"golang.org/x/sync/errgroup"
)

const (
	snapshotPrefix    = "snapshots/"
	snapshotKeyLayout = "20060102T150405Z"
	// maxParallelUploads ограничивает число одновременных загрузок в R2.
	maxParallelUploads = 4
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// BackupService exports the store document and the standings of every
// tournament to object storage.
type BackupService interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	ListSnapshots(ctx context.Context) ([]storage.ObjectInfo, error)
}

type Snapshot struct {
	Prefix  string                  `json:"prefix"`
	TakenAt time.Time               `json:"taken_at"`
	Objects []*storage.UploadResult `json:"objects"`
}

type backupService struct {
	storeRepo repositories.StoreRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
	now       func() time.Time
}

// NewBackupService returns a service whose calls fail with
// ErrSnapshotsDisabled when uploader is nil.
func NewBackupService(storeRepo repositories.StoreRepository, uploader storage.FileUploader, logger *slog.Logger) BackupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &backupService{
		storeRepo: storeRepo,
		uploader:  uploader,
		logger:    logger,
		now:       time.Now,
	}
}

type snapshotObject struct {
	key         string
	contentType string
	body        []byte
}

func (s *backupService) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s.uploader == nil {
		return nil, ErrSnapshotsDisabled
	}

	store, err := s.storeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments: %w", err)
	}

	takenAt := s.now().UTC()
	prefix := snapshotPrefix + takenAt.Format(snapshotKeyLayout) + "/"

	objects, err := s.buildObjects(prefix, store)
	if err != nil {
		return nil, err
	}

	results := make([]*storage.UploadResult, len(objects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for i, obj := range objects {
		i, obj := i, obj
		g.Go(func() error {
			res, err := s.uploader.Upload(gctx, obj.key, obj.contentType, bytes.NewReader(obj.body))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "snapshot upload failed",
			slog.String("prefix", prefix),
			slog.Any("error", err))
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "snapshot uploaded",
		slog.String("prefix", prefix),
		slog.Int("objects", len(results)))
	return &Snapshot{Prefix: prefix, TakenAt: takenAt, Objects: results}, nil
}

func (s *backupService) buildObjects(prefix string, store *models.TournamentStore) ([]snapshotObject, error) {
	doc, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode store: %w", err)
	}
	objects := []snapshotObject{{key: prefix + "store.json", contentType: "application/json", body: doc}}

	for _, name := range store.Names() {
		body, err := standingsCSV(store.Tournaments[name], s.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to encode standings of %q: %w", name, err)
		}
		objects = append(objects, snapshotObject{
			key:         prefix + snapshotKeyPart(name) + "-standings.csv",
			contentType: "text/csv",
			body:        body,
		})
	}
	return objects, nil
}

func snapshotKeyPart(name string) string {
	part := strings.Trim(unsafeKeyChars.ReplaceAllString(name, "_"), "_")
	if part == "" {
		return "tournament"
	}
	return part
}

var standingsHeader = []string{
	"group", "rank", "team", "points", "games_played", "wins", "draws", "losses",
	"goals_for", "goals_against", "goal_difference",
}

func standingsCSV(t *models.Tournament, logger *slog.Logger) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(standingsHeader); err != nil {
		return nil, err
	}

	write := func(group string, rows []*models.TeamStanding) error {
		for _, row := range rows {
			team := row.Team
			record := []string{
				group,
				strconv.Itoa(row.Rank),
				team.Name,
				strconv.Itoa(team.Points),
				strconv.Itoa(team.GamesPlayed),
				strconv.Itoa(team.Wins),
				strconv.Itoa(team.Draws),
				strconv.Itoa(team.Losses),
				strconv.Itoa(team.GoalsFor),
				strconv.Itoa(team.GoalsAgainst),
				strconv.Itoa(row.ScoreDifference),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	}

	if t.GroupPhase {
		for _, g := range t.Groups {
			rows := brackets.ComputeStandings(t.GroupTeams(g.Label), t.GroupMatches[g.Label], logger)
			if err := write(g.Label, rows); err != nil {
				return nil, err
			}
		}
	} else {
		rows := brackets.ComputeOverallStandings(t.Teams, t.AllGroupMatches(), logger)
		if err := write("", rows); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ListSnapshots returns the stored snapshot objects, newest first.
func (s *backupService) ListSnapshots(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.uploader == nil {
		return nil, ErrSnapshotsDisabled
	}
	objects, err := s.uploader.List(ctx, snapshotPrefix)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].Key > objects[j].Key
	})
	return objects, nil
}
