package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Dosada05/kicker-tournament/models"
)

// StoreDocumentID is the fixed key of the single persisted document.
const StoreDocumentID = "app_state"

var (
	ErrStoreSchemaMissing = errors.New("store table does not exist")
	ErrStoreCorrupt       = errors.New("stored document cannot be decoded")
)

// StoreRepository loads and saves the whole tournament document. Save
// overwrites the previous document; the last write wins.
type StoreRepository interface {
	Load(ctx context.Context) (*models.TournamentStore, error)
	Save(ctx context.Context, store *models.TournamentStore) error
}

type postgresStoreRepository struct {
	db SQLExecutor
}

func NewPostgresStoreRepository(db *sql.DB) StoreRepository {
	return &postgresStoreRepository{db: db}
}

const createStoreTable = `
	CREATE TABLE IF NOT EXISTS app_state (
		id         TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// EnsureStoreSchema creates the document table when it is missing.
func EnsureStoreSchema(ctx context.Context, db SQLExecutor) error {
	if _, err := db.ExecContext(ctx, createStoreTable); err != nil {
		return fmt.Errorf("failed to create app_state table: %w", err)
	}
	return nil
}

func (r *postgresStoreRepository) Load(ctx context.Context) (*models.TournamentStore, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM app_state WHERE id = $1`, StoreDocumentID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewTournamentStore(), nil
		}
		return nil, r.handleStoreError(err)
	}
	return decodeStore(data)
}

func (r *postgresStoreRepository) Save(ctx context.Context, store *models.TournamentStore) error {
	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	query := `
		INSERT INTO app_state (id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, StoreDocumentID, string(data), time.Now().UTC()); err != nil {
		return r.handleStoreError(err)
	}
	return nil
}

func (r *postgresStoreRepository) handleStoreError(err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%w: %v", ErrStoreSchemaMissing, err)
	}
	return fmt.Errorf("store query failed: %w", err)
}

func decodeStore(data []byte) (*models.TournamentStore, error) {
	store := models.NewTournamentStore()
	if err := json.Unmarshal(data, store); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	normalizeStore(store)
	return store, nil
}

// normalizeStore fills nil collections left by older documents.
func normalizeStore(store *models.TournamentStore) {
	if store.Tournaments == nil {
		store.Tournaments = make(map[string]*models.Tournament)
	}
	for name, t := range store.Tournaments {
		if t == nil {
			delete(store.Tournaments, name)
			continue
		}
		if t.GroupMatches == nil {
			t.GroupMatches = make(map[string][]*models.Match)
		}
		if t.Teams == nil {
			t.Teams = []*models.Team{}
		}
		if t.Groups == nil {
			t.Groups = []*models.Group{}
		}
		if t.KnockoutRound == nil {
			t.KnockoutRound = []*models.KnockoutMatch{}
		}
	}
	if store.CurrentTournament != nil {
		if _, ok := store.Tournaments[*store.CurrentTournament]; !ok {
			store.CurrentTournament = nil
		}
	}
}

// memoryStoreRepository keeps the encoded document in memory. Every Load
// decodes a fresh copy, so callers never share state with the repository.
type memoryStoreRepository struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStoreRepository() StoreRepository {
	return &memoryStoreRepository{}
}

func (r *memoryStoreRepository) Load(ctx context.Context) (*models.TournamentStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return models.NewTournamentStore(), nil
	}
	return decodeStore(r.data)
}

func (r *memoryStoreRepository) Save(ctx context.Context, store *models.TournamentStore) error {
	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
	return nil
}
