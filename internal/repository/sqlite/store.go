package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jaakkos/tourism-cms/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TEXT NOT NULL
);
`

// DefaultKey is the row key the snapshot is stored under.
const DefaultKey = "tourism-cms-storage"

// Store implements app.SnapshotRepository by keeping the whole content
// snapshot as one JSON document in a key-value table.
type Store struct {
	db  *sql.DB
	key string
}

// New opens the SQLite database at path (creating parent dirs and schema).
// key selects the row holding the snapshot; empty means DefaultKey.
func New(path, key string) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("sqlite mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	// One connection keeps saves strictly ordered.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &Store{db: db, key: key}, nil
}

// Close releases the database connection. Call on shutdown for clean exit.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Load returns the persisted snapshot, or (nil, nil) when no row exists.
func (s *Store) Load() (*domain.State, error) {
	if s.db == nil {
		return nil, errors.New("sqlite load: store closed")
	}
	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, s.key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite load %s: %w", s.key, err)
	}
	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("sqlite load %s: decode snapshot: %w", s.key, err)
	}
	state.EnsureCollections()
	return &state, nil
}

// Save writes the snapshot, replacing any previous one.
func (s *Store) Save(state *domain.State) error {
	if s.db == nil {
		return errors.New("sqlite save: store closed")
	}
	if state == nil {
		return errors.New("sqlite save: nil state")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("sqlite save %s: encode snapshot: %w", s.key, err)
	}
	_, err = s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, raw, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite save %s: %w", s.key, err)
	}
	return nil
}

// UpdatedAt returns when the snapshot was last saved. ok is false when no
// snapshot exists.
func (s *Store) UpdatedAt() (t time.Time, ok bool, err error) {
	if s.db == nil {
		return time.Time{}, false, errors.New("sqlite: store closed")
	}
	var raw string
	err = s.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, s.key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("sqlite updated_at: %w", err)
	}
	t, err = time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("sqlite updated_at: parse timestamp %q: %w", raw, err)
	}
	return t, true, nil
}
