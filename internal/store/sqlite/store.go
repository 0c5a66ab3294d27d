// Package sqlite stores match snapshots in a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"roicompagnie/internal/engine"
	"roicompagnie/internal/store"
)

//go:embed schema.sql
var schema string

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store provides SQLite-backed persistence for saves.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ store.Store = (*Store)(nil)

// Open opens a SQLite store at the provided path, creating it if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save writes the snapshot under name, replacing any previous save.
func (s *Store) Save(ctx context.Context, name string, snap engine.Snapshot) (store.Info, error) {
	name, err := store.CleanName(name)
	if err != nil {
		return store.Info{}, err
	}
	data, err := store.Encode(snap)
	if err != nil {
		return store.Info{}, err
	}

	info := store.Info{
		ID:      uuid.NewString(),
		Name:    name,
		SavedAt: fromMillis(toMillis(s.now())),
		Players: snap.PlayerCount,
		Turn:    snap.Turn,
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO saves (name, id, saved_at, players, turn, snapshot)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    id = excluded.id,
    saved_at = excluded.saved_at,
    players = excluded.players,
    turn = excluded.turn,
    snapshot = excluded.snapshot
`, info.Name, info.ID, toMillis(info.SavedAt), info.Players, info.Turn, string(data))
	if err != nil {
		return store.Info{}, fmt.Errorf("save %s: %w", name, err)
	}
	return info, nil
}

// Load reads the snapshot saved under name.
func (s *Store) Load(ctx context.Context, name string) (engine.Snapshot, error) {
	var data string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT snapshot FROM saves WHERE name = ?`, strings.TrimSpace(name)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.Snapshot{}, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load %s: %w", name, err)
	}
	return store.Decode([]byte(data))
}

// List returns every save, newest first.
func (s *Store) List(ctx context.Context) ([]store.Info, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, saved_at, players, turn FROM saves
ORDER BY saved_at DESC, name DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var infos []store.Info
	for rows.Next() {
		var (
			info    store.Info
			savedAt int64
		)
		if err := rows.Scan(&info.ID, &info.Name, &savedAt, &info.Players, &info.Turn); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		info.SavedAt = fromMillis(savedAt)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return infos, nil
}

// Delete removes the save with the given name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saves WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return nil
}
