// Package store persists match snapshots under user-visible save names.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"roicompagnie/internal/engine"
)

var (
	ErrNotFound    = errors.New("save not found")
	ErrInvalidName = errors.New("invalid save name")
)

// Info describes one save without its contents.
type Info struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	SavedAt time.Time `json:"saved_at"`
	Players int       `json:"players"`
	Turn    int       `json:"turn"`
}

// Store is a save backend. Each Save is one atomic write of the whole
// snapshot; saving under an existing name replaces it.
type Store interface {
	Save(ctx context.Context, name string, snap engine.Snapshot) (Info, error)
	Load(ctx context.Context, name string) (engine.Snapshot, error)
	// List returns saves newest first.
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

const maxNameLen = 64

// DefaultName names a save after its creation time.
func DefaultName(now time.Time) string {
	return "save_" + now.Format("20060102_150405")
}

// CleanName trims a requested save name and checks it.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen || strings.ContainsAny(name, "/\\:*?\"<>|") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

// Encode serializes a snapshot for storage.
func Encode(snap engine.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a stored snapshot. Malformed documents are reported as
// engine.ErrCorruptSave.
func Decode(data []byte) (engine.Snapshot, error) {
	var snap engine.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return engine.Snapshot{}, fmt.Errorf("%w: %v", engine.ErrCorruptSave, err)
	}
	return snap, nil
}
