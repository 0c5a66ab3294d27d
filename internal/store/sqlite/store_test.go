package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roicompagnie/internal/engine"
	"roicompagnie/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testSnapshot(t *testing.T) engine.Snapshot {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Seed = 3
	players := []*engine.Player{engine.NewPlayer(1, "Ada"), engine.NewPlayer(2, "Blaise")}
	g, err := engine.NewGame(players, cfg, nil)
	require.NoError(t, err)
	return g.Snapshot()
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	snap := testSnapshot(t)

	info, err := s.Save(ctx, "partie", snap)
	require.NoError(t, err)
	assert.Equal(t, "partie", info.Name)
	assert.Equal(t, 2, info.Players)
	assert.NotEmpty(t, info.ID)

	got, err := s.Load(ctx, "partie")
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	g, err := engine.Restore(got, engine.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, snap, g.Snapshot())
}

func TestSaveReplacesByName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	snap := testSnapshot(t)

	first, err := s.Save(ctx, "partie", snap)
	require.NoError(t, err)
	snap.Turn = 9
	second, err := s.Save(ctx, "partie", snap)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	infos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 9, infos[0].Turn)
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	snap := testSnapshot(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "newest", "middle"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		s.now = func() time.Time { return base.Add(offsets[i]) }
		_, err := s.Save(ctx, name, snap)
		require.NoError(t, err)
	}

	infos, err := s.List(ctx)
	require.NoError(t, err)
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"newest", "middle", "old"}, names)
	assert.Equal(t, base.Add(2*time.Hour), infos[0].SavedAt)
}

func TestMissingSave(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Load(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), store.ErrNotFound)
	_, err = s.Save(ctx, "a/b", testSnapshot(t))
	assert.ErrorIs(t, err, store.ErrInvalidName)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.Save(ctx, "partie", testSnapshot(t))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "partie"))
	infos, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestLoadCorruptRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO saves (name, id, saved_at, players, turn, snapshot) VALUES ('bad', 'x', 0, 2, 1, '{oops')`)
	require.NoError(t, err)

	_, err = s.Load(ctx, "bad")
	assert.ErrorIs(t, err, engine.ErrCorruptSave)
}
