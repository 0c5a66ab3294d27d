package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roicompagnie/internal/engine"
	"roicompagnie/internal/store"
)

// openTestStore connects to the Redis named by ROICOMPAGNIE_TEST_REDIS_ADDR
// under a throwaway key prefix.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("ROICOMPAGNIE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ROICOMPAGNIE_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, Options{Addr: addr, Prefix: "roicompagnie-test-" + uuid.NewString()})
	require.NoError(t, err)
	t.Cleanup(func() {
		keys, _ := s.rdb.Keys(ctx, s.prefix+":*").Result()
		if len(keys) > 0 {
			s.rdb.Del(ctx, keys...)
		}
		_ = s.Close()
	})
	return s
}

func testSnapshot(t *testing.T) engine.Snapshot {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Seed = 4
	players := []*engine.Player{engine.NewPlayer(1, "Ada"), engine.NewPlayer(2, "Blaise"), engine.NewPlayer(3, "Cyrano")}
	g, err := engine.NewGame(players, cfg, nil)
	require.NoError(t, err)
	return g.Snapshot()
}

func TestOpenRequiresAddr(t *testing.T) {
	_, err := Open(context.Background(), Options{})
	assert.Error(t, err)
}

func TestSaveLoadListDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	snap := testSnapshot(t)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	_, err := s.Save(ctx, "first", snap)
	require.NoError(t, err)
	s.now = func() time.Time { return base.Add(time.Minute) }
	info, err := s.Save(ctx, "second", snap)
	require.NoError(t, err)
	assert.Equal(t, 3, info.Players)

	got, err := s.Load(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	infos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "second", infos[0].Name)
	assert.Equal(t, base.Add(time.Minute), infos[0].SavedAt)
	assert.Equal(t, info.ID, infos[0].ID)

	require.NoError(t, s.Delete(ctx, "first"))
	assert.ErrorIs(t, s.Delete(ctx, "first"), store.ErrNotFound)
	_, err = s.Load(ctx, "first")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
