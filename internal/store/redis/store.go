// Package redis stores match snapshots in Redis: one hash per save plus a
// sorted index by save time.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"roicompagnie/internal/engine"
	"roicompagnie/internal/store"
)

const defaultPrefix = "roicompagnie"

// Store provides Redis-backed persistence for saves.
type Store struct {
	rdb    *goredis.Client
	prefix string
	now    func() time.Time
}

var _ store.Store = (*Store)(nil)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every key; defaults to "roicompagnie".
	Prefix string
}

// Open connects to Redis and checks the connection.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{rdb: rdb, prefix: prefix, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func (s *Store) indexKey() string {
	return s.prefix + ":saves"
}

func (s *Store) saveKey(name string) string {
	return s.prefix + ":save:" + name
}

// Save writes the snapshot and its index entry in one transaction.
func (s *Store) Save(ctx context.Context, name string, snap engine.Snapshot) (store.Info, error) {
	name, err := store.CleanName(name)
	if err != nil {
		return store.Info{}, err
	}
	data, err := store.Encode(snap)
	if err != nil {
		return store.Info{}, err
	}

	savedAt := time.UnixMilli(s.now().UnixMilli()).UTC()
	info := store.Info{
		ID:      uuid.NewString(),
		Name:    name,
		SavedAt: savedAt,
		Players: snap.PlayerCount,
		Turn:    snap.Turn,
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		key := s.saveKey(name)
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, map[string]interface{}{
			"id":       info.ID,
			"saved_at": savedAt.UnixMilli(),
			"players":  info.Players,
			"turn":     info.Turn,
			"snapshot": string(data),
		})
		pipe.ZAdd(ctx, s.indexKey(), goredis.Z{Score: float64(savedAt.UnixMilli()), Member: name})
		return nil
	})
	if err != nil {
		return store.Info{}, fmt.Errorf("save %s: %w", name, err)
	}
	return info, nil
}

// Load reads the snapshot saved under name.
func (s *Store) Load(ctx context.Context, name string) (engine.Snapshot, error) {
	name = strings.TrimSpace(name)
	data, err := s.rdb.HGet(ctx, s.saveKey(name), "snapshot").Result()
	if errors.Is(err, goredis.Nil) {
		return engine.Snapshot{}, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load %s: %w", name, err)
	}
	return store.Decode([]byte(data))
}

// List returns every save, newest first.
func (s *Store) List(ctx context.Context) ([]store.Info, error) {
	names, err := s.rdb.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}

	cmds := make([]*goredis.SliceCmd, len(names))
	_, err = s.rdb.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, name := range names {
			cmds[i] = pipe.HMGet(ctx, s.saveKey(name), "id", "saved_at", "players", "turn")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}

	infos := make([]store.Info, 0, len(names))
	for i, cmd := range cmds {
		vals := cmd.Val()
		if len(vals) != 4 || vals[0] == nil {
			continue
		}
		info := store.Info{Name: names[i], ID: fmt.Sprint(vals[0])}
		info.SavedAt = time.UnixMilli(atoi64(vals[1])).UTC()
		info.Players = int(atoi64(vals[2]))
		info.Turn = int(atoi64(vals[3]))
		infos = append(infos, info)
	}
	return infos, nil
}

// Delete removes the save and its index entry.
func (s *Store) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	var del *goredis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		del = pipe.Del(ctx, s.saveKey(name))
		pipe.ZRem(ctx, s.indexKey(), name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return nil
}

func atoi64(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
