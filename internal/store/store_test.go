package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roicompagnie/internal/engine"
)

func TestDefaultName(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "save_20240309_140507", DefaultName(now))
}

func TestCleanName(t *testing.T) {
	name, err := CleanName("  partie du soir ")
	require.NoError(t, err)
	assert.Equal(t, "partie du soir", name)

	for _, bad := range []string{"", "   ", "a/b", "../x", strings.Repeat("x", 65)} {
		_, err := CleanName(bad)
		assert.ErrorIs(t, err, ErrInvalidName, "%q", bad)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.True(t, errors.Is(err, engine.ErrCorruptSave))

	snap := engine.Snapshot{Version: engine.SnapshotVersion, PlayerCount: 2, Phase: "AwaitingRoll"}
	data, err := Encode(snap)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, snap.PlayerCount, got.PlayerCount)
}
