package badger

import (
	"context"
	"testing"

	"github.com/poiesic/firmdex/core"
	"github.com/poiesic/firmdex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(count int) *storage.Snapshot {
	snap := &storage.Snapshot{Dimension: 2}
	for i := 0; i < count; i++ {
		snap.Companies = append(snap.Companies, core.Company{
			Name: string(rune('a' + i)), Industry: "Tech", Location: "Berlin",
			Revenue: int64(i+1) * 1000, TeamSize: i + 1, Founded: 2000 + i,
			Website: "https://example.com", Description: "d", Needs: "n", Challenges: "c",
		})
		snap.DescVectors = append(snap.DescVectors, []float32{float32(i), 0})
		snap.NeedsVectors = append(snap.NeedsVectors, []float32{0, float32(i)})
	}
	return snap
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	saved := testSnapshot(3)
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.Dimension, loaded.Dimension)
	assert.Equal(t, saved.Companies, loaded.Companies)
	assert.Equal(t, saved.DescVectors, loaded.DescVectors)
	assert.Equal(t, saved.NeedsVectors, loaded.NeedsVectors)
}

func TestSnapshotStoreLoadEmpty(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer backend.Close()

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSnapshotStoreShrinkingSave(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot(5)))
	require.NoError(t, store.Save(ctx, testSnapshot(2)))

	// Stale keys past the new count must not leak into the result.
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, "a", loaded.Companies[0].Name)
	assert.Equal(t, "b", loaded.Companies[1].Name)
}

func TestSnapshotStoreRejectsMismatchedLists(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer backend.Close()

	snap := testSnapshot(2)
	snap.DescVectors = snap.DescVectors[:1]
	err = store.Save(context.Background(), snap)
	assert.ErrorIs(t, err, storage.ErrCorruptSnapshot)
}

func TestSnapshotStoreEmptySnapshot(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot(0)))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
	assert.Equal(t, 2, loaded.Dimension)
}
