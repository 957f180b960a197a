package index

import (
	"testing"

	"github.com/poiesic/firmdex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlat(t *testing.T) {
	t.Run("valid dimension", func(t *testing.T) {
		f, err := NewFlat(3)
		require.NoError(t, err)
		assert.Equal(t, 3, f.Dimension())
		assert.Equal(t, 0, f.Len())
	})

	t.Run("zero dimension", func(t *testing.T) {
		_, err := NewFlat(0)
		assert.ErrorIs(t, err, core.ErrValidation)
	})

	t.Run("negative dimension", func(t *testing.T) {
		_, err := NewFlat(-1)
		assert.ErrorIs(t, err, core.ErrValidation)
	})
}

func TestFlatAdd(t *testing.T) {
	f, err := NewFlat(2)
	require.NoError(t, err)

	require.NoError(t, f.Add([]float32{1, 0}))
	require.NoError(t, f.Add([]float32{0, 1}))
	assert.Equal(t, 2, f.Len())

	err = f.Add([]float32{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, 2, f.Len())
}

func TestFlatSearch(t *testing.T) {
	f, err := NewFlat(2)
	require.NoError(t, err)
	require.NoError(t, f.Add([]float32{1, 0}))
	require.NoError(t, f.Add([]float32{0.9, 0.1}))
	require.NoError(t, f.Add([]float32{-1, 0}))

	t.Run("orders by ascending distance", func(t *testing.T) {
		hits, err := f.Search([]float32{1, 0}, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)

		assert.Equal(t, 0, hits[0].Position)
		assert.Equal(t, 1, hits[1].Position)
		assert.Equal(t, 2, hits[2].Position)
		assert.InDelta(t, 0.0, hits[0].Distance, 1e-9)
		assert.InDelta(t, 0.02, hits[1].Distance, 1e-6)
		assert.InDelta(t, 4.0, hits[2].Distance, 1e-9)

		for i := 0; i < len(hits)-1; i++ {
			assert.LessOrEqual(t, hits[i].Distance, hits[i+1].Distance)
		}
	})

	t.Run("truncates to k", func(t *testing.T) {
		hits, err := f.Search([]float32{1, 0}, 2)
		require.NoError(t, err)
		assert.Len(t, hits, 2)
	})

	t.Run("k larger than index size", func(t *testing.T) {
		hits, err := f.Search([]float32{1, 0}, 100)
		require.NoError(t, err)
		assert.Len(t, hits, 3)
	})

	t.Run("non-positive k", func(t *testing.T) {
		_, err := f.Search([]float32{1, 0}, 0)
		assert.ErrorIs(t, err, core.ErrValidation)
		_, err = f.Search([]float32{1, 0}, -3)
		assert.ErrorIs(t, err, core.ErrValidation)
	})

	t.Run("query dimension mismatch", func(t *testing.T) {
		_, err := f.Search([]float32{1, 0, 0}, 1)
		assert.ErrorIs(t, err, core.ErrValidation)
	})
}

func TestFlatSearchTiesStable(t *testing.T) {
	f, err := NewFlat(2)
	require.NoError(t, err)
	// Two vectors equidistant from the query.
	require.NoError(t, f.Add([]float32{1, 0}))
	require.NoError(t, f.Add([]float32{-1, 0}))
	require.NoError(t, f.Add([]float32{0, 1}))

	hits, err := f.Search([]float32{0, 0}, 3)
	require.NoError(t, err)
	// All distances equal; insertion order must be preserved.
	assert.Equal(t, []int{0, 1, 2}, []int{hits[0].Position, hits[1].Position, hits[2].Position})
}

func TestFlatSearchEmpty(t *testing.T) {
	f, err := NewFlat(4)
	require.NoError(t, err)

	hits, err := f.Search([]float32{0, 0, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFlatRebuild(t *testing.T) {
	f, err := NewFlat(2)
	require.NoError(t, err)
	require.NoError(t, f.Add([]float32{1, 0}))
	require.NoError(t, f.Add([]float32{0, 1}))

	t.Run("replaces contents in given order", func(t *testing.T) {
		err := f.Rebuild([][]float32{{0, 1}, {1, 0}})
		require.NoError(t, err)
		assert.Equal(t, 2, f.Len())

		hits, err := f.Search([]float32{1, 0}, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, hits[0].Position)
	})

	t.Run("all-or-nothing on dimension mismatch", func(t *testing.T) {
		err := f.Rebuild([][]float32{{1, 0}, {1, 2, 3}})
		assert.ErrorIs(t, err, core.ErrValidation)
		// Previous contents still searchable.
		assert.Equal(t, 2, f.Len())
	})

	t.Run("idempotent", func(t *testing.T) {
		vectors := [][]float32{{0.5, 0.5}, {1, 1}, {-1, 0}}
		require.NoError(t, f.Rebuild(vectors))
		first, err := f.Search([]float32{0.4, 0.6}, 3)
		require.NoError(t, err)

		require.NoError(t, f.Rebuild(vectors))
		second, err := f.Search([]float32{0.4, 0.6}, 3)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestFlatDirtyProtocol(t *testing.T) {
	f, err := NewFlat(2)
	require.NoError(t, err)
	require.NoError(t, f.Add([]float32{1, 0}))
	assert.False(t, f.Dirty())

	f.MarkDirty()
	assert.True(t, f.Dirty())

	rebuilt := false
	err = f.EnsureCurrent(func() [][]float32 {
		rebuilt = true
		return [][]float32{{0, 1}}
	})
	require.NoError(t, err)
	assert.True(t, rebuilt)
	assert.False(t, f.Dirty())

	// Clean index must not trigger the source.
	err = f.EnsureCurrent(func() [][]float32 {
		t.Fatal("source called on clean index")
		return nil
	})
	require.NoError(t, err)
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity(0), 1e-9)
	assert.InDelta(t, 0.5, Similarity(1), 1e-9)
	assert.InDelta(t, 0.25, Similarity(3), 1e-9)

	// Monotonically decreasing.
	assert.Greater(t, Similarity(0.5), Similarity(2.0))
}
