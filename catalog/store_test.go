package catalog

import (
	"testing"

	"github.com/poiesic/firmdex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func company(name string) core.Company {
	return core.Company{
		Name:        name,
		Industry:    "Tech",
		Location:    "Berlin",
		Revenue:     1_000_000,
		TeamSize:    10,
		Founded:     2015,
		Website:     "https://" + name + ".example.com",
		Description: name + " description",
		Needs:       name + " needs",
		Challenges:  name + " challenges",
	}
}

func TestStoreAddAssignsSequentialPositions(t *testing.T) {
	s := NewStore()

	assert.Equal(t, 0, s.Add(company("a")))
	assert.Equal(t, 1, s.Add(company("b")))
	assert.Equal(t, 2, s.Add(company("c")))
	assert.Equal(t, 3, s.Count())
}

func TestStoreGet(t *testing.T) {
	s := NewStore()
	s.Add(company("a"))

	t.Run("existing position", func(t *testing.T) {
		got, ok := s.Get(0)
		require.True(t, ok)
		assert.Equal(t, "a", got.Name)
	})

	t.Run("negative position", func(t *testing.T) {
		_, ok := s.Get(-1)
		assert.False(t, ok)
	})

	t.Run("out of range position", func(t *testing.T) {
		_, ok := s.Get(1)
		assert.False(t, ok)
	})
}

func TestStoreAllIsDefensiveCopy(t *testing.T) {
	s := NewStore()
	s.Add(company("a"))

	all := s.All()
	all[0].Name = "mutated"

	got, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)
}

func TestStoreUpdate(t *testing.T) {
	s := NewStore()
	s.Add(company("a"))

	require.NoError(t, s.Update(0, company("b")))
	got, _ := s.Get(0)
	assert.Equal(t, "b", got.Name)

	assert.ErrorIs(t, s.Update(5, company("c")), core.ErrNotFound)
	assert.ErrorIs(t, s.Update(-1, company("c")), core.ErrNotFound)
}

func TestStoreDeleteShiftsPositions(t *testing.T) {
	s := NewStore()
	s.Add(company("a"))
	s.Add(company("b"))
	s.Add(company("c"))

	require.NoError(t, s.Delete(0))
	assert.Equal(t, 2, s.Count())

	// b and c shifted down by one, content unchanged.
	got, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)
	got, ok = s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "c", got.Name)
	_, ok = s.Get(2)
	assert.False(t, ok)
}

func TestStoreDeleteInvalidPosition(t *testing.T) {
	s := NewStore()
	s.Add(company("a"))

	assert.ErrorIs(t, s.Delete(1), core.ErrNotFound)
	assert.ErrorIs(t, s.Delete(-1), core.ErrNotFound)
	assert.Equal(t, 1, s.Count())
}
