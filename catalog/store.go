package catalog

import (
	"fmt"

	"github.com/poiesic/firmdex/core"
)

// Store is the authoritative, ordered list of company records. All access is
// by position: the zero-based slot assigned at insertion time. Positions are
// not stable across deletions: deleting position i shifts every later
// record down by one, and the owning Catalog shifts the vector lists the
// same way.
//
// Store is not safe for concurrent use on its own; the Catalog serializes
// access.
type Store struct {
	records []core.Company
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a record and returns its position, which equals the store
// length before the append.
func (s *Store) Add(c core.Company) int {
	s.records = append(s.records, c)
	return len(s.records) - 1
}

// Get returns the record at the position. The second return is false for
// negative or out-of-range positions; absence is never an error.
func (s *Store) Get(position int) (core.Company, bool) {
	if position < 0 || position >= len(s.records) {
		return core.Company{}, false
	}
	return s.records[position], true
}

// All returns a copy of the records in position order. Mutating
// the result does not affect the store.
func (s *Store) All() []core.Company {
	out := make([]core.Company, len(s.records))
	copy(out, s.records)
	return out
}

// Update replaces the record at the position.
func (s *Store) Update(position int, c core.Company) error {
	if position < 0 || position >= len(s.records) {
		return fmt.Errorf("%w: position %d", core.ErrNotFound, position)
	}
	s.records[position] = c
	return nil
}

// Delete removes the record at the position, shifting all subsequent
// positions down by one.
func (s *Store) Delete(position int) error {
	if position < 0 || position >= len(s.records) {
		return fmt.Errorf("%w: position %d", core.ErrNotFound, position)
	}
	s.records = append(s.records[:position], s.records[position+1:]...)
	return nil
}

// Count returns the number of records in the store.
func (s *Store) Count() int {
	return len(s.records)
}
