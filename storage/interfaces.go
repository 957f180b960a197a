package storage

import (
	"context"

	"github.com/poiesic/firmdex/core"
)

// Snapshot is a point-in-time capture of a catalog: the records and both
// vector lists in matching position order. Companies[i], DescVectors[i], and
// NeedsVectors[i] describe the same company.
type Snapshot struct {
	Dimension    int
	Companies    []core.Company
	DescVectors  [][]float32
	NeedsVectors [][]float32
}

// Len returns the number of companies in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Companies)
}

// SnapshotStore persists catalog snapshots. Implementations must make Save
// atomic: a failed save leaves the previously stored snapshot readable.
type SnapshotStore interface {
	// Save replaces the stored snapshot with snap.
	Save(ctx context.Context, snap *Snapshot) error

	// Load returns the stored snapshot.
	// Returns ErrNotFound if no snapshot has been saved.
	Load(ctx context.Context) (*Snapshot, error)
}
