package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/firmdex/core"
	"github.com/poiesic/firmdex/storage"
)

// SnapshotStore implements storage.SnapshotStore for BadgerDB.
//
// Every position-addressed key is rewritten on save and the metadata key is
// written last in the same transaction, so a readable metadata record always
// describes a complete snapshot. Stale keys past the current count are left
// behind and ignored by Load.
type SnapshotStore struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new SnapshotStore over the backend.
func NewSnapshotStore(backend *Backend) *SnapshotStore {
	return &SnapshotStore{
		backend: backend,
		logger:  slog.Default(),
	}
}

// Save replaces the stored snapshot with snap in one transaction. Badger
// caps transaction size, so saves fail with ErrTxnTooBig once the catalog
// grows past a few thousand records at 1536 dimensions.
func (s *SnapshotStore) Save(ctx context.Context, snap *storage.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", storage.ErrCorruptSnapshot)
	}
	count := len(snap.Companies)
	if len(snap.DescVectors) != count || len(snap.NeedsVectors) != count {
		return fmt.Errorf("%w: lists disagree on length (records %d, desc %d, needs %d)",
			storage.ErrCorruptSnapshot, count, len(snap.DescVectors), len(snap.NeedsVectors))
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for i := 0; i < count; i++ {
			if err := tx.Set(makeCompanyKey(i), storage.MarshalCompany(&snap.Companies[i])); err != nil {
				return err
			}
			if err := tx.Set(makeDescVectorKey(i), storage.MarshalVector(snap.DescVectors[i])); err != nil {
				return err
			}
			if err := tx.Set(makeNeedsVectorKey(i), storage.MarshalVector(snap.NeedsVectors[i])); err != nil {
				return err
			}
		}
		meta := storage.Meta{Dimension: snap.Dimension, Count: count}
		if err := tx.Set([]byte(metaKey), storage.MarshalMeta(meta)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	s.logger.Debug("saved catalog snapshot", "companies", count, "dimension", snap.Dimension)
	return nil
}

// Load returns the stored snapshot, or storage.ErrNotFound if none exists.
func (s *SnapshotStore) Load(ctx context.Context) (*storage.Snapshot, error) {
	var snap *storage.Snapshot

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(metaKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		var meta storage.Meta
		if err := item.Value(func(val []byte) error {
			meta, err = storage.UnmarshalMeta(val)
			return err
		}); err != nil {
			return err
		}

		snap = &storage.Snapshot{
			Dimension:    meta.Dimension,
			Companies:    make([]core.Company, meta.Count),
			DescVectors:  make([][]float32, meta.Count),
			NeedsVectors: make([][]float32, meta.Count),
		}
		for i := 0; i < meta.Count; i++ {
			company, err := s.readCompany(tx, i)
			if err != nil {
				return err
			}
			snap.Companies[i] = *company
			if snap.DescVectors[i], err = s.readVector(tx, makeDescVectorKey(i)); err != nil {
				return err
			}
			if snap.NeedsVectors[i], err = s.readVector(tx, makeNeedsVectorKey(i)); err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *SnapshotStore) readCompany(tx *badger.Txn, position int) (*core.Company, error) {
	item, err := tx.Get(makeCompanyKey(position))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: missing company at position %d", storage.ErrCorruptSnapshot, position)
	}
	if err != nil {
		return nil, err
	}
	var company *core.Company
	err = item.Value(func(val []byte) error {
		company, err = storage.UnmarshalCompany(val)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return company, nil
}

func (s *SnapshotStore) readVector(tx *badger.Txn, key []byte) ([]float32, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: missing vector key %q", storage.ErrCorruptSnapshot, key)
	}
	if err != nil {
		return nil, err
	}
	var vector []float32
	err = item.Value(func(val []byte) error {
		vector, err = storage.UnmarshalVector(val)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return vector, nil
}
