// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package firmdex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/firmdex/ai"
	"github.com/poiesic/firmdex/ai/openai"
	"github.com/poiesic/firmdex/catalog"
	"github.com/poiesic/firmdex/ingest"
	"github.com/poiesic/firmdex/search"
	"github.com/poiesic/firmdex/storage"
	"github.com/poiesic/firmdex/storage/badger"
)

// Database bundles a catalog, its AI provider, and snapshot persistence
// behind one handle. An empty filePath keeps everything in memory.
type Database struct {
	backend   *badger.Backend
	snapshots storage.SnapshotStore
	catalog   *catalog.Catalog
	provider  ai.AIProvider
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a pre-built AI provider, bypassing the OpenAI one.
func WithProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// NewDatabase opens a database at filePath and restores the stored snapshot
// if one exists. A snapshot embedded at a different dimension than the
// current provider is an error; reembed with the old provider first.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		provider.Close()
		return nil, err
	}
	snapshots := badger.NewSnapshotStore(backend)

	cat, err := catalog.New(provider.Embedder())
	if err != nil {
		backend.Close()
		provider.Close()
		return nil, err
	}

	db := &Database{
		backend:   backend,
		snapshots: snapshots,
		catalog:   cat,
		provider:  provider,
		logger:    slog.Default(),
	}

	if err := db.restore(context.Background()); err != nil {
		backend.Close()
		provider.Close()
		return nil, err
	}

	return db, nil
}

func (db *Database) restore(ctx context.Context) error {
	snap, err := db.snapshots.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if snap.Dimension != db.catalog.Dimension() {
		return fmt.Errorf("snapshot dimension %d does not match provider dimension %d",
			snap.Dimension, db.catalog.Dimension())
	}
	if err := db.catalog.Restore(snap.Companies, snap.DescVectors, snap.NeedsVectors); err != nil {
		return err
	}
	db.logger.Info("restored catalog from snapshot", "companies", snap.Len())
	return nil
}

// Save persists the current catalog contents as a snapshot.
func (db *Database) Save(ctx context.Context) error {
	desc, needs := db.catalog.Vectors()
	snap := &storage.Snapshot{
		Dimension:    db.catalog.Dimension(),
		Companies:    db.catalog.All(),
		DescVectors:  desc,
		NeedsVectors: needs,
	}
	return db.snapshots.Save(ctx, snap)
}

// Close closes the AI provider and the storage backend. The catalog is not
// saved implicitly; call Save first.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Catalog returns the company catalog.
func (db *Database) Catalog() *catalog.Catalog {
	return db.catalog
}

// Provider returns the AI provider.
func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

// NewSearcher creates a searcher over the catalog.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.catalog, db.provider.Embedder(), opts...)
}

// NewLoader creates a bulk CSV loader into the catalog.
func (db *Database) NewLoader(opts ...ingest.Option) (*ingest.Loader, error) {
	return ingest.NewLoader(db.catalog, opts...)
}
