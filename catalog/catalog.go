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


package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/firmdex/ai"
	"github.com/poiesic/firmdex/core"
	"github.com/poiesic/firmdex/index"
)

// Catalog is the owned aggregate holding the record store, the backing
// vector lists for both semantic spaces, and the two flat indexes built over
// them. All record mutation goes through the Catalog so that the record at
// position i and the vectors at position i in each space stay paired. That
// pairing is the load-bearing invariant of the whole system.
//
// A sync.RWMutex gives single-writer/multiple-reader discipline: search
// paths take the read lock (upgrading only for a lazy rebuild), mutations
// take the write lock. Embedding calls happen before the lock is taken so
// the one slow network hop never blocks readers.
type Catalog struct {
	mu          sync.RWMutex
	store       *Store
	descVectors [][]float32
	needsVec    [][]float32
	descIndex   *index.Flat
	needsIndex  *index.Flat
	embedder    ai.Embedder
	logger      *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates an empty catalog whose indexes match the embedder's dimension.
func New(embedder ai.Embedder, opts ...Option) (*Catalog, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	descIndex, err := index.NewFlat(embedder.Dimension())
	if err != nil {
		return nil, err
	}
	needsIndex, err := index.NewFlat(embedder.Dimension())
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		store:      NewStore(),
		descIndex:  descIndex,
		needsIndex: needsIndex,
		embedder:   embedder,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// CreateProfile validates the company, embeds both semantic texts, and
// appends record and vectors as one logical unit. The embedding calls run
// before anything is stored, so an embedding failure leaves the catalog
// untouched. A plain append keeps the indexes in sync without marking dirty.
func (c *Catalog) CreateProfile(ctx context.Context, company core.Company) (int, error) {
	clean, err := core.ValidateCompany(company)
	if err != nil {
		return 0, err
	}

	descVec, needsVec, err := c.embedProfile(ctx, &clean)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	position := c.store.Add(clean)
	c.descVectors = append(c.descVectors, descVec)
	c.needsVec = append(c.needsVec, needsVec)
	if err := c.descIndex.Add(descVec); err != nil {
		// Dimension was checked by the embedder; treat as fatal pairing break.
		return 0, c.rollbackAppend(position, err)
	}
	if err := c.needsIndex.Add(needsVec); err != nil {
		return 0, c.rollbackAppend(position, err)
	}

	c.logger.Debug("created company profile", "name", clean.Name, "position", position)
	return position, nil
}

// rollbackAppend undoes a partially applied append so no partial state
// survives. Called with the write lock held.
func (c *Catalog) rollbackAppend(position int, cause error) error {
	_ = c.store.Delete(position)
	if len(c.descVectors) > position {
		c.descVectors = c.descVectors[:position]
	}
	if len(c.needsVec) > position {
		c.needsVec = c.needsVec[:position]
	}
	c.descIndex.MarkDirty()
	c.needsIndex.MarkDirty()
	return fmt.Errorf("create profile: %w", cause)
}

// UpdateProfile validates and re-embeds the company, then replaces the
// record and both vectors at the position. The indexes have no replace
// operation, so both are marked dirty for a lazy rebuild.
func (c *Catalog) UpdateProfile(ctx context.Context, position int, company core.Company) error {
	clean, err := core.ValidateCompany(company)
	if err != nil {
		return err
	}

	// Cheap existence check before paying for embeddings.
	c.mu.RLock()
	_, ok := c.store.Get(position)
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: position %d", core.ErrNotFound, position)
	}

	descVec, needsVec, err := c.embedProfile(ctx, &clean)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Update(position, clean); err != nil {
		return err
	}
	c.descVectors[position] = descVec
	c.needsVec[position] = needsVec
	c.descIndex.MarkDirty()
	c.needsIndex.MarkDirty()

	c.logger.Debug("updated company profile", "name", clean.Name, "position", position)
	return nil
}

// DeleteProfile removes the record and both vectors at the position. Every
// later record shifts down by one; the dirty indexes mirror the shift on
// their next rebuild.
func (c *Catalog) DeleteProfile(position int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(position); err != nil {
		return err
	}
	c.descVectors = append(c.descVectors[:position], c.descVectors[position+1:]...)
	c.needsVec = append(c.needsVec[:position], c.needsVec[position+1:]...)
	c.descIndex.MarkDirty()
	c.needsIndex.MarkDirty()

	c.logger.Debug("deleted company profile", "position", position)
	return nil
}

// Get returns the company at the position.
func (c *Catalog) Get(position int) (core.Company, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Get(position)
}

// All returns a copy of all companies in position order.
func (c *Catalog) All() []core.Company {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.All()
}

// Count returns the number of companies in the catalog.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Count()
}

// Dimension returns the vector dimension of both semantic spaces.
func (c *Catalog) Dimension() int {
	return c.descIndex.Dimension()
}

// SearchDescription runs a k-NN query against the description space,
// rebuilding the index first if a mutation left it dirty.
func (c *Catalog) SearchDescription(query []float32, k int) ([]index.Hit, error) {
	return c.search(c.descIndex, func() [][]float32 { return c.descVectors }, query, k)
}

// SearchNeeds runs a k-NN query against the needs space.
func (c *Catalog) SearchNeeds(query []float32, k int) ([]index.Hit, error) {
	return c.search(c.needsIndex, func() [][]float32 { return c.needsVec }, query, k)
}

func (c *Catalog) search(idx *index.Flat, source func() [][]float32, query []float32, k int) ([]index.Hit, error) {
	// Fast path under the read lock.
	c.mu.RLock()
	if !idx.Dirty() {
		defer c.mu.RUnlock()
		return idx.Search(query, k)
	}
	c.mu.RUnlock()

	// Rebuild needs the write lock; re-check dirtiness after acquiring it.
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := idx.EnsureCurrent(source); err != nil {
		return nil, err
	}
	return idx.Search(query, k)
}

// Reembed regenerates every vector in both spaces with the given embedder
// and rebuilds the indexes. Used when migrating to a new embedding model;
// the catalog is unchanged if any embedding call fails.
func (c *Catalog) Reembed(ctx context.Context, embedder ai.Embedder) error {
	if embedder == nil {
		return ErrEmbedderRequired
	}

	companies := c.All()
	if len(companies) == 0 {
		return nil
	}

	descTexts := make([]string, len(companies))
	needsTexts := make([]string, len(companies))
	for i := range companies {
		descTexts[i] = companies[i].DescriptionText()
		needsTexts[i] = companies[i].NeedsText()
	}

	descVecs, err := embedder.EmbedTexts(ctx, descTexts)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrEmbedding, err)
	}
	needsVecs, err := embedder.EmbedTexts(ctx, needsTexts)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrEmbedding, err)
	}
	if len(descVecs) != len(companies) || len(needsVecs) != len(companies) {
		return fmt.Errorf("%w: embedder returned wrong vector count", core.ErrEmbedding)
	}

	descIndex, err := index.NewFlat(embedder.Dimension())
	if err != nil {
		return err
	}
	needsIndex, err := index.NewFlat(embedder.Dimension())
	if err != nil {
		return err
	}
	if err := descIndex.Rebuild(descVecs); err != nil {
		return err
	}
	if err := needsIndex.Rebuild(needsVecs); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.store.All()
	if len(current) != len(companies) {
		return fmt.Errorf("%w: catalog mutated during reembed", core.ErrValidation)
	}
	for i := range companies {
		// Count alone misses update-in-place; compare the records the texts
		// were taken from.
		if current[i] != companies[i] {
			return fmt.Errorf("%w: catalog mutated during reembed", core.ErrValidation)
		}
	}
	c.descVectors = descVecs
	c.needsVec = needsVecs
	c.descIndex = descIndex
	c.needsIndex = needsIndex
	c.embedder = embedder

	c.logger.Info("reembedded catalog", "companies", len(companies), "dimension", embedder.Dimension())
	return nil
}

// Vectors returns copies of both backing vector lists in position
// order, for snapshot persistence. The mapping is only valid until the next
// mutation.
func (c *Catalog) Vectors() (desc, needs [][]float32) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	desc = make([][]float32, len(c.descVectors))
	copy(desc, c.descVectors)
	needs = make([][]float32, len(c.needsVec))
	copy(needs, c.needsVec)
	return desc, needs
}

// Restore replaces the catalog contents with a previously captured snapshot:
// records and both vector lists in matching position order. The indexes are
// rebuilt eagerly so the pairing invariant holds from the first search.
func (c *Catalog) Restore(companies []core.Company, descVecs, needsVecs [][]float32) error {
	if len(companies) != len(descVecs) || len(companies) != len(needsVecs) {
		return fmt.Errorf("%w: snapshot lists must have equal length (records %d, desc %d, needs %d)",
			core.ErrValidation, len(companies), len(descVecs), len(needsVecs))
	}

	descIndex, err := index.NewFlat(c.Dimension())
	if err != nil {
		return err
	}
	needsIndex, err := index.NewFlat(c.Dimension())
	if err != nil {
		return err
	}
	if err := descIndex.Rebuild(descVecs); err != nil {
		return err
	}
	if err := needsIndex.Rebuild(needsVecs); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = &Store{records: append([]core.Company(nil), companies...)}
	c.descVectors = descVecs
	c.needsVec = needsVecs
	c.descIndex = descIndex
	c.needsIndex = needsIndex
	return nil
}

// embedProfile produces the two space vectors for a validated company.
func (c *Catalog) embedProfile(ctx context.Context, company *core.Company) (descVec, needsVec []float32, err error) {
	vecs, err := c.embedder.EmbedTexts(ctx, []string{company.DescriptionText(), company.NeedsText()})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", core.ErrEmbedding, err)
	}
	if len(vecs) != 2 {
		return nil, nil, fmt.Errorf("%w: embedder returned %d vectors, expected 2", core.ErrEmbedding, len(vecs))
	}
	dim := c.descIndex.Dimension()
	if len(vecs[0]) != dim || len(vecs[1]) != dim {
		return nil, nil, fmt.Errorf("%w: embedder returned wrong dimension (want %d)", core.ErrEmbedding, dim)
	}
	return vecs[0], vecs[1], nil
}
