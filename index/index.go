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


package index

import (
	"fmt"
	"sort"

	"github.com/poiesic/firmdex/core"
)

// Hit is a single nearest-neighbor match: the position of the vector in
// insertion order and its squared Euclidean distance to the query.
type Hit struct {
	Position int
	Distance float64
}

// Flat is an exhaustive nearest-neighbor index over fixed-dimension float
// vectors, addressed implicitly by insertion order. It is a rebuildable
// cache, never the source of truth: after any mutation that changes the
// vector-to-position mapping the owner marks it dirty, and every read path
// calls EnsureCurrent before searching.
//
// Flat is not safe for concurrent use; the owning aggregate serializes
// access.
type Flat struct {
	dim   int
	vecs  [][]float32
	dirty bool
}

// NewFlat creates an empty index for vectors of the given dimension.
func NewFlat(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: index dimension must be positive, got %d", core.ErrValidation, dim)
	}
	return &Flat{dim: dim}, nil
}

// Dimension returns the configured vector dimension.
func (f *Flat) Dimension() int {
	return f.dim
}

// Len returns the number of vectors currently indexed.
func (f *Flat) Len() int {
	return len(f.vecs)
}

// Add appends a vector to the index. The vector keeps the position equal to
// the index length before the append, mirroring the record store.
func (f *Flat) Add(vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("%w: vector dimension %d does not match index dimension %d", core.ErrValidation, len(vec), f.dim)
	}
	f.vecs = append(f.vecs, vec)
	return nil
}

// Search returns the k nearest vectors to the query by squared Euclidean
// distance, ascending. Ties are broken by insertion order. The result length
// is min(k, Len()).
//
// Search does not consult the dirty flag; callers go through EnsureCurrent
// first.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be a positive integer, got %d", core.ErrValidation, k)
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query dimension %d does not match index dimension %d", core.ErrValidation, len(query), f.dim)
	}

	hits := make([]Hit, len(f.vecs))
	for i, vec := range f.vecs {
		hits[i] = Hit{Position: i, Distance: squaredL2(query, vec)}
	}
	// Stable keeps insertion order for equal distances.
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Distance < hits[b].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Rebuild discards the current contents and re-adds all vectors in the exact
// order given. The rebuild is all-or-nothing: vectors are validated into a
// fresh backing slice which replaces the old one only on success. A
// successful rebuild clears the dirty flag.
func (f *Flat) Rebuild(vectors [][]float32) error {
	fresh := make([][]float32, 0, len(vectors))
	for i, vec := range vectors {
		if len(vec) != f.dim {
			return fmt.Errorf("%w: vector %d has dimension %d, index dimension is %d", core.ErrValidation, i, len(vec), f.dim)
		}
		fresh = append(fresh, vec)
	}
	f.vecs = fresh
	f.dirty = false
	return nil
}

// MarkDirty flags the index as out of sync with its backing vector list.
// Callers mark after any delete or in-place update, since Flat has no native
// remove-at-position operation.
func (f *Flat) MarkDirty() {
	f.dirty = true
}

// Dirty reports whether the index needs a rebuild before the next search.
func (f *Flat) Dirty() bool {
	return f.dirty
}

// EnsureCurrent rebuilds the index from source if it is dirty. source must
// yield the backing vectors in current position order; the no-op path costs
// nothing, the rebuild path is O(n).
func (f *Flat) EnsureCurrent(source func() [][]float32) error {
	if !f.dirty {
		return nil
	}
	return f.Rebuild(source())
}

// Similarity maps a squared L2 distance in [0, inf) to a bounded score in
// (0, 1], monotonically decreasing. It is a display score, not a
// probability.
func Similarity(distance float64) float64 {
	return 1.0 / (1.0 + distance)
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
