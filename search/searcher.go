package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/poiesic/firmdex/ai"
	"github.com/poiesic/firmdex/catalog"
	"github.com/poiesic/firmdex/core"
	"github.com/poiesic/firmdex/filter"
	"github.com/poiesic/firmdex/index"
)

// DefaultOversample is the multiplier applied to topK when a semantic search
// is combined with filters. The wider candidate set absorbs positions the
// filter stage removes.
const DefaultOversample = 3

// Searcher runs semantic, filtered, and combined queries over a catalog.
type Searcher struct {
	catalog    *catalog.Catalog
	embedder   ai.Embedder
	oversample int
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithOversample sets the candidate multiplier for combined searches.
// Default is DefaultOversample.
func WithOversample(factor int) Option {
	return func(s *Searcher) error {
		if factor < 1 {
			return fmt.Errorf("%w: oversample factor must be at least 1, got %d", core.ErrValidation, factor)
		}
		s.oversample = factor
		return nil
	}
}

// NewSearcher creates a new searcher over the given catalog. Queries are
// embedded with the given embedder, which must share the catalog's dimension.
func NewSearcher(cat *catalog.Catalog, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		catalog:    cat,
		embedder:   embedder,
		oversample: DefaultOversample,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SearchByText searches the description space for companies whose combined
// description and challenges text is closest to the query.
// Returns up to topK results, ranked by similarity.
func (s *Searcher) SearchByText(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	return s.SearchByTextWithMonitor(ctx, query, topK, nil)
}

// SearchByTextWithMonitor is SearchByText with per-stage monitoring.
func (s *Searcher) SearchByTextWithMonitor(ctx context.Context, query string, topK int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	return s.semantic(ctx, query, topK, s.catalog.SearchDescription, monitor)
}

// SearchByNeeds searches the needs space for companies whose stated needs are
// closest to the query. Returns up to topK results, ranked by similarity.
func (s *Searcher) SearchByNeeds(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	return s.semantic(ctx, query, topK, s.catalog.SearchNeeds, nil)
}

// semantic runs one embed-then-knn pass against the given space and builds
// scored results in rank order.
func (s *Searcher) semantic(ctx context.Context, query string, topK int, knn func([]float32, int) ([]index.Hit, error), monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := validateQuery(query, topK); err != nil {
		return nil, err
	}
	monitor.Start(query)

	if s.catalog.Count() == 0 {
		return []*core.SearchResult{}, nil
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrEmbedding, err)
	}
	monitor.AfterEmbedding(len(embedding))

	hits, err := knn(embedding, topK)
	if err != nil {
		s.logger.Error("error querying vector index", "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(hits)

	results := s.assemble(hits)
	monitor.Finish(results)
	return results, nil
}

// Filter returns all companies whose records satisfy every supplied
// predicate, in position order. MatchScore is nil on every result since no
// semantic ranking took place.
func (s *Searcher) Filter(criteria filter.Criteria) ([]*core.SearchResult, error) {
	positions := make([]int, s.catalog.Count())
	for i := range positions {
		positions[i] = i
	}
	kept := filter.Apply(positions, criteria, s.catalog.Get)

	results := make([]*core.SearchResult, 0, len(kept))
	for _, pos := range kept {
		c, ok := s.catalog.Get(pos)
		if !ok {
			continue
		}
		results = append(results, core.ResultFromCompany(&c, nil))
	}
	return results, nil
}

// SearchWithFilters combines a description-space semantic search with
// structured filtering. The semantic pass oversamples the candidate set, the
// filter pass narrows it preserving rank, and the survivors are truncated to
// topK. A blank query degrades to a pure filter pass with unranked results.
func (s *Searcher) SearchWithFilters(ctx context.Context, query string, criteria filter.Criteria, topK int) ([]*core.SearchResult, error) {
	return s.SearchWithFiltersMonitor(ctx, query, criteria, topK, nil)
}

// SearchWithFiltersMonitor is SearchWithFilters with per-stage monitoring.
func (s *Searcher) SearchWithFiltersMonitor(ctx context.Context, query string, criteria filter.Criteria, topK int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be a positive integer, got %d", core.ErrValidation, topK)
	}

	if strings.TrimSpace(query) == "" {
		results, err := s.Filter(criteria)
		if err != nil {
			return nil, err
		}
		if len(results) > topK {
			results = results[:topK]
		}
		monitor.Finish(results)
		return results, nil
	}

	if criteria.IsZero() {
		return s.SearchByTextWithMonitor(ctx, query, topK, monitor)
	}

	monitor.Start(query)
	count := s.catalog.Count()
	if count == 0 {
		return []*core.SearchResult{}, nil
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrEmbedding, err)
	}
	monitor.AfterEmbedding(len(embedding))

	candidates := topK * s.oversample
	if candidates > count {
		candidates = count
	}
	hits, err := s.catalog.SearchDescription(embedding, candidates)
	if err != nil {
		s.logger.Error("error querying vector index", "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(hits)

	// Filter in rank order so the truncation below keeps the best survivors.
	ranked := make([]int, len(hits))
	distances := make(map[int]float64, len(hits))
	for i, hit := range hits {
		ranked[i] = hit.Position
		distances[hit.Position] = hit.Distance
	}
	kept := filter.Apply(ranked, criteria, s.catalog.Get)
	monitor.AfterFilter(kept)

	if len(kept) > topK {
		kept = kept[:topK]
	}
	results := make([]*core.SearchResult, 0, len(kept))
	for _, pos := range kept {
		c, ok := s.catalog.Get(pos)
		if !ok {
			continue
		}
		score := roundScore(index.Similarity(distances[pos]))
		results = append(results, core.ResultFromCompany(&c, &score))
	}
	monitor.Finish(results)
	return results, nil
}

// assemble resolves hits to companies in rank order, attaching rounded
// similarity scores. Hits whose position no longer resolves are skipped.
func (s *Searcher) assemble(hits []index.Hit) []*core.SearchResult {
	results := make([]*core.SearchResult, 0, len(hits))
	for _, hit := range hits {
		c, ok := s.catalog.Get(hit.Position)
		if !ok {
			continue
		}
		score := roundScore(index.Similarity(hit.Distance))
		results = append(results, core.ResultFromCompany(&c, &score))
	}
	return results
}

func validateQuery(query string, topK int) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query must not be blank", core.ErrValidation)
	}
	if topK <= 0 {
		return fmt.Errorf("%w: top_k must be a positive integer, got %d", core.ErrValidation, topK)
	}
	return nil
}

// roundScore rounds a similarity to three decimals for display.
func roundScore(similarity float64) float64 {
	return math.Round(similarity*1000) / 1000
}
