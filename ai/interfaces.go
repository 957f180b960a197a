package ai

import "context"

// Embedder generates fixed-dimension vector embeddings from text for
// semantic similarity search. This is the single blocking point of the whole
// catalog pipeline: implementations typically call a remote provider, so
// callers must not assume the call is cheap.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector has exactly Dimension() entries.
	// Returns an error for empty input or any provider/transport fault.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch, in the same order as the input. Batch processing is more
	// efficient than calling EmbedText repeatedly.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the fixed vector dimension this embedder produces.
	// Every vector in a given index instance must share this dimension.
	Dimension() int
}

// TagGenerator converts free-form company descriptions into structured,
// categorized tags. Implementations must be thread-safe for concurrent use.
type TagGenerator interface {
	// GenerateTags analyzes a company description and returns tags grouped
	// by category (see TagCategories). Categories with no applicable tags
	// may be absent from the result.
	GenerateTags(ctx context.Context, description string) (map[string][]string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// TagGenerator instances, ensuring they share configuration and resources.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// TagGenerator returns the tag generation service.
	// The returned TagGenerator is safe for concurrent use.
	TagGenerator() TagGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
