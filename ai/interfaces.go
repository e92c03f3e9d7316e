package ai

import (
	"context"
	"time"

	"github.com/poiesic/eventide/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryClassifier turns a raw user utterance into a refined search query,
// a Broad/Specific verdict, and optional structured filter hints.
//
// Implementations resolve relative date terms ("today", "tomorrow") against
// now as the reference instant, and cross-reference explicit dates with their
// weekdays. Terms that cannot be resolved are passed through unmodified; a
// classifier never fails a turn over an ambiguous date.
//
// history carries recent conversation turns for context; implementations may
// ignore it. Implementations must be thread-safe for concurrent use.
type QueryClassifier interface {
	Classify(ctx context.Context, userText string, history []core.Turn, now time.Time) (*core.QueryClassification, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and QueryClassifier
// instances, ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// QueryClassifier returns the query classification service.
	// The returned QueryClassifier is safe for concurrent use.
	QueryClassifier() QueryClassifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
