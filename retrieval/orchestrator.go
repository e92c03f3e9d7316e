package retrieval

import (
	"context"
	"log/slog"

	"github.com/poiesic/eventide/ai"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/storage"
)

// Default retrieval depths. Broad queries cast a wide net because the
// formatter groups and condenses results; specific queries stay narrow so
// individual listings survive ranking.
const (
	DefaultBroadDepth    = 100
	DefaultSpecificDepth = 20
)

// Retriever finds event documents relevant to a refined query text.
type Retriever interface {
	// Search embeds the query and returns up to k results that pass the
	// optional metadata filter, ranked by relevance (highest first).
	Search(ctx context.Context, query string, k int, filter *core.FilterExpression) ([]*core.SearchResult, error)
}

// SemanticRetriever implements Retriever over an embedder and an event
// repository.
type SemanticRetriever struct {
	events        storage.EventRepository
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

var _ Retriever = (*SemanticRetriever)(nil)

// RetrieverOption configures a SemanticRetriever.
type RetrieverOption func(*SemanticRetriever) error

// WithMinSimilarity sets the similarity floor for search results.
// Default is 0, meaning depth alone bounds the result set.
func WithMinSimilarity(min float32) RetrieverOption {
	return func(r *SemanticRetriever) error {
		r.minSimilarity = min
		return nil
	}
}

// WithRetrieverLogger sets a custom logger.
// Default is slog.Default().
func WithRetrieverLogger(logger *slog.Logger) RetrieverOption {
	return func(r *SemanticRetriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewSemanticRetriever creates a retriever over the given repository and embedder.
func NewSemanticRetriever(events storage.EventRepository, embedder ai.Embedder, opts ...RetrieverOption) (*SemanticRetriever, error) {
	if events == nil {
		return nil, ErrEventRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &SemanticRetriever{
		events:   events,
		embedder: embedder,
		logger:   slog.Default().With("component", "semantic-retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Search embeds the query text and performs filtered similarity search.
func (r *SemanticRetriever) Search(ctx context.Context, query string, k int, filter *core.FilterExpression) ([]*core.SearchResult, error) {
	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	results, err := r.events.FindSimilar(ctx, embedding, filter, r.minSimilarity, k)
	if err != nil {
		r.logger.Error("error querying for similar events", "err", err)
		return nil, err
	}

	return results, nil
}

// Orchestrator turns a query classification into a ranked result set.
// It derives the metadata filter, selects the retrieval depth from the
// classification's specificity, and delegates to the retriever.
type Orchestrator struct {
	retriever     Retriever
	filterBuilder *FilterBuilder
	broadDepth    int
	specificDepth int
	logger        *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithBroadDepth sets the result depth for broad queries.
// Default is DefaultBroadDepth.
func WithBroadDepth(depth int) Option {
	return func(o *Orchestrator) error {
		if depth <= 0 {
			return ErrInvalidDepth
		}
		o.broadDepth = depth
		return nil
	}
}

// WithSpecificDepth sets the result depth for specific queries.
// Default is DefaultSpecificDepth.
func WithSpecificDepth(depth int) Option {
	return func(o *Orchestrator) error {
		if depth <= 0 {
			return ErrInvalidDepth
		}
		o.specificDepth = depth
		return nil
	}
}

// WithFilterBuilder sets a custom filter builder.
// Default is NewFilterBuilder() with OR combination.
func WithFilterBuilder(builder *FilterBuilder) Option {
	return func(o *Orchestrator) error {
		if builder != nil {
			o.filterBuilder = builder
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a retrieval orchestrator.
func NewOrchestrator(retriever Retriever, opts ...Option) (*Orchestrator, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	o := &Orchestrator{
		retriever:     retriever,
		filterBuilder: NewFilterBuilder(),
		broadDepth:    DefaultBroadDepth,
		specificDepth: DefaultSpecificDepth,
		logger:        slog.Default().With("component", "retrieval-orchestrator"),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Depth returns the result depth used for the given specificity.
func (o *Orchestrator) Depth(specificity core.Specificity) int {
	if specificity == core.SpecificitySpecific {
		return o.specificDepth
	}
	return o.broadDepth
}

// Retrieve executes filtered semantic retrieval for a classification.
func (o *Orchestrator) Retrieve(ctx context.Context, qc *core.QueryClassification) ([]*core.SearchResult, error) {
	if qc == nil {
		return nil, ErrNilClassification
	}

	filter := o.filterBuilder.Build(qc)
	depth := o.Depth(qc.Specificity)

	o.logger.Debug("retrieving events",
		"query", qc.RefinedQuery,
		"specificity", qc.Specificity.String(),
		"depth", depth,
		"filtered", filter != nil)

	results, err := o.retriever.Search(ctx, qc.RefinedQuery, depth, filter)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("retrieval complete", "hits", len(results))
	return results, nil
}
