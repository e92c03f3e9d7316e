package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/eventide/ai"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/storage"
)

// Pipeline orchestrates ingestion of event documents: validation, content
// addressing, storage, and asynchronous embedding generation.
type Pipeline struct {
	events        storage.EventRepository
	embeddingPool *ants.Pool
	embeddingProc processor
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(events storage.EventRepository, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if events == nil {
		return nil, ErrEventRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		events:        events,
		embeddingPool: pool,
		logger:        slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	p.embeddingProc = newEmbeddingProcessor(events, provider.Embedder(), p.logger)

	return p, nil
}

// Ingest validates and stores event documents, then submits the unembedded
// ones for asynchronous embedding. Errors during async embedding are logged
// but do not fail the ingestion.
// Returns the stored documents with content-derived IDs populated.
func (p *Pipeline) Ingest(ctx context.Context, docs ...*core.EventDocument) ([]*core.EventDocument, error) {
	for _, doc := range docs {
		if err := core.ValidateEventDocument(doc); err != nil {
			return nil, err
		}
	}

	added, err := p.events.AddEvents(ctx, docs...)
	if err != nil {
		return nil, err
	}

	var pending []core.ID
	for _, doc := range added {
		if len(doc.Vector) == 0 {
			pending = append(pending, doc.Id)
		}
	}
	if len(pending) == 0 {
		return added, nil
	}

	submitErr := p.embeddingPool.Submit(func() {
		if err := p.embeddingProc.process(context.Background(), pending...); err != nil {
			p.logger.Error("error embedding ingested events", "err", err)
		}
	})
	if submitErr != nil {
		p.logger.Error("error submitting embedding work", "err", submitErr)
	}

	return added, nil
}

// Drain blocks until all submitted embedding work has finished or the
// context is done. Useful before process exit so async embeddings are not
// lost.
func (p *Pipeline) Drain(ctx context.Context) error {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		if p.embeddingPool.Running() == 0 && p.embeddingPool.Waiting() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
