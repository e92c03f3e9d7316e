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


package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/eventide/ai"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of listings to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of listings)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder orchestrates the reembedding of all event documents in a store.
type Reembedder struct {
	repo      storage.EventRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *EventIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.EventRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay)
	iterator := NewEventIterator(repo, config.BatchSize)

	return &Reembedder{
		repo:      repo,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
	}
}

// Run executes the reembedding operation.
// Every event document in the store is reembedded with the configured
// embedder. Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) error {
	totalListings, err := r.repo.CountEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to count event documents: %w", err)
	}

	if totalListings == 0 {
		fmt.Fprintf(r.progress, "No event documents found in store (0 listings)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d listings (batch size: %d)\n",
		totalListings, r.config.BatchSize)

	progress := newProgressLog(r.progress, totalListings, r.config.ReportInterval)
	progress.begin()

	processed := 0

	err = r.iterator.ForEach(ctx, func(docs []*core.EventDocument) error {
		if err := r.processor.Process(ctx, docs); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(docs)
		progress.advance(processed)

		return nil
	})

	if err != nil {
		return err
	}

	progress.end()

	elapsed := progress.elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d listings in %v (%.1f listings/sec)\n",
		totalListings, elapsed.Round(time.Second), float64(totalListings)/elapsed.Seconds())

	return nil
}
