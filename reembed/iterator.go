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

	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/storage"
)

const (
	// DefaultBatchSize is the default number of listings to fetch in each batch
	DefaultBatchSize = 100
)

// EventIterator iterates over all stored event documents in batches.
type EventIterator struct {
	repo      storage.EventRepository
	batchSize int
}

// NewEventIterator creates a new event iterator.
// batchSize: number of listings to process in each batch (must be > 0)
func NewEventIterator(repo storage.EventRepository, batchSize int) *EventIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &EventIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all event documents, calling fn for each batch.
// Iteration stops on first error from fn or when all documents are processed.
// Context cancellation is checked between batches.
func (it *EventIterator) ForEach(ctx context.Context, fn func([]*core.EventDocument) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	docs, err := it.repo.ListEvents(ctx)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		return nil
	}

	for i := 0; i < len(docs); i += it.batchSize {
		end := i + it.batchSize
		if end > len(docs) {
			end = len(docs)
		}

		if err := fn(docs[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
