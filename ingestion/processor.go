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


package ingestion

import (
	"context"
	"log/slog"

	"github.com/poiesic/eventide/ai"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/storage"
)

// processor is an internal interface for enriching stored event documents.
type processor interface {
	// process enriches the event documents identified by the given IDs.
	process(ctx context.Context, ids ...core.ID) error
}

// embeddingProcessor generates embeddings for event documents that lack one.
type embeddingProcessor struct {
	events   storage.EventRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

func newEmbeddingProcessor(events storage.EventRepository, embedder ai.Embedder, logger *slog.Logger) *embeddingProcessor {
	return &embeddingProcessor{
		events:   events,
		embedder: embedder,
		logger:   logger,
	}
}

// process embeds the contents of the identified documents and stores the
// vectors. Documents that already carry a vector are skipped.
func (p *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	docs, err := p.events.GetEvents(ctx, ids...)
	if err != nil {
		return err
	}

	pending := make([]*core.EventDocument, 0, len(docs))
	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Vector) > 0 {
			continue
		}
		pending = append(pending, doc)
		texts = append(texts, doc.Contents)
	}
	if len(pending) == 0 {
		return nil
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}

	// Stored vectors must be unit length so the store's dot-product
	// scoring stays a cosine similarity.
	for i, doc := range pending {
		if i < len(vectors) {
			doc.Vector = core.NormalizeVector(vectors[i])
		}
	}

	_, err = p.events.UpdateEvents(ctx, pending...)
	return err
}
