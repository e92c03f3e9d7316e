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


package eventide

import (
	"io"
	"log/slog"

	"github.com/poiesic/eventide/ai"
	"github.com/poiesic/eventide/ai/openai"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/format"
	"github.com/poiesic/eventide/ingestion"
	"github.com/poiesic/eventide/pipeline"
	"github.com/poiesic/eventide/reembed"
	"github.com/poiesic/eventide/retrieval"
	"github.com/poiesic/eventide/storage"
	"github.com/poiesic/eventide/storage/badger"
)

// Assistant bundles the event store and AI services behind one handle and
// manufactures the per-concern components (coordinator, ingestion pipeline,
// retriever) wired to them.
type Assistant struct {
	backend   *badger.Backend
	eventRepo storage.EventRepository
	provider  ai.Provider
	logger    *slog.Logger

	broadDepth    int
	specificDepth int
	filterMode    core.FilterMode
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig      *ai.Config
	provider      ai.Provider
	broadDepth    int
	specificDepth int
	filterMode    core.FilterMode
}

// WithAIConfig sets the AI service configuration used to build the default
// OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider sets a pre-built AI provider, overriding WithAIConfig.
// Intended for tests and alternative backends.
func WithProvider(provider ai.Provider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithRetrievalDepths overrides the broad and specific retrieval depths.
func WithRetrievalDepths(broad, specific int) AssistantOption {
	return func(o *assistantOptions) {
		o.broadDepth = broad
		o.specificDepth = specific
	}
}

// WithFilterCombination sets how metadata filter conditions combine.
// Default is core.FilterModeOr.
func WithFilterCombination(mode core.FilterMode) AssistantOption {
	return func(o *assistantOptions) {
		o.filterMode = mode
	}
}

// NewAssistant opens the event store at filePath and wires the AI services.
// Pass inMemory=true for an ephemeral store (tests, demos).
func NewAssistant(filePath string, inMemory bool, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig:      ai.DefaultConfig(),
		broadDepth:    retrieval.DefaultBroadDepth,
		specificDepth: retrieval.DefaultSpecificDepth,
		filterMode:    core.FilterModeOr,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	eventRepo := badger.NewEventRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Assistant{
		backend:       backend,
		eventRepo:     eventRepo,
		provider:      provider,
		logger:        slog.Default(),
		broadDepth:    options.broadDepth,
		specificDepth: options.specificDepth,
		filterMode:    options.filterMode,
	}, nil
}

// Close releases the AI provider and the underlying store.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// EventRepository returns the underlying event repository.
func (a *Assistant) EventRepository() storage.EventRepository {
	return a.eventRepo
}

// Provider returns the AI provider.
func (a *Assistant) Provider() ai.Provider {
	return a.provider
}

// NewIngestionPipeline creates an ingestion pipeline over the assistant's
// store and embedder.
func (a *Assistant) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(a.eventRepo, a.provider, opts...)
}

// NewReembedder creates a reembedder over the assistant's store and embedder.
// Run it after switching embedding models so stored vectors stay comparable
// with query vectors. Progress is written to the given writer.
func (a *Assistant) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(a.eventRepo, a.provider.Embedder(), config, progress)
}

// NewCoordinator creates a conversation pipeline coordinator wired to the
// assistant's classifier, retriever, and formatter.
func (a *Assistant) NewCoordinator(opts ...pipeline.Option) (*pipeline.Coordinator, error) {
	retriever, err := retrieval.NewSemanticRetriever(a.eventRepo, a.provider.Embedder())
	if err != nil {
		return nil, err
	}

	orchestrator, err := retrieval.NewOrchestrator(retriever,
		retrieval.WithBroadDepth(a.broadDepth),
		retrieval.WithSpecificDepth(a.specificDepth),
		retrieval.WithFilterBuilder(retrieval.NewFilterBuilder(retrieval.WithFilterMode(a.filterMode))),
	)
	if err != nil {
		return nil, err
	}

	return pipeline.NewCoordinator(a.provider.QueryClassifier(), orchestrator, format.NewFormatter(), opts...)
}
