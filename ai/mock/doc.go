// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.QueryClassifier,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockClassifier := mock.NewMockQueryClassifier()
//	mockClassifier.ClassifyFunc = func(ctx context.Context, userText string, history []core.Turn, now time.Time) (*core.QueryClassification, error) {
//	    return &core.QueryClassification{RefinedQuery: userText, Specificity: core.SpecificityBroad}, nil
//	}
//
//	// Check call counts
//	count := mockClassifier.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockQueryClassifier: Rule-based classification (temporal-only queries
//     are Broad, topical queries are Specific, filters only from explicit
//     day and date mentions)
//   - MockProvider: Aggregates mock embedder and classifier
package mock
