package storage

import (
	"context"

	"github.com/poiesic/eventide/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds event documents similar to the given vector.
	// Documents are filtered by the optional metadata filter BEFORE scoring,
	// so the limit applies to the filtered candidate set. A nil or empty
	// filter matches every document.
	// Returns documents with similarity >= minSimilarity, up to limit
	// results, ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, filter *core.FilterExpression, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// EventRepository provides operations for managing event documents.
type EventRepository interface {
	Repository

	// AddEvents adds one or more event documents to storage.
	// IDs are content-based (IDFromContent of the document contents), so
	// re-adding the same listing is an upsert, not a duplicate.
	// Sets InsertedAt timestamp if not already set.
	// Returns the documents with IDs and timestamps populated.
	AddEvents(ctx context.Context, docs ...*core.EventDocument) ([]*core.EventDocument, error)

	// UpdateEvents updates existing event documents.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateEvents(ctx context.Context, docs ...*core.EventDocument) ([]*core.EventDocument, error)

	// DeleteEvents removes event documents by their IDs.
	// Also removes associated metadata indices.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteEvents(ctx context.Context, ids ...core.ID) error

	// GetEvent retrieves a single event document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetEvent(ctx context.Context, id core.ID) (*core.EventDocument, error)

	// GetEvents retrieves multiple event documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetEvents(ctx context.Context, ids ...core.ID) ([]*core.EventDocument, error)

	// ListEventsByDay retrieves event documents whose day metadata matches
	// the given weekday name. Matching is case-insensitive.
	ListEventsByDay(ctx context.Context, day string) ([]*core.EventDocument, error)

	// ListEventsByLocation retrieves event documents whose location metadata
	// matches the given venue name. Matching is case-insensitive.
	ListEventsByLocation(ctx context.Context, location string) ([]*core.EventDocument, error)

	// ListEvents retrieves all stored event documents.
	// Ordering follows the storage key order and is stable across calls.
	ListEvents(ctx context.Context) ([]*core.EventDocument, error)

	// CountEvents returns the total number of stored event documents.
	CountEvents(ctx context.Context) (int, error)
}
