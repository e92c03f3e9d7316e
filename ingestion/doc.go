// Package ingestion provides pipeline orchestration for loading event
// listings into the store.
//
// The Pipeline type manages the ingestion workflow for event documents:
//   - Validating and content-addressing incoming listings
//   - Adding documents to storage (re-ingesting a listing is an upsert)
//   - Generating embeddings asynchronously
//
// Embedding runs on a worker pool so callers are not blocked on the
// embedding service. Errors during async embedding are logged but do not
// fail the ingestion operation.
package ingestion
