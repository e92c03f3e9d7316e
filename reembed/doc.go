// Package reembed provides functionality for regenerating the embedding
// vectors of stored event documents, typically after switching to a new
// embedding model.
//
// This package supports batch processing of event documents, progress
// tracking, retry logic with exponential backoff, and vector normalization
// to ensure compatibility with cosine similarity search.
package reembed
