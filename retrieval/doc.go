// Package retrieval implements filtered semantic retrieval over the event store.
//
// The FilterBuilder converts a query classification into a metadata filter
// expression, deriving a weekday condition from explicit dates so listings
// with partial metadata still match. The Orchestrator picks the retrieval
// depth from the classification's specificity (broad queries fetch a deep
// candidate set for grouping, specific queries a shallow one) and delegates
// the embedding and similarity search to a Retriever.
package retrieval
