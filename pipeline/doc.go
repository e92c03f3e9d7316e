// Package pipeline coordinates a full conversational turn over community
// event listings: classify the user's utterance, run filtered semantic
// retrieval, and format the ranked hits into response text.
//
// The coordinator is the pipeline's only error boundary. Failures in the
// classifier or the retrieval layer are logged and translated into a single
// fixed apology message; callers never see an error. An empty result set is
// not an error and renders as the formatter's no-results message.
//
// Coordinators hold no per-turn mutable state and may be shared across
// concurrent turns.
package pipeline
