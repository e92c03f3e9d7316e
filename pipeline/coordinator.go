package pipeline

import (
	"context"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/eventide/ai"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/format"
	"github.com/poiesic/eventide/retrieval"
)

// ApologyMessage is the single user-facing error path for the pipeline.
// Any recoverable failure in an external dependency is translated into it.
const ApologyMessage = "I apologize, but I couldn't generate a proper response. Please try again."

// Coordinator sequences one conversational turn: classify the utterance,
// retrieve matching events, format the response. Stages run strictly in
// order; each stage's output is the next stage's sole structured input.
type Coordinator struct {
	classifier   ai.QueryClassifier
	orchestrator *retrieval.Orchestrator
	formatter    *format.Formatter
	logger       *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCoordinator creates a pipeline coordinator.
func NewCoordinator(
	classifier ai.QueryClassifier,
	orchestrator *retrieval.Orchestrator,
	formatter *format.Formatter,
	opts ...Option,
) (*Coordinator, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if orchestrator == nil {
		return nil, ErrOrchestratorRequired
	}
	if formatter == nil {
		return nil, ErrFormatterRequired
	}

	c := &Coordinator{
		classifier:   classifier,
		orchestrator: orchestrator,
		formatter:    formatter,
		logger:       slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Answer processes one user turn and returns the response text.
// External failures never propagate: the caller always receives either a
// formatted result or ApologyMessage.
func (c *Coordinator) Answer(ctx context.Context, userText string, history []core.Turn, now time.Time) string {
	return c.AnswerWithMonitor(ctx, userText, history, now, nil)
}

// AnswerWithMonitor processes one user turn with stage observation hooks.
func (c *Coordinator) AnswerWithMonitor(ctx context.Context, userText string, history []core.Turn, now time.Time, monitor TurnMonitor) string {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(userText)

	qc, err := c.classifier.Classify(ctx, userText, history, now)
	if err != nil {
		c.logger.Error("classification failed", "err", err)
		monitor.Finish(ApologyMessage)
		return ApologyMessage
	}
	monitor.AfterClassification(qc)

	results, err := c.orchestrator.Retrieve(ctx, qc)
	if err != nil {
		c.logger.Error("retrieval failed", "query", qc.RefinedQuery, "err", err)
		monitor.Finish(ApologyMessage)
		return ApologyMessage
	}
	monitor.AfterRetrieval(results)

	response := c.formatter.Format(results, qc.Specificity)
	monitor.Finish(response)
	return response
}

// AnswerStream processes one user turn and yields the response text line by
// line. Streaming applies only to delivery of the final formatted text; the
// classify, retrieve, and format stages still complete strictly in order
// before the first chunk is yielded.
func (c *Coordinator) AnswerStream(ctx context.Context, userText string, history []core.Turn, now time.Time) iter.Seq[string] {
	return func(yield func(string) bool) {
		response := c.Answer(ctx, userText, history, now)
		lines := strings.SplitAfter(response, "\n")
		for _, line := range lines {
			if line == "" {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}
