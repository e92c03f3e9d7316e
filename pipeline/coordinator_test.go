package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/eventide/ai/mock"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/format"
	"github.com/poiesic/eventide/retrieval"
	"github.com/poiesic/eventide/storage"
	"github.com/poiesic/eventide/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// November 3, 2025 is a Monday.
var monday = time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC)

// recordingMonitor captures stage callbacks for assertions.
type recordingMonitor struct {
	started        string
	classification *core.QueryClassification
	retrieved      []*core.SearchResult
	finished       string
}

func (m *recordingMonitor) Start(userText string)                          { m.started = userText }
func (m *recordingMonitor) AfterClassification(qc *core.QueryClassification) { m.classification = qc }
func (m *recordingMonitor) AfterRetrieval(results []*core.SearchResult)    { m.retrieved = results }
func (m *recordingMonitor) Finish(response string)                         { m.finished = response }

// newTestPipeline builds a coordinator over an in-memory store seeded with
// the given events, using deterministic mock AI services.
func newTestPipeline(t *testing.T, events ...*core.EventDocument) (*Coordinator, storage.EventRepository) {
	t.Helper()

	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	embedder := mock.NewMockEmbedder()
	ctx := context.Background()
	for _, doc := range events {
		vector, err := embedder.EmbedText(ctx, doc.Contents)
		require.NoError(t, err)
		doc.Vector = vector
	}
	if len(events) > 0 {
		_, err = repo.AddEvents(ctx, events...)
		require.NoError(t, err)
	}

	retriever, err := retrieval.NewSemanticRetriever(repo, embedder)
	require.NoError(t, err)

	orchestrator, err := retrieval.NewOrchestrator(retriever)
	require.NoError(t, err)

	coordinator, err := NewCoordinator(mock.NewMockQueryClassifier(), orchestrator, format.NewFormatter())
	require.NoError(t, err)

	return coordinator, repo
}

func weeklyEvent(contents, day, at string) *core.EventDocument {
	return &core.EventDocument{
		Contents: contents,
		Metadata: map[string]string{core.MetaDay: day, core.MetaTime: at},
	}
}

func TestNewCoordinator_Validation(t *testing.T) {
	orchestrator, err := retrieval.NewOrchestrator(&failingRetriever{})
	require.NoError(t, err)

	_, err = NewCoordinator(nil, orchestrator, format.NewFormatter())
	assert.ErrorIs(t, err, ErrClassifierRequired)

	_, err = NewCoordinator(mock.NewMockQueryClassifier(), nil, format.NewFormatter())
	assert.ErrorIs(t, err, ErrOrchestratorRequired)

	_, err = NewCoordinator(mock.NewMockQueryClassifier(), orchestrator, nil)
	assert.ErrorIs(t, err, ErrFormatterRequired)
}

func TestAnswer_BroadTemporalQuery(t *testing.T) {
	coordinator, _ := newTestPipeline(t,
		weeklyEvent("Morning yoga\nContact: +91 98765 43210", "Monday", "7:00 AM"),
		weeklyEvent("Pottery studio", "Monday", "10:00 AM"),
	)

	monitor := &recordingMonitor{}
	response := coordinator.AnswerWithMonitor(context.Background(), "What's happening today?", nil, monday, monitor)

	require.NotEqual(t, ApologyMessage, response)
	assert.Contains(t, response, "Morning yoga")
	assert.Contains(t, response, "Pottery studio")

	// Broad temporal query: classification enriched with the absolute date
	require.NotNil(t, monitor.classification)
	assert.Equal(t, core.SpecificityBroad, monitor.classification.Specificity)
	assert.Contains(t, monitor.classification.RefinedQuery, "November 3, 2025")

	// Broad rendering is the compact list, not the structured template
	assert.NotContains(t, response, "**When**:")
}

func TestAnswer_SpecificTopicalQuery(t *testing.T) {
	coordinator, _ := newTestPipeline(t,
		weeklyEvent("Yoga classes at the pavilion\nContact: +91 98765 43210", "Wednesday", "8:00 AM"),
	)

	monitor := &recordingMonitor{}
	response := coordinator.AnswerWithMonitor(context.Background(), "Yoga classes on Wednesday", nil, monday, monitor)

	require.NotNil(t, monitor.classification)
	assert.Equal(t, core.SpecificitySpecific, monitor.classification.Specificity)
	assert.Equal(t, "Wednesday", monitor.classification.FilterDay)
	// Refined query carries the derived nearest matching date
	assert.Contains(t, monitor.classification.RefinedQuery, "November 5, 2025")

	// Specific rendering uses the structured template
	assert.Contains(t, response, "**When**:")
	assert.Contains(t, response, "Wednesday")
	assert.Contains(t, response, "https://wa.me/919876543210")
}

func TestAnswer_EmptyStoreYieldsNoResultsMessage(t *testing.T) {
	coordinator, _ := newTestPipeline(t)

	response := coordinator.Answer(context.Background(), "anything on tomorrow?", nil, monday)
	assert.Equal(t, format.NoResultsMessage, response)
}

func TestAnswer_ClassifierFailureYieldsApology(t *testing.T) {
	coordinator, _ := newTestPipeline(t, weeklyEvent("Something", "Monday", "9:00 AM"))

	classifier := mock.NewMockQueryClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, userText string, history []core.Turn, now time.Time) (*core.QueryClassification, error) {
		return nil, errors.New("model unreachable")
	}

	orchestrator := coordinator.orchestrator
	failing, err := NewCoordinator(classifier, orchestrator, format.NewFormatter())
	require.NoError(t, err)

	response := failing.Answer(context.Background(), "yoga?", nil, monday)
	assert.Equal(t, ApologyMessage, response)
}

// failingRetriever always errors, standing in for an unreachable index.
type failingRetriever struct{}

func (f *failingRetriever) Search(ctx context.Context, query string, k int, filter *core.FilterExpression) ([]*core.SearchResult, error) {
	return nil, errors.New("index unreachable")
}

func TestAnswer_RetrievalFailureYieldsApology(t *testing.T) {
	orchestrator, err := retrieval.NewOrchestrator(&failingRetriever{})
	require.NoError(t, err)

	coordinator, err := NewCoordinator(mock.NewMockQueryClassifier(), orchestrator, format.NewFormatter())
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	response := coordinator.AnswerWithMonitor(context.Background(), "yoga classes", nil, monday, monitor)

	assert.Equal(t, ApologyMessage, response)
	assert.Equal(t, ApologyMessage, monitor.finished)
	assert.Nil(t, monitor.retrieved)
}

func TestAnswerStream_DeliversFullResponse(t *testing.T) {
	coordinator, _ := newTestPipeline(t,
		weeklyEvent("Morning yoga", "Monday", "7:00 AM"),
		weeklyEvent("Capoeira", "Tuesday", "5:00 PM"),
	)

	var b strings.Builder
	for chunk := range coordinator.AnswerStream(context.Background(), "what's happening this week", nil, monday) {
		b.WriteString(chunk)
	}

	full := coordinator.Answer(context.Background(), "what's happening this week", nil, monday)
	assert.Equal(t, full, b.String())
}

func TestAnswerStream_StopsOnCancel(t *testing.T) {
	coordinator, _ := newTestPipeline(t, weeklyEvent("Morning yoga", "Monday", "7:00 AM"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count := 0
	for range coordinator.AnswerStream(ctx, "events", nil, monday) {
		count++
	}
	assert.Zero(t, count)
}

func TestAnswer_MonitorObservesStages(t *testing.T) {
	coordinator, _ := newTestPipeline(t, weeklyEvent("Morning yoga", "Monday", "7:00 AM"))

	monitor := &recordingMonitor{}
	response := coordinator.AnswerWithMonitor(context.Background(), "what's on today", nil, monday, monitor)

	assert.Equal(t, "what's on today", monitor.started)
	assert.NotNil(t, monitor.classification)
	assert.NotNil(t, monitor.retrieved)
	assert.Equal(t, response, monitor.finished)
}
