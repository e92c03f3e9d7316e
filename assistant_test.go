package eventide

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/eventide/ai/mock"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// November 3, 2025 is a Monday.
var monday = time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC)

func newTestAssistant(t *testing.T) *Assistant {
	t.Helper()

	assistant, err := NewAssistant("", true, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })
	return assistant
}

func TestNewAssistant_InMemory(t *testing.T) {
	assistant := newTestAssistant(t)

	count, err := assistant.EventRepository().CountEvents(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAssistant_IngestThenAnswer(t *testing.T) {
	assistant := newTestAssistant(t)
	ctx := context.Background()

	ingest, err := assistant.NewIngestionPipeline()
	require.NoError(t, err)
	defer ingest.Release()

	docs, err := ingest.Ingest(ctx, &core.EventDocument{
		Contents: "Sunrise yoga by the lake\nContact: +91 98765 43210",
		Metadata: map[string]string{core.MetaDay: "Wednesday", core.MetaTime: "6:30 AM"},
	})
	require.NoError(t, err)

	// Wait for the async embedding before querying
	require.Eventually(t, func() bool {
		stored, err := assistant.EventRepository().GetEvent(ctx, docs[0].Id)
		return err == nil && len(stored.Vector) > 0
	}, 2*time.Second, 10*time.Millisecond)

	coordinator, err := assistant.NewCoordinator()
	require.NoError(t, err)

	response := coordinator.Answer(ctx, "yoga on Wednesday", nil, monday)
	assert.Contains(t, response, "Sunrise yoga by the lake")
	assert.Contains(t, response, "**When**: Wednesday, 6:30 AM")
}

func TestAssistant_EmptyStoreAnswer(t *testing.T) {
	assistant := newTestAssistant(t)

	coordinator, err := assistant.NewCoordinator()
	require.NoError(t, err)

	response := coordinator.Answer(context.Background(), "what's happening today?", nil, monday)
	assert.Equal(t, format.NoResultsMessage, response)
}

func TestAssistant_CustomDepthsAndFilterMode(t *testing.T) {
	assistant, err := NewAssistant("", true,
		WithProvider(mock.NewMockProvider()),
		WithRetrievalDepths(10, 3),
		WithFilterCombination(core.FilterModeAnd),
	)
	require.NoError(t, err)
	defer assistant.Close()

	_, err = assistant.NewCoordinator()
	require.NoError(t, err)

	assert.Equal(t, 10, assistant.broadDepth)
	assert.Equal(t, 3, assistant.specificDepth)
	assert.Equal(t, core.FilterModeAnd, assistant.filterMode)
}
