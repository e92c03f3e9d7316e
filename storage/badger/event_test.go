package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEvents_GeneratesContentIDs(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	docs, err := repo.AddEvents(ctx, newTestEvent("Tai Chi at Unity Pavilion", nil, nil))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, core.IDFromContent("Tai Chi at Unity Pavilion"), docs[0].Id)
	assert.False(t, docs[0].InsertedAt.IsZero())
	assert.False(t, docs[0].UpdatedAt.IsZero())
}

func TestAddEvents_SameContentUpserts(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	first, err := repo.AddEvents(ctx, newTestEvent("Sound healing session", nil, nil))
	require.NoError(t, err)

	second, err := repo.AddEvents(ctx, newTestEvent("Sound healing session", map[string]string{core.MetaDay: "Friday"}, nil))
	require.NoError(t, err)

	assert.Equal(t, first[0].Id, second[0].Id)
	assert.Equal(t, first[0].InsertedAt, second[0].InsertedAt)

	count, err := repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := repo.GetEvent(ctx, second[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Friday", stored.Day())
}

func TestAddEvents_ReturnedTimestampsMatchStored(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()

	// Stored records keep microsecond precision; the returned documents
	// must match them exactly, including caller-supplied timestamps that
	// carry nanoseconds.
	supplied := time.Date(2025, time.November, 3, 9, 0, 0, 123456789, time.UTC)
	added, err := repo.AddEvents(ctx,
		newTestEvent("Watercolor workshop", nil, nil),
		&core.EventDocument{Contents: "Tea ceremony", InsertedAt: supplied},
	)
	require.NoError(t, err)

	for _, doc := range added {
		stored, err := repo.GetEvent(ctx, doc.Id)
		require.NoError(t, err)
		assert.True(t, doc.InsertedAt.Equal(stored.InsertedAt),
			"returned InsertedAt %v != stored %v", doc.InsertedAt, stored.InsertedAt)
		assert.True(t, doc.UpdatedAt.Equal(stored.UpdatedAt),
			"returned UpdatedAt %v != stored %v", doc.UpdatedAt, stored.UpdatedAt)
	}

	updated, err := repo.UpdateEvents(ctx, added[0])
	require.NoError(t, err)
	stored, err := repo.GetEvent(ctx, updated[0].Id)
	require.NoError(t, err)
	assert.True(t, updated[0].UpdatedAt.Equal(stored.UpdatedAt))
}

func TestGetEvent_NotFound(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.GetEvent(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetEvents_SkipsMissing(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	docs, err := repo.AddEvents(ctx, newTestEvent("Pottery workshop", nil, nil))
	require.NoError(t, err)

	result, err := repo.GetEvents(ctx, docs[0].Id, core.ID(99999))
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestUpdateEvents(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	docs, err := repo.AddEvents(ctx, newTestEvent(
		"Capoeira class",
		map[string]string{core.MetaDay: "Monday", core.MetaLocation: "Dehashakti"},
		nil,
	))
	require.NoError(t, err)

	doc := docs[0]
	doc.Metadata[core.MetaDay] = "Wednesday"
	_, err = repo.UpdateEvents(ctx, doc)
	require.NoError(t, err)

	// Day index moved from Monday to Wednesday
	monday, err := repo.ListEventsByDay(ctx, "Monday")
	require.NoError(t, err)
	assert.Empty(t, monday)

	wednesday, err := repo.ListEventsByDay(ctx, "Wednesday")
	require.NoError(t, err)
	require.Len(t, wednesday, 1)
	assert.Equal(t, doc.Id, wednesday[0].Id)
}

func TestUpdateEvents_NotFound(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	doc := newTestEvent("ghost event", nil, nil)
	doc.Id = core.ID(42)
	_, err = repo.UpdateEvents(context.Background(), doc)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteEvents(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	docs, err := repo.AddEvents(ctx, newTestEvent(
		"Full moon gathering",
		map[string]string{core.MetaDay: "Saturday", core.MetaLocation: "Matrimandir"},
		nil,
	))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteEvents(ctx, docs[0].Id))

	_, err = repo.GetEvent(ctx, docs[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Index entries removed too
	saturday, err := repo.ListEventsByDay(ctx, "Saturday")
	require.NoError(t, err)
	assert.Empty(t, saturday)

	err = repo.DeleteEvents(ctx, docs[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListEventsByDay_CaseInsensitive(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	_, err = repo.AddEvents(ctx,
		newTestEvent("Morning yoga", map[string]string{core.MetaDay: "Monday"}, nil),
		newTestEvent("Evening yoga", map[string]string{core.MetaDay: "monday"}, nil),
		newTestEvent("Pottery", map[string]string{core.MetaDay: "Tuesday"}, nil),
	)
	require.NoError(t, err)

	results, err := repo.ListEventsByDay(ctx, "MONDAY")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestListEventsByLocation(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	_, err = repo.AddEvents(ctx,
		newTestEvent("Concert", map[string]string{core.MetaLocation: "Unity Pavilion"}, nil),
		newTestEvent("Dance", map[string]string{core.MetaLocation: "Kalabhumi"}, nil),
	)
	require.NoError(t, err)

	results, err := repo.ListEventsByLocation(ctx, "unity pavilion")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Concert", results[0].Contents)
}

func TestListEvents(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	all, err := repo.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Index entries must not leak into the listing
	_, err = repo.AddEvents(ctx,
		newTestEvent("one", map[string]string{core.MetaDay: "Monday"}, nil),
		newTestEvent("two", map[string]string{core.MetaLocation: "Town Hall"}, nil),
		newTestEvent("three", nil, nil),
	)
	require.NoError(t, err)

	all, err = repo.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	contents := make([]string, len(all))
	for i, doc := range all {
		contents[i] = doc.Contents
	}
	assert.ElementsMatch(t, []string{"one", "two", "three"}, contents)
}

func TestCountEvents(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	count, err := repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.AddEvents(ctx,
		newTestEvent("one", map[string]string{core.MetaDay: "Monday"}, nil),
		newTestEvent("two", map[string]string{core.MetaLocation: "Town Hall"}, nil),
	)
	require.NoError(t, err)

	count, err = repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
