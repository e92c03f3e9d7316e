package retrieval

import (
	"testing"
	"time"

	"github.com/poiesic/eventide/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// November 3, 2025 is a Monday.
var monday = time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return monday }

func TestBuild_NoFilters(t *testing.T) {
	b := NewFilterBuilder()

	filter := b.Build(&core.QueryClassification{
		RefinedQuery: "community events",
		Specificity:  core.SpecificityBroad,
	})
	assert.Nil(t, filter)

	assert.Nil(t, b.Build(nil))
}

func TestBuild_DayOnly(t *testing.T) {
	b := NewFilterBuilder()

	filter := b.Build(&core.QueryClassification{
		RefinedQuery: "yoga Wednesday",
		Specificity:  core.SpecificitySpecific,
		FilterDay:    "wednesday",
	})
	require.NotNil(t, filter)
	require.Len(t, filter.Conditions, 1)

	// Day names are canonicalized
	assert.Equal(t, core.MetaDay, filter.Conditions[0].Field)
	assert.Equal(t, "Wednesday", filter.Conditions[0].Value)
	assert.Equal(t, core.FilterModeOr, filter.Mode)
}

func TestBuild_DateDerivesWeekday(t *testing.T) {
	b := NewFilterBuilder(WithFilterClock(fixedClock))

	filter := b.Build(&core.QueryClassification{
		RefinedQuery: "events November 5, 2025",
		Specificity:  core.SpecificityBroad,
		FilterDate:   "November 5, 2025",
	})
	require.NotNil(t, filter)
	require.Len(t, filter.Conditions, 2)

	assert.Equal(t, core.MetaDate, filter.Conditions[0].Field)
	assert.Equal(t, "November 5, 2025", filter.Conditions[0].Value)
	assert.Equal(t, core.MetaDay, filter.Conditions[1].Field)
	assert.Equal(t, "Wednesday", filter.Conditions[1].Value)
}

func TestBuild_YearlessDateCompleted(t *testing.T) {
	b := NewFilterBuilder(WithFilterClock(fixedClock))

	filter := b.Build(&core.QueryClassification{
		RefinedQuery: "events November 5",
		FilterDate:   "November 5",
	})
	require.NotNil(t, filter)
	assert.Equal(t, "November 5, 2025", filter.Conditions[0].Value)
}

func TestBuild_ExplicitDayNotOverriddenByDate(t *testing.T) {
	b := NewFilterBuilder(WithFilterClock(fixedClock))

	filter := b.Build(&core.QueryClassification{
		RefinedQuery: "events",
		FilterDay:    "Friday",
		FilterDate:   "November 5, 2025",
	})
	require.NotNil(t, filter)
	require.Len(t, filter.Conditions, 2)

	// No derived Wednesday condition when the classifier already set a day
	assert.Equal(t, "Friday", filter.Conditions[0].Value)
	assert.Equal(t, core.MetaDate, filter.Conditions[1].Field)
}

func TestBuild_UnparseableDateKeptRaw(t *testing.T) {
	b := NewFilterBuilder(WithFilterClock(fixedClock))

	filter := b.Build(&core.QueryClassification{
		RefinedQuery: "events",
		FilterDate:   "sometime soon",
	})
	require.NotNil(t, filter)
	require.Len(t, filter.Conditions, 1)
	assert.Equal(t, "sometime soon", filter.Conditions[0].Value)
}

func TestBuild_AllFieldsWithAndMode(t *testing.T) {
	b := NewFilterBuilder(WithFilterMode(core.FilterModeAnd), WithFilterClock(fixedClock))

	filter := b.Build(&core.QueryClassification{
		RefinedQuery:   "sound healing",
		FilterDay:      "Saturday",
		FilterDate:     "November 8, 2025",
		FilterLocation: "Unity Pavilion",
	})
	require.NotNil(t, filter)
	assert.Len(t, filter.Conditions, 3)
	assert.Equal(t, core.FilterModeAnd, filter.Mode)
}

func TestBuild_LocationOnly(t *testing.T) {
	b := NewFilterBuilder()

	filter := b.Build(&core.QueryClassification{
		RefinedQuery:   "what's on at the town hall",
		FilterLocation: "Town Hall",
	})
	require.NotNil(t, filter)
	require.Len(t, filter.Conditions, 1)
	assert.Equal(t, core.MetaLocation, filter.Conditions[0].Field)
	assert.Equal(t, "Town Hall", filter.Conditions[0].Value)
}
