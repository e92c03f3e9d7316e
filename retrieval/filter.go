package retrieval

import (
	"log/slog"
	"time"

	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/temporal"
)

// FilterBuilder derives metadata filter expressions from query classifications.
//
// A date filter also yields a derived weekday condition, so a listing that
// only carries day metadata still matches a dated query. Conditions combine
// with OR by default: metadata quality varies across listings, and requiring
// every field to match would silently drop valid events.
type FilterBuilder struct {
	mode   core.FilterMode
	logger *slog.Logger
	clock  func() time.Time
}

// FilterOption configures a FilterBuilder.
type FilterOption func(*FilterBuilder)

// WithFilterMode sets how filter conditions combine.
// Default is core.FilterModeOr.
func WithFilterMode(mode core.FilterMode) FilterOption {
	return func(b *FilterBuilder) {
		b.mode = mode
	}
}

// WithFilterLogger sets a custom logger.
// Default is slog.Default().
func WithFilterLogger(logger *slog.Logger) FilterOption {
	return func(b *FilterBuilder) {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
	}
}

// WithFilterClock sets the time source used to resolve year-less dates.
// Default is time.Now. Intended for tests.
func WithFilterClock(clock func() time.Time) FilterOption {
	return func(b *FilterBuilder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// NewFilterBuilder creates a filter builder.
func NewFilterBuilder(opts ...FilterOption) *FilterBuilder {
	b := &FilterBuilder{
		mode:   core.FilterModeOr,
		logger: slog.Default().With("component", "filter-builder"),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build derives a filter expression from a classification.
// Returns nil when the classification carries no filterable fields.
func (b *FilterBuilder) Build(qc *core.QueryClassification) *core.FilterExpression {
	if qc == nil {
		return nil
	}

	var conditions []core.FilterCondition

	if qc.FilterDay != "" {
		day := qc.FilterDay
		if weekday, ok := temporal.ParseWeekday(day); ok {
			day = weekday.String()
		}
		conditions = append(conditions, core.FilterCondition{Field: core.MetaDay, Value: day})
	}

	if qc.FilterDate != "" {
		date, err := temporal.ParseDate(qc.FilterDate, b.clock())
		if err != nil {
			b.logger.Warn("unparseable date filter, matching raw value",
				"date", qc.FilterDate, "err", err)
			conditions = append(conditions, core.FilterCondition{Field: core.MetaDate, Value: qc.FilterDate})
		} else {
			conditions = append(conditions, core.FilterCondition{Field: core.MetaDate, Value: temporal.FormatDate(date)})
			// Derive the weekday so day-only listings still match
			if qc.FilterDay == "" {
				conditions = append(conditions, core.FilterCondition{Field: core.MetaDay, Value: date.Weekday().String()})
			}
		}
	}

	if qc.FilterLocation != "" {
		conditions = append(conditions, core.FilterCondition{Field: core.MetaLocation, Value: qc.FilterLocation})
	}

	if len(conditions) == 0 {
		return nil
	}

	return &core.FilterExpression{
		Conditions: conditions,
		Mode:       b.mode,
	}
}
