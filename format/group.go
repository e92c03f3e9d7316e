package format

import (
	"sort"

	"github.com/poiesic/eventide/core"
)

// GroupKind identifies one of the three temporal event categories.
type GroupKind int

const (
	// GroupDateSpecific holds events scheduled for a particular calendar date.
	GroupDateSpecific GroupKind = iota
	// GroupWeekdayBased holds events recurring on a weekday without a date.
	GroupWeekdayBased
	// GroupAppointmentOrDaily holds booking-based, daily, or weekday-range
	// events carrying neither a date nor a day.
	GroupAppointmentOrDaily
)

// String returns a human-readable group name.
func (k GroupKind) String() string {
	switch k {
	case GroupDateSpecific:
		return "Date-specific"
	case GroupWeekdayBased:
		return "Weekday-based"
	case GroupAppointmentOrDaily:
		return "Appointment or daily"
	default:
		return "Unknown"
	}
}

// EventGroup is an ordered slice of events in one temporal category.
type EventGroup struct {
	Kind   GroupKind
	Events []*core.EventDocument
}

// GroupEvents partitions retrieval hits into the three temporal categories,
// preserving the fixed presentation order DateSpecific, WeekdayBased,
// AppointmentOrDaily. Within each group events sort by ascending start time;
// events without a parseable time keep their retrieval rank at the end.
func GroupEvents(hits []*core.SearchResult) []EventGroup {
	groups := []EventGroup{
		{Kind: GroupDateSpecific},
		{Kind: GroupWeekdayBased},
		{Kind: GroupAppointmentOrDaily},
	}

	for _, hit := range hits {
		if hit == nil || hit.Event == nil {
			continue
		}
		doc := hit.Event
		switch {
		case doc.Date() != "":
			groups[GroupDateSpecific].Events = append(groups[GroupDateSpecific].Events, doc)
		case doc.Day() != "":
			groups[GroupWeekdayBased].Events = append(groups[GroupWeekdayBased].Events, doc)
		default:
			groups[GroupAppointmentOrDaily].Events = append(groups[GroupAppointmentOrDaily].Events, doc)
		}
	}

	for i := range groups {
		sortByStartTime(groups[i].Events)
	}

	return groups
}

// sortByStartTime orders events ascending by start time. The sort is stable,
// so events without a parseable time retain their relative retrieval order
// behind all timed events.
func sortByStartTime(events []*core.EventDocument) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, iOK := StartTime(events[i])
		tj, jOK := StartTime(events[j])
		if iOK && jOK {
			return ti < tj
		}
		// Timed events precede untimed ones; two untimed events keep order
		return iOK && !jOK
	})
}
