package format

import (
	"strings"
	"testing"

	"github.com/poiesic/eventide/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hit(contents string, metadata map[string]string) *core.SearchResult {
	return &core.SearchResult{
		Event: &core.EventDocument{Contents: contents, Metadata: metadata},
		Score: 1.0,
	}
}

func TestFormat_EmptyHits(t *testing.T) {
	f := NewFormatter()
	assert.Equal(t, NoResultsMessage, f.Format(nil, core.SpecificityBroad))
	assert.Equal(t, NoResultsMessage, f.Format(nil, core.SpecificitySpecific))
}

func TestGroupEvents_FixedOrderAndPartition(t *testing.T) {
	hits := []*core.SearchResult{
		hit("Drop-in pottery studio", nil),
		hit("Weekly capoeira", map[string]string{core.MetaDay: "Monday"}),
		hit("Full moon concert", map[string]string{core.MetaDate: "November 5, 2025"}),
	}

	groups := GroupEvents(hits)
	require.Len(t, groups, 3)

	assert.Equal(t, GroupDateSpecific, groups[0].Kind)
	require.Len(t, groups[0].Events, 1)
	assert.Equal(t, "Full moon concert", groups[0].Events[0].Contents)

	assert.Equal(t, GroupWeekdayBased, groups[1].Kind)
	require.Len(t, groups[1].Events, 1)

	assert.Equal(t, GroupAppointmentOrDaily, groups[2].Kind)
	require.Len(t, groups[2].Events, 1)
}

func TestGroupEvents_DatePresenceBeatsDay(t *testing.T) {
	hits := []*core.SearchResult{
		hit("Dated and dayed", map[string]string{
			core.MetaDate: "November 5, 2025",
			core.MetaDay:  "Wednesday",
		}),
	}

	groups := GroupEvents(hits)
	assert.Len(t, groups[GroupDateSpecific].Events, 1)
	assert.Empty(t, groups[GroupWeekdayBased].Events)
}

func TestGroupEvents_SortsByStartTimeUnparseableLast(t *testing.T) {
	hits := []*core.SearchResult{
		hit("Evening satsang", map[string]string{core.MetaDay: "Monday", core.MetaTime: "7:00 PM"}),
		hit("Untimed first", map[string]string{core.MetaDay: "Monday"}),
		hit("Morning yoga", map[string]string{core.MetaDay: "Monday", core.MetaTime: "7:00 AM"}),
		hit("Untimed second", map[string]string{core.MetaDay: "Monday"}),
	}

	groups := GroupEvents(hits)
	events := groups[GroupWeekdayBased].Events
	require.Len(t, events, 4)

	assert.Equal(t, "Morning yoga", events[0].Contents)
	assert.Equal(t, "Evening satsang", events[1].Contents)
	// Unparseable events keep retrieval order at the end
	assert.Equal(t, "Untimed first", events[2].Contents)
	assert.Equal(t, "Untimed second", events[3].Contents)
}

func TestFormat_BroadMergesByContactPhone(t *testing.T) {
	f := NewFormatter()
	hits := []*core.SearchResult{
		hit("Hatha yoga\nContact: Maya +91 98765 43210", map[string]string{core.MetaDay: "Monday", core.MetaTime: "7:00 AM"}),
		hit("Vinyasa flow\nContact: Maya +91 98765 43210", map[string]string{core.MetaDay: "Monday", core.MetaTime: "9:00 AM"}),
		hit("Pottery workshop\nContact: Ravi +91 91234 56789", map[string]string{core.MetaDay: "Monday", core.MetaTime: "10:00 AM"}),
	}

	out := f.Format(hits, core.SpecificityBroad)

	assert.Contains(t, out, "1. Hatha yoga")
	assert.Contains(t, out, "(+1 related listings)")
	assert.Contains(t, out, "2. Pottery workshop")
	assert.NotContains(t, out, "Vinyasa flow")
}

func TestFormat_BroadMergesByTitle(t *testing.T) {
	f := NewFormatter()
	hits := []*core.SearchResult{
		hit("Morning Meditation", map[string]string{core.MetaDay: "Tuesday"}),
		hit("morning   meditation", map[string]string{core.MetaDay: "Tuesday"}),
	}

	out := f.Format(hits, core.SpecificityBroad)
	assert.Contains(t, out, "(+1 related listings)")
}

func TestFormat_BroadGroupHeadings(t *testing.T) {
	f := NewFormatter()
	hits := []*core.SearchResult{
		hit("Dated event", map[string]string{core.MetaDate: "November 5, 2025"}),
		hit("Weekly event", map[string]string{core.MetaDay: "Monday"}),
		hit("Appointment event", nil),
	}

	out := f.Format(hits, core.SpecificityBroad)

	dateIdx := strings.Index(out, "Scheduled events:")
	weekIdx := strings.Index(out, "Weekly events:")
	apptIdx := strings.Index(out, "By appointment or daily:")

	require.NotEqual(t, -1, dateIdx)
	require.NotEqual(t, -1, weekIdx)
	require.NotEqual(t, -1, apptIdx)
	assert.True(t, dateIdx < weekIdx && weekIdx < apptIdx)
}

func TestFormat_SpecificStructuredTemplate(t *testing.T) {
	f := NewFormatter()
	hits := []*core.SearchResult{
		hit(
			"Sound healing session\nA deep relaxation journey with Himalayan bowls\nContribution: 500 INR\nContact: Leela +91 98765 43210\nNote: Bring a blanket\nDescription: Ninety minutes of overtone-rich soundscapes",
			map[string]string{
				core.MetaDay:      "Wednesday",
				core.MetaDate:     "November 5, 2025",
				core.MetaTime:     "5:30 PM",
				core.MetaLocation: "Unity Pavilion",
			},
		),
	}

	out := f.Format(hits, core.SpecificitySpecific)

	assert.Contains(t, out, "1. **Sound healing session** - A deep relaxation journey with Himalayan bowls")
	assert.Contains(t, out, "**When**: Wednesday, November 5, 2025, 5:30 PM")
	assert.Contains(t, out, "**Where**: Unity Pavilion")
	assert.Contains(t, out, "**Contribution**: 500 INR")
	assert.Contains(t, out, "**Note**: Bring a blanket")
	assert.Contains(t, out, "[Show details for event #1]")

	// Derived WhatsApp click-to-chat link with prefilled inquiry
	assert.Contains(t, out, "https://wa.me/919876543210?text=")
	assert.Contains(t, out, "Sound+healing+session")
}

func TestFormat_SpecificMissingFieldsNotSpecified(t *testing.T) {
	f := NewFormatter()
	hits := []*core.SearchResult{
		hit("Bare listing", map[string]string{core.MetaDay: "Friday"}),
	}

	out := f.Format(hits, core.SpecificitySpecific)

	assert.Contains(t, out, "**Where**: Not specified")
	assert.Contains(t, out, "**Contribution**: Not specified")
	assert.Contains(t, out, "**Contact**: Not specified")
	assert.Contains(t, out, "**Note**: Not specified")
	// No description or poster, so no details reference
	assert.NotContains(t, out, "[Show details")
}

func TestFormat_SpecificNumberingContinuousAcrossGroups(t *testing.T) {
	f := NewFormatter()
	hits := []*core.SearchResult{
		hit("Weekly one", map[string]string{core.MetaDay: "Monday"}),
		hit("Dated one", map[string]string{core.MetaDate: "November 5, 2025"}),
	}

	out := f.Format(hits, core.SpecificitySpecific)

	// Dated events come first and own number 1
	assert.Contains(t, out, "1. **Dated one**")
	assert.Contains(t, out, "2. **Weekly one**")
}

func TestFormat_Idempotent(t *testing.T) {
	f := NewFormatter()
	hits := []*core.SearchResult{
		hit("Repeatable\nContact: +91 98765 43210", map[string]string{core.MetaDay: "Monday", core.MetaTime: "8:00 AM"}),
		hit("Another", map[string]string{core.MetaDate: "November 5, 2025"}),
	}

	first := f.Format(hits, core.SpecificityBroad)
	second := f.Format(hits, core.SpecificityBroad)
	assert.Equal(t, first, second)

	firstSpecific := f.Format(hits, core.SpecificitySpecific)
	secondSpecific := f.Format(hits, core.SpecificitySpecific)
	assert.Equal(t, firstSpecific, secondSpecific)
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		digits string
		ok     bool
	}{
		{"international", "Maya +91 98765 43210", "919876543210", true},
		{"dashed", "call 0413-262-2268", "04132622268", true},
		{"no phone", "write to events@example.org", "", false},
		{"too short", "room 42", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digits, ok := extractPhone(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.digits, digits)
		})
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("919876543210", "Tango Night", "November 8, 2025")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
	assert.Contains(t, link, "Tango+Night")
	assert.Contains(t, link, "November+8%2C+2025")
}

func TestExtractFields(t *testing.T) {
	doc := &core.EventDocument{
		Contents: "Tango Night\nArgentine tango for all levels\nFee: 300 INR\nNotes: Partner not required\nPoster: https://example.org/tango.jpg",
	}

	fields := extractFields(doc)
	assert.Equal(t, "Tango Night", fields.Title)
	assert.Equal(t, "Argentine tango for all levels", fields.Summary)
	assert.Equal(t, "300 INR", fields.Contribution)
	assert.Equal(t, "Partner not required", fields.Note)
	assert.Equal(t, "https://example.org/tango.jpg", fields.PosterURL)
}
