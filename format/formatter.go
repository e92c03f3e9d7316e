package format

import (
	"fmt"
	"strings"

	"github.com/poiesic/eventide/core"
)

// NoResultsMessage is the fixed response for an empty result set.
const NoResultsMessage = "No relevant information found about community events based on your query and filters."

// notSpecified renders a missing structured field.
const notSpecified = "Not specified"

// Formatter renders ranked retrieval hits into response text. Rendering is
// pure: the same hits and specificity always produce identical output.
type Formatter struct{}

// NewFormatter creates a formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format groups, sorts, and renders hits according to the query specificity.
// Broad queries get a compact merged list; specific queries get the full
// structured per-event template. Empty hits yield NoResultsMessage.
func (f *Formatter) Format(hits []*core.SearchResult, specificity core.Specificity) string {
	groups := GroupEvents(hits)

	total := 0
	for _, g := range groups {
		total += len(g.Events)
	}
	if total == 0 {
		return NoResultsMessage
	}

	if specificity == core.SpecificitySpecific {
		return renderSpecific(groups)
	}
	return renderBroad(groups)
}

// groupHeadings are the section titles emitted above each non-empty group.
var groupHeadings = map[GroupKind]string{
	GroupDateSpecific:       "Scheduled events:",
	GroupWeekdayBased:       "Weekly events:",
	GroupAppointmentOrDaily: "By appointment or daily:",
}

// broadEntry is one line of the compact list, possibly covering several
// merged listings.
type broadEntry struct {
	doc    *core.EventDocument
	fields eventFields
	merged int
}

// renderBroad produces the compact numbered list. Events sharing a contact
// phone number or a title merge into one entry so a deep broad retrieval
// does not flood the user.
func renderBroad(groups []EventGroup) string {
	var b strings.Builder
	n := 0

	for _, group := range groups {
		entries := mergeEntries(group.Events)
		if len(entries) == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(groupHeadings[group.Kind])
		b.WriteString("\n")

		for _, entry := range entries {
			n++
			b.WriteString(fmt.Sprintf("%d. %s", n, entry.fields.Title))
			if when := whenLine(entry.doc); when != notSpecified {
				b.WriteString(" - " + when)
			}
			if location := entry.doc.Location(); location != "" {
				b.WriteString(", " + location)
			}
			if entry.merged > 0 {
				b.WriteString(fmt.Sprintf(" (+%d related listings)", entry.merged))
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// mergeEntries collapses events that share a merge key, preserving the
// group's sort order. The key is the contact phone when one exists, else
// the normalized title.
func mergeEntries(events []*core.EventDocument) []broadEntry {
	var entries []broadEntry
	index := make(map[string]int)

	for _, doc := range events {
		fields := extractFields(doc)

		key := normalizeTitle(fields.Title)
		if phone, ok := extractPhone(fields.Contact); ok {
			key = "tel:" + phone
		}

		if i, seen := index[key]; seen {
			entries[i].merged++
			continue
		}
		index[key] = len(entries)
		entries = append(entries, broadEntry{doc: doc, fields: fields})
	}

	return entries
}

// renderSpecific produces the strict structured template, one numbered block
// per event.
func renderSpecific(groups []EventGroup) string {
	var b strings.Builder
	n := 0

	for _, group := range groups {
		if len(group.Events) == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(groupHeadings[group.Kind])
		b.WriteString("\n\n")

		for _, doc := range group.Events {
			n++
			fields := extractFields(doc)

			b.WriteString(fmt.Sprintf("%d. **%s**", n, fields.Title))
			if fields.Summary != "" {
				b.WriteString(" - " + fields.Summary)
			}
			b.WriteString("\n")

			b.WriteString("   **When**: " + whenLine(doc) + "\n")
			b.WriteString("   **Where**: " + orNotSpecified(doc.Location()) + "\n")
			b.WriteString("   **Contribution**: " + orNotSpecified(fields.Contribution) + "\n")
			b.WriteString("   **Contact**: " + contactLine(fields, doc) + "\n")
			b.WriteString("   **Note**: " + orNotSpecified(fields.Note) + "\n")

			if fields.Description != "" || fields.PosterURL != "" {
				b.WriteString(fmt.Sprintf("   [Show details for event #%d]\n", n))
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// whenLine composes day, date, and start time into one display value.
func whenLine(doc *core.EventDocument) string {
	var parts []string
	if day := doc.Day(); day != "" {
		parts = append(parts, day)
	}
	if date := doc.Date(); date != "" {
		parts = append(parts, date)
	}
	if minutes, ok := StartTime(doc); ok {
		parts = append(parts, clockDisplay(minutes))
	}
	if len(parts) == 0 {
		return notSpecified
	}
	return strings.Join(parts, ", ")
}

// contactLine renders the contact field, appending a WhatsApp click-to-chat
// link when a phone number is present.
func contactLine(fields eventFields, doc *core.EventDocument) string {
	if fields.Contact == "" {
		return notSpecified
	}
	phone, ok := extractPhone(fields.Contact)
	if !ok {
		return fields.Contact
	}
	link := WhatsAppLink(phone, fields.Title, doc.Date())
	return fields.Contact + " | [Message on WhatsApp](" + link + ")"
}

// clockDisplay renders minutes since midnight as a 12-hour clock value.
func clockDisplay(minutes int) string {
	hour := minutes / 60
	minute := minutes % 60
	meridiem := "AM"
	displayHour := hour
	if hour >= 12 {
		meridiem = "PM"
		if hour > 12 {
			displayHour = hour - 12
		}
	}
	if displayHour == 0 {
		displayHour = 12
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, minute, meridiem)
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}
