package format

import (
	"regexp"
	"strings"

	"github.com/poiesic/eventide/core"
)

// eventFields holds the presentation fields extracted from an event document.
type eventFields struct {
	Title        string
	Summary      string
	Contribution string
	Contact      string
	Note         string
	Description  string
	PosterURL    string
}

// Labeled lines recognized in document contents, lowercase label → target.
var fieldLabels = map[string]func(*eventFields, string){
	"contribution": func(f *eventFields, v string) { f.Contribution = v },
	"cost":         func(f *eventFields, v string) { f.Contribution = v },
	"fee":          func(f *eventFields, v string) { f.Contribution = v },
	"entry":        func(f *eventFields, v string) { f.Contribution = v },
	"contact":      func(f *eventFields, v string) { f.Contact = v },
	"note":         func(f *eventFields, v string) { f.Note = v },
	"notes":        func(f *eventFields, v string) { f.Note = v },
	"description":  func(f *eventFields, v string) { f.Description = v },
	"poster":       func(f *eventFields, v string) { f.PosterURL = v },
	// Recognized so they don't leak into the summary; values come from
	// metadata accessors instead.
	"time":     func(f *eventFields, v string) {},
	"day":      func(f *eventFields, v string) {},
	"date":     func(f *eventFields, v string) {},
	"where":    func(f *eventFields, v string) {},
	"location": func(f *eventFields, v string) {},
	"venue":    func(f *eventFields, v string) {},
}

// extractFields parses an event document's contents into presentation fields.
// The first non-empty, non-labeled line is the title; subsequent unlabeled
// lines feed the summary.
func extractFields(doc *core.EventDocument) eventFields {
	var f eventFields

	var summaryLines []string
	for _, line := range strings.Split(doc.Contents, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if label, value, ok := splitLabeledLine(line); ok {
			if assign, known := fieldLabels[label]; known {
				assign(&f, value)
				continue
			}
		}

		if f.Title == "" {
			f.Title = line
			continue
		}
		summaryLines = append(summaryLines, line)
	}

	f.Summary = strings.Join(summaryLines, " ")

	// Metadata wins over content scanning for the structured fields
	if d := doc.Metadata[core.MetaDescription]; d != "" {
		f.Description = d
	}
	if p := doc.Metadata[core.MetaPosterURL]; p != "" {
		f.PosterURL = p
	}

	return f
}

// splitLabeledLine splits "Label: value" lines. Labels longer than a couple
// of words are treated as prose, not labels.
func splitLabeledLine(line string) (label, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	label = strings.ToLower(strings.TrimSpace(strings.Trim(line[:idx], "*-_ ")))
	if label == "" || strings.Count(label, " ") > 1 {
		return "", "", false
	}
	return label, strings.TrimSpace(line[idx+1:]), true
}

var phoneRe = regexp.MustCompile(`\+?\d[\d\s().-]{6,}\d`)

// extractPhone finds the first phone-like token in a contact string and
// returns its bare digits (with a leading country code when present).
func extractPhone(contact string) (string, bool) {
	match := phoneRe.FindString(contact)
	if match == "" {
		return "", false
	}
	var digits strings.Builder
	for _, r := range match {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() < 7 {
		return "", false
	}
	return digits.String(), true
}

// normalizeTitle canonicalizes a title for merge comparison.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
