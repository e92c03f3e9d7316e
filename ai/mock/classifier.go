package mock

import (
	"context"
	"strings"
	"time"

	"github.com/poiesic/eventide/ai"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/temporal"
)

// MockQueryClassifier is a test double for ai.QueryClassifier.
// It allows custom behavior injection via function fields.
type MockQueryClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses a deterministic rule-based classification.
	ClassifyFunc func(ctx context.Context, userText string, history []core.Turn, now time.Time) (*core.QueryClassification, error)

	callCount int
}

var _ ai.QueryClassifier = (*MockQueryClassifier)(nil)

// NewMockQueryClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockQueryClassifier() *MockQueryClassifier {
	return &MockQueryClassifier{}
}

// fillerWords are ignored when deciding whether an utterance carries a
// topical keyword. They cover question scaffolding and generic event talk.
var fillerWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "on": true,
	"in": true, "at": true, "for": true, "of": true, "and": true, "or": true,
	"to": true, "any": true, "anything": true, "what": true, "whats": true,
	"what's": true, "which": true, "when": true, "happening": true,
	"happens": true, "going": true, "list": true, "show": true, "me": true,
	"all": true, "events": true, "event": true, "activities": true,
	"activity": true, "there": true, "please": true, "every": true,
	"each": true, "this": true, "next": true, "week": true, "weekend": true,
	"day": true, "after": true, "schedule": true, "scheduled": true,
}

var monthWords = map[string]bool{
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "oct": true, "nov": true, "dec": true,
}

var relativeWords = map[string]bool{
	"today": true, "tonight": true, "tomorrow": true, "yesterday": true,
}

// Classify applies the classification policy deterministically:
// temporal-only utterances are Broad, anything carrying a topical or venue
// keyword is Specific, and filters come only from explicit mentions.
func (m *MockQueryClassifier) Classify(ctx context.Context, userText string, history []core.Turn, now time.Time) (*core.QueryClassification, error) {
	m.callCount++

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, userText, history, now)
	}

	userText = strings.TrimSpace(userText)
	if userText == "" {
		return &core.QueryClassification{
			RefinedQuery: "community events " + temporal.FormatDate(now) + " (" + now.Weekday().String() + ")",
			Specificity:  core.SpecificityBroad,
		}, nil
	}

	qc := &core.QueryClassification{
		RefinedQuery: temporal.EnrichQuery(userText, now),
		Specificity:  core.SpecificityBroad,
	}

	if hasTopicalKeyword(userText) {
		qc.Specificity = core.SpecificitySpecific
	}

	// Structured filters only from explicit mentions.
	if weekday, _, recurring, ok := temporal.FindWeekday(userText); ok && !recurring {
		qc.FilterDay = weekday.String()
	}
	if dateStr, ok := temporal.FindDate(userText); ok {
		if d, err := temporal.ParseDate(dateStr, now); err == nil {
			qc.FilterDate = temporal.FormatDate(d)
		}
	}

	return qc, nil
}

// hasTopicalKeyword reports whether the utterance carries any token that is
// not question filler, a temporal term, or a number.
func hasTopicalKeyword(text string) bool {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" || fillerWords[word] || monthWords[word] || relativeWords[word] {
			continue
		}
		if _, ok := temporal.ParseWeekday(strings.TrimSuffix(word, "s")); ok {
			continue
		}
		if isNumeric(word) {
			continue
		}
		return true
	}
	return false
}

func isNumeric(word string) bool {
	word = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(word, "st"), "nd"), "rd"), "th")
	if word == "" {
		return false
	}
	for _, r := range word {
		if (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// CallCount returns the number of times Classify was called.
func (m *MockQueryClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockQueryClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}
