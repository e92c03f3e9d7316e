package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Event documents are content-addressed, so identical contents share an ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Metadata keys recognized on event documents.
const (
	MetaDay         = "day"
	MetaDate        = "date"
	MetaLocation    = "location"
	MetaTime        = "time"
	MetaDescription = "description"
	MetaPosterURL   = "poster_url"
)

// EventDocument represents one retrieved candidate event: free-text contents
// plus structured metadata produced by the indexing step.
//
// An event carries at least one of the date/day metadata keys, or belongs to
// the appointment/daily tier (both empty, contents imply booking-based or
// daily recurrence).
type EventDocument struct {
	Id         ID
	Contents   string
	Metadata   map[string]string // day, date, location, time, description, poster_url
	Vector     []float32         // Embedding vector for semantic search (populated by processors)
	InsertedAt time.Time         // When the document was inserted into the store
	UpdatedAt  time.Time         // When the document was last updated
}

// Day returns the weekday metadata, or "" when absent.
func (d *EventDocument) Day() string { return d.Metadata[MetaDay] }

// Date returns the calendar date metadata, or "" when absent.
func (d *EventDocument) Date() string { return d.Metadata[MetaDate] }

// Location returns the venue metadata, or "" when absent.
func (d *EventDocument) Location() string { return d.Metadata[MetaLocation] }

// Specificity classifies a query as broad (temporal-only) or specific
// (topical/location-bearing). It governs both retrieval depth and output format.
type Specificity int

const (
	// SpecificityBroad marks general date/day/relative-date queries with no
	// event-type or venue keyword.
	SpecificityBroad Specificity = iota + 1
	// SpecificitySpecific marks queries naming an event type or location,
	// with or without a date.
	SpecificitySpecific
)

// String returns the canonical name used on the wire and in prompts.
func (s Specificity) String() string {
	switch s {
	case SpecificityBroad:
		return "Broad"
	case SpecificitySpecific:
		return "Specific"
	default:
		return "Unknown"
	}
}

// ParseSpecificity converts a string to a Specificity, case-insensitively.
// Unknown or empty input defaults to Broad, the pipeline's safe fallback.
func ParseSpecificity(s string) Specificity {
	if strings.EqualFold(strings.TrimSpace(s), "specific") {
		return SpecificitySpecific
	}
	return SpecificityBroad
}

// QueryClassification is the classifier's structured verdict on one user turn.
// Filters are populated only from explicit mentions in the user's text.
type QueryClassification struct {
	RefinedQuery   string
	Specificity    Specificity
	FilterDay      string
	FilterDate     string
	FilterLocation string
}

// FilterMode selects how multiple filter conditions combine.
type FilterMode int

const (
	// FilterModeOr matches when any condition holds. This is the default:
	// widening recall under multiple hints loses fewer valid events than
	// narrowing does.
	FilterModeOr FilterMode = iota
	// FilterModeAnd matches only when every condition holds.
	FilterModeAnd
)

// FilterCondition is one metadata equality test.
type FilterCondition struct {
	Field string
	Value string
}

// FilterExpression is a boolean predicate over metadata equality tests.
// A nil or empty expression matches every document.
type FilterExpression struct {
	Conditions []FilterCondition
	Mode       FilterMode
}

// Empty reports whether the expression constrains nothing.
func (f *FilterExpression) Empty() bool {
	return f == nil || len(f.Conditions) == 0
}

// Matches evaluates the expression against document metadata.
// Equality tests are case-insensitive.
func (f *FilterExpression) Matches(metadata map[string]string) bool {
	if f.Empty() {
		return true
	}
	for _, cond := range f.Conditions {
		matched := strings.EqualFold(metadata[cond.Field], cond.Value)
		if f.Mode == FilterModeAnd {
			if !matched {
				return false
			}
		} else if matched {
			return true
		}
	}
	return f.Mode == FilterModeAnd
}

// Speaker identifies the source of a conversation turn.
type Speaker int

const (
	// SpeakerUser represents the human asking questions.
	SpeakerUser Speaker = iota + 1
	// SpeakerAssistant represents the pipeline's responses.
	SpeakerAssistant
)

// Turn is one prior exchange in the conversation, passed to the classifier
// as context. Turn persistence belongs to the calling layer.
type Turn struct {
	Speaker Speaker
	Content string
}

// SearchResult pairs a retrieved event document with its relevance score.
type SearchResult struct {
	Event *EventDocument
	Score float32
}
