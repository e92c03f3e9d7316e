package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEventDocument(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := &EventDocument{
			Contents: "Tai chi in the park",
			Metadata: map[string]string{MetaDay: "Saturday"},
		}
		assert.NoError(t, ValidateEventDocument(doc))
	})

	t.Run("appointment tier document without date or day is valid", func(t *testing.T) {
		doc := &EventDocument{Contents: "Ayurvedic consultations by appointment"}
		assert.NoError(t, ValidateEventDocument(doc))
	})

	t.Run("nil document", func(t *testing.T) {
		err := ValidateEventDocument(nil)
		assert.ErrorIs(t, err, ErrInvalidEventDocument)
	})

	t.Run("empty contents", func(t *testing.T) {
		err := ValidateEventDocument(&EventDocument{})
		assert.ErrorIs(t, err, ErrInvalidEventDocument)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})
}

func TestValidateQueryClassification(t *testing.T) {
	t.Run("valid classification", func(t *testing.T) {
		qc := &QueryClassification{
			RefinedQuery: "yoga classes Wednesday November 5, 2025",
			Specificity:  SpecificitySpecific,
		}
		assert.NoError(t, ValidateQueryClassification(qc))
	})

	t.Run("nil classification", func(t *testing.T) {
		assert.ErrorIs(t, ValidateQueryClassification(nil), ErrInvalidClassification)
	})

	t.Run("empty refined query", func(t *testing.T) {
		err := ValidateQueryClassification(&QueryClassification{Specificity: SpecificityBroad})
		assert.ErrorIs(t, err, ErrEmptyRefinedQuery)
	})

	t.Run("invalid specificity", func(t *testing.T) {
		err := ValidateQueryClassification(&QueryClassification{RefinedQuery: "events today"})
		assert.ErrorIs(t, err, ErrInvalidSpecificity)
	})
}

func TestValidateTurn(t *testing.T) {
	t.Run("valid turns", func(t *testing.T) {
		assert.NoError(t, ValidateTurn(&Turn{Speaker: SpeakerUser, Content: "What's on today?"}))
		assert.NoError(t, ValidateTurn(&Turn{Speaker: SpeakerAssistant, Content: "Here are today's events."}))
	})

	t.Run("nil turn", func(t *testing.T) {
		assert.ErrorIs(t, ValidateTurn(nil), ErrInvalidTurn)
	})

	t.Run("empty content", func(t *testing.T) {
		assert.ErrorIs(t, ValidateTurn(&Turn{Speaker: SpeakerUser}), ErrEmptyContent)
	})

	t.Run("invalid speaker", func(t *testing.T) {
		assert.ErrorIs(t, ValidateTurn(&Turn{Speaker: 99, Content: "hi"}), ErrInvalidSpeaker)
	})
}
