// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
)

// ValidateEventDocument validates an EventDocument according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding processor runs)
//   - ID (derived from contents on insert)
//   - Metadata (date/day may both be absent for appointment-tier events)
func ValidateEventDocument(doc *EventDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidEventDocument)
	}

	if strings.TrimSpace(doc.Contents) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEventDocument, ErrEmptyContent)
	}

	return nil
}

// ValidateQueryClassification validates a QueryClassification.
//
// Validation rules:
//   - RefinedQuery must not be empty
//   - Specificity must be Broad or Specific
func ValidateQueryClassification(qc *QueryClassification) error {
	if qc == nil {
		return fmt.Errorf("%w: classification is nil", ErrInvalidClassification)
	}

	if qc.RefinedQuery == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClassification, ErrEmptyRefinedQuery)
	}

	if err := ValidateSpecificity(qc.Specificity); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClassification, err)
	}

	return nil
}

// ValidateSpecificity validates that a Specificity has a valid value.
func ValidateSpecificity(s Specificity) error {
	if s != SpecificityBroad && s != SpecificitySpecific {
		return fmt.Errorf("%w: value %d", ErrInvalidSpecificity, s)
	}
	return nil
}

// ValidateTurn validates a conversation Turn.
func ValidateTurn(turn *Turn) error {
	if turn == nil {
		return fmt.Errorf("%w: turn is nil", ErrInvalidTurn)
	}
	if turn.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrEmptyContent)
	}
	if turn.Speaker != SpeakerUser && turn.Speaker != SpeakerAssistant {
		return fmt.Errorf("%w: %w: value %d", ErrInvalidTurn, ErrInvalidSpeaker, turn.Speaker)
	}
	return nil
}
