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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEventDocument indicates an EventDocument failed validation.
	ErrInvalidEventDocument = errors.New("invalid event document")

	// ErrInvalidClassification indicates a QueryClassification failed validation.
	ErrInvalidClassification = errors.New("invalid query classification")

	// ErrInvalidTurn indicates a conversation Turn failed validation.
	ErrInvalidTurn = errors.New("invalid conversation turn")

	// ErrEmptyContent indicates the Contents field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyRefinedQuery indicates the RefinedQuery field is empty.
	ErrEmptyRefinedQuery = errors.New("refined query cannot be empty")

	// ErrInvalidSpecificity indicates an invalid Specificity value.
	ErrInvalidSpecificity = errors.New("invalid specificity")

	// ErrInvalidSpeaker indicates an invalid Speaker value.
	ErrInvalidSpeaker = errors.New("invalid speaker")

	// ErrNegativeLength indicates serialized data carried a negative
	// collection length.
	ErrNegativeLength = errors.New("negative collection length")
)
