package openai

import "errors"

var (
	// ErrEmptyResponse is returned when the model responds without any choices.
	ErrEmptyResponse = errors.New("model returned no choices")
)
