package openai

import "errors"

var (
	// ErrDimensionMismatch indicates the embedding backend returned a vector
	// of unexpected length.
	ErrDimensionMismatch = errors.New("embedding dimensionality mismatch")

	// ErrNoChoices indicates the model returned an empty completion.
	ErrNoChoices = errors.New("model returned no choices")

	// ErrMalformedVerdict indicates the model response could not be parsed
	// into a score/confidence/explanation verdict.
	ErrMalformedVerdict = errors.New("malformed verdict response")
)
