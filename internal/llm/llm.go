// Package llm abstracts the generative-AI service used for SQL
// translation and answer summarization.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model replies with no text parts.
var ErrEmptyResponse = errors.New("model returned an empty response")

// Generator produces text for a single prompt. Calls are synchronous and
// single-shot; retry policy belongs to the caller (there is none).
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	ModelName() string
}
