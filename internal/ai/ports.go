package ai

import (
	"context"
	"errors"
)

// AI is the remote model provider. It knows nothing about nutrition,
// HTTP clients or fallbacks.
type AI interface {
	GetReply(
		ctx context.Context,
		systemPrompt string,
		userText string,
	) (string, error)
}

// ErrMalformedResponse is returned when the provider answered with a
// success status but no usable completion.
var ErrMalformedResponse = errors.New("ai: malformed provider response")

// MaxCompletionTokens caps the size of every generated answer.
const MaxCompletionTokens = 500
