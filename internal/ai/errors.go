package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const unknownReason = "Unknown error"

// Reason turns a provider error into a short diagnostic that is safe to log
// and to return in a response note. Raw response bodies and URLs are never
// included.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "provider timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	case errors.As(err, &apiErr):
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		if apiErr.HTTPStatusCode != 0 {
			return fmt.Sprintf("provider returned status %d", apiErr.HTTPStatusCode)
		}
		return unknownReason
	case errors.As(err, &reqErr):
		if reqErr.HTTPStatusCode != 0 {
			return fmt.Sprintf("provider returned status %d", reqErr.HTTPStatusCode)
		}
		return unknownReason
	case IsProtocolError(err):
		return "malformed provider response"
	default:
		return unknownReason
	}
}

// IsProtocolError reports whether err means the provider answered with a
// success status but the payload could not be used.
func IsProtocolError(err error) bool {
	if errors.Is(err, ErrMalformedResponse) {
		return true
	}

	// Error statuses with an unparsable body arrive as RequestError wrapping
	// the decode error; those are transport failures.
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return false
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
