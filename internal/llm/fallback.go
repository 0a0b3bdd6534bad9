package llm

import (
	"context"
	"errors"
	"strings"
)

// PlaceholderText stands in for the generated text when the model fails or
// returns nothing, so a document is still produced.
const PlaceholderText = "⚠️ No content generated by Gemini."

// ErrEmptyResponse is reported when the model returns only whitespace.
var ErrEmptyResponse = errors.New("model returned an empty response")

// GenerateOrPlaceholder calls the client and returns its text. On failure or
// an empty response it returns PlaceholderText together with the cause, which
// callers log but do not treat as fatal.
func GenerateOrPlaceholder(ctx context.Context, client Client, prompt string) (string, error) {
	text, err := client.GenerateContent(ctx, prompt)
	if err != nil {
		return PlaceholderText, err
	}
	if strings.TrimSpace(text) == "" {
		return PlaceholderText, ErrEmptyResponse
	}
	return text, nil
}
