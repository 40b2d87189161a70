package assist

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrDisabled is returned by Ask when the assist feature is turned off
// in configuration.
var ErrDisabled = errors.New("ai assist is disabled")

// ErrMissingAPIKey is returned by Ask when the configured environment
// variable naming the API key is unset or empty.
var ErrMissingAPIKey = errors.New("ai assist api key is not set")

// Settings is the subset of configuration Ask needs; it mirrors
// internal/config.AssistSettings so this package doesn't import config.
type Settings struct {
	Enabled   bool
	Model     string
	APIKeyEnv string
}

// Ask sends prompt plus contextLine (the buffer's current line, for
// context) to the configured model and returns the first text block of
// its reply. Missing configuration or an unset API key are reported as
// plain errors, not panics: they are user mistakes, not editor bugs.
func Ask(ctx context.Context, s Settings, prompt, contextLine string) (string, error) {
	if !s.Enabled {
		return "", ErrDisabled
	}
	key := os.Getenv(s.APIKeyEnv)
	if key == "" {
		return "", ErrMissingAPIKey
	}

	client := anthropic.NewClient(option.WithAPIKey(key))

	message := prompt
	if contextLine != "" {
		message = fmt.Sprintf("Current line: %s\n\n%s", contextLine, prompt)
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.Model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("ai assist: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errors.New("ai assist: model returned no text")
}
