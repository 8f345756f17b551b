package translate

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicBackend struct {
	client anthropic.Client
	model  anthropic.Model
	opts   Options
}

func newAnthropicBackend(apiKey string, opts Options) (*anthropicBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &anthropicBackend{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		opts:   opts,
	}, nil
}

func (b *anthropicBackend) translateBatch(
	ctx context.Context,
	captions []Caption,
) ([]Translated, error) {
	message, err := b.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     b.model,
			MaxTokens: 4096,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(buildPrompt(b.opts, captions)),
				),
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}
	if message == nil || len(message.Content) == 0 {
		return nil, fmt.Errorf("empty response from Anthropic")
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text in Anthropic response")
	}
	return decodeResults(text, len(captions))
}
