package translate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiBackend struct {
	client openai.Client
	model  string
	opts   Options
}

func newOpenAIBackend(apiKey string, opts Options) (*openaiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := opts.Model
	if model == "" {
		model = "gpt-5-mini"
	}

	return &openaiBackend{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		opts:   opts,
	}, nil
}

func (b *openaiBackend) translateBatch(
	ctx context.Context,
	captions []Caption,
) ([]Translated, error) {
	completion, err := b.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(buildPrompt(b.opts, captions)),
			},
			Model: b.model,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}
	if completion == nil || len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	text := completion.Choices[0].Message.Content
	if text == "" {
		return nil, fmt.Errorf("no text in OpenAI response")
	}
	return decodeResults(text, len(captions))
}
