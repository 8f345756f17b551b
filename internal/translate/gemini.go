package translate

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiBackend struct {
	client *genai.Client
	model  string
	opts   Options
}

func newGeminiBackend(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*geminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &geminiBackend{client: client, model: model, opts: opts}, nil
}

func (b *geminiBackend) translateBatch(
	ctx context.Context,
	captions []Caption,
) ([]Translated, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(buildPrompt(b.opts, captions)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := b.client.Models.GenerateContent(ctx, b.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var text string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			text += part.Text
		}
		if text != "" {
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text in Gemini response")
	}
	return decodeResults(text, len(captions))
}
