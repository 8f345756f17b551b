// Package translate produces translation text for caption tracks using an
// LLM provider. It is used to backfill the translation column of tracks
// that ship without a parallel translation file.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Jonathangadeaharder/langplug/internal/subtitle"
)

// Caption is one indexed caption text sent for translation.
type Caption struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Translated is one translated caption keyed back to its source index.
type Translated struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Provider names a translation backend.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// DefaultBatchSize is the number of captions per API request.
const DefaultBatchSize = 50

// Options configure a translator.
type Options struct {
	SourceLanguage string
	TargetLanguage string
	Model          string
	BatchSize      int
}

// backend issues a single batch request to a provider. Batching and
// concurrency live in Translator so providers stay thin.
type backend interface {
	translateBatch(ctx context.Context, captions []Caption) ([]Translated, error)
}

// Translator splits caption lists into batches and runs them through a
// provider backend with bounded concurrency.
type Translator struct {
	backend backend
	opts    Options
}

// New builds a Translator for the given provider.
func New(ctx context.Context, provider Provider, apiKey string, opts Options) (*Translator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	var (
		be  backend
		err error
	)
	switch provider {
	case ProviderGemini:
		be, err = newGeminiBackend(ctx, apiKey, opts)
	case ProviderOpenAI:
		be, err = newOpenAIBackend(apiKey, opts)
	case ProviderAnthropic:
		be, err = newAnthropicBackend(apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}

	return &Translator{backend: be, opts: opts}, nil
}

func (t *Translator) batchSize() int {
	if t.opts.BatchSize > 0 {
		return t.opts.BatchSize
	}
	return DefaultBatchSize
}

// Translate translates all captions, issuing up to concurrency batch
// requests in parallel. Results come back sorted by source index. The
// first failing batch cancels the rest.
func (t *Translator) Translate(ctx context.Context, captions []Caption, concurrency int) ([]Translated, error) {
	if len(captions) == 0 {
		return []Translated{}, nil
	}
	if concurrency <= 0 {
		concurrency = 3
	}

	batchSize := t.batchSize()
	var batches [][]Caption
	for i := 0; i < len(captions); i += batchSize {
		end := min(i+batchSize, len(captions))
		batches = append(batches, captions[i:end])
	}

	if len(batches) == 1 {
		results, err := t.backend.translateBatch(ctx, batches[0])
		if err != nil {
			return nil, fmt.Errorf("batch 0 failed: %w", err)
		}
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		batch   int
		results []Translated
		err     error
	}

	work := make(chan int)
	outcomes := make(chan outcome, len(batches))

	var wg sync.WaitGroup
	for w := 0; w < concurrency && w < len(batches); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if ctx.Err() != nil {
					return
				}
				results, err := t.backend.translateBatch(ctx, batches[idx])
				if err != nil {
					cancel()
				}
				outcomes <- outcome{batch: idx, results: results, err: err}
			}
		}()
	}

	go func() {
		defer close(work)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case work <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var all []Translated
	var firstErr error
	for out := range outcomes {
		if out.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("batch %d failed: %w", out.batch, out.err)
			}
			continue
		}
		all = append(all, out.results...)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Index < all[j].Index
	})
	return all, nil
}

// FillTrack translates every entry of the track that lacks a translation
// and writes the results into the entries' Translation field. Entries that
// already carry a translation are left alone.
func (t *Translator) FillTrack(ctx context.Context, track *subtitle.Track, concurrency int) error {
	var captions []Caption
	for i, entry := range track.Entries {
		if entry.Translation != "" || strings.TrimSpace(entry.Text) == "" {
			continue
		}
		captions = append(captions, Caption{Index: i, Text: entry.Text})
	}
	if len(captions) == 0 {
		return nil
	}

	results, err := t.Translate(ctx, captions, concurrency)
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Index < 0 || result.Index >= len(track.Entries) {
			continue
		}
		track.Entries[result.Index].Translation = strings.TrimSpace(result.Text)
	}
	track.TranslationLanguage = t.opts.TargetLanguage
	return nil
}

// buildPrompt renders the batch request for LLM providers. Captions go in
// and come back as indexed JSON so responses survive reordering.
func buildPrompt(opts Options, captions []Caption) string {
	var sb strings.Builder

	if opts.SourceLanguage != "" {
		fmt.Fprintf(&sb,
			"Translate the following %s video captions to %s.\n\n",
			opts.SourceLanguage, opts.TargetLanguage)
	} else {
		fmt.Fprintf(&sb,
			"Translate the following video captions to %s.\n\n",
			opts.TargetLanguage)
	}

	sb.WriteString("These captions are shown to language learners next to ")
	sb.WriteString("the original text, so translate each caption on its own ")
	sb.WriteString("without merging or splitting captions.\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("1. Return ONLY a JSON array, no explanation or markdown.\n")
	sb.WriteString("2. Each object needs 'index' and 'text' fields.\n")
	sb.WriteString("3. The 'index' values must match the input exactly.\n")
	sb.WriteString("4. Never use the '|' character in translated text.\n\n")
	sb.WriteString("Input JSON:\n")

	inputJSON, _ := json.MarshalIndent(captions, "", "  ")
	sb.Write(inputJSON)
	sb.WriteString("\n\nOutput the translated JSON array only:")

	return sb.String()
}
