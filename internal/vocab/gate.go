package vocab

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

// Gate decides which words in a caption block playback. A word blocks when
// it is tracked, not yet known, and sits at or below the learner's CEFR
// ceiling. Words the store has never seen do not block: there is no
// vocabulary item to acknowledge.
type Gate struct {
	store   *Store
	ceiling Level
}

// NewGate builds a gate over the store with the given CEFR ceiling.
func NewGate(store *Store, ceiling Level) *Gate {
	return &Gate{store: store, ceiling: ceiling}
}

// BlockingWords returns the tracked words in text that block playback, in
// first-occurrence order without duplicates.
func (g *Gate) BlockingWords(ctx context.Context, text, lang string) ([]Word, error) {
	var blocking []Word
	seen := make(map[string]struct{})

	for _, token := range Tokenize(text) {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}

		word, err := g.store.Lookup(ctx, token, lang)
		if errors.Is(err, ErrWordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if word.Status == StatusKnown {
			continue
		}
		if word.Level.Rank() > g.ceiling.Rank() {
			continue
		}
		blocking = append(blocking, *word)
	}
	return blocking, nil
}

// Blocks reports whether the caption text contains at least one blocking
// word.
func (g *Gate) Blocks(ctx context.Context, text, lang string) (bool, error) {
	words, err := g.BlockingWords(ctx, text, lang)
	if err != nil {
		return false, err
	}
	return len(words) > 0, nil
}

// Tokenize splits caption text into lowercase word tokens. Punctuation
// and digits separate tokens; single letters are dropped.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.ToLower(strings.Trim(field, "'"))
		if len([]rune(token)) < 2 {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
