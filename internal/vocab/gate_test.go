package vocab

import (
	"context"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Das ist ein Haus.", []string{"das", "ist", "ein", "haus"}},
		{"Geht's dir gut?", []string{"geht's", "dir", "gut"}},
		{"Hallo, Welt! Hallo!", []string{"hallo", "welt", "hallo"}},
		{"a 1 2x", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		got := Tokenize(tt.text)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestGateBlocksUnknownTrackedWords(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.Upsert(ctx, "zeitgeist", "de", LevelB1); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	gate := NewGate(store, LevelB1)
	words, err := gate.BlockingWords(ctx, "Der Zeitgeist ist seltsam", "de")
	if err != nil {
		t.Fatalf("BlockingWords error: %v", err)
	}
	if len(words) != 1 || words[0].Word != "zeitgeist" {
		t.Errorf("expected zeitgeist to block, got %+v", words)
	}

	blocks, err := gate.Blocks(ctx, "Der Zeitgeist ist seltsam", "de")
	if err != nil {
		t.Fatalf("Blocks error: %v", err)
	}
	if !blocks {
		t.Error("expected caption to block")
	}
}

func TestGateIgnoresKnownWords(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.Upsert(ctx, "haus", "de", LevelA1); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if err := store.MarkKnown(ctx, "haus", "de"); err != nil {
		t.Fatalf("MarkKnown error: %v", err)
	}

	gate := NewGate(store, LevelC2)
	words, err := gate.BlockingWords(ctx, "Das Haus ist alt", "de")
	if err != nil {
		t.Fatalf("BlockingWords error: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("known word should not block, got %+v", words)
	}
}

func TestGateIgnoresWordsAboveCeiling(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.Upsert(ctx, "zeitgeist", "de", LevelC1); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	gate := NewGate(store, LevelB1)
	words, err := gate.BlockingWords(ctx, "Der Zeitgeist", "de")
	if err != nil {
		t.Fatalf("BlockingWords error: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("C1 word should not block at B1 ceiling, got %+v", words)
	}
}

func TestGateIgnoresUntrackedWords(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	gate := NewGate(store, LevelC2)
	words, err := gate.BlockingWords(ctx, "Komplett unbekannte Woerter", "de")
	if err != nil {
		t.Fatalf("BlockingWords error: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("untracked words should not block, got %+v", words)
	}
}

func TestGateDeduplicatesRepeatedWords(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.Upsert(ctx, "haus", "de", LevelA1); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	gate := NewGate(store, LevelC2)
	words, err := gate.BlockingWords(ctx, "Haus um Haus um Haus", "de")
	if err != nil {
		t.Fatalf("BlockingWords error: %v", err)
	}
	if len(words) != 1 {
		t.Errorf("expected one blocking word after dedup, got %+v", words)
	}
}
