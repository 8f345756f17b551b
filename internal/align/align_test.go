package align

import (
	"testing"

	"github.com/Jonathangadeaharder/langplug/internal/subtitle"
)

func TestRebaseShiftsAbsoluteEntries(t *testing.T) {
	entries := []subtitle.Entry{{Start: 12, End: 15, Text: "a"}}
	window := Window{Start: 10, End: 20}

	rebased := Rebase(entries, window)
	if len(rebased) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rebased))
	}
	if rebased[0].Start != 2 || rebased[0].End != 5 {
		t.Errorf("expected {2 5}, got {%v %v}", rebased[0].Start, rebased[0].End)
	}
}

func TestRebaseLeavesRelativeEntries(t *testing.T) {
	// Start below the window start is taken as already chunk-relative.
	entries := []subtitle.Entry{{Start: 5, End: 8, Text: "a"}}
	window := Window{Start: 10, End: 20}

	rebased := Rebase(entries, window)
	if len(rebased) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rebased))
	}
	if rebased[0].Start != 5 || rebased[0].End != 8 {
		t.Errorf("expected {5 8} unchanged, got {%v %v}", rebased[0].Start, rebased[0].End)
	}
}

func TestRebaseClampsNegativeStart(t *testing.T) {
	entries := []subtitle.Entry{{Start: -0.5, End: 2, Text: "a"}}
	window := Window{Start: 10, End: 20}

	rebased := Rebase(entries, window)
	if len(rebased) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rebased))
	}
	if rebased[0].Start != 0 || rebased[0].End != 2 {
		t.Errorf("expected start clamped to 0, got {%v %v}",
			rebased[0].Start, rebased[0].End)
	}
}

func TestRebaseFiltersOutOfWindow(t *testing.T) {
	entries := []subtitle.Entry{
		{Start: 12, End: 15, Text: "inside"},
		{Start: 25, End: 28, Text: "after window end"},
		{Start: 5, End: 8, Text: "relative, inside"},
		{Start: 5, End: -1, Text: "ends before zero"},
	}
	window := Window{Start: 10, End: 20}

	rebased := Rebase(entries, window)
	if len(rebased) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(rebased), rebased)
	}
	if rebased[0].Text != "inside" || rebased[1].Text != "relative, inside" {
		t.Errorf("unexpected survivors: %+v", rebased)
	}
}

func TestRebaseZeroStartWindowPassesThrough(t *testing.T) {
	// The absolute-vs-relative test cannot fire at window start zero, so
	// absolute entries pass through unchanged. Known basis ambiguity.
	entries := []subtitle.Entry{{Start: 3, End: 5, Text: "a"}}
	window := Window{Start: 0, End: 10}

	rebased := Rebase(entries, window)
	if len(rebased) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rebased))
	}
	if rebased[0].Start != 3 || rebased[0].End != 5 {
		t.Errorf("expected passthrough, got {%v %v}", rebased[0].Start, rebased[0].End)
	}
}

func TestResolveBoundaryTieBreaksToEarliestIndex(t *testing.T) {
	entries := []subtitle.Entry{
		{Index: 0, Start: 0, End: 2, Text: "first"},
		{Index: 1, Start: 2, End: 4, Text: "second"},
	}

	cue := Resolve(entries, nil, 2, nil)
	if cue.Original != "first" {
		t.Errorf("tie at t=2 should resolve to entry 0, got %q", cue.Original)
	}
}

func TestResolveInclusiveBoundaries(t *testing.T) {
	entries := []subtitle.Entry{{Start: 1, End: 3, Text: "a"}}

	for _, tt := range []struct {
		t    float64
		want string
	}{
		{0.99, ""},
		{1, "a"},
		{2, "a"},
		{3, "a"},
		{3.01, ""},
	} {
		cue := Resolve(entries, nil, tt.t, nil)
		if cue.Original != tt.want {
			t.Errorf("Resolve at %v = %q, want %q", tt.t, cue.Original, tt.want)
		}
	}
}

func TestResolveTranslationTrackIndependentTiming(t *testing.T) {
	entries := []subtitle.Entry{{Start: 0, End: 2, Text: "Hallo"}}
	translations := []subtitle.Entry{{Start: 0.5, End: 2.5, Text: "Hello"}}

	cue := Resolve(entries, translations, 0.2, nil)
	if cue.Original != "Hallo" {
		t.Errorf("expected original 'Hallo', got %q", cue.Original)
	}
	if cue.Translation != "" {
		t.Errorf("translation cue not active yet at 0.2, got %q", cue.Translation)
	}

	cue = Resolve(entries, translations, 1, nil)
	if cue.Translation != "Hello" {
		t.Errorf("expected translation 'Hello', got %q", cue.Translation)
	}
}

func TestResolveTranslationOutlivesOriginal(t *testing.T) {
	entries := []subtitle.Entry{{Start: 0, End: 2, Text: "Hallo"}}
	translations := []subtitle.Entry{{Start: 0.5, End: 3.5, Text: "Hello"}}

	cue := Resolve(entries, translations, 3, nil)
	if cue.Original != "" {
		t.Errorf("no original active at 3, got %q", cue.Original)
	}
	if cue.Translation != "Hello" {
		t.Errorf("translation cue still active at 3, got %q", cue.Translation)
	}

	// A restrictive policy suppresses it, since no allowed original
	// index is active.
	cue = Resolve(entries, translations, 3, NewPolicy(0))
	if cue.Translation != "" {
		t.Errorf("expected suppression without an active original, got %q", cue.Translation)
	}
}

func TestResolveInlineTranslationFallback(t *testing.T) {
	entries := []subtitle.Entry{
		{Start: 0, End: 2, Text: "Hallo", Translation: "Hello"},
	}

	cue := Resolve(entries, nil, 1, nil)
	if cue.Translation != "Hello" {
		t.Errorf("expected inline translation 'Hello', got %q", cue.Translation)
	}
}

func TestResolvePolicySuppressesTranslation(t *testing.T) {
	entries := []subtitle.Entry{
		{Index: 0, Start: 0, End: 2, Text: "Hallo", Translation: "Hello"},
		{Index: 1, Start: 2.5, End: 4, Text: "Welt", Translation: "World"},
	}
	policy := NewPolicy(1)

	cue := Resolve(entries, nil, 1, policy)
	if cue.Original != "Hallo" {
		t.Errorf("expected original shown, got %q", cue.Original)
	}
	if cue.Translation != "" {
		t.Errorf("policy should suppress translation at index 0, got %q", cue.Translation)
	}

	cue = Resolve(entries, nil, 3, policy)
	if cue.Translation != "World" {
		t.Errorf("policy allows index 1, got %q", cue.Translation)
	}

	// Suppression also applies when a parallel translation entry is
	// active at the same time.
	translations := []subtitle.Entry{{Start: 0, End: 2, Text: "Hello there"}}
	cue = Resolve(entries, translations, 1, policy)
	if cue.Translation != "" {
		t.Errorf("policy should suppress parallel-track translation, got %q", cue.Translation)
	}
}

func TestResolveNoMatchYieldsEmptyCue(t *testing.T) {
	entries := []subtitle.Entry{{Start: 0, End: 2, Text: "a", Translation: "b"}}

	cue := Resolve(entries, nil, 10, nil)
	if cue.Original != "" || cue.Translation != "" {
		t.Errorf("expected empty cue, got %+v", cue)
	}
}

func TestWindowClamp(t *testing.T) {
	window := Window{Start: 10, End: 20}

	for _, tt := range []struct {
		current float64
		want    float64
	}{
		{5, 0},
		{10, 0},
		{15, 5},
		{20, 10},
		{25, 10},
	} {
		if got := window.Clamp(tt.current); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.current, got, tt.want)
		}
	}
}

func TestSessionAtAppliesWindowPolicyAndMode(t *testing.T) {
	track := subtitle.Track{Entries: []subtitle.Entry{
		{Index: 0, Start: 12, End: 15, Text: "Hallo", Translation: "Hello"},
	}}
	window := Window{Start: 10, End: 20}

	session := NewSession(track, subtitle.Track{}, window, nil)
	if session.ID == "" {
		t.Error("expected session ID to be assigned")
	}

	cue := session.At(13) // absolute time; clamps to 3 inside window
	if cue.Original != "Hallo" || cue.Translation != "Hello" {
		t.Errorf("unexpected cue: %+v", cue)
	}

	session.Mode = ModeOriginal
	cue = session.At(13)
	if cue.Original != "Hallo" || cue.Translation != "" {
		t.Errorf("mode original should drop translation, got %+v", cue)
	}

	session.Mode = ModeOff
	if cue = session.At(13); cue.Original != "" || cue.Translation != "" {
		t.Errorf("mode off should blank the cue, got %+v", cue)
	}
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"off", "original", "translation", "both"} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseMode("subtitles"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestModeLabelUsesDisplayNames(t *testing.T) {
	label := ModeBoth.Label("de", "en")
	if label != "German + English" {
		t.Errorf("expected 'German + English', got %q", label)
	}
	if got := ModeOff.Label("de", "en"); got != "Off" {
		t.Errorf("expected 'Off', got %q", got)
	}
	if got := ModeOriginal.Label("de", "en"); got != "German" {
		t.Errorf("expected 'German', got %q", got)
	}
}
