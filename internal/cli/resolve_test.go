package cli

import (
	"context"
	"errors"
	"testing"
)

type stubSource struct {
	payload []byte
	err     error
}

func (s stubSource) Fetch(ctx context.Context, filePath string) ([]byte, error) {
	return s.payload, s.err
}

func TestFetchTrackParsesPayload(t *testing.T) {
	src := stubSource{
		payload: []byte("1\n00:00:01,000 --> 00:00:02,000\nHallo|Hello\n"),
	}

	track, err := fetchTrack(context.Background(), src, "series/episode1.srt")
	if err != nil {
		t.Fatalf("fetchTrack error: %v", err)
	}
	if len(track.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(track.Entries))
	}
	if !track.HasInlineTranslations() {
		t.Error("expected the bilingual form to be detected")
	}
}

func TestFetchTrackPropagatesError(t *testing.T) {
	src := stubSource{err: errors.New("server unreachable")}

	track, err := fetchTrack(context.Background(), src, "series/episode1.srt")
	if err == nil {
		t.Fatal("expected error from failing source")
	}
	if !track.Empty() {
		t.Errorf("expected empty track on failure, got %d entries", len(track.Entries))
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		spec      string
		wantStart float64
		wantEnd   float64
		wantErr   bool
	}{
		{"60:120", 60, 120, false},
		{"0:10", 0, 10, false},
		{" 1.5 : 3.5 ", 1.5, 3.5, false},
		{"", 0, maxWindowEnd, false},
		{"120:60", 0, 0, true},
		{"10:10", 0, 0, true},
		{"-5:10", 0, 0, true},
		{"abc:10", 0, 0, true},
		{"10", 0, 0, true},
	}

	for _, tt := range tests {
		window, err := parseWindow(tt.spec)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseWindow(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if window.Start != tt.wantStart || window.End != tt.wantEnd {
			t.Errorf("parseWindow(%q) = {%v %v}, want {%v %v}",
				tt.spec, window.Start, window.End, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	policy, err := parsePolicy("0, 2,5")
	if err != nil {
		t.Fatalf("parsePolicy error: %v", err)
	}
	for _, allowed := range []int{0, 2, 5} {
		if !policy.Allows(allowed) {
			t.Errorf("expected index %d allowed", allowed)
		}
	}
	if policy.Allows(1) {
		t.Error("expected index 1 suppressed")
	}

	policy, err = parsePolicy("")
	if err != nil {
		t.Fatalf("parsePolicy error: %v", err)
	}
	if !policy.Allows(42) {
		t.Error("empty spec should allow everything")
	}

	if _, err := parsePolicy("1,x"); err == nil {
		t.Error("expected error for non-numeric index")
	}
}
