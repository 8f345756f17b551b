package align

import (
	"github.com/google/uuid"

	"github.com/Jonathangadeaharder/langplug/internal/subtitle"
)

// Session carries the per-playback-session alignment state: the re-based
// tracks, the chunk window, the visibility policy, and the display mode.
// One session exists per loaded video chunk; loading a new track replaces
// the whole session rather than mutating it.
type Session struct {
	ID           string
	Window       Window
	Mode         Mode
	entries      []subtitle.Entry
	translations []subtitle.Entry
	policy       *Policy
}

// NewSession re-bases both tracks onto the window and returns a session
// ready to answer At queries. The translation track may be empty when the
// original track carries inline translations (or none at all).
func NewSession(track, translations subtitle.Track, window Window, policy *Policy) *Session {
	return &Session{
		ID:           uuid.NewString(),
		Window:       window,
		Mode:         ModeBoth,
		entries:      Rebase(track.Entries, window),
		translations: Rebase(translations.Entries, window),
		policy:       policy,
	}
}

// Entries exposes the re-based original entries, e.g. for gating reports.
func (s *Session) Entries() []subtitle.Entry {
	return s.entries
}

// At resolves the cue for an absolute playback time, clamped into the
// session's window and filtered by the display mode. Safe to call on every
// playback tick; the session holds no cursor between calls.
func (s *Session) At(currentTime float64) Cue {
	t := s.Window.Clamp(currentTime)
	return s.Mode.Apply(Resolve(s.entries, s.translations, t, s.policy))
}
