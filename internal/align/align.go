// Package align re-bases timed caption tracks onto a playback window and
// resolves the caption/translation pair to display at a given playback
// time. All operations are pure functions over their inputs; the host
// re-invokes them on every playback tick.
package align

import (
	"github.com/Jonathangadeaharder/langplug/internal/subtitle"
)

// Cue is the display result for one playback instant. Both fields are
// empty when no entry covers the queried time.
type Cue struct {
	Original    string
	Translation string
}

// Rebase projects entries onto the window's local timeline.
//
// Entries whose start lies at or past the window start are treated as
// absolute source timestamps and shifted left by the window start; entries
// starting before it are assumed to be chunk-relative already and pass
// through unchanged. Negative results clamp to zero, and entries entirely
// outside the window are dropped.
//
// The absolute-vs-relative test cannot fire when the window starts at
// zero, so an absolute track in a zero-start window is passed through
// as-is. Callers must keep a single timestamp basis per video; a clean fix
// would be an explicit per-track basis flag rather than this heuristic.
func Rebase(entries []subtitle.Entry, window Window) []subtitle.Entry {
	duration := window.Duration()
	rebased := make([]subtitle.Entry, 0, len(entries))

	for _, entry := range entries {
		if entry.Start >= window.Start && window.Start > 0 {
			entry.Start -= window.Start
			entry.End -= window.Start
		}
		if entry.Start < 0 {
			entry.Start = 0
		}
		if entry.Start > duration || entry.End < 0 {
			continue
		}
		rebased = append(rebased, entry)
	}
	return rebased
}

// Policy restricts which entry indices may show their translation. A nil
// Policy (or one with no indices) shows every translation.
type Policy struct {
	translationIndices map[int]struct{}
}

// NewPolicy builds a policy allowing translation display only for the
// given entry indices. An empty index list yields the show-all policy.
func NewPolicy(indices ...int) *Policy {
	if len(indices) == 0 {
		return &Policy{}
	}
	set := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		set[i] = struct{}{}
	}
	return &Policy{translationIndices: set}
}

// Allows reports whether the entry at index may show its translation.
func (p *Policy) Allows(index int) bool {
	if p == nil || len(p.translationIndices) == 0 {
		return true
	}
	_, ok := p.translationIndices[index]
	return ok
}

// Resolve answers "what is displayed at window-relative time t".
//
// The active original is the first entry in source order whose inclusive
// [start, end] interval contains t; overlapping entries tie-break to the
// earliest index. The translation track is searched independently with the
// same rule, since its cue boundaries may differ from the original's. When
// no translation track is provided, the active entry's inline translation
// is used. A translation cue that is active while no original is can still
// display, since the tracks are timed independently. The policy can
// suppress the translation for entry indices it does not allow; indices
// refer to the entries' parse-order Index, which survives window
// filtering, and a restrictive policy also suppresses translations with no
// active original. Resolve never fails; a miss on both tracks yields an
// empty Cue.
func Resolve(entries, translations []subtitle.Entry, t float64, policy *Policy) Cue {
	var cue Cue

	active := -1
	for i, entry := range entries {
		if entry.Contains(t) {
			cue.Original = entry.Text
			active = i
			break
		}
	}

	if len(translations) > 0 {
		for _, entry := range translations {
			if entry.Contains(t) {
				cue.Translation = entry.Text
				break
			}
		}
	} else if active >= 0 {
		cue.Translation = entries[active].Translation
	}

	allowedIndex := -1
	if active >= 0 {
		allowedIndex = entries[active].Index
	}
	if !policy.Allows(allowedIndex) {
		cue.Translation = ""
	}

	return cue
}
