package align

import (
	"fmt"

	"github.com/Jonathangadeaharder/langplug/internal/language"
)

// Mode selects which caption lines the player renders.
type Mode string

const (
	ModeOff         Mode = "off"
	ModeOriginal    Mode = "original"
	ModeTranslation Mode = "translation"
	ModeBoth        Mode = "both"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOff, ModeOriginal, ModeTranslation, ModeBoth:
		return Mode(s), nil
	default:
		return "", fmt.Errorf(
			"unknown subtitle mode %q: use off, original, translation, or both",
			s,
		)
	}
}

// Label returns the human-readable name for a mode, binding the language
// modes to the display names of the session's language pair.
func (m Mode) Label(originalLang, translationLang string) string {
	switch m {
	case ModeOff:
		return "Off"
	case ModeOriginal:
		return language.DisplayName(originalLang)
	case ModeTranslation:
		return language.DisplayName(translationLang)
	case ModeBoth:
		return fmt.Sprintf("%s + %s",
			language.DisplayName(originalLang),
			language.DisplayName(translationLang))
	default:
		return string(m)
	}
}

// Apply filters a resolved cue down to what the mode displays.
func (m Mode) Apply(cue Cue) Cue {
	switch m {
	case ModeOff:
		return Cue{}
	case ModeOriginal:
		return Cue{Original: cue.Original}
	case ModeTranslation:
		return Cue{Translation: cue.Translation}
	default:
		return cue
	}
}
