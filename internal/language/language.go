package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize lowercases and trims a language code. Full language words
// ("german") are mapped to their ISO 639-1 code when recognized.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if len(code) <= 3 {
		return code
	}
	// Accept full English language names by round-tripping through the
	// matcher ("german" parses as a language name is not supported by
	// language.Parse, so fall back to a common-word table).
	if mapped, ok := wordCodes[code]; ok {
		return mapped
	}
	return code
}

// DisplayName returns the English display name for a language code.
// Unrecognized codes come back uppercased so the UI still shows something.
func DisplayName(code string) string {
	code = Normalize(code)
	if code == "" {
		return "Unknown"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return strings.ToUpper(code)
	}
	return name
}

// SelfName returns the language's name in that language itself, e.g.
// "Deutsch" for "de". Falls back to the English name.
func SelfName(code string) string {
	code = Normalize(code)
	if code == "" {
		return "Unknown"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return DisplayName(code)
}

// wordCodes maps full English language words to ISO 639-1 codes for the
// languages the platform ships content in.
var wordCodes = map[string]string{
	"english":    "en",
	"german":     "de",
	"spanish":    "es",
	"french":     "fr",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"turkish":    "tr",
}
