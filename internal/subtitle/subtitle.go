package subtitle

// Entry is a single timed caption. Start and End are seconds from the
// beginning of the track's timeline. Translation is empty when the source
// block carried no inline translation.
type Entry struct {
	Index       int
	Start       float64
	End         float64
	Text        string
	Translation string
}

// Duration returns the display time of the entry in seconds.
func (e Entry) Duration() float64 {
	return e.End - e.Start
}

// Contains reports whether t falls inside the entry's display interval.
// Both boundaries are inclusive.
func (e Entry) Contains(t float64) bool {
	return t >= e.Start && t <= e.End
}

// Track is an ordered sequence of entries. Order follows the source file;
// the parser never sorts or deduplicates.
type Track struct {
	Entries             []Entry
	Language            string
	TranslationLanguage string
}

// Empty reports whether the track has no entries.
func (t Track) Empty() bool {
	return len(t.Entries) == 0
}

// HasInlineTranslations reports whether any entry carries an inline
// translation, i.e. the source used the pipe-delimited bilingual form.
func (t Track) HasInlineTranslations() bool {
	for _, e := range t.Entries {
		if e.Translation != "" {
			return true
		}
	}
	return false
}
