package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format renders the track back into the block-structured text form.
// Entries with a translation are written in the bilingual pipe form so a
// re-parse reproduces the same pairs.
func Format(track Track) string {
	var sb strings.Builder
	for i, entry := range track.Entries {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatTimestamp(entry.Start),
			formatTimestamp(entry.End)))
		if entry.Translation != "" {
			sb.WriteString(entry.Text + "|" + entry.Translation)
		} else {
			sb.WriteString(entry.Text)
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// WriteFile renders the track and writes it to path, creating parent
// directories as needed.
func WriteFile(track Track, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(Format(track)), 0644)
}

func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(seconds*1000 + 0.5)
	h := totalMillis / 3600000
	m := (totalMillis % 3600000) / 60000
	s := (totalMillis % 60000) / 1000
	ms := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
