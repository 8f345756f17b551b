package subtitle

import (
	"io"
	"regexp"
	"strconv"
	"strings"
)

var timeRangeRegex = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`,
)

// Parse converts a raw block-structured timed-text payload into a Track.
//
// Blocks are separated by blank lines. Within a block the numeric index
// line is ignored, the time-range line is decoded into seconds, and the
// remaining lines are caption text. A pipe on the first text line splits
// the caption into original and translation; otherwise all text lines are
// joined with spaces and the entry has no translation.
//
// Malformed blocks (missing or unparseable time range, no text) are
// skipped. Parse never fails on block content, so the result may be
// shorter than the input suggests but is always usable.
func Parse(raw string) Track {
	raw = strings.TrimPrefix(raw, "\ufeff")
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")

	var entries []Entry
	for _, block := range strings.Split(normalized, "\n\n") {
		if entry, ok := parseBlock(block); ok {
			entry.Index = len(entries)
			entries = append(entries, entry)
		}
	}
	return Track{Entries: entries}
}

// ParseReader reads the full payload and parses it. The single read error
// is the only failure mode; block-level problems degrade by omission.
func ParseReader(r io.Reader) (Track, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Track{}, err
	}
	return Parse(string(data)), nil
}

func parseBlock(block string) (Entry, bool) {
	var entry Entry
	var textLines []string
	haveRange := false

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !haveRange {
			if isIndexLine(line) {
				continue
			}
			start, end, ok := parseTimeRange(line)
			if !ok {
				// No usable time range before text starts; drop the block.
				return Entry{}, false
			}
			entry.Start = start
			entry.End = end
			haveRange = true
			continue
		}
		textLines = append(textLines, line)
	}

	if !haveRange || len(textLines) == 0 {
		return Entry{}, false
	}

	if before, after, found := strings.Cut(textLines[0], "|"); found {
		entry.Text = strings.TrimSpace(before)
		entry.Translation = strings.TrimSpace(after)
		if len(textLines) > 1 {
			rest := strings.Join(textLines[1:], " ")
			entry.Text = strings.TrimSpace(entry.Text + " " + rest)
		}
	} else {
		entry.Text = strings.Join(textLines, " ")
	}

	return entry, true
}

func isIndexLine(line string) bool {
	_, err := strconv.Atoi(line)
	return err == nil
}

func parseTimeRange(line string) (float64, float64, bool) {
	matches := timeRangeRegex.FindStringSubmatch(line)
	if len(matches) != 9 {
		return 0, 0, false
	}
	start := decodeTimestamp(matches[1], matches[2], matches[3], matches[4])
	end := decodeTimestamp(matches[5], matches[6], matches[7], matches[8])
	return start, end, true
}

func decodeTimestamp(hours, minutes, seconds, millis string) float64 {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	ms, _ := strconv.Atoi(millis)
	return float64(h*3600+m*60+s) + float64(ms)/1000
}
