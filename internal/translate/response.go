package translate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeResults pulls a translated-caption array out of raw LLM output,
// tolerating markdown fences, leading prose, wrapper objects, and the
// invalid escapes subtitle text tends to produce.
func decodeResults(raw string, expected int) ([]Translated, error) {
	text := stripFences(raw)
	text = escapeInvalidSequences(text)

	results, err := scanForResults(text)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse translation response: %w (response: %s)",
			err, truncate(text, 200),
		)
	}
	if len(results) != expected {
		return nil, fmt.Errorf(
			"expected %d translations, got %d", expected, len(results),
		)
	}
	return results, nil
}

func scanForResults(text string) ([]Translated, error) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		if results, ok := tryDecode(raw); ok {
			return results, nil
		}
	}
	return nil, fmt.Errorf("no translation JSON found in response")
}

func tryDecode(raw json.RawMessage) ([]Translated, bool) {
	var results []Translated
	if err := json.Unmarshal(raw, &results); err == nil && usable(results) {
		return results, true
	}

	// Some models wrap the array in an object.
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}
	for _, key := range []string{"results", "translations", "captions", "data"} {
		if field, ok := wrapper[key]; ok {
			var fieldResults []Translated
			if err := json.Unmarshal(field, &fieldResults); err == nil &&
				usable(fieldResults) {
				return fieldResults, true
			}
		}
	}
	return nil, false
}

func usable(results []Translated) bool {
	for _, r := range results {
		if r.Text != "" {
			return true
		}
	}
	return false
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// escapeInvalidSequences doubles backslashes that do not start a valid
// JSON escape, so sequences like \N from SRT markup survive decoding.
func escapeInvalidSequences(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			sb.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
			sb.WriteByte(s[i])
			sb.WriteByte(s[i+1])
		default:
			sb.WriteString(`\\`)
			sb.WriteByte(s[i+1])
		}
		i++
	}
	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
