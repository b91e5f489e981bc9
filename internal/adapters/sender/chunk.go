package sender

import (
	"strings"
	"unicode/utf8"
)

// chunk splits text into pieces of at most limit runes, preferring to cut at the last newline or space.
func chunk(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)

	for len(runes) > limit {
		cut := limit
		window := string(runes[:limit])

		if i := strings.LastIndexAny(window, "\n "); i > 0 {
			cut = utf8.RuneCountInString(window[:i]) + 1
		}

		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}

	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}
