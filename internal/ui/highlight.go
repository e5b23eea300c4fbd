package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// highlightMatches styles the characters of text that fuzzily match query.
// The search itself runs on the server; this only marks why a row is shown.
// Text without a match comes back unchanged.
func highlightMatches(text, query string) string {
	hit := matchedOffsets(text, query)
	if len(hit) == 0 {
		return text
	}
	var b strings.Builder
	for i, r := range text {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// matchedOffsets returns the byte offsets of the runes of text matched by
// query. fuzzy folds case itself, so offsets index text as given.
func matchedOffsets(text, query string) map[int]bool {
	query = strings.TrimSpace(query)
	if query == "" || text == "" {
		return nil
	}
	matches := fuzzy.Find(query, []string{text})
	if len(matches) == 0 {
		return nil
	}
	hit := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, i := range matches[0].MatchedIndexes {
		hit[i] = true
	}
	return hit
}
