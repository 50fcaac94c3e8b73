package hybrid

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

// rankResults orders the merged list with a total, deterministic order:
// semantic score descending (absent ranks below all scored items), then
// title hit (true first), then modifiedTime descending (absent last), then
// id ascending so identical inputs always produce identical output.
func rankResults(results []types.HybridResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := &results[i], &results[j]

		scoreA, okA := a.Score()
		scoreB, okB := b.Score()
		if okA != okB {
			return okA
		}
		if okA && scoreA != scoreB {
			return scoreA > scoreB
		}

		if a.TitleHit != b.TitleHit {
			return a.TitleHit
		}

		// ISO-8601 timestamps compare lexically; absent sorts last.
		if a.ModifiedTime != b.ModifiedTime {
			return a.ModifiedTime > b.ModifiedTime
		}

		return a.ID < b.ID
	})
}

// titleHit reports whether the raw query appears in the display name,
// case-insensitively.
func titleHit(name, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// maxSnippetChars bounds the text excerpt attached to local hits.
const maxSnippetChars = 200

// makeSnippet trims the stored excerpt down to display size, cutting on a
// rune boundary so the ellipsis never follows a torn rune.
func makeSnippet(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxSnippetChars {
		return text
	}
	n := maxSnippetChars
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n] + "..."
}
