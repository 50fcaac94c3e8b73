package hybrid

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

func scored(id string, score float64) types.HybridResult {
	return types.HybridResult{ID: id, Source: types.SourceLocal, ScoreSemantic: &score}
}

func ids(results []types.HybridResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestRankScoredAboveUnscored(t *testing.T) {
	results := []types.HybridResult{
		{ID: "x", Source: types.SourceRemote, ModifiedTime: "2025-06-01T00:00:00Z"},
		scored("y", 0.1),
	}
	rankResults(results)

	assert.Equal(t, []string{"y", "x"}, ids(results))
}

func TestRankScoreDescending(t *testing.T) {
	results := []types.HybridResult{
		scored("low", 0.2),
		scored("high", 0.9),
		scored("mid", 0.5),
	}
	rankResults(results)

	assert.Equal(t, []string{"high", "mid", "low"}, ids(results))
}

func TestRankTitleHitBreaksScoreTie(t *testing.T) {
	hit := scored("a", 0.5)
	hit.TitleHit = true
	miss := scored("b", 0.5)

	results := []types.HybridResult{miss, hit}
	rankResults(results)

	assert.Equal(t, []string{"a", "b"}, ids(results))
}

func TestRankModifiedTimeDescending(t *testing.T) {
	results := []types.HybridResult{
		{ID: "old", Source: types.SourceRemote, ModifiedTime: "2024-01-01T00:00:00Z"},
		{ID: "new", Source: types.SourceRemote, ModifiedTime: "2025-01-01T00:00:00Z"},
		{ID: "undated", Source: types.SourceRemote},
	}
	rankResults(results)

	assert.Equal(t, []string{"new", "old", "undated"}, ids(results))
}

func TestRankIDBreaksFinalTie(t *testing.T) {
	results := []types.HybridResult{
		{ID: "b", Source: types.SourceRemote, ModifiedTime: "2025-01-01T00:00:00Z"},
		{ID: "a", Source: types.SourceRemote, ModifiedTime: "2025-01-01T00:00:00Z"},
	}
	rankResults(results)

	assert.Equal(t, []string{"a", "b"}, ids(results))
}

func TestRankDeterministic(t *testing.T) {
	build := func() []types.HybridResult {
		return []types.HybridResult{
			{ID: "r2", Source: types.SourceRemote, ModifiedTime: "2025-03-01T00:00:00Z"},
			scored("l1", 0.7),
			{ID: "r1", Source: types.SourceRemote, ModifiedTime: "2025-05-01T00:00:00Z"},
			scored("l2", 0.7),
			{ID: "r3", Source: types.SourceRemote},
		}
	}

	first := build()
	rankResults(first)
	for i := 0; i < 10; i++ {
		again := build()
		rankResults(again)
		assert.Equal(t, ids(first), ids(again))
	}
}

func TestTitleHit(t *testing.T) {
	assert.True(t, titleHit("Quarterly Budget 2025.pdf", "budget"))
	assert.True(t, titleHit("budget.pdf", "BUDGET"))
	assert.False(t, titleHit("notes.pdf", "budget"))
	assert.False(t, titleHit("anything.pdf", ""))
	assert.False(t, titleHit("anything.pdf", "   "))
}

func TestMakeSnippet(t *testing.T) {
	assert.Equal(t, "short text", makeSnippet("  short text  "))

	long := strings.Repeat("a", maxSnippetChars+50)
	got := makeSnippet(long)
	assert.Len(t, got, maxSnippetChars+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestMakeSnippetRuneBoundary(t *testing.T) {
	long := strings.Repeat("日", maxSnippetChars)
	got := makeSnippet(long)

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), maxSnippetChars+3)
}
