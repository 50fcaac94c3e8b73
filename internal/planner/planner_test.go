package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

// stubChat returns a canned reply or error.
type stubChat struct {
	reply string
	err   error
	calls int
}

func (s *stubChat) Chat(ctx context.Context, system, user string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestParseJSONBare(t *testing.T) {
	var plan SearchPlan
	ok := ParseJSON(`{"keywords":["invoice"],"order":"asc"}`, &plan)
	require.True(t, ok)
	assert.Equal(t, []string{"invoice"}, plan.Keywords)
	assert.Equal(t, "asc", plan.Order)
}

func TestParseJSONCodeFence(t *testing.T) {
	var plan SearchPlan
	ok := ParseJSON("```json\n{\"keywords\":[\"report\"]}\n```", &plan)
	require.True(t, ok)
	assert.Equal(t, []string{"report"}, plan.Keywords)
}

func TestParseJSONFenceWithoutTag(t *testing.T) {
	var plan SearchPlan
	ok := ParseJSON("```\n{\"keywords\":[\"a\"]}\n```", &plan)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, plan.Keywords)
}

func TestParseJSONEmbeddedInProse(t *testing.T) {
	var plan SearchPlan
	ok := ParseJSON(`Sure! Here is the plan: {"keywords":["tax"],"order":"desc"} Hope that helps.`, &plan)
	require.True(t, ok)
	assert.Equal(t, []string{"tax"}, plan.Keywords)
}

func TestParseJSONNullDates(t *testing.T) {
	var plan SearchPlan
	ok := ParseJSON(`{"keywords":["x"],"date_after":null,"date_before":null}`, &plan)
	require.True(t, ok)
	assert.Empty(t, plan.DateAfter)
	assert.Empty(t, plan.DateBefore)
}

func TestParseJSONGarbage(t *testing.T) {
	var plan SearchPlan
	assert.False(t, ParseJSON("I could not produce a plan.", &plan))
	assert.False(t, ParseJSON("", &plan))
}

func TestPlanHappyPath(t *testing.T) {
	chat := &stubChat{reply: `{"keywords":["invoice","march"],"date_after":"2024-03-01","order":"asc"}`}
	p := New(chat)

	plan := p.Plan(context.Background(), "invoices from march")
	assert.Equal(t, []string{"invoice", "march"}, plan.Keywords)
	assert.Equal(t, "2024-03-01", plan.DateAfter)
	assert.Equal(t, "asc", plan.Order)
}

func TestPlanFallbackOnChatError(t *testing.T) {
	chat := &stubChat{err: errors.New("rate limited")}
	p := New(chat)

	plan := p.Plan(context.Background(), "find my invoices")
	assert.Equal(t, []string{"find my invoices"}, plan.Keywords)
	assert.Equal(t, "desc", plan.Order)
}

func TestPlanFallbackOnUnparseableReply(t *testing.T) {
	chat := &stubChat{reply: "sorry, no JSON today"}
	p := New(chat)

	plan := p.Plan(context.Background(), "q")
	assert.Equal(t, FallbackPlan("q"), plan)
}

func TestPlanNilClient(t *testing.T) {
	p := New(nil)
	plan := p.Plan(context.Background(), "q")
	assert.Equal(t, FallbackPlan("q"), plan)
}

func TestPlanNormalizesOrder(t *testing.T) {
	chat := &stubChat{reply: `{"keywords":["a"],"order":"newest"}`}
	p := New(chat)

	assert.Equal(t, "desc", p.Plan(context.Background(), "q").Order)
}

func TestRefine(t *testing.T) {
	chat := &stubChat{reply: `{"refined":"quarterly financial reports 2024"}`}
	p := New(chat)

	assert.Equal(t, "quarterly financial reports 2024", p.Refine(context.Background(), "money stuff"))
}

func TestRefineFallback(t *testing.T) {
	p := New(&stubChat{err: errors.New("down")})
	assert.Equal(t, "money stuff", p.Refine(context.Background(), "money stuff"))

	p = New(&stubChat{reply: `{"refined":"   "}`})
	assert.Equal(t, "money stuff", p.Refine(context.Background(), "money stuff"))
}

func results(names ...string) []types.HybridResult {
	out := make([]types.HybridResult, len(names))
	for i, n := range names {
		out[i] = types.HybridResult{ID: n, Name: n}
	}
	return out
}

func TestSummarizeUsesModel(t *testing.T) {
	chat := &stubChat{reply: "The contract is in contract.pdf."}
	p := New(chat)

	got := p.Summarize(context.Background(), "where is the contract?", results("contract.pdf"))
	assert.Equal(t, "The contract is in contract.pdf.", got)
}

func TestSummarizeFallbackOnError(t *testing.T) {
	p := New(&stubChat{err: errors.New("down")})

	got := p.Summarize(context.Background(), "q", results("a.pdf", "b.pdf"))
	assert.Equal(t, "Found 2 relevant documents, including a.pdf, b.pdf.", got)
}

func TestSummarizeEmptyResults(t *testing.T) {
	chat := &stubChat{reply: "irrelevant"}
	p := New(chat)

	got := p.Summarize(context.Background(), "q", nil)
	assert.Equal(t, "No relevant documents found.", got)
	assert.Zero(t, chat.calls)
}

func TestTemplatedSummary(t *testing.T) {
	assert.Equal(t, "No relevant documents found.", TemplatedSummary(nil))
	assert.Equal(t, "Found 1 relevant document: a.pdf.", TemplatedSummary(results("a.pdf")))
	assert.Equal(t,
		"Found 4 relevant documents, including a.pdf, b.pdf, c.pdf.",
		TemplatedSummary(results("a.pdf", "b.pdf", "c.pdf", "d.pdf")))
}
