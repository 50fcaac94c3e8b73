package planner

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

// SearchPlan is the structured interpretation of a free-text request:
// keywords for remote name matching plus optional date bounds and ordering.
type SearchPlan struct {
	Keywords   []string `json:"keywords"`
	DateAfter  string   `json:"date_after"`
	DateBefore string   `json:"date_before"`
	Order      string   `json:"order"`
}

// FallbackPlan is the plan used when the model is unavailable or returns
// garbage: the raw query as the single keyword, newest first.
func FallbackPlan(query string) SearchPlan {
	return SearchPlan{
		Keywords: []string{query},
		Order:    "desc",
	}
}

// Planner converts free-text queries into search plans and summarizes
// results, via a best-effort LLM collaborator. A nil chat client is valid:
// every method degrades to its deterministic fallback.
type Planner struct {
	chat ChatClient
}

// New creates a planner. chat may be nil for fully offline operation.
func New(chat ChatClient) *Planner {
	return &Planner{chat: chat}
}

const planSystemPrompt = "You are an assistant that generates Google Drive search plans."

const planPromptTemplate = `The user asked: %q.
Extract instructions for a Google Drive file search.
Answer ONLY with valid JSON, no extra text:
{
  "keywords": ["..."],
  "date_after": "YYYY-MM-DD" or null,
  "date_before": "YYYY-MM-DD" or null,
  "order": "asc" or "desc"
}`

// Plan interprets the query into a SearchPlan. Model failure or
// unparseable output falls back to FallbackPlan; Plan never errors.
func (p *Planner) Plan(ctx context.Context, query string) SearchPlan {
	if p.chat == nil {
		return FallbackPlan(query)
	}

	reply, err := p.chat.Chat(ctx, planSystemPrompt, fmt.Sprintf(planPromptTemplate, query))
	if err != nil {
		log.Printf("query planner unavailable, using fallback plan: %v", err)
		return FallbackPlan(query)
	}

	var plan SearchPlan
	if !ParseJSON(reply, &plan) {
		log.Printf("query planner returned unparseable output, using fallback plan")
		return FallbackPlan(query)
	}

	if len(plan.Keywords) == 0 {
		plan.Keywords = []string{query}
	}
	if plan.Order != "asc" {
		plan.Order = "desc"
	}
	return plan
}

const refineSystemPrompt = "You are an assistant that clarifies queries for semantic document search."

const refinePromptTemplate = `The user asked: %q.
Rewrite this request into a clearer form: key phrases and any dates.
Answer ONLY with valid JSON of the form:
{
  "refined": "the reformulated request for semantic search"
}`

// Refine rewrites the query for embedding. Falls back to the original
// query on any failure.
func (p *Planner) Refine(ctx context.Context, query string) string {
	if p.chat == nil {
		return query
	}

	reply, err := p.chat.Chat(ctx, refineSystemPrompt, fmt.Sprintf(refinePromptTemplate, query))
	if err != nil {
		log.Printf("query refinement unavailable, using raw query: %v", err)
		return query
	}

	var refined struct {
		Refined string `json:"refined"`
	}
	if !ParseJSON(reply, &refined) || strings.TrimSpace(refined.Refined) == "" {
		return query
	}
	return refined.Refined
}

const summarizeSystemPrompt = "You are an agent that answers based on the available documents."

// maxSummaryResults bounds how many hits are quoted into the summary
// prompt.
const maxSummaryResults = 5

// Summarize produces a short answer grounded in the top results. Failure
// of the model never fails the search: the templated fallback is returned.
func (p *Planner) Summarize(ctx context.Context, query string, results []types.HybridResult) string {
	if p.chat == nil || len(results) == 0 {
		return TemplatedSummary(results)
	}

	top := results
	if len(top) > maxSummaryResults {
		top = top[:maxSummaryResults]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User question: %s\n\n", query)
	b.WriteString("You have the following documents available:\n")
	for _, r := range top {
		snippet := r.Snippet
		if snippet == "" {
			snippet = "(metadata match only)"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", r.Name, snippet)
	}
	b.WriteString("Formulate a clear, short answer using these documents.")

	reply, err := p.chat.Chat(ctx, summarizeSystemPrompt, b.String())
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			log.Printf("summarizer unavailable, using templated answer: %v", err)
		}
		return TemplatedSummary(results)
	}
	return strings.TrimSpace(reply)
}

// TemplatedSummary is the deterministic fallback answer.
func TemplatedSummary(results []types.HybridResult) string {
	switch len(results) {
	case 0:
		return "No relevant documents found."
	case 1:
		return fmt.Sprintf("Found 1 relevant document: %s.", results[0].Name)
	default:
		names := make([]string, 0, 3)
		for i, r := range results {
			if i == 3 {
				break
			}
			names = append(names, r.Name)
		}
		return fmt.Sprintf("Found %d relevant documents, including %s.", len(results), strings.Join(names, ", "))
	}
}
