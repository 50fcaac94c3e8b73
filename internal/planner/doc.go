// Package planner wraps the large-language-model collaborator behind three
// best-effort operations: planning a remote search from free text, refining
// a query for embedding, and summarizing merged results.
//
// Every operation has a deterministic fallback and never returns an error
// to the search path: a dead model degrades the answer quality, not the
// search.
//
//	p := planner.New(chatClient) // nil client is valid: pure fallbacks
//	plan := p.Plan(ctx, "invoices from last march")
//	// plan.Keywords, plan.DateAfter, plan.DateBefore, plan.Order
//
// # Structured output recovery
//
// Models are asked for bare JSON but routinely wrap it in markdown fences
// or prose. ParseJSON is the single recovery contract: it either produces
// the parsed struct or reports absence, and callers fall back. No other
// component contains output-repair heuristics.
package planner
