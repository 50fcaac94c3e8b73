package hybrid

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/Clau791/Drive-search-with-AI-extended/internal/drive"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/embedder"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/planner"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/store"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/syncer"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/vector"
	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

const (
	// DefaultTopN is the result count when the request does not specify one.
	DefaultTopN = 10
	// MaxTopN caps the result count.
	MaxTopN = 50
	// DefaultRemotePageSize bounds the remote branch's listing page.
	DefaultRemotePageSize = 50
	// DefaultSyncTimeout bounds an inline reconciliation pass so a slow
	// re-index cannot stall the query indefinitely.
	DefaultSyncTimeout = 30 * time.Second
)

// Request parameterizes one hybrid search.
type Request struct {
	Query       string
	TopN        int
	Plan        *planner.SearchPlan // optional pre-computed plan; nil asks the planner
	SyncFirst   bool                // reconcile the index inline before searching
	SyncTimeout time.Duration
	Summarize   bool // ask the model for an answer instead of the template
}

// Engine orchestrates a hybrid query: remote metadata search and local
// semantic search run concurrently, are deduplicated by document identity,
// and merged into a single deterministic ranking.
type Engine struct {
	drive    drive.Client
	store    *store.Store
	embedder embedder.Embedder
	planner  *planner.Planner
	syncer   *syncer.Syncer
}

// New creates the engine. syncer may be nil, which disables SyncFirst.
func New(dc drive.Client, st *store.Store, emb embedder.Embedder, pl *planner.Planner, sy *syncer.Syncer) *Engine {
	if pl == nil {
		pl = planner.New(nil)
	}
	return &Engine{
		drive:    dc,
		store:    st,
		embedder: emb,
		planner:  pl,
		syncer:   sy,
	}
}

// branchResult carries one retrieval branch's private result list. Branches
// share nothing while running; merging happens after the join.
type branchResult struct {
	results []types.HybridResult
	refined string // refined query, local branch only
	err     error
}

// Search runs the hybrid query. It always returns a result (possibly with
// zero hits and recorded branch errors); the only hard failure is a
// structurally invalid request.
func (e *Engine) Search(ctx context.Context, req Request) (*types.HybridSearchResult, error) {
	if req.Query == "" && req.Plan == nil {
		return nil, types.ErrEmptyQuery
	}
	if req.TopN <= 0 {
		req.TopN = DefaultTopN
	}
	if req.TopN > MaxTopN {
		req.TopN = MaxTopN
	}

	start := time.Now()
	out := &types.HybridSearchResult{Query: req.Query}

	if req.SyncFirst && e.syncer != nil {
		e.syncInline(ctx, req.SyncTimeout, out)
	}

	plan := req.Plan
	if plan == nil {
		p := e.planner.Plan(ctx, req.Query)
		plan = &p
	}

	remoteChan := make(chan branchResult, 1)
	localChan := make(chan branchResult, 1)

	go func() { remoteChan <- e.remoteSearch(ctx, req.Query, *plan) }()
	go func() { localChan <- e.localSearch(ctx, req.Query, req.TopN) }()

	var remote, local branchResult
	var remoteDone, localDone bool
	for !remoteDone || !localDone {
		select {
		case remote = <-remoteChan:
			remoteDone = true
		case local = <-localChan:
			localDone = true
		case <-ctx.Done():
			// A cancelled branch is a failed branch: degrade, don't fail.
			if !remoteDone {
				remote = branchResult{err: ctx.Err()}
				remoteDone = true
			}
			if !localDone {
				local = branchResult{err: ctx.Err()}
				localDone = true
			}
		}
	}
	out.RefinedQuery = local.refined

	if remote.err != nil {
		log.Printf("hybrid: remote branch degraded: %v", remote.err)
		out.RemoteError = remote.err.Error()
	}
	if local.err != nil {
		log.Printf("hybrid: local branch degraded: %v", local.err)
		out.LocalError = local.err.Error()
	}

	out.LocalCount = len(local.results)
	out.RemoteCount = len(remote.results)

	// Local hits enter first and claim their ids: they carry a relevance
	// score the remote listing lacks, so they win identity collisions.
	seen := make(map[string]struct{}, len(local.results)+len(remote.results))
	merged := make([]types.HybridResult, 0, len(local.results)+len(remote.results))
	for _, r := range local.results {
		seen[r.ID] = struct{}{}
		merged = append(merged, r)
	}
	for _, r := range remote.results {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		merged = append(merged, r)
	}

	rankResults(merged)
	if len(merged) > req.TopN {
		merged = merged[:req.TopN]
	}
	out.Results = merged

	if req.Summarize {
		out.Answer = e.planner.Summarize(ctx, req.Query, merged)
	} else {
		out.Answer = planner.TemplatedSummary(merged)
	}

	out.DurationMs = time.Since(start).Milliseconds()
	return out, nil
}

// syncInline runs a bounded reconciliation pass before the query. Any
// failure, timeout, or concurrent pass is recorded and the search proceeds
// against the index as it stands.
func (e *Engine) syncInline(ctx context.Context, timeout time.Duration, out *types.HybridSearchResult) {
	if timeout <= 0 {
		timeout = DefaultSyncTimeout
	}
	syncCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := e.syncer.SyncIfNeeded(syncCtx); err != nil {
		log.Printf("hybrid: inline sync skipped: %v", err)
		out.SyncError = err.Error()
	}
}

// remoteSearch queries the remote store's metadata with the planned
// filters. One bounded page is enough for an interactive result list.
func (e *Engine) remoteSearch(ctx context.Context, query string, plan planner.SearchPlan) branchResult {
	order := "modifiedTime desc"
	if plan.Order == "asc" {
		order = "modifiedTime asc"
	}

	page, err := e.drive.List(ctx, drive.ListRequest{
		Query: drive.Query{
			Keywords:   plan.Keywords,
			DateAfter:  plan.DateAfter,
			DateBefore: plan.DateBefore,
		},
		OrderBy:  order,
		PageSize: DefaultRemotePageSize,
	})
	if err != nil {
		return branchResult{err: fmt.Errorf("remote search: %w", err)}
	}

	results := make([]types.HybridResult, 0, len(page.Files))
	for _, f := range page.Files {
		results = append(results, types.HybridResult{
			ID:           f.ID,
			Name:         f.Name,
			MimeType:     f.MimeType,
			WebViewLink:  f.WebViewLink,
			CreatedTime:  f.CreatedTime,
			ModifiedTime: f.ModifiedTime,
			Source:       types.SourceRemote,
			TitleHit:     titleHit(f.Name, query),
		})
	}
	return branchResult{results: results}
}

// localSearch embeds the query once and scores every indexed record.
// Records with corrupt embeddings are skipped with a warning, never scored
// as zero.
func (e *Engine) localSearch(ctx context.Context, query string, topN int) branchResult {
	snapshot := e.store.Snapshot()
	if len(snapshot) == 0 {
		// An empty index is a valid state, not an error.
		return branchResult{}
	}
	if query == "" {
		return branchResult{}
	}

	var res branchResult
	refined := e.planner.Refine(ctx, query)
	if refined != query {
		res.refined = refined
	}

	queryVec, err := e.embedder.Embed(ctx, embedder.Truncate(refined))
	if err != nil {
		res.err = fmt.Errorf("embed query: %w", err)
		return res
	}

	scored := make([]types.HybridResult, 0, len(snapshot))
	for _, rec := range snapshot {
		sim, err := vector.Cosine(queryVec, rec.Embedding)
		if err != nil {
			log.Printf("hybrid: skipping %q: %v", rec.Name, err)
			continue
		}
		score := sim
		scored = append(scored, types.HybridResult{
			ID:            rec.ID,
			Name:          rec.Name,
			MimeType:      rec.MimeType,
			WebViewLink:   rec.WebViewLink,
			CreatedTime:   rec.CreatedTime,
			ModifiedTime:  rec.ModifiedTime,
			Source:        types.SourceLocal,
			ScoreSemantic: &score,
			TitleHit:      titleHit(rec.Name, query),
			Snippet:       makeSnippet(rec.Text),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if *scored[i].ScoreSemantic != *scored[j].ScoreSemantic {
			return *scored[i].ScoreSemantic > *scored[j].ScoreSemantic
		}
		return scored[i].ID < scored[j].ID
	})
	if len(scored) > topN {
		scored = scored[:topN]
	}
	res.results = scored
	return res
}
