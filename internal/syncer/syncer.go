package syncer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Clau791/Drive-search-with-AI-extended/internal/drive"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/embedder"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/extractor"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/store"
	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

// ErrSyncInProgress is returned when a sync pass is started while another
// one is still running in this process.
var ErrSyncInProgress = errors.New("sync already in progress")

// Config contains configuration for the reconciliation engine.
type Config struct {
	MimeType string // monitored document class (default: PDFs)
	PageSize int    // listing page size (default: drive.DefaultPageSize)
	Workers  int    // concurrent re-index workers (default: NumCPU, capped)
}

// maxWorkers caps re-index concurrency; the bottleneck is the embedding
// API, not local CPU.
const maxWorkers = 8

// Syncer is the index reconciliation engine: it diffs the remote listing
// against the embedding store and drives selective re-indexing of only the
// changed subset. It is the sole writer of the store.
type Syncer struct {
	drive     drive.Client
	store     *store.Store
	embedder  embedder.Embedder
	extractor extractor.Extractor

	mimeType string
	pageSize int
	workers  int

	lock SyncLock
}

// New creates a reconciliation engine over the given collaborators.
func New(dc drive.Client, st *store.Store, emb embedder.Embedder, ext extractor.Extractor, cfg *Config) *Syncer {
	s := &Syncer{
		drive:     dc,
		store:     st,
		embedder:  emb,
		extractor: ext,
		mimeType:  drive.MimeTypePDF,
		pageSize:  drive.DefaultPageSize,
		workers:   runtime.NumCPU(),
	}
	if cfg != nil {
		if cfg.MimeType != "" {
			s.mimeType = cfg.MimeType
		}
		if cfg.PageSize > 0 {
			s.pageSize = cfg.PageSize
		}
		if cfg.Workers > 0 {
			s.workers = cfg.Workers
		}
	}
	if s.workers > maxWorkers {
		s.workers = maxWorkers
	}
	return s
}

// Reconcile fetches the exhaustive remote listing for the monitored class,
// snapshots the local index, and reports the three-way diff.
func (s *Syncer) Reconcile(ctx context.Context) (*Report, error) {
	report, _, err := s.reconcile(ctx)
	return report, err
}

func (s *Syncer) reconcile(ctx context.Context) (*Report, []types.RemoteFileSummary, error) {
	remote, err := s.drive.ListAll(ctx, drive.ListRequest{
		Query:    drive.Query{MimeType: s.mimeType},
		PageSize: s.pageSize,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list remote files: %w", err)
	}

	local := s.store.Snapshot()
	return buildReport(remote, local), remote, nil
}

// SyncIfNeeded reconciles and, when drift is found, runs the selective
// re-index over the missing and modified documents. When the index is
// already in sync it returns a zero-work result without touching the
// artifact. The check-then-act is best-effort: remote writes racing the
// pass are picked up by the next one.
func (s *Syncer) SyncIfNeeded(ctx context.Context) (*SyncResult, error) {
	if !s.lock.TryAcquire() {
		return nil, ErrSyncInProgress
	}
	defer s.lock.Release()

	start := time.Now()

	report, remote, err := s.reconcile(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{
		TotalRemote:  report.RemoteCount,
		TotalIndexed: s.store.Len(),
		ExtraLocal:   report.Extra,
	}

	if report.InSync {
		result.Duration = time.Since(start)
		return result, nil
	}

	// Extra local documents are surfaced but never deleted here: a
	// transient remote-listing error must not silently discard index
	// history. Removal is the explicit PruneExtra operation.
	changed := make(map[string]struct{}, len(report.Missing)+len(report.Modified))
	for _, id := range report.Missing {
		changed[id] = struct{}{}
	}
	for _, id := range report.Modified {
		changed[id] = struct{}{}
	}

	var work []types.RemoteFileSummary
	for _, f := range remote {
		if _, ok := changed[f.ID]; ok {
			work = append(work, f)
		}
	}

	if len(work) > 0 {
		s.reindex(ctx, work, result)

		// One save per pass, not per document; the write itself is atomic.
		if err := s.store.Save(); err != nil {
			return nil, fmt.Errorf("persist embedding store: %w", err)
		}
	}

	result.TotalIndexed = s.store.Len()
	result.Duration = time.Since(start)
	return result, nil
}

// reindex processes the changed documents with a bounded worker pool.
// A failure on one document is recorded and the pass continues; this is a
// partial-failure-tolerant batch job, not a transaction.
func (s *Syncer) reindex(ctx context.Context, work []types.RemoteFileSummary, result *SyncResult) {
	var (
		processed atomic.Int32
		mu        sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, f := range work {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				mu.Lock()
				result.ErrorDetails = append(result.ErrorDetails, fmt.Sprintf("%s: %v", f.Name, err))
				mu.Unlock()
				return nil
			}

			rec, err := s.indexOne(gctx, f)
			if err != nil {
				log.Printf("sync: failed to index %q: %v", f.Name, err)
				mu.Lock()
				result.ErrorDetails = append(result.ErrorDetails, fmt.Sprintf("%s: %v", f.Name, err))
				mu.Unlock()
				return nil
			}

			s.store.Upsert(rec)
			processed.Add(1)
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	sort.Strings(result.ErrorDetails)
	result.NewlyProcessed = int(processed.Load())
	result.ErrorCount = len(result.ErrorDetails)
}

// indexOne runs the per-document pipeline: download, extract, truncate,
// embed, build the record.
func (s *Syncer) indexOne(ctx context.Context, f types.RemoteFileSummary) (types.DocumentRecord, error) {
	data, err := s.drive.Download(ctx, f.ID)
	if err != nil {
		return types.DocumentRecord{}, fmt.Errorf("download: %w", err)
	}

	// Extraction is total: failures yield sentinel text, which is still
	// embedded so the document participates in semantic search.
	text := s.extractor.Extract(data, f.MimeType)

	vec, err := s.embedder.Embed(ctx, embedder.Truncate(text))
	if err != nil {
		return types.DocumentRecord{}, fmt.Errorf("embed: %w", err)
	}

	rec := types.DocumentRecord{
		ID:           f.ID,
		Name:         f.Name,
		MimeType:     f.MimeType,
		WebViewLink:  f.WebViewLink,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
		Text:         text,
		Embedding:    vec,
	}
	rec.TruncateText()
	return rec, nil
}

// PruneExtra removes locally-indexed documents that no longer exist
// remotely. This is deliberately separate from SyncIfNeeded (which only
// reports them) and returns the removed ids.
func (s *Syncer) PruneExtra(ctx context.Context) ([]string, error) {
	if !s.lock.TryAcquire() {
		return nil, ErrSyncInProgress
	}
	defer s.lock.Release()

	report, _, err := s.reconcile(ctx)
	if err != nil {
		return nil, err
	}
	if len(report.Extra) == 0 {
		return nil, nil
	}

	for _, id := range report.Extra {
		s.store.Remove(id)
	}
	if err := s.store.Save(); err != nil {
		return nil, fmt.Errorf("persist embedding store: %w", err)
	}
	return report.Extra, nil
}
