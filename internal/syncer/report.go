package syncer

import (
	"sort"
	"time"

	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

// Report is the result of one reconciliation pass: the three-way diff
// between the remote listing and the local index. It is computed fresh on
// every check, never mutated, and immediately consumed to decide whether a
// re-index pass runs.
type Report struct {
	Missing  []string `json:"missing"`  // remote ids absent locally
	Extra    []string `json:"extra"`    // local ids absent remotely
	Modified []string `json:"modified"` // ids whose remote modifiedTime is strictly newer

	RemoteCount int  `json:"remoteCount"`
	LocalCount  int  `json:"localCount"`
	InSync      bool `json:"inSync"`
}

// buildReport computes the set differences. Modified requires both sides to
// carry a timestamp: an absent modifiedTime means "cannot determine", which
// never triggers reprocessing.
func buildReport(remote []types.RemoteFileSummary, local map[string]types.DocumentRecord) *Report {
	r := &Report{
		RemoteCount: len(remote),
		LocalCount:  len(local),
	}

	remoteIDs := make(map[string]struct{}, len(remote))
	for _, f := range remote {
		remoteIDs[f.ID] = struct{}{}

		rec, ok := local[f.ID]
		if !ok {
			r.Missing = append(r.Missing, f.ID)
			continue
		}
		// ISO-8601 timestamps compare lexically.
		if f.ModifiedTime != "" && rec.ModifiedTime != "" && f.ModifiedTime > rec.ModifiedTime {
			r.Modified = append(r.Modified, f.ID)
		}
	}

	for id := range local {
		if _, ok := remoteIDs[id]; !ok {
			r.Extra = append(r.Extra, id)
		}
	}

	sort.Strings(r.Missing)
	sort.Strings(r.Extra)
	sort.Strings(r.Modified)

	r.InSync = len(r.Missing) == 0 && len(r.Extra) == 0 && len(r.Modified) == 0
	return r
}

// SyncResult aggregates one sync pass: listing totals, work performed, and
// per-document failures. A pass with errors is still a completed pass.
type SyncResult struct {
	TotalRemote    int           `json:"totalRemote"`
	TotalIndexed   int           `json:"totalIndexed"`
	NewlyProcessed int           `json:"newlyProcessed"`
	ErrorCount     int           `json:"errorCount"`
	ErrorDetails   []string      `json:"errorDetails,omitempty"`
	ExtraLocal     []string      `json:"extraLocal,omitempty"`
	Duration       time.Duration `json:"-"`
}
