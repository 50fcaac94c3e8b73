// Package hybrid merges remote metadata search with local semantic search
// into one ranked result list.
//
// A query fans out to two independent branches run concurrently: the
// remote store's metadata search (filtered by the planner's keywords and
// date bounds) and a brute-force cosine scan over the local embedding
// index. Neither branch is a single point of failure: a failed or
// cancelled branch contributes zero results and a recorded error while the
// other branch's hits are still returned.
//
// # Merging
//
// Results are deduplicated by document id. Local hits are inserted first
// and win collisions, because they carry a similarity score the remote
// listing cannot provide. The merged list is then ordered by:
//
//  1. semantic score, descending (unscored ranks below all scored)
//  2. title hit (query substring in name, case-insensitive)
//  3. modifiedTime, descending (absent last)
//  4. id, ascending
//
// The order is total and deterministic: identical inputs always produce
// identical rankings.
//
// # Inline reconciliation
//
// A request may ask for a reconciliation pass before searching
// (SyncFirst). The pass runs under a timeout; if it is slow, fails, or
// another pass is already running, the search proceeds against the index
// as it stands and records why.
package hybrid
