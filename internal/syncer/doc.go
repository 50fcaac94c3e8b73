// Package syncer keeps the local embedding index consistent with the
// remote file store.
//
// The engine has two operations. Reconcile computes the drift between the
// exhaustive remote listing and the local index:
//
//	missing  = remote − local          (never indexed)
//	extra    = local − remote          (deleted or unlisted remotely)
//	modified = both, remote timestamp strictly newer
//
// SyncIfNeeded runs Reconcile and, on drift, selectively re-indexes only
// the missing and modified documents: download, extract text, embed, and
// upsert, with a bounded worker pool. The whole mapping is persisted once
// at the end of the pass.
//
// # Failure model
//
// Per-document failures (download, embedding) are aggregated into the
// SyncResult and never abort the pass. The pass is idempotent: re-running
// it with no remote changes re-derives an empty diff and performs no
// fetches and no writes.
//
// # Extra documents
//
// Documents that exist locally but not remotely are reported, not deleted:
// a transient listing error must not wipe index history. PruneExtra is the
// explicit removal operation for operators who have confirmed the remote
// deletions are real.
package syncer
