// Package types provides shared type definitions for the Drive search server.
//
// This package defines the domain types used across components: indexed
// document records, remote listing summaries, and hybrid search results.
//
// # Core Types
//
// DocumentRecord is one indexed document with its embedding vector:
//
//	rec := types.DocumentRecord{
//	    ID:           "1a2b3c",
//	    Name:         "contract.pdf",
//	    ModifiedTime: "2024-02-01T00:00:00Z",
//	    Text:         excerpt,
//	    Embedding:    vector,
//	}
//
// RemoteFileSummary is the slim view of a remote file used for diffing the
// remote listing against the local index, and for remote-sourced hits.
//
// # Hybrid Results
//
// HybridResult distinguishes "no semantic score" from a score of zero by
// using a pointer field:
//
//	if score, ok := result.Score(); ok {
//	    fmt.Printf("similarity %.3f\n", score)
//	}
//
// A nil ScoreSemantic means the hit came from the remote metadata branch,
// which has no similarity to report.
package types
