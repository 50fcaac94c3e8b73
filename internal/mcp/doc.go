// Package mcp implements the Model Context Protocol (MCP) server for
// Drive document search.
//
// The MCP server exposes three tools to AI assistants:
//   - search_documents: Hybrid search over Drive metadata and the local
//     embedding index
//   - sync_index: Reconcile the embedding index with the Drive listing
//   - index_status: Report index statistics, optionally diffed against
//     the live listing
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates on standard input/output, so standard output
// must carry nothing but protocol frames; all logging goes to stderr.
//
// # Tool: search_documents
//
// Run a hybrid query:
//
//	Request:
//	{
//	  "name": "search_documents",
//	  "arguments": {
//	    "query": "budget reports from June",
//	    "top_n": 10,
//	    "sync_first": false,
//	    "summarize": false
//	  }
//	}
//
// The result is the full hybrid search payload: the merged ranking, per
// branch counts, any degraded-branch errors, and a short answer string.
//
// # Tool: sync_index
//
// Trigger a reconciliation pass. The response carries the same counters
// the standalone sync command prints: documents in Drive, documents
// indexed, newly processed, and per-document errors. Pass "prune": true
// to also drop local documents that no longer exist remotely.
//
// # Tool: index_status
//
// Report the local index size and embedding configuration. With
// "check_remote": true the server lists Drive and reports the ids that
// are missing, extra, or modified relative to the index.
//
// # Error Codes
//
//	-32602  invalid parameters
//	-32603  internal error
//	-32002  another sync is already running
//	-32004  empty query
package mcp
