package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchDocumentsTool returns the tool definition for search_documents
func searchDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_documents",
		Description: "Search indexed Drive documents with a natural language query",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural language search query",
				},
				"top_n": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-50)",
					"default":     10,
					"minimum":     1,
					"maximum":     50,
				},
				"sync_first": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, reconcile the index with Drive before searching",
					"default":     false,
				},
				"summarize": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, ask the chat model to synthesize an answer from the top results",
					"default":     false,
				},
			},
			Required: []string{"query"},
		},
	}
}

// syncIndexTool returns the tool definition for sync_index
func syncIndexTool() mcp.Tool {
	return mcp.Tool{
		Name:        "sync_index",
		Description: "Reconcile the local embedding index with the Drive listing, re-indexing new and modified documents",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"prune": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, also remove indexed documents that no longer exist in Drive",
					"default":     false,
				},
			},
		},
	}
}

// indexStatusTool returns the tool definition for index_status
func indexStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_status",
		Description: "Report embedding index statistics, optionally diffed against the live Drive listing",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"check_remote": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, list Drive and report missing, extra, and modified documents",
					"default":     false,
				},
			},
		},
	}
}
