package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Clau791/Drive-search-with-AI-extended/internal/hybrid"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/syncer"
	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams  = -32602 // Invalid method parameters
	ErrorCodeInternalError  = -32603 // Internal JSON-RPC error
	ErrorCodeSyncInProgress = -32002 // Another reconciliation pass is already running
	ErrorCodeEmptyQuery     = -32004 // Query parameter is empty
)

// handleSearchDocuments handles the search_documents tool invocation
func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	topN := getIntDefault(args, "top_n", s.search.TopN)
	if topN == 0 {
		topN = hybrid.DefaultTopN
	}
	if topN < 1 || topN > hybrid.MaxTopN {
		return nil, newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("top_n must be between 1 and %d", hybrid.MaxTopN), map[string]interface{}{
			"param": "top_n",
			"value": topN,
		})
	}

	req := hybrid.Request{
		Query:       query,
		TopN:        topN,
		SyncFirst:   getBoolDefault(args, "sync_first", s.search.SyncFirst),
		SyncTimeout: s.syncTimeout(),
		Summarize:   getBoolDefault(args, "summarize", false),
	}

	result, err := s.engine.Search(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrEmptyQuery) {
			return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", nil)
		}
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(marshalJSON(result)), nil
}

// handleSyncIndex handles the sync_index tool invocation
func (s *Server) handleSyncIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	result, err := s.syncer.SyncIfNeeded(ctx)
	if err != nil {
		if errors.Is(err, syncer.ErrSyncInProgress) {
			return nil, newMCPError(ErrorCodeSyncInProgress, "another sync is already running", nil)
		}
		return nil, newMCPError(ErrorCodeInternalError, "sync failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"total_in_drive":  result.TotalRemote,
		"total_indexed":   result.TotalIndexed,
		"newly_processed": result.NewlyProcessed,
		"errors":          result.ErrorCount,
		"duration_ms":     result.Duration.Milliseconds(),
	}
	if len(result.ErrorDetails) > 0 {
		details := result.ErrorDetails
		if len(details) > 5 {
			details = details[:5]
		}
		response["error_details"] = details
	}

	if getBoolDefault(args, "prune", false) {
		removed, err := s.syncer.PruneExtra(ctx)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "prune failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		response["pruned"] = removed
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleIndexStatus handles the index_status tool invocation
func (s *Server) handleIndexStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	response := map[string]interface{}{
		"indexed_documents": s.store.Len(),
		"store_path":        s.store.Path(),
		"embedding": map[string]interface{}{
			"provider":  s.embedder.Provider(),
			"model":     s.embedder.Model(),
			"dimension": s.embedder.Dimension(),
		},
	}

	if getBoolDefault(args, "check_remote", false) {
		report, err := s.syncer.Reconcile(ctx)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to diff against remote listing", map[string]interface{}{
				"error": err.Error(),
			})
		}
		response["remote"] = map[string]interface{}{
			"total_in_drive": report.RemoteCount,
			"missing":        report.Missing,
			"extra":          report.Extra,
			"modified":       report.Modified,
			"in_sync":        report.InSync,
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// marshalJSON formats an arbitrary value as indented JSON
func marshalJSON(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}
