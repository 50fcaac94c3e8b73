package types

// Source identifies which retrieval branch produced a hybrid result.
type Source string

const (
	// SourceLocal marks results scored against the local embedding index.
	SourceLocal Source = "local"
	// SourceRemote marks results returned by the remote metadata search.
	SourceRemote Source = "remote"
)

// HybridResult is one ranked, deduplicated search hit. ScoreSemantic is a
// pointer so "no score" (remote-sourced hit) is distinguishable from a real
// similarity of 0.
type HybridResult struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	MimeType      string   `json:"mimeType,omitempty"`
	WebViewLink   string   `json:"webViewLink,omitempty"`
	CreatedTime   string   `json:"createdTime,omitempty"`
	ModifiedTime  string   `json:"modifiedTime,omitempty"`
	Source        Source   `json:"source"`
	ScoreSemantic *float64 `json:"scoreSemantic,omitempty"`
	TitleHit      bool     `json:"titleHit"`
	Snippet       string   `json:"snippet,omitempty"`
}

// Scored reports whether the result carries a semantic similarity score.
func (r *HybridResult) Scored() bool {
	return r.ScoreSemantic != nil
}

// Score returns the semantic score, or 0 with ok=false when absent.
func (r *HybridResult) Score() (float64, bool) {
	if r.ScoreSemantic == nil {
		return 0, false
	}
	return *r.ScoreSemantic, true
}

// HybridSearchResult is the full response for one hybrid query: the merged
// ranking plus best-effort answer text and per-branch failure notes.
type HybridSearchResult struct {
	Query        string         `json:"query"`
	RefinedQuery string         `json:"refinedQuery,omitempty"`
	Answer       string         `json:"answer"`
	Results      []HybridResult `json:"results"`
	RemoteCount  int            `json:"remoteCount"`
	LocalCount   int            `json:"localCount"`
	RemoteError  string         `json:"remoteError,omitempty"`
	LocalError   string         `json:"localError,omitempty"`
	SyncError    string         `json:"syncError,omitempty"`
	DurationMs   int64          `json:"durationMs"`
}
