package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

func TestQueryExpressionDefault(t *testing.T) {
	q := Query{}
	assert.Equal(t, "trashed = false", q.Expression())
}

func TestQueryExpressionFull(t *testing.T) {
	q := Query{
		MimeType:   MimeTypePDF,
		Keywords:   []string{"invoice", "contract"},
		DateAfter:  "2024-01-01",
		DateBefore: "2024-06-30",
	}

	want := "trashed = false and mimeType='application/pdf' and " +
		"(name contains 'invoice' or name contains 'contract') and " +
		"modifiedTime >= '2024-01-01T00:00:00Z' and " +
		"modifiedTime <= '2024-06-30T23:59:59Z'"
	assert.Equal(t, want, q.Expression())
}

func TestQueryExpressionSkipsBlankKeywords(t *testing.T) {
	q := Query{Keywords: []string{"", "  ", "report"}}
	assert.Equal(t, "trashed = false and (name contains 'report')", q.Expression())
}

func TestQueryExpressionEscapesQuotes(t *testing.T) {
	q := Query{Keywords: []string{"o'brien"}}
	assert.Equal(t, `trashed = false and (name contains 'o\'brien')`, q.Expression())
}

func TestQueryExpressionEmptyKeywordsOmitsNameClause(t *testing.T) {
	// An empty query is "no textual constraint", not "match empty string".
	q := Query{MimeType: MimeTypePDF, Keywords: nil}
	assert.NotContains(t, q.Expression(), "name contains")
}

func TestListSinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("q"), "trashed = false")
		assert.Equal(t, "50", r.URL.Query().Get("pageSize"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"files": []types.RemoteFileSummary{
				{ID: "a", Name: "alpha.pdf", ModifiedTime: "2024-01-01T00:00:00Z"},
				{ID: "b", Name: "beta.pdf"},
			},
		})
	}))
	defer server.Close()

	client := NewRESTClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	page, err := client.List(context.Background(), ListRequest{PageSize: 50})
	require.NoError(t, err)

	require.Len(t, page.Files, 2)
	assert.Equal(t, "a", page.Files[0].ID)
	assert.Empty(t, page.NextPageToken)
}

func TestListAllPaginates(t *testing.T) {
	pages := map[string][]types.RemoteFileSummary{
		"":   {{ID: "a", Name: "alpha.pdf"}},
		"p2": {{ID: "b", Name: "beta.pdf"}},
		"p3": {{ID: "c", Name: "gamma.pdf"}},
	}
	next := map[string]string{"": "p2", "p2": "p3", "p3": ""}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("pageToken")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"files":         pages[token],
			"nextPageToken": next[token],
		})
	}))
	defer server.Close()

	client := NewRESTClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	all, err := client.ListAll(context.Background(), ListRequest{})
	require.NoError(t, err)

	require.Len(t, all, 3)
	assert.Equal(t, "c", all[2].ID)
}

func TestListErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"backend"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRESTClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	_, err := client.List(context.Background(), ListRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/doc-1":
			assert.Equal(t, "media", r.URL.Query().Get("alt"))
			_, _ = w.Write([]byte("%PDF-1.4 payload"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewRESTClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	data, err := client.Download(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 payload"), data)

	_, err = client.Download(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
